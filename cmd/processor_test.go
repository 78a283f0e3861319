package main

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/infrastructure/config"
)

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestApplicationProcessor_StartAndStop(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = freePort(t)
	cfg.Server.GracefulShutdown = time.Second

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	processor := NewApplicationProcessor(handler, cfg, nil, nil)

	result := make(chan error, 1)
	go func() { result <- processor.Run() }()

	url := "http://" + cfg.Server.Addr()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 5*time.Second, 50*time.Millisecond)

	processor.Stop()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("processor did not stop")
	}
}

func TestApplicationProcessor_ListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := &entities.Config{
		Server: entities.ServerConfig{
			Host:             "127.0.0.1",
			Port:             l.Addr().(*net.TCPAddr).Port,
			GracefulShutdown: time.Second,
			MaxUploadMB:      1,
		},
	}

	processor := NewApplicationProcessor(http.NotFoundHandler(), cfg, nil, nil)

	select {
	case err := <-runAsync(processor):
		assert.Error(t, err, "port is already taken")
	case <-time.After(5 * time.Second):
		t.Fatal("processor did not report the listen error")
	}
}

func runAsync(p *ApplicationProcessor) <-chan error {
	result := make(chan error, 1)
	go func() { result <- p.Run() }()
	return result
}
