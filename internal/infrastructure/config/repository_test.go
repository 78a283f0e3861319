package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/infrastructure/config"
)

func TestRepository_LoadMissingFileUsesDefaults(t *testing.T) {
	repo := config.NewRepository()

	cfg, err := repo.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.MaxUploadMB)
	assert.Equal(t, entities.AlgorithmPDFCPU, cfg.Compression.Algorithm)
	assert.Equal(t, entities.DefaultOutputLogName, cfg.Output.LogFileName)
	assert.Equal(t, entities.DefaultErrorLogName, cfg.Output.ErrorLogName)
}

func TestRepository_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  host: 127.0.0.1
  port: 9000
  read_timeout: 5s
  max_upload_mb: 10
compression:
  algorithm: unipdf
output:
  log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.NewRepository().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Server.MaxUploadMB)
	assert.Equal(t, entities.AlgorithmUniPDF, cfg.Compression.Algorithm)
	assert.Equal(t, "debug", cfg.Output.LogLevel)
	// Незаданные поля берутся из значений по умолчанию
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Output.LogToFile)
}

func TestRepository_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "localhost")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("COMPRESSION_ALGORITHM", "unipdf")
	t.Setenv("UNIDOC_LICENSE_API_KEY", "test-key")
	t.Setenv("LOG_LEVEL", "warning")

	cfg, err := config.NewRepository().Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, entities.AlgorithmUniPDF, cfg.Compression.Algorithm)
	assert.Equal(t, "test-key", cfg.Compression.UniPDFLicenseKey)
	assert.Equal(t, "warning", cfg.Output.LogLevel)
}

func TestRepository_LoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"Unknown algorithm", "compression:\n  algorithm: ghostscript\n", entities.ErrUnknownAlgorithm},
		{"Invalid port", "server:\n  port: -1\n", entities.ErrInvalidPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := config.NewRepository().Load(path)
			assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
		})
	}
}

func TestRepository_LoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := config.NewRepository().Load(path)
	assert.Error(t, err)
}

func TestRepository_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	repo := config.NewRepository()

	original := config.DefaultConfig()
	original.Server.Port = 8181
	original.Output.TUI = true

	require.NoError(t, repo.Save(path, original))

	loaded, err := repo.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8181, loaded.Server.Port)
	assert.True(t, loaded.Output.TUI)
}
