package tui

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"pdfcompressor/internal/domain/entities"
)

func testConfig() entities.Config {
	return entities.Config{
		Server:      entities.ServerConfig{Host: "127.0.0.1", Port: 8080, MaxUploadMB: 50},
		Compression: entities.AppCompressionConfig{Algorithm: entities.AlgorithmPDFCPU},
	}
}

func TestFormatStatus(t *testing.T) {
	status := entities.NewServiceStatus()
	status.AddResult(&entities.CompressionResult{
		CurrentFile:      "report.pdf",
		OriginalSize:     4 << 20,
		CompressedSize:   1 << 20,
		SavedSpace:       3 << 20,
		CompressionRatio: 75,
		Pages:            3,
		ImagesFound:      5,
		ImagesResized:    2,
		Success:          true,
	})
	status.AddRejected()

	text := FormatStatus(testConfig(), *status)

	assert.Contains(t, text, "http://127.0.0.1:8080")
	assert.Contains(t, text, "pdfcpu")
	assert.Contains(t, text, "report.pdf")
	assert.Contains(t, text, "отклонено [yellow]1")
	assert.Contains(t, text, "обработано [cyan]5")
	assert.NotContains(t, text, "ошибок")
}

func TestFormatStatus_LastFailure(t *testing.T) {
	status := entities.NewServiceStatus()
	status.AddResult(&entities.CompressionResult{DocumentID: "doc-1", Error: errors.New("broken xref")})

	text := FormatStatus(testConfig(), *status)

	assert.Contains(t, text, "doc-1")
	assert.Contains(t, text, "broken xref")
	assert.Contains(t, text, "ошибок [red]1")
}

func TestCreateProgressBar(t *testing.T) {
	tests := []struct {
		progress float64
		filled   int
		color    string
	}{
		{-5, 0, "red"},
		{10, 1, "red"},
		{50, 5, "blue"},
		{100, 10, "green"},
		{150, 10, "green"},
	}

	for _, tt := range tests {
		bar := createProgressBar(tt.progress, 10)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "progress %.0f", tt.progress)
		assert.Equal(t, 10-tt.filled, strings.Count(bar, "░"), "progress %.0f", tt.progress)
		assert.True(t, strings.HasPrefix(bar, "["+tt.color+"]"), "progress %.0f: %s", tt.progress, bar)
	}
}

func TestTruncateFileName(t *testing.T) {
	assert.Equal(t, "short.pdf", truncateFileName("short.pdf", 10, 7))
	assert.Equal(t, "документ...", truncateFileName("документ_очень_длинный.pdf", 10, 8))
}

func TestFormatLogLine(t *testing.T) {
	line := formatLogLine("error", "failed [page 2]")

	assert.True(t, strings.HasPrefix(line, "[red]"))
	assert.Contains(t, line, "ERROR:")
	// Квадратные скобки экранируются, чтобы tview не принял их за теги цвета
	assert.Contains(t, line, "failed [page 2[]")
}

type recordingSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSink) AddLog(level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, level+": "+message)
}

func TestUILogger_MirrorsToSink(t *testing.T) {
	sink := &recordingSink{}
	logger := NewUILogger(nil, sink)

	logger.Info("Original PDF size: %d bytes", 10)
	logger.Error("boom")
	assert.NoError(t, logger.Close())

	assert.Equal(t, []string{"INFO: Original PDF size: 10 bytes", "ERROR: boom"}, sink.lines)
}
