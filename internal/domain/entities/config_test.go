package entities_test

import (
	"errors"
	"testing"

	"pdfcompressor/internal/domain/entities"
)

func TestNewCompressionConfig(t *testing.T) {
	tests := []struct {
		name              string
		algorithm         string
		expectedAlgorithm string
	}{
		{"Default algorithm", "", entities.AlgorithmPDFCPU},
		{"PDFCPU", "pdfcpu", entities.AlgorithmPDFCPU},
		{"UniPDF", "unipdf", entities.AlgorithmUniPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := entities.NewCompressionConfig(tt.algorithm)
			if config.Algorithm != tt.expectedAlgorithm {
				t.Errorf("Expected algorithm %s, got %s", tt.expectedAlgorithm, config.Algorithm)
			}
			if config.MaxWidth != 1000 || config.MaxHeight != 1000 {
				t.Errorf("Expected 1000x1000 limits, got %dx%d", config.MaxWidth, config.MaxHeight)
			}
			if config.JPEGQuality != 75 {
				t.Errorf("Expected JPEG quality 75, got %d", config.JPEGQuality)
			}
		})
	}
}

func TestCompressionConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *entities.CompressionConfig
		wantErr error
	}{
		{
			name:    "Valid config",
			config:  entities.NewCompressionConfig(entities.AlgorithmPDFCPU),
			wantErr: nil,
		},
		{
			name: "Invalid width",
			config: &entities.CompressionConfig{
				Algorithm:   entities.AlgorithmPDFCPU,
				MaxWidth:    0,
				MaxHeight:   1000,
				JPEGQuality: 75,
			},
			wantErr: entities.ErrInvalidImageDimensions,
		},
		{
			name: "Invalid image quality - too low",
			config: &entities.CompressionConfig{
				Algorithm:   entities.AlgorithmPDFCPU,
				MaxWidth:    1000,
				MaxHeight:   1000,
				JPEGQuality: 0,
			},
			wantErr: entities.ErrInvalidImageQuality,
		},
		{
			name: "Invalid image quality - too high",
			config: &entities.CompressionConfig{
				Algorithm:   entities.AlgorithmPDFCPU,
				MaxWidth:    1000,
				MaxHeight:   1000,
				JPEGQuality: 105,
			},
			wantErr: entities.ErrInvalidImageQuality,
		},
		{
			name: "Unknown algorithm",
			config: &entities.CompressionConfig{
				Algorithm:   "ghostscript",
				MaxWidth:    1000,
				MaxHeight:   1000,
				JPEGQuality: 75,
			},
			wantErr: entities.ErrUnknownAlgorithm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *entities.Config {
		return &entities.Config{
			Server:      entities.ServerConfig{Host: "0.0.0.0", Port: 8080, MaxUploadMB: 50},
			Compression: entities.AppCompressionConfig{Algorithm: entities.AlgorithmPDFCPU},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *entities.Config)
		wantErr error
	}{
		{"Valid config", func(c *entities.Config) {}, nil},
		{"Port zero", func(c *entities.Config) { c.Server.Port = 0 }, entities.ErrInvalidPort},
		{"Port too high", func(c *entities.Config) { c.Server.Port = 70000 }, entities.ErrInvalidPort},
		{"No upload limit", func(c *entities.Config) { c.Server.MaxUploadMB = 0 }, entities.ErrInvalidUploadLimit},
		{"Unknown algorithm", func(c *entities.Config) { c.Compression.Algorithm = "qpdf" }, entities.ErrUnknownAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			if err := config.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Helpers(t *testing.T) {
	cfg := entities.ServerConfig{Host: "127.0.0.1", Port: 9090, MaxUploadMB: 2}

	if got := cfg.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %s, want 127.0.0.1:9090", got)
	}
	if got := cfg.MaxUploadBytes(); got != 2*1024*1024 {
		t.Errorf("MaxUploadBytes() = %d, want %d", got, 2*1024*1024)
	}
}

func TestServiceStatus_AddResult(t *testing.T) {
	status := entities.NewServiceStatus()

	status.AddResult(&entities.CompressionResult{
		OriginalSize:   1000,
		CompressedSize: 400,
		SavedSpace:     600,
		ImagesFound:    2,
		ImagesResized:  1,
		Success:        true,
	})
	status.AddResult(&entities.CompressionResult{
		OriginalSize:   1000,
		CompressedSize: 600,
		SavedSpace:     400,
		ImagesFound:    1,
		Success:        true,
	})
	status.AddResult(&entities.CompressionResult{
		OriginalSize: 500,
		Success:      false,
		Error:        entities.ErrCompressionFailed,
	})
	status.AddRejected()

	if status.TotalRequests != 4 {
		t.Errorf("Expected 4 requests, got %d", status.TotalRequests)
	}
	if status.SuccessfulRequests != 2 || status.FailedRequests != 1 || status.RejectedRequests != 1 {
		t.Errorf("Unexpected counters: ok=%d failed=%d rejected=%d",
			status.SuccessfulRequests, status.FailedRequests, status.RejectedRequests)
	}
	if status.AverageCompression != 50.0 {
		t.Errorf("Expected average compression 50%%, got %f", status.AverageCompression)
	}
	if status.TotalImages != 3 || status.ResizedImages != 1 {
		t.Errorf("Expected 3 images (1 resized), got %d (%d)", status.TotalImages, status.ResizedImages)
	}
	if status.SuccessRate() != 50.0 {
		t.Errorf("Expected success rate 50%%, got %f", status.SuccessRate())
	}
}
