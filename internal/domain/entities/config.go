package entities

import "image/jpeg"

// Фиксированные параметры нормализации изображений
const (
	MaxImageWidth  = 1000
	MaxImageHeight = 1000

	// Качество кодека по умолчанию, зафиксировано явно
	DefaultJPEGQuality = jpeg.DefaultQuality
)

// CompressionConfig представляет конфигурацию сжатия
type CompressionConfig struct {
	Algorithm        string // Движок обработки PDF (pdfcpu, unipdf)
	MaxWidth         int    // Максимальная ширина изображения
	MaxHeight        int    // Максимальная высота изображения
	JPEGQuality      int    // Качество JPEG при перекодировании
	UniPDFLicenseKey string // Лицензионный ключ для UniPDF
}

// NewCompressionConfig создает конфигурацию сжатия для указанного движка
func NewCompressionConfig(algorithm string) *CompressionConfig {
	return NewCompressionConfigWithLicense(algorithm, "")
}

// NewCompressionConfigWithLicense создает конфигурацию сжатия с лицензионным ключом
func NewCompressionConfigWithLicense(algorithm, licenseKey string) *CompressionConfig {
	if algorithm == "" {
		algorithm = AlgorithmPDFCPU
	}

	return &CompressionConfig{
		Algorithm:        algorithm,
		MaxWidth:         MaxImageWidth,
		MaxHeight:        MaxImageHeight,
		JPEGQuality:      DefaultJPEGQuality,
		UniPDFLicenseKey: licenseKey,
	}
}

// Validate проверяет корректность конфигурации
func (c *CompressionConfig) Validate() error {
	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return ErrInvalidImageDimensions
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return ErrInvalidImageQuality
	}
	if c.Algorithm != AlgorithmPDFCPU && c.Algorithm != AlgorithmUniPDF {
		return ErrUnknownAlgorithm
	}
	return nil
}
