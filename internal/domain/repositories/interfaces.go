package repositories

import (
	"image"
	"io"

	"pdfcompressor/internal/domain/entities"
)

// PDFCompressor интерфейс для сжатия PDF документов
type PDFCompressor interface {
	Compress(r io.ReadSeeker, w io.Writer, config *entities.CompressionConfig) (*entities.CompressionResult, error)
}

// ImageNormalizer интерфейс для уменьшения и перекодирования изображений
type ImageNormalizer interface {
	Normalize(src image.Image, config *entities.CompressionConfig) (*entities.NormalizedImage, error)
	NormalizeEncoded(r io.Reader, config *entities.CompressionConfig) (*entities.NormalizedImage, error)
}

// FileRepository интерфейс для работы с файловой системой
type FileRepository interface {
	GetFileInfo(path string) (*entities.PDFDocument, error)
	FileExists(path string) bool
	CreateDirectory(path string) error
	ReadTextFile(path string) (string, error)
}

// ConfigRepository интерфейс для работы с конфигурацией
type ConfigRepository interface {
	GetCompressionConfig(app *entities.AppCompressionConfig) (*entities.CompressionConfig, error)
	ValidateConfig(config *entities.CompressionConfig) error
}
