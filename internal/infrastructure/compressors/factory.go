package compressors

import (
	"fmt"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/domain/repositories"
)

// NewCompressor выбирает реализацию компрессора по имени алгоритма
func NewCompressor(algorithm string, normalizer repositories.ImageNormalizer, logger repositories.Logger) (repositories.PDFCompressor, error) {
	switch algorithm {
	case entities.AlgorithmUniPDF:
		return NewUniPDFCompressor(normalizer, logger), nil
	case entities.AlgorithmPDFCPU, "":
		return NewPDFCPUCompressor(normalizer, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", entities.ErrUnknownAlgorithm, algorithm)
	}
}
