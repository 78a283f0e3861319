package compressors

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"pdfcompressor/internal/domain/entities"
)

// DefaultImageNormalizer уменьшает изображения до допустимых размеров
// и перекодирует их в JPEG без альфа-канала
type DefaultImageNormalizer struct{}

// NewImageNormalizer создает новый нормализатор изображений
func NewImageNormalizer() *DefaultImageNormalizer {
	return &DefaultImageNormalizer{}
}

// NormalizeEncoded декодирует изображение (JPEG, PNG, TIFF) и нормализует его
func (n *DefaultImageNormalizer) NormalizeEncoded(r io.Reader, config *entities.CompressionConfig) (*entities.NormalizedImage, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("не удалось декодировать изображение: %w", err)
	}

	normalized, err := n.Normalize(img, config)
	if err != nil {
		return nil, fmt.Errorf("ошибка обработки изображения %s: %w", format, err)
	}
	return normalized, nil
}

// Normalize уменьшает изображение при превышении лимитов и всегда перекодирует его в JPEG
func (n *DefaultImageNormalizer) Normalize(src image.Image, config *entities.CompressionConfig) (*entities.NormalizedImage, error) {
	if src == nil {
		return nil, entities.ErrUnsupportedImage
	}

	bounds := src.Bounds()
	decision, err := entities.DecideResize(bounds.Dx(), bounds.Dy(), config.MaxWidth, config.MaxHeight)
	if err != nil {
		return nil, err
	}

	finalImg := src
	if decision.Resize {
		finalImg = resize.Resize(uint(decision.TargetWidth), uint(decision.TargetHeight), src, resize.Bilinear)
	}

	// Новый буфер создается всегда, даже если у источника нет альфа-канала
	rgb := flattenToRGB(finalImg)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: config.JPEGQuality}); err != nil {
		return nil, fmt.Errorf("не удалось закодировать JPEG: %w", err)
	}

	return &entities.NormalizedImage{
		Data:           buf.Bytes(),
		Width:          rgb.Bounds().Dx(),
		Height:         rgb.Bounds().Dy(),
		OriginalWidth:  decision.SourceWidth,
		OriginalHeight: decision.SourceHeight,
		Resized:        decision.Resize,
	}, nil
}

// flattenToRGB рисует изображение поверх непрозрачного черного буфера,
// прозрачность при этом теряется
func flattenToRGB(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	return dst
}
