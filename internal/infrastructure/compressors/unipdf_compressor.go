package compressors

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/unidoc/unipdf/v3/common"
	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/core"
	"github.com/unidoc/unipdf/v3/model"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/domain/repositories"
)

// UniPDFCompressor реализация компрессора с использованием UniPDF
type UniPDFCompressor struct {
	normalizer repositories.ImageNormalizer
	logger     repositories.Logger

	licenseOnce sync.Once
	licenseErr  error
}

// NewUniPDFCompressor создает новый UniPDF компрессор
func NewUniPDFCompressor(normalizer repositories.ImageNormalizer, logger repositories.Logger) *UniPDFCompressor {
	common.SetLogger(common.NewConsoleLogger(common.LogLevelError))

	return &UniPDFCompressor{
		normalizer: normalizer,
		logger:     logger,
	}
}

// Compress перекодирует изображения документа используя UniPDF
func (u *UniPDFCompressor) Compress(r io.ReadSeeker, w io.Writer, config *entities.CompressionConfig) (*entities.CompressionResult, error) {
	// Проверяем лицензионный ключ из конфигурации или переменной окружения
	licenseKey := config.UniPDFLicenseKey
	if licenseKey == "" {
		licenseKey = os.Getenv("UNIDOC_LICENSE_API_KEY")
	}
	if licenseKey == "" {
		return nil, fmt.Errorf("%w: установите его в конфигурации или в переменной UNIDOC_LICENSE_API_KEY, либо используйте алгоритм 'pdfcpu'", entities.ErrLicenseRequired)
	}

	u.licenseOnce.Do(func() {
		u.logInfo("🔑 Устанавливаем лицензионный ключ UniPDF...")
		u.licenseErr = license.SetMeteredKey(licenseKey)
	})
	if u.licenseErr != nil {
		return nil, fmt.Errorf("ошибка установки лицензии UniPDF: %w", u.licenseErr)
	}

	pdfReader, err := model.NewPdfReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка открытия PDF: %v", entities.ErrInvalidFileFormat, err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения количества страниц: %w", err)
	}

	u.logDebug("Загружен PDF документ, страниц: %d", numPages)

	result := &entities.CompressionResult{Pages: numPages}
	pdfWriter := model.NewPdfWriter()

	// Общие для нескольких страниц изображения перекодируются один раз
	replaced := make(map[*core.PdfObjectStream]*model.XObjectImage)

	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("ошибка получения страницы %d: %w", i, err)
		}

		if err := u.processPage(page, i, config, result, replaced); err != nil {
			return nil, err
		}

		if err := pdfWriter.AddPage(page); err != nil {
			return nil, fmt.Errorf("ошибка добавления страницы %d: %w", i, err)
		}
	}

	if err := pdfWriter.Write(w); err != nil {
		return nil, fmt.Errorf("ошибка записи PDF: %w", err)
	}

	result.Success = true
	return result, nil
}

// processPage обходит XObject ресурсы страницы
func (u *UniPDFCompressor) processPage(
	page *model.PdfPage,
	pageNr int,
	config *entities.CompressionConfig,
	result *entities.CompressionResult,
	replaced map[*core.PdfObjectStream]*model.XObjectImage,
) error {
	res := page.Resources
	if res == nil || res.XObject == nil {
		return nil
	}

	dict, ok := core.GetDict(res.XObject)
	if !ok {
		return nil
	}

	names := dict.Keys()
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		stream, xtype := res.GetXObjectByName(name)

		var kind entities.XObjectKind
		switch xtype {
		case model.XObjectTypeImage:
			kind = entities.XObjectImage
		case model.XObjectTypeForm:
			kind = entities.XObjectForm
		default:
			kind = entities.XObjectUnsupported
		}

		switch kind {
		case entities.XObjectImage:
			if ximg, done := replaced[stream]; done {
				if err := res.SetXObjectImageByName(name, ximg); err != nil {
					return fmt.Errorf("ошибка замены изображения %s на странице %d: %w", name, pageNr, err)
				}
				continue
			}

			u.logInfo("Сжатие изображения %s (страница %d)", name, pageNr)
			ximg, normalized, err := u.normalizeImage(res, name, config)
			if err != nil {
				return fmt.Errorf("ошибка обработки изображения %s на странице %d: %w", name, pageNr, err)
			}
			if err := res.SetXObjectImageByName(name, ximg); err != nil {
				return fmt.Errorf("ошибка замены изображения %s на странице %d: %w", name, pageNr, err)
			}
			replaced[stream] = ximg
			result.RecordImage(normalized)
		case entities.XObjectForm:
			u.logDebug("Объект формы %s (страница %d) оставлен без изменений", name, pageNr)
			result.RecordSkipped(kind)
		default:
			u.logWarning("Неподдерживаемый объект %s (страница %d) пропущен", name, pageNr)
			result.RecordSkipped(kind)
		}
	}

	return nil
}

// normalizeImage декодирует изображение и собирает новый XObject с JPEG потоком
func (u *UniPDFCompressor) normalizeImage(
	res *model.PdfPageResources,
	name core.PdfObjectName,
	config *entities.CompressionConfig,
) (*model.XObjectImage, *entities.NormalizedImage, error) {
	source, err := res.GetXObjectImageByName(name)
	if err != nil {
		return nil, nil, err
	}
	if source == nil {
		return nil, nil, entities.ErrUnsupportedImage
	}

	img, err := source.ToImage()
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось декодировать изображение: %w", err)
	}

	goImg, err := img.ToGoImage()
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось преобразовать изображение: %w", err)
	}

	normalized, err := u.normalizer.Normalize(goImg, config)
	if err != nil {
		return nil, nil, err
	}

	return newJPEGXObject(normalized, config.JPEGQuality), normalized, nil
}

// newJPEGXObject оборачивает готовые JPEG байты в XObject без повторного кодирования
func newJPEGXObject(img *entities.NormalizedImage, quality int) *model.XObjectImage {
	width := int64(img.Width)
	height := int64(img.Height)
	bpc := int64(8)

	encoder := core.NewDCTEncoder()
	encoder.Width = img.Width
	encoder.Height = img.Height
	encoder.ColorComponents = 3
	encoder.BitsPerComponent = 8
	encoder.Quality = quality

	ximg := model.NewXObjectImage()
	ximg.Width = &width
	ximg.Height = &height
	ximg.BitsPerComponent = &bpc
	ximg.ColorSpace = model.NewPdfColorspaceDeviceRGB()
	ximg.Filter = encoder
	ximg.Stream = img.Data

	return ximg
}

// Методы для логирования
func (u *UniPDFCompressor) logInfo(format string, args ...interface{}) {
	if u.logger != nil {
		u.logger.Info(format, args...)
	}
}

func (u *UniPDFCompressor) logDebug(format string, args ...interface{}) {
	if u.logger != nil {
		u.logger.Debug(format, args...)
	}
}

func (u *UniPDFCompressor) logWarning(format string, args ...interface{}) {
	if u.logger != nil {
		u.logger.Warning(format, args...)
	}
}
