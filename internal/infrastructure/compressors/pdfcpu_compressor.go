package compressors

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/domain/repositories"
)

// PDFCPUCompressor реализация компрессора с использованием PDFCPU
type PDFCPUCompressor struct {
	normalizer repositories.ImageNormalizer
	logger     repositories.Logger
}

// NewPDFCPUCompressor создает новый PDFCPU компрессор
func NewPDFCPUCompressor(normalizer repositories.ImageNormalizer, logger repositories.Logger) *PDFCPUCompressor {
	// Сервер не должен создавать каталог конфигурации pdfcpu в домашней директории
	api.DisableConfigDir()

	return &PDFCPUCompressor{
		normalizer: normalizer,
		logger:     logger,
	}
}

// Compress перекодирует изображения документа и записывает результат в w
func (p *PDFCPUCompressor) Compress(r io.ReadSeeker, w io.Writer, config *entities.CompressionConfig) (*entities.CompressionResult, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(r, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка чтения PDF: %v", entities.ErrInvalidFileFormat, err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: ошибка валидации PDF: %v", entities.ErrInvalidFileFormat, err)
	}

	p.logDebug("Загружен PDF документ, страниц: %d", ctx.PageCount)

	result := &entities.CompressionResult{Pages: ctx.PageCount}

	// Один объект изображения может использоваться на нескольких страницах
	processed := make(map[int]bool)

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if err := p.processPage(ctx, pageNr, config, result, processed); err != nil {
			return nil, err
		}
	}

	if err := api.WriteContext(ctx, w); err != nil {
		return nil, fmt.Errorf("ошибка записи PDF: %w", err)
	}

	result.Success = true
	return result, nil
}

// processPage обходит таблицу XObject ресурсов страницы
func (p *PDFCPUCompressor) processPage(
	ctx *model.Context,
	pageNr int,
	config *entities.CompressionConfig,
	result *entities.CompressionResult,
	processed map[int]bool,
) error {
	pageDict, _, inhPAttrs, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return fmt.Errorf("ошибка получения страницы %d: %w", pageNr, err)
	}
	if pageDict == nil {
		return nil
	}

	resources, err := p.pageResources(ctx, pageDict, inhPAttrs)
	if err != nil {
		return fmt.Errorf("ошибка чтения ресурсов страницы %d: %w", pageNr, err)
	}
	if resources == nil {
		return nil
	}

	obj, found := resources.Find("XObject")
	if !found {
		return nil
	}

	xobjects, err := ctx.DereferenceDict(obj)
	if err != nil {
		return fmt.Errorf("ошибка чтения XObject страницы %d: %w", pageNr, err)
	}

	names := make([]string, 0, len(xobjects))
	for name := range xobjects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		indRef, ok := xobjects[name].(types.IndirectRef)
		if !ok {
			result.RecordSkipped(entities.XObjectUnsupported)
			continue
		}

		objNr := indRef.ObjectNumber.Value()
		if processed[objNr] {
			continue
		}

		sd, _, err := ctx.DereferenceStreamDict(indRef)
		if err != nil {
			return fmt.Errorf("ошибка чтения объекта %s на странице %d: %w", name, pageNr, err)
		}
		if sd == nil {
			result.RecordSkipped(entities.XObjectUnsupported)
			continue
		}

		kind := entities.XObjectUnsupported
		if subtype := sd.Subtype(); subtype != nil {
			kind = entities.ClassifyXObject(*subtype)
		}

		switch kind {
		case entities.XObjectImage:
			p.logInfo("Сжатие изображения %s (страница %d)", name, pageNr)
			normalized, err := p.replaceImage(ctx, sd, indRef, name, config)
			if err != nil {
				return fmt.Errorf("ошибка обработки изображения %s на странице %d: %w", name, pageNr, err)
			}
			processed[objNr] = true
			result.RecordImage(normalized)
			p.logDebug("    └─ %dx%d → %dx%d", normalized.OriginalWidth, normalized.OriginalHeight, normalized.Width, normalized.Height)
		case entities.XObjectForm:
			p.logDebug("Объект формы %s (страница %d) оставлен без изменений", name, pageNr)
			result.RecordSkipped(kind)
		default:
			p.logWarning("Неподдерживаемый объект %s (страница %d) пропущен", name, pageNr)
			result.RecordSkipped(kind)
		}
	}

	return nil
}

// pageResources возвращает словарь ресурсов страницы с учетом наследования
func (p *PDFCPUCompressor) pageResources(ctx *model.Context, pageDict types.Dict, inhPAttrs *model.InheritedPageAttrs) (types.Dict, error) {
	if obj, found := pageDict.Find("Resources"); found {
		return ctx.DereferenceDict(obj)
	}
	if inhPAttrs != nil {
		return inhPAttrs.Resources, nil
	}
	return nil, nil
}

// replaceImage заменяет поток изображения на перекодированный JPEG под тем же номером объекта
func (p *PDFCPUCompressor) replaceImage(
	ctx *model.Context,
	sd *types.StreamDict,
	indRef types.IndirectRef,
	name string,
	config *entities.CompressionConfig,
) (*entities.NormalizedImage, error) {
	objNr := indRef.ObjectNumber.Value()

	img, err := pdfcpu.ExtractImage(ctx, sd, false, name, objNr, false)
	if err != nil {
		return nil, fmt.Errorf("не удалось извлечь изображение: %w", err)
	}
	if img == nil {
		return nil, entities.ErrUnsupportedImage
	}

	normalized, err := p.normalizer.NormalizeEncoded(img, config)
	if err != nil {
		return nil, err
	}

	newSD, _, _, err := model.CreateImageStreamDict(ctx.XRefTable, bytes.NewReader(normalized.Data), false, false)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать поток изображения: %w", err)
	}

	entry, found := ctx.FindTableEntryForIndRef(&indRef)
	if !found {
		return nil, fmt.Errorf("объект %d не найден в таблице xref", objNr)
	}
	entry.Object = *newSD

	return normalized, nil
}

// Методы для логирования
func (p *PDFCPUCompressor) logInfo(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(format, args...)
	}
}

func (p *PDFCPUCompressor) logDebug(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(format, args...)
	}
}

func (p *PDFCPUCompressor) logWarning(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warning(format, args...)
	}
}
