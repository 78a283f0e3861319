package entities

import (
	"time"
)

// PDFDocument представляет PDF документ на диске
type PDFDocument struct {
	Path         string
	Size         int64
	ModifiedTime time.Time
}

// Upload представляет загруженный через HTTP документ
type Upload struct {
	FileName string
	Data     []byte
}

// IsEmpty проверяет, что загрузка отсутствует или пуста
func (u *Upload) IsEmpty() bool {
	return u == nil || len(u.Data) == 0
}

// CompressionResult представляет результат сжатия
type CompressionResult struct {
	DocumentID       string
	CurrentFile      string
	OriginalSize     int64
	CompressedSize   int64
	CompressionRatio float64
	SavedSpace       int64
	Pages            int
	ImagesFound      int
	ImagesResized    int
	FormsSkipped     int
	OtherSkipped     int
	Success          bool
	Error            error
}

// CompressionOutput содержит результат и байты оптимизированного документа
type CompressionOutput struct {
	Result *CompressionResult
	Data   []byte
}

// CalculateCompressionRatio вычисляет коэффициент сжатия
func (cr *CompressionResult) CalculateCompressionRatio() {
	if cr.OriginalSize > 0 {
		cr.CompressionRatio = ((float64(cr.OriginalSize) - float64(cr.CompressedSize)) / float64(cr.OriginalSize)) * 100
		cr.SavedSpace = cr.OriginalSize - cr.CompressedSize
	}
}

// IsEffective проверяет, было ли сжатие эффективным
func (cr *CompressionResult) IsEffective() bool {
	return cr.Success && cr.CompressionRatio > 0
}

// RecordImage учитывает обработанное изображение
func (cr *CompressionResult) RecordImage(img *NormalizedImage) {
	cr.ImagesFound++
	if img.Resized {
		cr.ImagesResized++
	}
}

// RecordSkipped учитывает пропущенный объект ресурса
func (cr *CompressionResult) RecordSkipped(kind XObjectKind) {
	switch kind {
	case XObjectForm:
		cr.FormsSkipped++
	default:
		cr.OtherSkipped++
	}
}
