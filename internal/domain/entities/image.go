package entities

// XObjectKind вид объекта в таблице ресурсов страницы
type XObjectKind int

const (
	XObjectUnsupported XObjectKind = iota
	XObjectImage
	XObjectForm
)

// ClassifyXObject определяет вид объекта по значению /Subtype
func ClassifyXObject(subtype string) XObjectKind {
	switch subtype {
	case "Image":
		return XObjectImage
	case "Form":
		return XObjectForm
	default:
		return XObjectUnsupported
	}
}

func (k XObjectKind) String() string {
	switch k {
	case XObjectImage:
		return "Image"
	case XObjectForm:
		return "Form"
	default:
		return "Unsupported"
	}
}

// ResizeDecision решение об изменении размера изображения
type ResizeDecision struct {
	SourceWidth  int
	SourceHeight int
	TargetWidth  int
	TargetHeight int
	Resize       bool
}

// DecideResize вычисляет целевые размеры с сохранением пропорций.
// Альбомная ориентация (width > height) ограничивается по ширине,
// портретная и квадратная по высоте. Деление целочисленное.
func DecideResize(width, height, maxWidth, maxHeight int) (ResizeDecision, error) {
	if width <= 0 || height <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return ResizeDecision{}, ErrInvalidImageDimensions
	}

	decision := ResizeDecision{
		SourceWidth:  width,
		SourceHeight: height,
		TargetWidth:  width,
		TargetHeight: height,
	}

	if width <= maxWidth && height <= maxHeight {
		return decision, nil
	}

	decision.Resize = true
	if width > height {
		decision.TargetWidth = maxWidth
		decision.TargetHeight = maxWidth * height / width
	} else {
		decision.TargetHeight = maxHeight
		decision.TargetWidth = maxHeight * width / height
	}

	// Экстремальные пропорции не должны давать нулевую сторону
	if decision.TargetWidth < 1 {
		decision.TargetWidth = 1
	}
	if decision.TargetHeight < 1 {
		decision.TargetHeight = 1
	}

	return decision, nil
}

// NormalizedImage перекодированное изображение
type NormalizedImage struct {
	Data           []byte // JPEG
	Width          int
	Height         int
	OriginalWidth  int
	OriginalHeight int
	Resized        bool
}
