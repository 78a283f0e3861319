// Package testutil собирает минимальные PDF документы для тестов
// и проверяет изображения в результирующих документах.
package testutil

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sort"
	"strings"
)

// Kind тип XObject в тестовом документе
type Kind int

const (
	KindJPEG Kind = iota
	KindTransparent
	KindForm
)

// XObject описывает объект ресурсов страницы.
// Один и тот же указатель на нескольких страницах дает общий объект.
type XObject struct {
	Kind   Kind
	Width  int
	Height int

	objNr int
}

// JPEGImage изображение DeviceRGB с фильтром DCTDecode
func JPEGImage(width, height int) *XObject {
	return &XObject{Kind: KindJPEG, Width: width, Height: height}
}

// TransparentImage красное изображение FlateDecode с маской SMask:
// левая половина непрозрачна, правая полностью прозрачна
func TransparentImage(width, height int) *XObject {
	return &XObject{Kind: KindTransparent, Width: width, Height: height}
}

// FormXObject объект формы с простым векторным содержимым
func FormXObject() *XObject {
	return &XObject{Kind: KindForm, Width: 100, Height: 100}
}

// Page ресурсы XObject одной страницы по имени
type Page map[string]*XObject

type pdfBuilder struct {
	buf     bytes.Buffer
	offsets map[int]int
	next    int
}

func (b *pdfBuilder) reserve() int {
	b.next++
	return b.next
}

func (b *pdfBuilder) object(nr int, body string) {
	b.offsets[nr] = b.buf.Len()
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", nr, body)
}

func (b *pdfBuilder) stream(nr int, dict string, data []byte) {
	b.offsets[nr] = b.buf.Len()
	fmt.Fprintf(&b.buf, "%d 0 obj\n<< %s /Length %d >>\nstream\n", nr, dict, len(data))
	b.buf.Write(data)
	b.buf.WriteString("\nendstream\nendobj\n")
}

// MinDocumentSize минимальный размер документа, который читает pdfcpu:
// поиск последней секции xref начинается за 512 байт до конца файла
const MinDocumentSize = 512

// BuildPDF собирает документ из страниц 612x792.
// Заголовок дополняется строкой комментария, чтобы документ был не короче MinDocumentSize байт.
func BuildPDF(pages ...Page) []byte {
	b := &pdfBuilder{offsets: make(map[int]int)}
	b.buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	b.buf.WriteString("%" + strings.Repeat(" ", MinDocumentSize) + "\n")

	catalogNr := b.reserve()
	pagesNr := b.reserve()

	written := make(map[*XObject]bool)
	var kids []string

	for _, page := range pages {
		pageNr := b.reserve()
		contentsNr := b.reserve()
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNr))

		names := make([]string, 0, len(page))
		for name := range page {
			names = append(names, name)
		}
		sort.Strings(names)

		var xobjects, content bytes.Buffer
		for _, name := range names {
			xobj := page[name]
			if !written[xobj] {
				b.writeXObject(xobj)
				written[xobj] = true
			}
			fmt.Fprintf(&xobjects, "/%s %d 0 R ", name, xobj.objNr)
			fmt.Fprintf(&content, "q 200 0 0 100 50 600 cm /%s Do Q\n", name)
		}

		b.object(pageNr, fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << /XObject << %s>> >> /Contents %d 0 R >>",
			pagesNr, xobjects.String(), contentsNr))
		b.stream(contentsNr, "", content.Bytes())
	}

	b.object(pagesNr, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids)))
	b.object(catalogNr, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesNr))

	xrefOffset := b.buf.Len()
	size := b.next + 1
	fmt.Fprintf(&b.buf, "xref\n0 %d\n", size)
	b.buf.WriteString("0000000000 65535 f \n")
	for nr := 1; nr < size; nr++ {
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", b.offsets[nr])
	}
	fmt.Fprintf(&b.buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, catalogNr, xrefOffset)

	return b.buf.Bytes()
}

func (b *pdfBuilder) writeXObject(x *XObject) {
	x.objNr = b.reserve()

	switch x.Kind {
	case KindJPEG:
		b.stream(x.objNr, fmt.Sprintf(
			"/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode",
			x.Width, x.Height), GradientJPEG(x.Width, x.Height, 95))
	case KindTransparent:
		maskNr := b.reserve()
		rgb := make([]byte, 0, x.Width*x.Height*3)
		alpha := make([]byte, 0, x.Width*x.Height)
		for y := 0; y < x.Height; y++ {
			for col := 0; col < x.Width; col++ {
				rgb = append(rgb, 255, 0, 0)
				if col < x.Width/2 {
					alpha = append(alpha, 255)
				} else {
					alpha = append(alpha, 0)
				}
			}
		}
		b.stream(x.objNr, fmt.Sprintf(
			"/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /FlateDecode /SMask %d 0 R",
			x.Width, x.Height, maskNr), deflate(rgb))
		b.stream(maskNr, fmt.Sprintf(
			"/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceGray /BitsPerComponent 8 /Filter /FlateDecode",
			x.Width, x.Height), deflate(alpha))
	case KindForm:
		b.stream(x.objNr, fmt.Sprintf(
			"/Type /XObject /Subtype /Form /BBox [0 0 %d %d]", x.Width, x.Height),
			[]byte("0 0 1 rg 0 0 50 50 re f"))
	}
}

// GradientJPEG кодирует цветной градиент заданного размера
func GradientJPEG(width, height, quality int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func deflate(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes()
}
