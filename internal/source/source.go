package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Source — постраничный источник кадров для Pages. Размеры страниц измеряются
// один раз при открытии: Pages спрашивает их на каждом кадре.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int) (image.Image, error)
	Close() error
}

// pageSizes — измеренные размеры страниц в пикселях.
type pageSizes []image.Point

func (s pageSizes) at(index int) (float64, float64, error) {
	if index < 0 || index >= len(s) {
		return 0, 0, fmt.Errorf("страница %d вне диапазона 0..%d", index, len(s)-1)
	}
	return float64(s[index].X), float64(s[index].Y), nil
}

// FitzPDFSource растеризует страницы PDF с фиксированным DPI.
type FitzPDFSource struct {
	doc   *fitz.Document
	dpi   int
	sizes pageSizes
}

func NewFitzPDFSource(path string, dpi int) (*FitzPDFSource, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("некорректный DPI: %d", dpi)
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}

	// Bound отдаёт размер в пунктах (72 на дюйм), пересчитываем в пиксели при dpi.
	scale := float64(dpi) / 72
	sizes := make(pageSizes, doc.NumPage())
	for i := range sizes {
		rect, err := doc.Bound(i)
		if err != nil {
			doc.Close()
			return nil, fmt.Errorf("страница %d: %w", i+1, err)
		}
		sizes[i] = image.Pt(int(float64(rect.Dx())*scale+0.5), int(float64(rect.Dy())*scale+0.5))
	}
	return &FitzPDFSource{doc: doc, dpi: dpi, sizes: sizes}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return len(f.sizes)
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	return f.sizes.at(index)
}

// RenderPage рендерит страницу в растр. Отрисовка идёт из одного цикла,
// поэтому документ открывается один раз.
func (f *FitzPDFSource) RenderPage(index int) (image.Image, error) {
	return f.doc.ImageDPI(index, float64(f.dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
