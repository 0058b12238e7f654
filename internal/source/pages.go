package source

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Pages проигрывает Source как рисуемую сущность: каждый Render рисует
// следующую страницу, вписанную в рамку с сохранением пропорций. Поэтому
// страницы разной формы отдают разные размеры.
type Pages struct {
	src   Source
	name  string
	box   image.Point
	index int
}

// NewPages оборачивает src. name становится префиксом файлов экспорта.
func NewPages(src Source, name string, boxWidth, boxHeight int) *Pages {
	return &Pages{
		src:  src,
		name: name,
		box:  image.Pt(boxWidth, boxHeight),
	}
}

func (p *Pages) Name() string {
	return p.name
}

// Index — страница (с нуля), которую нарисует следующий Render.
func (p *Pages) Index() int {
	return p.index
}

// Size возвращает вписанный размер следующей страницы. Если размер неизвестен,
// отдаётся вся рамка.
func (p *Pages) Size() (float64, float64) {
	pw, ph, err := p.src.GetPageDimensions(p.index)
	if err != nil || pw <= 0 || ph <= 0 {
		return float64(p.box.X), float64(p.box.Y)
	}
	fit := FitSize(image.Pt(int(math.Round(pw)), int(math.Round(ph))), p.box)
	return float64(fit.X), float64(fit.Y)
}

// Render рисует текущую страницу в origin и переходит к следующей, после
// последней начиная сначала.
func (p *Pages) Render(dst draw.Image, origin image.Point) error {
	count := p.src.PageCount()
	if count == 0 {
		return fmt.Errorf("%s: source has no pages", p.name)
	}

	img, err := p.src.RenderPage(p.index)
	if err != nil {
		return fmt.Errorf("%s: page %d: %w", p.name, p.index+1, err)
	}

	// Размер берём из Size, а не из растра: кадр должен совпасть с заявленным.
	w, h := p.Size()
	r := image.Rect(0, 0, int(w), int(h)).Add(origin)
	draw.CatmullRom.Scale(dst, r, img, img.Bounds(), draw.Over, nil)

	p.index = (p.index + 1) % count
	return nil
}

// FitSize масштабирует size так, чтобы он вписался в box с сохранением
// пропорций. Ни одна сторона не меньше пикселя.
func FitSize(size, box image.Point) image.Point {
	if size.X <= 0 || size.Y <= 0 {
		return box
	}
	scale := math.Min(float64(box.X)/float64(size.X), float64(box.Y)/float64(size.Y))
	w := int(math.Floor(float64(size.X) * scale))
	h := int(math.Floor(float64(size.Y) * scale))
	return image.Pt(max(w, 1), max(h, 1))
}
