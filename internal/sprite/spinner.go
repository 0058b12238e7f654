// Package sprite — процедурные сущности: каждый Render рисует следующий шаг
// анимации с нуля.
package sprite

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Spinner — индикатор загрузки из векторных дуг. Он «дышит» между MinScale и 1
// базового размера, поэтому размер меняется каждый кадр.
type Spinner struct {
	Width, Height int
	Color         color.Color
	MinScale      float64
	// Speed — шаг анимации за кадр, в оборотах.
	Speed float64

	tick int
}

// NewSpinner создаёт спиннер с базовым размером width x height.
func NewSpinner(width, height int) *Spinner {
	return &Spinner{
		Width:    width,
		Height:   height,
		Color:    color.RGBA{R: 0x2b, G: 0x8a, B: 0xe2, A: 0xff},
		MinScale: 0.75,
		Speed:    1.0 / 16,
	}
}

func (s *Spinner) phase() float64 {
	return float64(s.tick) * s.Speed
}

func (s *Spinner) scale() float64 {
	return lerp(s.MinScale, 1, pingPong(s.phase()))
}

// Size — размер спиннера в следующем кадре.
func (s *Spinner) Size() (float64, float64) {
	k := s.scale()
	return math.Round(float64(s.Width) * k), math.Round(float64(s.Height) * k)
}

// Render рисует текущий кадр в origin и двигает анимацию.
func (s *Spinner) Render(dst draw.Image, origin image.Point) error {
	fw, fh := s.Size()
	w, h := int(fw), int(fh)
	if w <= 0 || h <= 0 {
		s.tick++
		return nil
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()

	cx, cy := float64(w)/2, float64(h)/2
	r := math.Min(cx, cy) * 0.8
	lineWidth := math.Max(r*0.18, 1)

	dc.SetColor(s.Color)
	dc.SetLineWidth(lineWidth)
	dc.SetLineCap(gg.LineCapRound)

	start := s.phase() * 2 * math.Pi
	sweep := lerp(math.Pi/3, 1.5*math.Pi, pingPong(s.phase()*0.5))
	dc.DrawArc(cx, cy, r, start, start+sweep)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("spinner stroke: %w", err)
	}

	dc.DrawCircle(cx, cy, lineWidth)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("spinner fill: %w", err)
	}

	draw.Draw(dst, image.Rect(0, 0, w, h).Add(origin), dc.Image(), image.Point{}, draw.Over)
	s.tick++
	return nil
}
