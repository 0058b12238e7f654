package sprite

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// Badge рисует QR-код со счётчиком кадра, так что каждый кадр кодирует свой номер.
type Badge struct {
	Text string
	Side int

	tick int
}

func NewBadge(text string, side int) *Badge {
	return &Badge{Text: text, Side: side}
}

func (b *Badge) Name() string {
	return "badge"
}

func (b *Badge) Size() (float64, float64) {
	return float64(b.Side), float64(b.Side)
}

// Payload — содержимое QR следующего кадра.
func (b *Badge) Payload() string {
	return fmt.Sprintf("%s#%d", b.Text, b.tick)
}

func (b *Badge) Render(dst draw.Image, origin image.Point) error {
	q, err := qrcode.New(b.Payload(), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("badge frame %d: %w", b.tick, err)
	}
	q.DisableBorder = true

	// Символу может не хватить модулей, и картинка выйдет больше запрошенной:
	// вписываем её в заявленный квадрат.
	src := q.Image(b.Side)
	r := image.Rect(0, 0, b.Side, b.Side).Add(origin)
	draw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), draw.Over, nil)
	b.tick++
	return nil
}
