package sprite

import (
	"image"
	"math"
	"testing"
)

func TestPingPong(t *testing.T) {
	tests := []struct {
		phase float64
		want  float64
	}{
		{0, 0},
		{0.5, 1},
		{1, 0},
		{0.25, 0.5},
		{1.75, 0.5},
	}

	for _, tt := range tests {
		if got := pingPong(tt.phase); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("pingPong(%.2f) = %f, want %f", tt.phase, got, tt.want)
		}
	}
}

func TestSpinnerSizeBreathes(t *testing.T) {
	s := NewSpinner(40, 40)
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))

	minW, maxW := math.Inf(1), 0.0
	for i := 0; i < 16; i++ {
		w, h := s.Size()
		if w != h {
			t.Fatalf("Square spinner reported %vx%v", w, h)
		}
		minW, maxW = math.Min(minW, w), math.Max(maxW, w)
		if err := s.Render(dst, image.Point{}); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}

	if maxW != 40 || minW != 30 {
		t.Errorf("Expected sizes between 30 and 40, got %v..%v", minW, maxW)
	}

	var painted bool
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			painted = true
			break
		}
	}
	if !painted {
		t.Error("Spinner drew nothing")
	}
}

func TestBadgeEncodesTick(t *testing.T) {
	b := NewBadge("spritetrace", 48)
	dst := image.NewRGBA(image.Rect(0, 0, 48, 48))

	if b.Payload() != "spritetrace#0" {
		t.Errorf("Unexpected payload %s", b.Payload())
	}
	if err := b.Render(dst, image.Point{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b.Payload() != "spritetrace#1" {
		t.Errorf("Tick did not advance: %s", b.Payload())
	}
	if w, h := b.Size(); w != 48 || h != 48 {
		t.Errorf("Unexpected size %vx%v", w, h)
	}
}
