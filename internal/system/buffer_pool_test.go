package system

import (
	"image/color"
	"testing"
)

func TestImagePoolReturnsClearedBuffers(t *testing.T) {
	p := NewImagePool()

	img := p.Get(4, 3)
	if img.Rect.Dx() != 4 || img.Rect.Dy() != 3 {
		t.Fatalf("Expected 4x3 buffer, got %v", img.Rect)
	}
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	p.Put(img)

	for i := 0; i < 4; i++ {
		again := p.Get(4, 3)
		for j, v := range again.Pix {
			if v != 0 {
				t.Fatalf("Pixel byte %d not cleared: %d", j, v)
			}
		}
	}
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"deck.PDF", true},
		{"deck.pdf", true},
		{"frame.png", false},
		{"pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasExtension(tt.name, PDFExtensions); got != tt.want {
				t.Errorf("HasExtension(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
