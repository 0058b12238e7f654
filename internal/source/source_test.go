package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 200, 255
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		size, box, want image.Point
	}{
		{image.Pt(100, 50), image.Pt(40, 40), image.Pt(40, 20)},
		{image.Pt(50, 100), image.Pt(40, 40), image.Pt(20, 40)},
		{image.Pt(10, 10), image.Pt(40, 20), image.Pt(20, 20)},
		{image.Pt(1000, 1), image.Pt(10, 10), image.Pt(10, 1)},
		{image.Pt(0, 5), image.Pt(8, 8), image.Pt(8, 8)},
	}

	for _, tt := range tests {
		if got := FitSize(tt.size, tt.box); got != tt.want {
			t.Errorf("FitSize(%v, %v) = %v, want %v", tt.size, tt.box, got, tt.want)
		}
	}
}

func TestPagesPlaysImagesInOrder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 100, 50)
	writePNG(t, filepath.Join(dir, "b.png"), 50, 100)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644)

	src, err := NewImageSource(dir)
	if err != nil {
		t.Fatalf("NewImageSource failed: %v", err)
	}
	if src.PageCount() != 2 {
		t.Fatalf("Expected 2 pages, got %d", src.PageCount())
	}

	p := NewPages(src, "deck", 40, 40)
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))

	want := [][2]float64{{40, 20}, {20, 40}, {40, 20}}
	for i, sz := range want {
		w, h := p.Size()
		if w != sz[0] || h != sz[1] {
			t.Errorf("Frame %d: expected %vx%v, got %vx%v", i, sz[0], sz[1], w, h)
		}
		if err := p.Render(dst, image.Point{}); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}

	if got := dst.RGBAAt(5, 5); got.A == 0 {
		t.Errorf("Page not drawn: %v", got)
	}
	if p.Index() != 1 {
		t.Errorf("Expected wrap to page 1, got %d", p.Index())
	}
	if got := dst.RGBAAt(39, 39); got != (color.RGBA{}) {
		t.Errorf("Landscape page spilled outside its fit: %v", got)
	}
}

func TestImageSourceMeasuresOnOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "only.png")
	writePNG(t, path, 30, 12)

	src, err := NewImageSource(path)
	if err != nil {
		t.Fatalf("NewImageSource failed: %v", err)
	}

	// Размер уже в памяти: файл больше не нужен для измерения.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w, h, err := src.GetPageDimensions(0)
	if err != nil || w != 30 || h != 12 {
		t.Errorf("Expected cached 30x12, got %vx%v (%v)", w, h, err)
	}
	if _, _, err := src.GetPageDimensions(1); err == nil {
		t.Error("Expected error for missing page")
	}
}

func TestImageSourceRejectsBrokenImage(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 10, 10)
	os.WriteFile(filepath.Join(dir, "b.png"), []byte("not a png"), 0644)

	if _, err := NewImageSource(dir); err == nil {
		t.Fatal("Expected error for undecodable image")
	}
}
