package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/draw"

	"github.com/ivlev/spritetrace/internal/capture"
	"github.com/ivlev/spritetrace/internal/config"
	"github.com/ivlev/spritetrace/internal/export"
)

// growingBox расширяется на два пикселя за кадр.
type growingBox struct {
	w, h float64
}

func (g *growingBox) Size() (float64, float64) { return g.w, g.h }

func (g *growingBox) Render(dst draw.Image, origin image.Point) error {
	r := image.Rect(0, 0, int(g.w), int(g.h)).Add(origin)
	draw.Draw(dst, r, image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)
	g.w += 2
	return nil
}

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 32, 32
	cfg.Frames = 4
	cfg.Ticks = 6
	cfg.Mode = config.ModeBoth
	cfg.OutputDir = dir
	cfg.Prefix = "box"
	cfg.Columns = 2
	cfg.Manifest = true
	return cfg
}

func TestTraceProjectRun(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.ShowStats = true

	entity := &growingBox{w: 10, h: 8}
	p := NewTraceProject(cfg, entity, export.NewExporter(export.PNG), nil)
	p.StatsLog = filepath.Join(dir, "bench", "benchmark.log")

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Frames != 4 {
		t.Errorf("Expected 4 captured frames, got %d", res.Frames)
	}
	if res.Bounds.MinWidth != 10 || res.Bounds.MaxWidth != 16 {
		t.Errorf("Unexpected bounds %+v", res.Bounds)
	}
	if len(res.Paths) != 5 {
		t.Fatalf("Expected 4 sequence files and 1 sheet, got %v", res.Paths)
	}
	if !strings.HasSuffix(res.Sheet.Path, "box-table-16-8.png") {
		t.Errorf("Unexpected sheet path %s", res.Sheet.Path)
	}
	for _, path := range append(res.Paths, res.Manifest, p.StatsLog) {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Missing output %s: %v", path, err)
		}
	}

	// Вызовы сверх лимита рисуются без захвата.
	if entity.w != 10+2*6 {
		t.Errorf("Expected 6 render calls, entity width %v", entity.w)
	}
}

func TestTraceProjectRejectsProduction(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Environment = "production"

	p := NewTraceProject(cfg, &growingBox{w: 4, h: 4}, export.NewExporter(export.PNG), nil)
	if _, err := p.Run(context.Background()); !errors.Is(err, capture.ErrInvalidEnvironment) {
		t.Fatalf("Expected ErrInvalidEnvironment, got %v", err)
	}
}

func TestTraceProjectCancelled(t *testing.T) {
	cfg := testConfig(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewTraceProject(cfg, &growingBox{w: 4, h: 4}, export.NewExporter(export.PNG), nil)
	if _, err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestAppendLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bench.log")
	for _, line := range []string{"a\n", "b\n"} {
		if err := appendLine(path, line); err != nil {
			t.Fatalf("appendLine failed: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "a\nb\n" {
		t.Errorf("Unexpected log %q (%v)", data, err)
	}

	// Родитель — файл, каталог создать нельзя.
	blocked := filepath.Join(path, "nested.log")
	if err := appendLine(blocked, "c\n"); err == nil {
		t.Error("Expected error when parent is a file")
	}
}
