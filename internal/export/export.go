// Package export превращает захваченные кадры в файлы: по файлу на кадр
// или один лист-матрицу.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/ivlev/spritetrace/internal/frames"
)

// ErrNoFramesCaptured — экспорт запрошен, а кадров нет.
var ErrNoFramesCaptured = errors.New("no frames captured")

// NoFramesError называет сущность, у которой нечего экспортировать.
type NoFramesError struct {
	Entity string
}

func (e *NoFramesError) Error() string {
	return fmt.Sprintf("%s: %v", e.Entity, ErrNoFramesCaptured)
}

func (e *NoFramesError) Is(target error) bool {
	return target == ErrNoFramesCaptured
}

// Source — именованная последовательность кадров, например *capture.Tracer.
type Source interface {
	Name() string
	Frames() frames.View
}

// Exporter пишет кадры общим писателем в одном формате.
type Exporter struct {
	Writer ImageWriter
	Format Format
	// Workers ограничивает параллельное кодирование в Sequence. Меньше 2 —
	// строго по одному файлу в порядке номеров.
	Workers int
	// Background заливает ячейки листа до кадров. Nil оставляет прозрачными.
	Background color.Color
	Logger     *slog.Logger
}

// NewExporter возвращает экспортёр в формат f.
func NewExporter(f Format) *Exporter {
	return &Exporter{
		Writer:  FileWriter{Format: f},
		Format:  f,
		Workers: 1,
	}
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// prepare проверяет src и вычисляет каталог и префикс для обоих видов экспорта.
func prepare(src Source, dir, prefix string) (frames.View, string, string, error) {
	view := src.Frames()
	if view.Len() == 0 {
		return nil, "", "", &NoFramesError{Entity: src.Name()}
	}
	if prefix == "" {
		prefix = src.Name()
	}
	return view, NormalizeDir(dir), prefix, nil
}
