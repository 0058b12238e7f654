// Package frames хранит захваченные кадры сессии трассировки и накопленные
// границы их размеров.
package frames

import (
	"image"
	"math"
)

// Frame — один захваченный кадр. Буфером владеет Store, менять его нельзя.
type Frame struct {
	img *image.RGBA
}

// NewFrame оборачивает отрисованный буфер и забирает владение им.
func NewFrame(img *image.RGBA) Frame {
	return Frame{img: img}
}

// Image возвращает пиксели кадра.
func (f Frame) Image() image.Image {
	return f.img
}

func (f Frame) Width() int {
	return f.img.Rect.Dx()
}

func (f Frame) Height() int {
	return f.img.Rect.Dy()
}

// Bounds — наименьшие и наибольшие размеры, встреченные за сессию.
type Bounds struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// SeedBounds возвращает границы, сведённые к одному размеру.
func SeedBounds(width, height float64) Bounds {
	return Bounds{
		MinWidth:  width,
		MaxWidth:  width,
		MinHeight: height,
		MaxHeight: height,
	}
}

// Widen расширяет b до заданного размера. Границы только растут.
func (b Bounds) Widen(width, height float64) Bounds {
	return Bounds{
		MinWidth:  math.Min(b.MinWidth, width),
		MaxWidth:  math.Max(b.MaxWidth, width),
		MinHeight: math.Min(b.MinHeight, height),
		MaxHeight: math.Max(b.MaxHeight, height),
	}
}

// Cell — целый размер ячейки матрицы.
func (b Bounds) Cell() (int, int) {
	return int(math.Floor(b.MaxWidth)), int(math.Floor(b.MaxHeight))
}

// View — Store только для чтения.
type View interface {
	Len() int
	At(i int) Frame
	All(yield func(int, Frame) bool)
	Bounds() Bounds
}

// Store — упорядоченный буфер кадров, только добавление. Владеет им один
// трассировщик, без блокировок.
type Store struct {
	frames  []Frame
	bounds  Bounds
	release func(*image.RGBA)
}

// NewStore создаёт пустое хранилище с границами от заданного размера.
// release (если задан) получает каждый буфер, сброшенный Clear.
func NewStore(width, height float64, release func(*image.RGBA)) *Store {
	return &Store{
		bounds:  SeedBounds(width, height),
		release: release,
	}
}

// Append добавляет кадр и расширяет границы.
func (s *Store) Append(f Frame) {
	s.frames = append(s.frames, f)
	s.bounds = s.bounds.Widen(float64(f.Width()), float64(f.Height()))
}

// Clear удаляет все кадры и заново задаёт границы.
func (s *Store) Clear(width, height float64) {
	if s.release != nil {
		for _, f := range s.frames {
			s.release(f.img)
		}
	}
	s.frames = nil
	s.bounds = SeedBounds(width, height)
}

// Len — число кадров.
func (s *Store) Len() int {
	return len(s.frames)
}

// At возвращает кадр по индексу захвата (с нуля).
func (s *Store) At(i int) Frame {
	return s.frames[i]
}

// All обходит кадры в порядке захвата, пока yield не вернёт false.
func (s *Store) All(yield func(int, Frame) bool) {
	for i, f := range s.frames {
		if !yield(i, f) {
			return
		}
	}
}

// Bounds возвращает накопленные границы.
func (s *Store) Bounds() Bounds {
	return s.bounds
}
