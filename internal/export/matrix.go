package export

import (
	"context"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/ivlev/spritetrace/internal/frames"
)

// Placement — место кадра на листе.
type Placement struct {
	Index int `yaml:"index"` // номер захвата с 1
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	W     int `yaml:"w"`
	H     int `yaml:"h"`
}

// Sheet описывает матрицу кадров.
type Sheet struct {
	Path       string      `yaml:"path,omitempty"`
	CellWidth  int         `yaml:"cell_width"`
	CellHeight int         `yaml:"cell_height"`
	Columns    int         `yaml:"columns"`
	Rows       int         `yaml:"rows"`
	Frames     []Placement `yaml:"frames"`
}

// Size — размер всего листа в пикселях.
func (s *Sheet) Size() image.Point {
	return image.Pt(s.Columns*s.CellWidth, s.Rows*s.CellHeight)
}

// Grid возвращает число колонок и строк для n кадров. Положительный columns
// берётся как есть, иначе сетка максимально близка к квадрату.
func Grid(n, columns int) (int, int) {
	if columns <= 0 {
		columns = int(math.Sqrt(float64(n)))
	}
	if columns < 1 {
		columns = 1
	}
	rows := (n + columns - 1) / columns
	return columns, rows
}

// PlanSheet раскладывает кадры view. Ячейка берёт накопленный максимум
// размеров сессии, меньшие кадры центрируются.
func PlanSheet(view frames.View, columns int) *Sheet {
	n := view.Len()
	cw, ch := view.Bounds().Cell()
	cols, rows := Grid(n, columns)

	s := &Sheet{
		CellWidth:  cw,
		CellHeight: ch,
		Columns:    cols,
		Rows:       rows,
		Frames:     make([]Placement, 0, n),
	}
	for k, f := range view.All {
		r := k / cols
		c := k - r*cols
		fw, fh := f.Width(), f.Height()
		s.Frames = append(s.Frames, Placement{
			Index: k + 1,
			X:     c*cw + (cw-fw)/2,
			Y:     r*ch + (ch-fh)/2,
			W:     fw,
			H:     fh,
		})
	}
	return s
}

// Compose рисует все кадры на одном изображении по раскладке sheet.
func (e *Exporter) Compose(view frames.View, sheet *Sheet) *image.RGBA {
	canvas := image.NewRGBA(image.Rectangle{Max: sheet.Size()})
	if e.Background != nil {
		draw.Draw(canvas, canvas.Rect, image.NewUniform(e.Background), image.Point{}, draw.Src)
	}

	for _, p := range sheet.Frames {
		k := p.Index - 1
		img := view.At(k).Image()
		cell := image.Rect(0, 0, sheet.CellWidth, sheet.CellHeight).
			Add(image.Pt((k%sheet.Columns)*sheet.CellWidth, (k/sheet.Columns)*sheet.CellHeight))
		dst := image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H).Intersect(cell)
		draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Src)
	}
	return canvas
}

// Matrix собирает все кадры src в один лист и пишет его в dir как
// prefix-table-<ширина>-<высота> ячейки. Положительный columns задаёт число
// колонок. Пустой prefix заменяется именем источника.
func (e *Exporter) Matrix(ctx context.Context, src Source, dir, prefix string, columns int) (*Sheet, error) {
	view, dir, prefix, err := prepare(src, dir, prefix)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet := PlanSheet(view, columns)
	sheet.Path = dir + MatrixName(prefix, sheet.CellWidth, sheet.CellHeight, e.Format)

	log := e.logger().With("entity", src.Name(), "path", sheet.Path)
	log.Info("matrix export started",
		"frames", view.Len(), "columns", sheet.Columns, "rows", sheet.Rows,
		"cell_width", sheet.CellWidth, "cell_height", sheet.CellHeight)

	canvas := e.Compose(view, sheet)
	if err := e.Writer.Write(canvas, sheet.Path); err != nil {
		return nil, fmt.Errorf("matrix %s: %w", sheet.Path, err)
	}

	log.Info("matrix export finished")
	return sheet, nil
}
