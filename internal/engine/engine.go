package engine

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/ivlev/spritetrace/internal/capture"
	"github.com/ivlev/spritetrace/internal/config"
	"github.com/ivlev/spritetrace/internal/export"
	"github.com/ivlev/spritetrace/internal/frames"
	"github.com/ivlev/spritetrace/internal/system"
)

// TraceProject прогоняет сущность через цикл отрисовки с установленным
// трассировщиком и экспортирует захваченное.
type TraceProject struct {
	Config   *config.Config
	Entity   capture.Entity
	Exporter *export.Exporter
	Logger   *slog.Logger

	// StatsLog — файл для строки производительности при Config.ShowStats.
	StatsLog string
}

// Result — итог прогона.
type Result struct {
	Frames   int
	Bounds   frames.Bounds
	Paths    []string
	Sheet    *export.Sheet
	Manifest string
}

func NewTraceProject(cfg *config.Config, entity capture.Entity, exp *export.Exporter, logger *slog.Logger) *TraceProject {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TraceProject{
		Config:   cfg,
		Entity:   entity,
		Exporter: exp,
		Logger:   logger,
		StatsLog: "benchmark.log",
	}
}

func (p *TraceProject) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	tracer, err := capture.New(p.Entity,
		capture.WithLogger(p.Logger),
		capture.WithEnvironment(capture.Environment(p.Config.Environment)),
	)
	if err != nil {
		return nil, err
	}

	budget := p.Config.FrameBudget()
	fmt.Println("--- [SPRITETRACE] ---")
	fmt.Printf("[*] Сущность: %s | Кадров: %d | Вызовов отрисовки: %d\n", tracer.Name(), p.Config.Frames, budget)
	fmt.Printf("[*] Экран: %dx%d | Режим: %s | Формат: %s\n", p.Config.Width, p.Config.Height, p.Config.Mode, p.Exporter.Format)
	fmt.Println("---------------------")

	renderStart := time.Now()
	if err := p.drive(ctx, tracer, budget); err != nil {
		return nil, err
	}
	renderTime := time.Since(renderStart)

	res := &Result{
		Frames: tracer.Frames().Len(),
		Bounds: tracer.Bounds(),
	}

	exportStart := time.Now()
	if err := p.export(ctx, tracer, res); err != nil {
		return nil, err
	}
	exportTime := time.Since(exportStart)

	if p.Config.ShowStats {
		p.report(tracer.Name(), res, time.Since(startTime), renderTime, exportTime)
	}
	return res, nil
}

// drive вызывает отрисовку budget раз на экранном холсте, где вместо сущности
// стоит трассировщик.
func (p *TraceProject) drive(ctx context.Context, tracer *capture.Tracer, budget int) error {
	screen := image.NewRGBA(image.Rect(0, 0, p.Config.Width, p.Config.Height))
	bg := p.background()

	tracer.StartTracing(p.Config.Frames)
	defer tracer.StopTracing()

	for i := 0; i < budget; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		draw.Draw(screen, screen.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
		w, h := p.Entity.Size()
		origin := image.Pt((p.Config.Width-int(w))/2, (p.Config.Height-int(h))/2)

		if err := tracer.Render(screen, origin); err != nil {
			return fmt.Errorf("кадр %d: %w", i+1, err)
		}
		fmt.Printf("[>] Кадр: %d/%d (захвачено %d)\n", i+1, budget, tracer.Frames().Len())
	}
	return nil
}

func (p *TraceProject) export(ctx context.Context, tracer *capture.Tracer, res *Result) error {
	dir := p.Config.OutputDir

	if p.Config.Mode == config.ModeSequence || p.Config.Mode == config.ModeBoth {
		paths, err := p.Exporter.Sequence(ctx, tracer, dir, p.Config.Prefix)
		if err != nil {
			return fmt.Errorf("экспорт последовательности: %w", err)
		}
		res.Paths = append(res.Paths, paths...)
		fmt.Printf("[+] Последовательность: %d файлов в %s\n", len(paths), export.NormalizeDir(dir))
	}

	if p.Config.Mode == config.ModeMatrix || p.Config.Mode == config.ModeBoth {
		sheet, err := p.Exporter.Matrix(ctx, tracer, dir, p.Config.Prefix, p.Config.Columns)
		if err != nil {
			return fmt.Errorf("экспорт матрицы: %w", err)
		}
		res.Sheet = sheet
		res.Paths = append(res.Paths, sheet.Path)
		fmt.Printf("[+] Матрица %dx%d (ячейка %dx%d): %s\n", sheet.Columns, sheet.Rows, sheet.CellWidth, sheet.CellHeight, sheet.Path)

		if p.Config.Manifest {
			res.Manifest = export.ManifestPath(sheet.Path)
			if err := export.WriteManifest(sheet, res.Manifest); err != nil {
				return fmt.Errorf("манифест: %w", err)
			}
		}
	}
	return nil
}

func (p *TraceProject) background() color.Color {
	if p.Config.Background == "" {
		return color.Transparent
	}
	return gg.Hex(p.Config.Background).Color()
}

func (p *TraceProject) report(name string, res *Result, total, render, exp time.Duration) {
	host, err := system.ReadHostReport()
	if err != nil {
		p.Logger.Warn("host stats unavailable", "err", err)
	}

	fps := 0.0
	if render > 0 {
		fps = float64(res.Frames) / render.Seconds()
	}

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Capture: %.2fs\n"+
			"Export: %.2fs\n"+
			"Frames: %d (%.0fx%.0f..%.0fx%.0f)\n"+
			"Effective FPS: %.2f\n"+
			"Host: %s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), render.Seconds(), exp.Seconds(),
		res.Frames, res.Bounds.MinWidth, res.Bounds.MinHeight, res.Bounds.MaxWidth, res.Bounds.MaxHeight,
		fps, host,
	)

	if p.StatsLog == "" {
		return
	}
	logEntry := fmt.Sprintf("[%s] Build: %s | Entity: %s | Frames: %d | Total: %.2fs | Capture: %.2fs | Export: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		name,
		res.Frames,
		total.Seconds(),
		render.Seconds(),
		exp.Seconds(),
		fps,
	)

	if err := appendLine(p.StatsLog, logEntry); err != nil {
		fmt.Printf("[!] Не удалось записать %s: %v\n", p.StatsLog, err)
	}
}

func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
