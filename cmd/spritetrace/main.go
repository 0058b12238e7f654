package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"

	"github.com/ivlev/spritetrace/internal/capture"
	"github.com/ivlev/spritetrace/internal/config"
	"github.com/ivlev/spritetrace/internal/engine"
	"github.com/ivlev/spritetrace/internal/export"
	"github.com/ivlev/spritetrace/internal/source"
	"github.com/ivlev/spritetrace/internal/sprite"
	"github.com/ivlev/spritetrace/internal/system"
)

var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	def := config.Default()
	configPtr := flag.String("config", "", "YAML-файл конфигурации (флаги имеют приоритет)")
	entityPtr := flag.String("entity", def.Entity, "Сущность: spinner, badge, pdf, images")
	inputPtr := flag.String("input", "", "PDF или папка с изображениями (по умолчанию: самый свежий файл в input/)")
	widthPtr := flag.Int("width", def.Width, "Ширина экрана/рамки")
	heightPtr := flag.Int("height", def.Height, "Высота экрана/рамки")
	dpiPtr := flag.Int("dpi", def.DPI, "DPI для PDF")
	framesPtr := flag.Int("frames", def.Frames, "Сколько кадров захватить (0 - до конца -ticks)")
	ticksPtr := flag.Int("ticks", 0, "Сколько раз вызвать отрисовку (0 - равно -frames)")
	modePtr := flag.String("mode", def.Mode, "Экспорт: sequence, matrix, both")
	outputPtr := flag.String("output", def.OutputDir, "Папка для результатов")
	prefixPtr := flag.String("prefix", "", "Префикс файлов (по умолчанию: имя сущности)")
	columnsPtr := flag.Int("columns", 0, "Колонок в матрице (0 - почти квадрат)")
	formatPtr := flag.String("format", def.Format, "Формат: png, bmp, tiff")
	workersPtr := flag.Int("workers", def.Workers, "Потоки записи последовательности")
	envPtr := flag.String("env", def.Environment, "Окружение: development, simulator, production")
	bgPtr := flag.String("background", "", "Цвет фона экрана и ячеек, например #202020")
	manifestPtr := flag.Bool("manifest", false, "Записать YAML-описание матрицы")
	statsPtr := flag.Bool("stats", false, "Показать отчёт о производительности")
	speedPtr := flag.Float64("speed", def.Speed, "Скорость анимации spinner")
	logLevelPtr := flag.String("log-level", def.LogLevel, "Уровень логов: debug, info, warn, error")

	flag.Parse()

	cfg := def
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка конфигурации: %v", err)
		}
		cfg = loaded
	}

	// Явно заданные флаги перекрывают файл.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "entity":
			cfg.Entity = *entityPtr
		case "input":
			cfg.InputPath = *inputPtr
		case "width":
			cfg.Width = *widthPtr
		case "height":
			cfg.Height = *heightPtr
		case "dpi":
			cfg.DPI = *dpiPtr
		case "frames":
			cfg.Frames = *framesPtr
		case "ticks":
			cfg.Ticks = *ticksPtr
		case "mode":
			cfg.Mode = *modePtr
		case "output":
			cfg.OutputDir = *outputPtr
		case "prefix":
			cfg.Prefix = *prefixPtr
		case "columns":
			cfg.Columns = *columnsPtr
		case "format":
			cfg.Format = *formatPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "env":
			cfg.Environment = *envPtr
		case "background":
			cfg.Background = *bgPtr
		case "manifest":
			cfg.Manifest = *manifestPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		case "speed":
			cfg.Speed = *speedPtr
		case "log-level":
			cfg.LogLevel = *logLevelPtr
		}
	})
	cfg.BuildVersion = buildVersion

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	entity, closeFn, err := buildEntity(cfg)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации сущности: %v", err)
	}
	defer closeFn()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("[-] Не удалось создать %s: %v", cfg.OutputDir, err)
	}

	exp := export.NewExporter(format)
	exp.Workers = cfg.Workers
	exp.Logger = logger
	if cfg.Background != "" {
		exp.Background = gg.Hex(cfg.Background).Color()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewTraceProject(cfg, entity, exp, logger)
	res, err := project.Run(ctx)
	if err != nil {
		log.Fatalf("[-] Ошибка трассировки: %v", err)
	}

	fmt.Printf("[+++] Успех! Кадров: %d, файлов: %d\n", res.Frames, len(res.Paths))
	if res.Manifest != "" {
		fmt.Printf("[+++] Манифест: %s\n", res.Manifest)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func buildEntity(cfg *config.Config) (capture.Entity, func(), error) {
	noop := func() {}

	switch cfg.Entity {
	case config.EntitySpinner:
		s := sprite.NewSpinner(cfg.Width, cfg.Height)
		s.Speed *= cfg.Speed
		return s, noop, nil

	case config.EntityBadge:
		side := min(cfg.Width, cfg.Height)
		return sprite.NewBadge("spritetrace", side), noop, nil

	case config.EntityPDF, config.EntityImages:
		inputPath := cfg.InputPath
		if inputPath == "" {
			var err error
			if cfg.Entity == config.EntityPDF {
				inputPath, err = system.FindLatest("input/pdf", system.PDFExtensions)
			} else {
				inputPath = "input/images"
				_, err = os.Stat(inputPath)
			}
			if err != nil {
				return nil, nil, fmt.Errorf("%v. Положите файлы в input/", err)
			}
			fmt.Printf("[*] Выбран источник: %s\n", inputPath)
		}

		var src source.Source
		var err error
		if cfg.Entity == config.EntityPDF {
			src, err = source.NewFitzPDFSource(inputPath, cfg.DPI)
		} else {
			src, err = source.NewImageSource(inputPath)
		}
		if err != nil {
			return nil, nil, err
		}
		if src.PageCount() == 0 {
			src.Close()
			return nil, nil, fmt.Errorf("в источнике нет страниц или изображений")
		}

		base := filepath.Base(inputPath)
		name := strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), " ", "_")
		return source.NewPages(src, name, cfg.Width, cfg.Height), func() { src.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown entity: %s", cfg.Entity)
	}
}
