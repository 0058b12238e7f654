package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Entity      string  `yaml:"entity"`
	InputPath   string  `yaml:"input"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	DPI         int     `yaml:"dpi"`
	Frames      int     `yaml:"frames"`
	Ticks       int     `yaml:"ticks"`
	Mode        string  `yaml:"mode"`
	OutputDir   string  `yaml:"output"`
	Prefix      string  `yaml:"prefix"`
	Columns     int     `yaml:"columns"`
	Format      string  `yaml:"format"`
	Workers     int     `yaml:"workers"`
	Environment string  `yaml:"environment"`
	Background  string  `yaml:"background"`
	Manifest    bool    `yaml:"manifest"`
	ShowStats   bool    `yaml:"stats"`
	Speed       float64 `yaml:"speed"`
	LogLevel    string  `yaml:"log_level"`

	BuildVersion string `yaml:"-"`
}

const (
	ModeSequence = "sequence"
	ModeMatrix   = "matrix"
	ModeBoth     = "both"
)

const (
	EntitySpinner = "spinner"
	EntityBadge   = "badge"
	EntityPDF     = "pdf"
	EntityImages  = "images"
)

func Default() *Config {
	return &Config{
		Entity:      EntitySpinner,
		Width:       64,
		Height:      64,
		DPI:         72,
		Frames:      16,
		Mode:        ModeMatrix,
		OutputDir:   "output",
		Format:      "png",
		Workers:     1,
		Environment: "development",
		Speed:       1.0,
		LogLevel:    "info",
	}
}

// Load читает YAML поверх значений по умолчанию. Неизвестные ключи — ошибка.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FrameBudget — сколько раз движок вызовет отрисовку. Без явного Ticks это
// ровно лимит захвата.
func (c *Config) FrameBudget() int {
	if c.Ticks > 0 {
		return c.Ticks
	}
	return c.Frames
}

func (c *Config) Validate() error {
	switch c.Entity {
	case EntitySpinner, EntityBadge, EntityPDF, EntityImages:
	default:
		return fmt.Errorf("unknown entity: %s", c.Entity)
	}
	switch c.Mode {
	case ModeSequence, ModeMatrix, ModeBoth:
	default:
		return fmt.Errorf("unknown mode: %s", c.Mode)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size must be positive: %dx%d", c.Width, c.Height)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive: %d", c.DPI)
	}
	if c.Frames < 0 || c.Ticks < 0 {
		return fmt.Errorf("frames and ticks must not be negative")
	}
	if c.FrameBudget() == 0 {
		return fmt.Errorf("unbounded capture needs ticks > 0")
	}
	if c.Columns < 0 {
		return fmt.Errorf("columns must not be negative: %d", c.Columns)
	}
	return nil
}
