package pipeline

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/noblearch/figtotals/internal/extract"
	"github.com/noblearch/figtotals/internal/ocr"
	"github.com/noblearch/figtotals/internal/palette"
)

// fileConfig is the YAML shape of a config file. Every field is optional;
// omitted fields keep their defaults.
type fileConfig struct {
	Unit   string `yaml:"unit"`
	Values *struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"values"`
	Detector *struct {
		MinWidth  int     `yaml:"min_width"`
		MinHeight int     `yaml:"min_height"`
		MinAspect float64 `yaml:"min_aspect"`
		MaxAspect float64 `yaml:"max_aspect"`
		Padding   int     `yaml:"padding"`
	} `yaml:"detector"`
	OCR *struct {
		Rotations    []int    `yaml:"rotations"`
		Modes        []string `yaml:"modes"`
		PageSegModes []int    `yaml:"page_seg_modes"`
		Scale        int      `yaml:"scale"`
	} `yaml:"ocr"`
	Workers int             `yaml:"workers"`
	Timeout string          `yaml:"timeout"`
	Colors  palette.Palette `yaml:"colors"`
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config bytes over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.Unit != "" {
		cfg.Unit = raw.Unit
	}
	if raw.Workers > 0 {
		cfg.Workers = raw.Workers
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		cfg.Timeout = d
	}
	if len(raw.Colors) > 0 {
		cfg.Palette = raw.Colors
	}
	if raw.Values != nil {
		cfg.Extract.MinValue = raw.Values.Min
		cfg.Extract.MaxValue = raw.Values.Max
	}
	if raw.Detector != nil {
		d := raw.Detector
		if d.MinWidth > 0 {
			cfg.Detector.MinWidth = d.MinWidth
		}
		if d.MinHeight > 0 {
			cfg.Detector.MinHeight = d.MinHeight
		}
		if d.MinAspect > 0 {
			cfg.Detector.MinAspect = d.MinAspect
		}
		if d.MaxAspect > 0 {
			cfg.Detector.MaxAspect = d.MaxAspect
		}
		if d.Padding > 0 {
			cfg.Detector.Padding = d.Padding
		}
	}
	if raw.OCR != nil {
		o := raw.OCR
		if len(o.Rotations) > 0 {
			cfg.Extract.Rotations = o.Rotations
		}
		if len(o.Modes) > 0 {
			modes := make([]extract.Mode, 0, len(o.Modes))
			for _, m := range o.Modes {
				switch extract.Mode(m) {
				case extract.ModeStandard, extract.ModeInverted, extract.ModeEqualized:
					modes = append(modes, extract.Mode(m))
				default:
					return Config{}, fmt.Errorf("unknown preprocessing mode %q", m)
				}
			}
			cfg.Extract.Modes = modes
		}
		if len(o.PageSegModes) > 0 {
			psms := make([]ocr.PageSegMode, len(o.PageSegModes))
			for i, p := range o.PageSegModes {
				psms[i] = ocr.PageSegMode(p)
			}
			cfg.Extract.PageSegModes = psms
		}
		if o.Scale > 0 {
			cfg.Extract.Scale = o.Scale
		}
	}
	return cfg, nil
}
