package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/noblearch/figtotals/internal/extract"
	"github.com/noblearch/figtotals/internal/ocr"
)

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Unit != def.Unit {
		t.Errorf("unit = %q, want default %q", cfg.Unit, def.Unit)
	}
	if len(cfg.Palette) != len(def.Palette) {
		t.Errorf("palette size = %d, want default %d", len(cfg.Palette), len(def.Palette))
	}
}

func TestParseConfig_Overrides(t *testing.T) {
	data := []byte(`
unit: cm
timeout: 30s
workers: 2
values: {min: 1, max: 500}
detector:
  min_width: 15
  padding: 5
ocr:
  rotations: [0, 180]
  modes: [standard, inverted]
  page_seg_modes: [6, 11]
  scale: 2
colors:
  - name: Red
    hsv: {hue_lo: 350, hue_hi: 15, sat_lo: 0.2, val_lo: 0.5}
`)

	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Unit != "cm" {
		t.Errorf("unit = %q, want cm", cfg.Unit)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Workers != 2 {
		t.Errorf("workers = %d, want 2", cfg.Workers)
	}
	if cfg.Extract.MinValue != 1 || cfg.Extract.MaxValue != 500 {
		t.Errorf("value range = [%d, %d], want [1, 500]", cfg.Extract.MinValue, cfg.Extract.MaxValue)
	}
	if cfg.Detector.MinWidth != 15 || cfg.Detector.Padding != 5 {
		t.Errorf("detector = %+v, want min_width 15 and padding 5", cfg.Detector)
	}
	// Untouched detector fields keep their defaults.
	if cfg.Detector.MinHeight != 20 {
		t.Errorf("min_height = %d, want default 20", cfg.Detector.MinHeight)
	}
	if len(cfg.Extract.Rotations) != 2 || cfg.Extract.Rotations[1] != 180 {
		t.Errorf("rotations = %v, want [0 180]", cfg.Extract.Rotations)
	}
	if len(cfg.Extract.Modes) != 2 || cfg.Extract.Modes[1] != extract.ModeInverted {
		t.Errorf("modes = %v, want [standard inverted]", cfg.Extract.Modes)
	}
	if len(cfg.Extract.PageSegModes) != 2 || cfg.Extract.PageSegModes[0] != ocr.PSMSingleBlock {
		t.Errorf("page seg modes = %v, want [6 11]", cfg.Extract.PageSegModes)
	}
	if cfg.Extract.Scale != 2 {
		t.Errorf("scale = %d, want 2", cfg.Extract.Scale)
	}
	if len(cfg.Palette) != 1 || cfg.Palette[0].Name != "Red" {
		t.Fatalf("palette = %v, want the single Red color", cfg.Palette.Names())
	}
	if cfg.Palette[0].HSV == nil || cfg.Palette[0].HSV.HueLo != 350 {
		t.Errorf("Red band = %+v, want wrap starting at 350", cfg.Palette[0].HSV)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", ": not yaml"},
		{"bad timeout", "timeout: soon"},
		{"unknown mode", "ocr: {modes: [psychic]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.data)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figtotals.yaml")
	if err := os.WriteFile(path, []byte("unit: pt\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Unit != "pt" {
		t.Errorf("unit = %q, want pt", cfg.Unit)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}
