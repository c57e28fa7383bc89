package pipeline

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/noblearch/figtotals/internal/detect"
	"github.com/noblearch/figtotals/internal/extract"
	"github.com/noblearch/figtotals/internal/ocr"
	"github.com/noblearch/figtotals/internal/palette"
)

// Config holds everything one Pipeline needs. Zero-valued fields are
// filled from defaults by New.
type Config struct {
	// Palette is the set of reference colors to detect. Names must be
	// unique.
	Palette palette.Palette

	// Detector filters candidate regions.
	Detector detect.Options

	// Extract configures the per-region OCR sweep.
	Extract extract.Options

	// Unit is the suffix appended to totals in formatted output.
	Unit string

	// Workers bounds concurrent region extraction; 0 means one per CPU.
	Workers int

	// Timeout bounds one Run; 0 means unbounded. On expiry Run returns
	// the partial aggregation of completed regions.
	Timeout time.Duration
}

// DefaultConfig returns the standard FigJam configuration.
func DefaultConfig() Config {
	return Config{
		Palette:  palette.Default(),
		Detector: detect.DefaultOptions(),
		Extract:  extract.DefaultOptions(),
		Unit:     "mm",
		Timeout:  2 * time.Minute,
	}
}

// Detection records one extracted candidate together with the region and
// color that produced it. Exposed for debug reporting.
type Detection struct {
	Color     string            `json:"color"`
	Region    detect.Region     `json:"region"`
	Candidate extract.Candidate `json:"candidate"`
}

// Result is the terminal output of one run.
//
// PerColor and Totals only carry colors that yielded at least one value.
// Value order within a color is region-discovery order, then
// candidate-discovery order within the region.
type Result struct {
	PerColor map[string][]int `json:"per_color"`
	Totals   map[string]int   `json:"totals"`

	// Detections carries candidate provenance for debug output.
	Detections []Detection `json:"detections,omitempty"`

	// RegionCounts is the number of candidate regions examined per
	// palette color, including ones that yielded nothing.
	RegionCounts map[string]int `json:"region_counts"`

	// Partial is set when the deadline skipped some regions or cut a
	// region's sweep short. A run whose regions all finished is complete
	// even if the deadline expired afterwards.
	Partial bool `json:"partial,omitempty"`
}

// Empty reports whether no color yielded any value.
func (r *Result) Empty() bool {
	return len(r.PerColor) == 0
}

// Pipeline executes runs. Safe for sequential reuse; a Pipeline holds no
// per-run state.
type Pipeline struct {
	engine    ocr.Engine
	cfg       Config
	extractor *extract.Extractor
}

// New validates the configuration and builds a pipeline around the given
// OCR engine. A nil engine or an invalid palette is a configuration
// error; nothing is processed.
func New(engine ocr.Engine, cfg Config) (*Pipeline, error) {
	if engine == nil {
		return nil, fmt.Errorf("nil OCR engine")
	}

	def := DefaultConfig()
	if cfg.Palette == nil {
		cfg.Palette = def.Palette
	}
	if cfg.Detector == (detect.Options{}) {
		cfg.Detector = def.Detector
	}
	if len(cfg.Extract.Rotations) == 0 {
		cfg.Extract.Rotations = def.Extract.Rotations
	}
	if len(cfg.Extract.Modes) == 0 {
		cfg.Extract.Modes = def.Extract.Modes
	}
	if len(cfg.Extract.PageSegModes) == 0 {
		cfg.Extract.PageSegModes = def.Extract.PageSegModes
	}
	if cfg.Extract.MinValue == 0 && cfg.Extract.MaxValue == 0 {
		cfg.Extract.MinValue = def.Extract.MinValue
		cfg.Extract.MaxValue = def.Extract.MaxValue
	}
	if cfg.Extract.Scale == 0 {
		cfg.Extract.Scale = def.Extract.Scale
	}
	if cfg.Unit == "" {
		cfg.Unit = def.Unit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if err := cfg.Palette.Validate(); err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}
	if cfg.Extract.MinValue > cfg.Extract.MaxValue {
		return nil, fmt.Errorf("invalid value range [%d, %d]", cfg.Extract.MinValue, cfg.Extract.MaxValue)
	}

	return &Pipeline{
		engine:    engine,
		cfg:       cfg,
		extractor: extract.New(engine, cfg.Extract),
	}, nil
}

// Unit returns the configured total suffix.
func (p *Pipeline) Unit() string { return p.cfg.Unit }

// job is one region's extraction work. Jobs are indexed so parallel
// results stitch back into discovery order.
type job struct {
	color  string
	region detect.Region
}

// Run executes one full pass over the image.
//
// The image is only read. Errors are confined to caller mistakes (nil or
// zero-area image, though the latter is caught at construction for the
// palette); empty detections and empty extractions flow through as empty
// collections.
func (p *Pipeline) Run(ctx context.Context, img image.Image) (*Result, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	regions, err := detect.Detect(img, p.cfg.Palette, p.cfg.Detector)
	if err != nil {
		return nil, err
	}

	// Flatten in palette order, then discovery order within a color.
	var jobs []job
	counts := make(map[string]int, len(p.cfg.Palette))
	for _, ref := range p.cfg.Palette {
		counts[ref.Name] = len(regions[ref.Name])
		for _, r := range regions[ref.Name] {
			jobs = append(jobs, job{color: ref.Name, region: r})
		}
	}

	candidates := make([][]extract.Candidate, len(jobs))
	done := make([]bool, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i := range jobs {
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil // timed out; leave this region unextracted
			}
			crop := imaging.Crop(img, jobs[i].region.Rect())
			candidates[i] = p.extractor.Extract(gctx, crop)
			// A deadline during the sweep may have truncated it.
			done[i] = gctx.Err() == nil
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	result := &Result{
		PerColor:     make(map[string][]int),
		Totals:       make(map[string]int),
		RegionCounts: counts,
	}
	for i, jb := range jobs {
		if !done[i] {
			result.Partial = true
			continue
		}
		for _, cand := range candidates[i] {
			result.PerColor[jb.color] = append(result.PerColor[jb.color], cand.Value)
			result.Totals[jb.color] += cand.Value
			result.Detections = append(result.Detections, Detection{
				Color:     jb.color,
				Region:    jb.region,
				Candidate: cand,
			})
		}
	}
	return result, nil
}
