package extract

import (
	"context"
	"image"
	"regexp"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/noblearch/figtotals/internal/ocr"
)

// Mode names a preprocessing recipe applied before OCR.
type Mode string

const (
	// ModeStandard is grayscale plus adaptive thresholding.
	ModeStandard Mode = "standard"
	// ModeInverted inverts the grayscale first, for light strokes on dark
	// highlight fills.
	ModeInverted Mode = "inverted"
	// ModeEqualized spreads the grayscale histogram before thresholding,
	// recovering strokes with weak contrast against the highlight.
	ModeEqualized Mode = "enhanced"
)

// Options configures the hypothesis sweep and the candidate filter.
type Options struct {
	// Rotations are quarter-turn angles in degrees. Only 0, 90, 180 and
	// 270 are meaningful.
	Rotations []int

	// Modes are the preprocessing recipes to try.
	Modes []Mode

	// PageSegModes are the Tesseract segmentation modes to try.
	PageSegModes []ocr.PageSegMode

	// MinValue and MaxValue bound plausible candidates; integers outside
	// the range are discarded as OCR noise.
	MinValue int
	MaxValue int

	// Scale is the integer upscale factor applied before preprocessing.
	// Small handwriting OCRs far better at 3x.
	Scale int
}

// DefaultOptions mirrors the sweep the tool has always used: 4 rotations,
// 3 preprocessing modes and 4 segmentation modes, 48 OCR attempts per
// region in the worst case.
func DefaultOptions() Options {
	return Options{
		Rotations: []int{0, 90, 180, 270},
		Modes:     []Mode{ModeStandard, ModeInverted, ModeEqualized},
		PageSegModes: []ocr.PageSegMode{
			ocr.PSMSingleBlock,
			ocr.PSMSparseText,
			ocr.PSMSparseTextOSD,
			ocr.PSMRawLine,
		},
		MinValue: 10,
		MaxValue: 9999,
		Scale:    3,
	}
}

// Candidate is one integer read from a region, together with the
// hypothesis that produced it. The provenance fields are heuristics for
// debugging, not confidence scores.
type Candidate struct {
	Value    int             `json:"value"`
	Rotation int             `json:"rotation"`
	Mode     Mode            `json:"mode"`
	PSM      ocr.PageSegMode `json:"psm"`
}

// Values flattens candidates to their integer values, preserving order.
func Values(cands []Candidate) []int {
	vals := make([]int, len(cands))
	for i, c := range cands {
		vals[i] = c.Value
	}
	return vals
}

// Extractor runs the multi-hypothesis OCR sweep over region crops.
type Extractor struct {
	engine ocr.Engine
	opts   Options
}

// New builds an extractor on the given engine. The engine must be safe for
// the caller's concurrency model; the extractor itself is stateless across
// Extract calls.
func New(engine ocr.Engine, opts Options) *Extractor {
	return &Extractor{engine: engine, opts: opts}
}

// Attempts returns the number of OCR calls one region costs at most.
func (e *Extractor) Attempts() int {
	return len(e.opts.Rotations) * len(e.opts.Modes) * len(e.opts.PageSegModes)
}

var digitRuns = regexp.MustCompile(`\d+`)

// Extract reads every plausible integer from the region crop.
//
// Candidates are deduplicated by value in first-seen order. Individual
// engine failures skip to the next combination; a done context ends the
// sweep early with whatever was found.
func (e *Extractor) Extract(ctx context.Context, region image.Image) []Candidate {
	seen := make(map[int]bool)
	var found []Candidate

	for _, angle := range e.opts.Rotations {
		rotated := rotate(region, angle)
		for _, mode := range e.opts.Modes {
			prepped := Preprocess(rotated, mode, e.opts.Scale)
			for _, psm := range e.opts.PageSegModes {
				if ctx.Err() != nil {
					return found
				}
				text, err := e.engine.RecognizeDigits(prepped, psm)
				if err != nil {
					continue
				}
				for _, run := range digitRuns.FindAllString(text, -1) {
					value, err := strconv.Atoi(run)
					if err != nil {
						// Absurdly long digit run; noise.
						continue
					}
					if value < e.opts.MinValue || value > e.opts.MaxValue {
						continue
					}
					if seen[value] {
						continue
					}
					seen[value] = true
					found = append(found, Candidate{
						Value:    value,
						Rotation: angle,
						Mode:     mode,
						PSM:      psm,
					})
				}
			}
		}
	}
	return found
}

// rotate applies an exact quarter-turn. Angles other than the three
// quarter turns fall through to the original image.
func rotate(img image.Image, angle int) image.Image {
	switch ((angle % 360) + 360) % 360 {
	case 90:
		return imaging.Rotate90(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate270(img)
	default:
		return img
	}
}
