// Package palette defines the reference colors the detector searches for.
//
// A palette is an ordered list of named reference colors. Each color is
// described either as an HSV band (hue in degrees, saturation and value as
// fractions) or as an RGB point with a per-channel tolerance. HSV bands are
// the more robust representation for highlighter detection because hue is
// largely independent of lighting; RGB points exist for callers that only
// know the exact marker color.
package palette

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSVRange describes a band in HSV space.
//
// Hue is measured in degrees [0, 360). The band is inclusive of HueLo and
// exclusive of HueHi. When HueLo > HueHi the band wraps through 0°: it is
// the union of [HueLo, 360) and [0, HueHi), which is how colors straddling
// the red boundary (pink/magenta into red) are expressed.
//
// Saturation and value bounds are fractions in [0, 1], inclusive on both
// ends. Low saturation or value cutoffs keep near-white and near-black
// pixels out of the band.
type HSVRange struct {
	HueLo float64 `json:"hue_lo"` // Lower hue bound in degrees (inclusive)
	HueHi float64 `json:"hue_hi"` // Upper hue bound in degrees (exclusive)
	SatLo float64 `json:"sat_lo"` // Minimum saturation (0-1)
	SatHi float64 `json:"sat_hi"` // Maximum saturation (0-1)
	ValLo float64 `json:"val_lo"` // Minimum value/brightness (0-1)
	ValHi float64 `json:"val_hi"` // Maximum value/brightness (0-1)
}

// Contains reports whether the HSV triple (h in degrees, s and v in [0,1])
// falls inside the band, handling hue wrap-around.
func (r HSVRange) Contains(h, s, v float64) bool {
	if s < r.SatLo || s > r.SatHi || v < r.ValLo || v > r.ValHi {
		return false
	}
	if r.HueLo <= r.HueHi {
		return h >= r.HueLo && h < r.HueHi
	}
	// Band wraps through 0°.
	return h >= r.HueLo || h < r.HueHi
}

// RGBPoint describes a reference color as an RGB value with a symmetric
// per-channel tolerance. A pixel matches when every channel is within
// Tolerance of the reference channel.
type RGBPoint struct {
	R, G, B   uint8
	Tolerance uint8
}

// Contains reports whether the 8-bit RGB triple is within tolerance of the
// reference point on every channel.
func (p RGBPoint) Contains(r, g, b uint8) bool {
	return within(r, p.R, p.Tolerance) &&
		within(g, p.G, p.Tolerance) &&
		within(b, p.B, p.Tolerance)
}

func within(v, ref, tol uint8) bool {
	if v > ref {
		return v-ref <= tol
	}
	return ref-v <= tol
}

// ReferenceColor is one named entry of a palette.
//
// Exactly one of HSV or RGB must be set; Palette.Validate enforces this.
type ReferenceColor struct {
	Name string
	HSV  *HSVRange
	RGB  *RGBPoint
}

// Matches reports whether the pixel color belongs to this reference color.
//
// Fully transparent pixels never match.
func (c ReferenceColor) Matches(col color.Color) bool {
	switch {
	case c.HSV != nil:
		cf, ok := colorful.MakeColor(col)
		if !ok {
			return false
		}
		h, s, v := cf.Hsv()
		return c.HSV.Contains(h, s, v)
	case c.RGB != nil:
		r, g, b, a := col.RGBA()
		if a == 0 {
			return false
		}
		return c.RGB.Contains(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
	return false
}

// Palette is an ordered set of reference colors. Order determines the
// detection order and therefore the reproducible ordering of results.
type Palette []ReferenceColor

// Validate checks the palette for caller errors: it must be non-empty,
// names must be unique and non-blank, and every color must carry exactly
// one representation.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("palette is empty")
	}
	seen := make(map[string]bool, len(p))
	for i, c := range p {
		if c.Name == "" {
			return fmt.Errorf("palette entry %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate palette color %q", c.Name)
		}
		seen[c.Name] = true
		if (c.HSV == nil) == (c.RGB == nil) {
			return fmt.Errorf("palette color %q must have exactly one of an HSV range or an RGB point", c.Name)
		}
	}
	return nil
}

// Names returns the color names in palette order.
func (p Palette) Names() []string {
	names := make([]string, len(p))
	for i, c := range p {
		names[i] = c.Name
	}
	return names
}

// Marker saturation/value floor: highlighter fills are vivid and light, so
// anything grayer or darker than this is background or ink, not marker.
const (
	markerSatLo = 0.15
	markerValLo = 0.55
)

func markerBand(hueLo, hueHi float64) *HSVRange {
	return &HSVRange{
		HueLo: hueLo, HueHi: hueHi,
		SatLo: markerSatLo, SatHi: 1,
		ValLo: markerValLo, ValHi: 1,
	}
}

// Default returns the standard FigJam marker palette.
//
// The hue bands are disjoint by construction, so no pixel can be claimed by
// two colors. Pink wraps through 0° to also catch magenta strokes that
// render on the red side of the boundary.
func Default() Palette {
	return Palette{
		{Name: "Green", HSV: markerBand(80, 160)},
		{Name: "Cyan", HSV: markerBand(160, 200)},
		{Name: "Purple", HSV: markerBand(200, 280)},
		{Name: "Pink", HSV: markerBand(280, 10)},
		{Name: "Orange", HSV: markerBand(15, 40)},
		{Name: "Yellow", HSV: markerBand(40, 80)},
	}
}
