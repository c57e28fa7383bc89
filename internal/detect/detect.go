package detect

import (
	"fmt"
	"image"
	"sort"

	"github.com/noblearch/figtotals/internal/palette"
)

// Region is the bounding box of one detected highlight, in image
// coordinates.
type Region struct {
	X      int `json:"x"`      // Left edge
	Y      int `json:"y"`      // Top edge
	Width  int `json:"width"`  // Horizontal extent in pixels
	Height int `json:"height"` // Vertical extent in pixels
}

// Rect returns the region as a standard image rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Options controls region filtering and padding.
type Options struct {
	// MinWidth and MinHeight reject components smaller than a plausible
	// digit run in either dimension.
	MinWidth  int
	MinHeight int

	// MinAspect and MaxAspect bound width/height. Valid text regions are
	// neither hairline-thin nor extremely elongated.
	MinAspect float64
	MaxAspect float64

	// Padding is added on every side of a surviving bounding box, clamped
	// to the image bounds, so strokes at the component edge survive the
	// crop.
	Padding int
}

// DefaultOptions returns the filter thresholds tuned for FigJam
// screenshots at typical zoom levels.
func DefaultOptions() Options {
	return Options{
		MinWidth:  20,
		MinHeight: 20,
		MinAspect: 0.1,
		MaxAspect: 10,
		Padding:   10,
	}
}

// Detect finds candidate highlight regions for every palette color.
//
// The returned map has one entry per palette color; a color with no
// matching pixels maps to an empty list. The input image is only read,
// never modified.
func Detect(img image.Image, pal palette.Palette, opts Options) (map[string][]Region, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("zero-area image (%dx%d)", width, height)
	}
	if err := pal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}

	out := make(map[string][]Region, len(pal))
	for _, ref := range pal {
		mask := buildMask(img, ref)
		boxes := components(mask, width, height)

		regions := make([]Region, 0, len(boxes))
		for _, b := range boxes {
			w := b.maxX - b.minX + 1
			h := b.maxY - b.minY + 1
			if w < opts.MinWidth || h < opts.MinHeight {
				continue
			}
			aspect := float64(w) / float64(h)
			if aspect < opts.MinAspect || aspect > opts.MaxAspect {
				continue
			}
			regions = append(regions, pad(b, opts.Padding, width, height, bounds.Min))
		}

		sort.Slice(regions, func(i, j int) bool {
			if regions[i].Y != regions[j].Y {
				return regions[i].Y < regions[j].Y
			}
			return regions[i].X < regions[j].X
		})
		out[ref.Name] = regions
	}
	return out, nil
}

// buildMask marks every pixel that belongs to the reference color.
// The mask is indexed y*width+x relative to the bounds origin.
func buildMask(img image.Image, ref palette.ReferenceColor) []bool {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	mask := make([]bool, width*height)

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			if ref.Matches(img.At(x+bounds.Min.X, y+bounds.Min.Y)) {
				mask[row+x] = true
			}
		}
	}
	return mask
}

// box is a component bounding box in mask coordinates.
type box struct {
	minX, minY, maxX, maxY int
}

// components groups mask pixels into 8-connected components and returns
// their bounding boxes, in scan order of each component's first pixel.
func components(mask []bool, width, height int) []box {
	visited := make([]bool, len(mask))
	var boxes []box

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if !mask[idx] || visited[idx] {
				continue
			}
			boxes = append(boxes, flood(mask, visited, x, y, width, height))
		}
	}
	return boxes
}

// flood walks one connected component with an explicit stack (recursion
// would overflow on large highlight fills) and tracks its bounding box.
func flood(mask, visited []bool, startX, startY, width, height int) box {
	b := box{minX: startX, minY: startY, maxX: startX, maxY: startY}
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		idx := p.Y*width + p.X
		if visited[idx] || !mask[idx] {
			continue
		}
		visited[idx] = true

		if p.X < b.minX {
			b.minX = p.X
		}
		if p.X > b.maxX {
			b.maxX = p.X
		}
		if p.Y < b.minY {
			b.minY = p.Y
		}
		if p.Y > b.maxY {
			b.maxY = p.Y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return b
}

// pad expands a bounding box by the configured margin, clamps it to the
// image, and shifts it into image coordinates.
func pad(b box, padding, width, height int, origin image.Point) Region {
	x1 := max(0, b.minX-padding)
	y1 := max(0, b.minY-padding)
	x2 := min(width, b.maxX+1+padding)
	y2 := min(height, b.maxY+1+padding)
	return Region{
		X:      x1 + origin.X,
		Y:      y1 + origin.Y,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}
