package extract

import (
	"image"
	"image/color"
	"testing"

	"github.com/anthonynsimon/bild/effect"
)

// grayGradient builds a horizontal gradient for threshold tests.
func grayGradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, toGrayColor(uint8(x*255/(w-1))))
		}
	}
	return img
}

func TestAdaptiveThreshold_Binary(t *testing.T) {
	out := adaptiveThreshold(grayGradient(64, 32), thresholdBlock, thresholdBias)

	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			v := out.GrayAt(x, y).Y
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, output must be binary", x, y, v)
			}
		}
	}
}

func TestAdaptiveThreshold_DarkStrokeOnLightBackground(t *testing.T) {
	// Light field with a dark vertical stroke: inverted polarity puts the
	// stroke in the white foreground and the field in the black background.
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x >= 18 && x < 22 {
				img.SetGray(x, y, toGrayColor(30))
			} else {
				img.SetGray(x, y, toGrayColor(220))
			}
		}
	}

	out := adaptiveThreshold(img, thresholdBlock, thresholdBias)

	if out.GrayAt(20, 20).Y != 255 {
		t.Error("stroke pixel should threshold to white foreground")
	}
	if out.GrayAt(5, 20).Y != 0 {
		t.Error("background pixel should threshold to black")
	}
}

func TestPreprocess_MorphologyReconnectsBrokenStroke(t *testing.T) {
	// A dark 3px vertical stroke on a light field, interrupted by a one
	// pixel gap. The dilation must grow the stroke across the gap, never
	// eat it away.
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.Gray{Y: 220})
		}
	}
	for y := 5; y < 35; y++ {
		if y == 20 {
			continue // the break
		}
		for x := 18; x < 21; x++ {
			img.Set(x, y, color.Gray{Y: 30})
		}
	}

	binary := adaptiveThreshold(toGray(effect.Grayscale(img)), thresholdBlock, thresholdBias)
	before := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if binary.GrayAt(x, y).Y == 255 {
				before++
			}
		}
	}
	if before == 0 {
		t.Fatal("thresholding lost the stroke entirely")
	}

	out := Preprocess(img, ModeStandard, 1)
	after := 0
	bridged := false
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			r, _, _, _ := out.At(x, y).RGBA()
			if r>>8 > 128 {
				after++
				if y == 20 && x >= 18 && x < 21 {
					bridged = true
				}
			}
		}
	}

	if after < before {
		t.Errorf("morphology shrank the stroke: %d foreground pixels before, %d after", before, after)
	}
	if !bridged {
		t.Error("gap in the stroke was not reconnected")
	}
}

func TestEqualize_SpreadsRange(t *testing.T) {
	// A low-contrast image squeezed into [100, 140].
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetGray(x, y, toGrayColor(uint8(100+(x+y)%41)))
		}
	}

	out := equalize(img)

	lo, hi := uint8(255), uint8(0)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			v := out.GrayAt(x, y).Y
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if hi != 255 {
		t.Errorf("equalized maximum = %d, want 255", hi)
	}
	if hi-lo < 200 {
		t.Errorf("equalized range = [%d, %d], contrast was not spread", lo, hi)
	}
}

func TestEqualize_UniformImageUnchanged(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, toGrayColor(128))
		}
	}

	out := equalize(img)
	if out.GrayAt(8, 8).Y != 128 {
		t.Errorf("single-level image changed to %d", out.GrayAt(8, 8).Y)
	}
}

func TestPreprocess_ScalesDimensions(t *testing.T) {
	img := whiteRegion(20, 10)

	for _, mode := range []Mode{ModeStandard, ModeInverted, ModeEqualized} {
		out := Preprocess(img, mode, 3)
		b := out.Bounds()
		if b.Dx() != 60 || b.Dy() != 30 {
			t.Errorf("mode %s: output %dx%d, want 60x30", mode, b.Dx(), b.Dy())
		}
	}
}

func TestUpscale_SmallFactorNoOp(t *testing.T) {
	img := whiteRegion(20, 10)
	if out := upscale(img, 1); out != image.Image(img) {
		t.Error("scale 1 should return the input unchanged")
	}
}
