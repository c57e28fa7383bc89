package extract

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
	xdraw "golang.org/x/image/draw"
)

func toGrayColor(v uint8) color.Gray {
	return color.Gray{Y: v}
}

// Adaptive threshold window and bias. The 11-pixel window follows the
// stroke width of marker handwriting at 3x scale; the bias keeps flat
// highlight fill from flickering into foreground.
const (
	thresholdBlock = 11
	thresholdBias  = 5
)

// Preprocess turns a region crop into a clean binary image for OCR.
//
// The steps per mode: upscale, grayscale, optional inversion or histogram
// equalization, adaptive thresholding that leaves strokes as white
// foreground on a black background, a median pass to drop salt-and-pepper
// noise, and a dilation to reconnect strokes the thresholding broke apart.
func Preprocess(img image.Image, mode Mode, scale int) image.Image {
	scaled := upscale(img, scale)

	rgba := effect.Grayscale(scaled)
	if mode == ModeInverted {
		rgba = effect.Invert(rgba)
	}
	gray := toGray(rgba)
	if mode == ModeEqualized {
		gray = equalize(gray)
	}

	binary := adaptiveThreshold(gray, thresholdBlock, thresholdBias)

	denoised := effect.Median(binary, 3)
	dilated := effect.Dilate(denoised, 1)
	return dilated
}

// upscale resizes by an integer factor with Catmull-Rom interpolation.
// Factors below 2 are a no-op.
func upscale(img image.Image, scale int) image.Image {
	if scale < 2 {
		return img
	}
	src := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()*scale, src.Dy()*scale))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Over, nil)
	return dst
}

// toGray collapses an already-grayscale RGBA to a single channel.
func toGray(img *image.RGBA) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// R==G==B after effect.Grayscale; take R.
			gray.SetGray(x-bounds.Min.X, y-bounds.Min.Y, toGrayColor(img.RGBAAt(x, y).R))
		}
	}
	return gray
}

// equalize stretches the grayscale histogram over the full range via the
// cumulative distribution, lifting weak-contrast strokes before
// thresholding.
func equalize(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	total := width * height
	if total == 0 {
		return gray
	}

	var hist [256]int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			hist[gray.GrayAt(x, y).Y]++
		}
	}

	// Map each level through the CDF, anchored at the darkest occupied
	// level so the output still reaches black.
	var lut [256]uint8
	cdf := 0
	cdfMin := 0
	for v := 0; v < 256; v++ {
		if hist[v] > 0 {
			cdfMin = hist[v]
			break
		}
	}
	denom := total - cdfMin
	if denom <= 0 {
		return gray // single-level image, nothing to spread
	}
	for v := 0; v < 256; v++ {
		cdf += hist[v]
		scaled := (cdf - cdfMin) * 255 / denom
		if scaled < 0 {
			scaled = 0
		}
		if scaled > 255 {
			scaled = 255
		}
		lut[v] = uint8(scaled)
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.SetGray(x, y, toGrayColor(lut[gray.GrayAt(x, y).Y]))
		}
	}
	return out
}

// adaptiveThreshold binarizes against the local mean with inverted
// polarity: a pixel darker than the mean of its block-sized window minus
// the bias becomes white foreground, everything else black background.
// Strokes come out white so the later dilation grows them back together.
// An integral image keeps the window mean O(1) per pixel.
func adaptiveThreshold(gray *image.Gray, block, bias int) *image.Gray {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return out
	}

	// integral[y][x] = sum of all pixels above and left of (x, y).
	integral := make([][]int64, height+1)
	integral[0] = make([]int64, width+1)
	for y := 0; y < height; y++ {
		integral[y+1] = make([]int64, width+1)
		var rowSum int64
		for x := 0; x < width; x++ {
			rowSum += int64(gray.GrayAt(x, y).Y)
			integral[y+1][x+1] = integral[y][x+1] + rowSum
		}
	}

	half := block / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			x1 := max(0, x-half)
			y1 := max(0, y-half)
			x2 := min(width-1, x+half)
			y2 := min(height-1, y+half)
			count := int64((x2 - x1 + 1) * (y2 - y1 + 1))

			sum := integral[y2+1][x2+1] - integral[y1][x2+1] - integral[y2+1][x1] + integral[y1][x1]
			mean := sum / count

			if int64(gray.GrayAt(x, y).Y) > mean-int64(bias) {
				out.SetGray(x, y, toGrayColor(0))
			} else {
				out.SetGray(x, y, toGrayColor(255))
			}
		}
	}
	return out
}
