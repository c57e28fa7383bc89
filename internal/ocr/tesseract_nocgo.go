//go:build !cgo

package ocr

import (
	"fmt"
	"image"
)

const nocgoMessage = "built without cgo, Tesseract bindings are not compiled in"

// Tesseract is a stand-in for the native engine in builds without cgo.
// Construction always fails; the type exists so callers compile unchanged.
type Tesseract struct{}

// NewTesseract always fails in a non-cgo build.
func NewTesseract() (*Tesseract, error) {
	return nil, fmt.Errorf("tesseract unavailable: %s", nocgoMessage)
}

// RecognizeDigits always fails in a non-cgo build.
func (t *Tesseract) RecognizeDigits(img image.Image, psm PageSegMode) (string, error) {
	return "", fmt.Errorf("tesseract unavailable: %s", nocgoMessage)
}

// Close implements Engine.
func (t *Tesseract) Close() error { return nil }

// Probe reports that the native engine is not compiled in.
func Probe() Info {
	return Info{Available: false, Error: nocgoMessage}
}
