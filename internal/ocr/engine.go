package ocr

import "image"

// PageSegMode selects Tesseract's page segmentation strategy, i.e. the
// layout it assumes the text has. The numeric values are Tesseract's own.
type PageSegMode int

// Segmentation modes useful for short digit runs. Highlighted numbers are
// sometimes a single tight word and sometimes scattered strokes, so the
// extractor tries several.
const (
	PSMSingleBlock   PageSegMode = 6  // One uniform block of text
	PSMSparseText    PageSegMode = 11 // Sparse text, find as much as possible
	PSMSparseTextOSD PageSegMode = 12 // Sparse text with orientation detection
	PSMRawLine       PageSegMode = 13 // Raw line, bypass layout analysis
)

// DigitWhitelist restricts recognition to numeric output.
const DigitWhitelist = "0123456789"

// Engine is a digits-only OCR engine.
//
// Implementations must tolerate concurrent RecognizeDigits calls or
// document that they do not; the pipeline runs one call per worker.
type Engine interface {
	// RecognizeDigits runs OCR on the image with the given segmentation
	// mode and returns the raw recognized text. Output may contain
	// whitespace and newlines between digit runs; the caller parses it.
	RecognizeDigits(img image.Image, psm PageSegMode) (string, error)

	// Close releases engine resources.
	Close() error
}

// Info describes OCR availability on this system.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Available is a convenience wrapper around Probe for tests that need to
// skip when the native engine is missing.
func Available() bool {
	return Probe().Available
}
