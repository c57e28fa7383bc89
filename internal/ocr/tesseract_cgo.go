//go:build cgo

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is the production Engine backed by gosseract's native
// Tesseract bindings.
type Tesseract struct {
	language string
}

// NewTesseract builds the Tesseract engine and verifies the native library
// is actually present and invocable. A nil engine and an error mean OCR is
// unavailable on this system; nothing downstream can run without it.
func NewTesseract() (*Tesseract, error) {
	info := Probe()
	if !info.Available {
		return nil, fmt.Errorf("tesseract unavailable: %s", info.Error)
	}
	return &Tesseract{language: "eng"}, nil
}

// RecognizeDigits hands the image to Tesseract as in-memory PNG bytes and
// returns whatever text the digit-whitelisted recognition produced.
func (t *Tesseract) RecognizeDigits(img image.Image, psm PageSegMode) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	// Digit runs aren't dictionary words; stop Tesseract from "correcting"
	// them into something else.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	if err := client.SetWhitelist(DigitWhitelist); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// Close implements Engine. The per-call clients are already closed.
func (t *Tesseract) Close() error { return nil }

// Probe checks whether the native Tesseract library is present and usable.
func Probe() (info Info) {
	defer func() {
		// gosseract panics rather than erroring when the native library is
		// broken; report that as plain unavailability.
		if r := recover(); r != nil {
			info = Info{Available: false, Error: fmt.Sprint(r)}
		}
	}()

	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	if version == "" {
		return Info{Available: false, Error: "tesseract reported no version"}
	}
	return Info{Available: true, Version: version}
}
