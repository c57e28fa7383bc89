// Package ocr wraps the Tesseract engine behind a small interface tuned
// for reading digits.
//
// The Engine interface exists so the extraction pipeline can be exercised
// with a fake engine in tests and so the engine location is explicit
// configuration rather than a package-level global. The production
// implementation uses gosseract's native Tesseract bindings.
//
// # Thread Safety
//
// Tesseract creates a fresh gosseract client per recognition call, so a
// single Tesseract value is safe for concurrent use by the region worker
// pool. The per-call client cost is dwarfed by recognition itself.
//
// # Availability
//
// Tesseract is a native dependency that may be missing at runtime, and
// the bindings themselves need cgo. Builds without cgo get a stub engine
// whose constructor always fails, so pure-Go consumers of the other
// packages still compile. Probe reports availability up front; pipeline
// construction surfaces a missing engine as a fatal configuration error
// before any region is processed.
package ocr
