// Package pipeline runs the full highlight-totals pass over one image.
//
// A run is a single linear sweep: detect colored regions for every
// palette color, OCR every region for integer candidates, then fold the
// candidates into per-color value lists and totals. Runs are one-shot and
// share no state, so every image submission starts fresh.
//
// Region extraction is embarrassingly parallel (each region works on its
// own crop and owns its own output slot) and runs on a CPU-bounded worker
// pool; results are stitched back in region-discovery order so output is
// reproducible regardless of scheduling. A per-run timeout turns into a
// partial aggregation of whatever regions completed, never an error.
package pipeline
