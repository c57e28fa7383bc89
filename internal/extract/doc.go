// Package extract reads integer values out of a highlight region.
//
// Handwritten digits on colored highlighter backgrounds are unreliable for
// any single OCR configuration, so the extractor deliberately brute-forces
// a cross product of hypotheses: four quarter-turn rotations (the text may
// be written in any orientation), three preprocessing modes (normal and
// inverted contrast, plus histogram equalization for washed-out strokes),
// and several page segmentation modes. Every digit run recognized by any
// combination becomes a candidate; duplicates collapse to the first-seen
// occurrence and a plausibility range filters out one- and two-pixel noise
// reads.
//
// A failing combination is skipped silently; the sweep only stops early
// when the caller's context is done, in which case the candidates found so
// far are returned.
package extract
