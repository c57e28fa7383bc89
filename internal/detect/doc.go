// Package detect locates colored highlight regions in an image.
//
// For each reference color of a palette the detector builds a binary mask
// of matching pixels, groups the mask into 8-connected components, and
// reports the bounding box of every component that looks like it could
// hold a short run of handwritten or printed text. Components that are too
// small or have an extreme aspect ratio are rejected as noise; surviving
// boxes are padded so that character strokes touching the component edge
// are not clipped.
//
// # Coordinate System
//
// Regions are reported in the coordinate space of the input image (they
// honor a non-zero bounds origin). Within one color the regions are
// ordered top-to-bottom, then left-to-right, so repeated runs over the
// same image produce identical output.
//
// # Error Handling
//
// A nil or zero-area image and an invalid palette are caller errors and
// fail before any pixel work. A color whose mask is empty simply yields an
// empty region list.
package detect
