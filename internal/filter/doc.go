// Package filter provides the bank of stylistic color filters.
//
// Filters are registered by Kind and share one shape: a Func that mutates a
// compact RGBA buffer in place and blends its result with the original pixel
// by an intensity between 0 and 1:
//
//	out = original*(1-intensity) + filtered*intensity
//
// Apply is the pure entry point: it copies the source and returns the
// filtered copy. None, unknown kinds and zero intensity are pass-through so a
// caller can always render the result.
//
// # Filters
//
//   - sepia: classic sepia matrix
//   - vintage: warm highlights mixed with a faded channel crossover
//   - noir: luma, then contrast pushed 40% away from the 128 midpoint
//   - cool, warm: opposite red/blue tints
//   - emerald: green boost cross-fed into red and blue
//   - faded: pulled toward the pixel average and lightened
//   - dramatic: contrast stretch followed by a 1.3x saturation boost
//   - dusk: a full-strength faded look with a blue-leaning cross-mix
//   - polaroid: warm tint under a radial vignette
//
// Preview and Previews render the small thumbnails shown next to each filter
// name, scaled to a 100 pixel longer side at 0.7 intensity.
package filter
