// Package affine flips and rotates images.
//
// A transform is expressed as a 2D affine matrix built around the image
// center (see Matrix) and applied by inverse mapping with nearest-pixel
// sampling, so horizontal and vertical flips and quarter turns are exact
// pixel permutations. Quarter turns swap the output width and height; other
// angles keep the original size and leave uncovered corners transparent.
//
// User requests arrive as Operations ("rotate_right" is always +90 degrees,
// "rotate_left" always -90) and are applied destructively to the current
// image. State records the net orientation for display.
package affine
