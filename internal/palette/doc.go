// Package palette extracts the dominant colors of an image.
//
// Every tenth pixel is converted to HSL and counted in a bucket keyed by the
// color rounded to the nearest 10 on each axis. Buckets are then walked from
// most to least common, skipping probable background and colors too close to
// one already picked, until the requested number of colors is found. The
// palette is returned sorted by hue.
package palette
