// Package pixel holds the per-channel color math shared by the tone, filter,
// glitch and palette transforms.
//
// Every transform in this module works on non-premultiplied RGBA buffers laid
// out row-major with 4 bytes per pixel (the layout of *image.NRGBA.Pix when the
// image has a compact stride and a (0,0) origin). Clone normalizes any
// image.Image into that layout.
//
// # Grayscale Standard
//
// Luma uses the ITU-R BT.601 perceptual weights (0.299, 0.587, 0.114). The
// grayscale tool and the noir filter both go through Luma so a gray produced by
// one matches the other.
package pixel

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// BT.601 luma weights.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Clamp8 rounds v to the nearest integer (halves away from zero) and clamps it
// to the 0-255 range of an 8-bit channel.
func Clamp8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Luma returns the perceptual gray level of an RGB triple.
func Luma(r, g, b float64) float64 {
	return LumaR*r + LumaG*g + LumaB*b
}

// Average returns the even-weight mean of an RGB triple.
func Average(r, g, b float64) float64 {
	return (r + g + b) / 3
}

// Mix linearly blends orig toward filtered by t (0 = orig, 1 = filtered).
func Mix(orig, filtered, t float64) float64 {
	return orig*(1-t) + filtered*t
}

// Clamp constrains v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clone converts any image into a compact *image.NRGBA anchored at (0,0).
// A nil image yields nil.
func Clone(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	return imaging.Clone(img)
}

// Copy duplicates an NRGBA image. When src is already compact and anchored at
// the origin the pixel slice is copied directly; otherwise it falls back to
// Clone.
func Copy(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Rect
	if b.Min != (image.Point{}) || src.Stride != 4*b.Dx() {
		return Clone(src)
	}
	dst := image.NewNRGBA(b)
	copy(dst.Pix, src.Pix)
	return dst
}

// Normalize returns src unchanged when it is already compact and anchored at
// the origin, and a normalized copy otherwise.
func Normalize(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	if src.Rect.Min == (image.Point{}) && src.Stride == 4*src.Rect.Dx() {
		return src
	}
	return Clone(src)
}

// Empty reports whether img is nil or has no pixels.
func Empty(img image.Image) bool {
	return img == nil || img.Bounds().Empty()
}
