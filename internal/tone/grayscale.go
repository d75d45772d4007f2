package tone

import (
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// DefaultDarkness is the darkness value that maps each pixel to its plain luma.
const DefaultDarkness = 3.0

// Grayscale returns a grayscale copy of src.
//
// Each pixel's R, G and B are replaced by pixel.Luma scaled by 3/darkness.
// darkness 3 (or any value <= 0) gives the plain luma; lower values brighten
// the result and higher values darken it. Alpha is untouched.
func Grayscale(src *image.NRGBA, darkness float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	dst := pixel.Copy(src)
	ToGray(dst.Pix, darkness)
	return dst
}

// ToGray applies Grayscale in place on a raw RGBA buffer.
func ToGray(pix []uint8, darkness float64) {
	if darkness <= 0 {
		darkness = DefaultDarkness
	}
	scale := DefaultDarkness / darkness

	for i := 0; i+3 < len(pix); i += 4 {
		g := pixel.Clamp8(pixel.Luma(float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])) * scale)
		pix[i] = g
		pix[i+1] = g
		pix[i+2] = g
	}
}
