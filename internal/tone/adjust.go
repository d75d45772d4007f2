package tone

import (
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Slider range shared by every tone parameter.
const (
	MinAdjust = -100.0
	MaxAdjust = 100.0
)

// BrightnessContrast returns a copy of src with brightness and contrast applied.
//
// Parameters:
//   - src: Source image. A nil source yields nil.
//   - brightness: -100 (black) to 100 (white). 0 leaves channels unchanged.
//   - contrast: -100 (flat gray) to 100 (doubled contrast). 0 leaves channels unchanged.
//
// Values outside -100..100 are clamped. Alpha is never modified.
//
// # Formula
//
// Brightness is applied first, scaling toward white for positive values and
// toward black for negative values:
//
//	b > 0: p' = p + (255-p) * b/100
//	b < 0: p' = p * (1 + b/100)
//
// Contrast is then applied around the 128 midpoint:
//
//	f  = (contrast + 100) / 100
//	p" = p' * f + 128 * (1 - f)
func BrightnessContrast(src *image.NRGBA, brightness, contrast float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	dst := pixel.Copy(src)
	AdjustBrightnessContrast(dst.Pix, brightness, contrast)
	return dst
}

// AdjustBrightnessContrast applies BrightnessContrast in place on a raw RGBA buffer.
func AdjustBrightnessContrast(pix []uint8, brightness, contrast float64) {
	brightness = pixel.Clamp(brightness, MinAdjust, MaxAdjust)
	contrast = pixel.Clamp(contrast, MinAdjust, MaxAdjust)
	if brightness == 0 && contrast == 0 {
		return
	}

	b := brightness / 100
	factor := (contrast + 100) / 100
	correction := 128 * (1 - factor)

	// Every channel value maps through the same curve, so precompute it.
	var lut [256]uint8
	for v := 0; v < 256; v++ {
		lut[v] = pixel.Clamp8(applyBrightness(float64(v), b)*factor + correction)
	}

	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = lut[pix[i]]
		pix[i+1] = lut[pix[i+1]]
		pix[i+2] = lut[pix[i+2]]
	}
}

func applyBrightness(p, b float64) float64 {
	switch {
	case b > 0:
		return p + (255-p)*b
	case b < 0:
		return p * (1 + b)
	}
	return p
}

// ColorBalance returns a copy of src with each RGB channel shifted independently.
//
// Each adjustment ranges from -100 to 100 and is converted to an additive
// offset of adj*2.55 (so 100 adds a full 255). Results are clamped to 0-255
// and alpha is untouched. All-zero adjustments return an unmodified copy.
func ColorBalance(src *image.NRGBA, red, green, blue float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	dst := pixel.Copy(src)
	AdjustColorBalance(dst.Pix, red, green, blue)
	return dst
}

// AdjustColorBalance applies ColorBalance in place on a raw RGBA buffer.
func AdjustColorBalance(pix []uint8, red, green, blue float64) {
	red = pixel.Clamp(red, MinAdjust, MaxAdjust)
	green = pixel.Clamp(green, MinAdjust, MaxAdjust)
	blue = pixel.Clamp(blue, MinAdjust, MaxAdjust)
	if red == 0 && green == 0 && blue == 0 {
		return
	}

	var lutR, lutG, lutB [256]uint8
	for v := 0; v < 256; v++ {
		lutR[v] = pixel.Clamp8(float64(v) + red*2.55)
		lutG[v] = pixel.Clamp8(float64(v) + green*2.55)
		lutB[v] = pixel.Clamp8(float64(v) + blue*2.55)
	}

	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = lutR[pix[i]]
		pix[i+1] = lutG[pix[i+1]]
		pix[i+2] = lutB[pix[i+2]]
	}
}
