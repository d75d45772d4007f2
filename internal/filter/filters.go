package filter

import (
	"math"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Each filter computes a target color per pixel and blends it with the
// original by intensity. Intermediate math is done in float64 and written back
// with pixel.Clamp8.

func sepia(pix []uint8, _, _ int, intensity float64) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])

		nr := math.Min(255, 0.393*r+0.769*g+0.189*b)
		ng := math.Min(255, 0.349*r+0.686*g+0.168*b)
		nb := math.Min(255, 0.272*r+0.534*g+0.131*b)

		write(pix[i:i+3], r, g, b, nr, ng, nb, intensity)
	}
}

func vintage(pix []uint8, _, _ int, intensity float64) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])

		// warm highlights
		wr := math.Min(255, r*1.1)
		wg := g * 0.9
		wb := b * 0.9

		// faded channel crossover
		br := 0.8*r + 0.2*g
		bg := 0.8*g + 0.1*r + 0.1*b
		bb := 0.8*b + 0.2*g

		write(pix[i:i+3], r, g, b, wr*0.7+br*0.3, wg*0.7+bg*0.3, wb*0.7+bb*0.3, intensity)
	}
}

func noir(pix []uint8, _, _ int, intensity float64) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])

		gray := pixel.Luma(r, g, b)
		if gray < 128 {
			gray *= 1 - 0.4*intensity
		} else {
			gray += (255 - gray) * 0.4 * intensity
		}

		write(pix[i:i+3], r, g, b, gray, gray, gray, intensity)
	}
}

func cool(pix []uint8, _, _ int, intensity float64) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])
		write(pix[i:i+3], r, g, b, r*0.9, g, math.Min(255, b*1.2), intensity)
	}
}

func warm(pix []uint8, _, _ int, intensity float64) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])
		write(pix[i:i+3], r, g, b, math.Min(255, r*1.2), math.Min(255, g*1.1), b*0.8, intensity)
	}
}

func emerald(pix []uint8, _, _ int, intensity float64) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])

		ng := math.Min(255, g*1.2)
		nr := r*0.8 + g*0.1
		nb := b*0.85 + g*0.15

		write(pix[i:i+3], r, g, b, nr, ng, nb, intensity)
	}
}

// fadedColor desaturates toward the pixel average and lifts the black point.
func fadedColor(r, g, b float64) (float64, float64, float64) {
	avg := pixel.Average(r, g, b)
	nr := r*0.7 + avg*0.3
	ng := g*0.7 + avg*0.3
	nb := b*0.7 + avg*0.3
	return math.Min(255, nr*0.9+20), math.Min(255, ng*0.9+20), math.Min(255, nb*0.9+20)
}

func faded(pix []uint8, _, _ int, intensity float64) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])
		fr, fg, fb := fadedColor(r, g, b)
		write(pix[i:i+3], r, g, b, fr, fg, fb, intensity)
	}
}

func dramatic(pix []uint8, _, _ int, intensity float64) {
	stretch := func(c float64) float64 {
		if c < 128 {
			return c * (1 - 0.5*intensity)
		}
		return c + (255-c)*0.5*intensity
	}

	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])

		nr, ng, nb := stretch(r), stretch(g), stretch(b)

		avg := pixel.Average(nr, ng, nb)
		fr := math.Min(255, avg+(nr-avg)*1.3)
		fg := math.Min(255, avg+(ng-avg)*1.3)
		fb := math.Min(255, avg+(nb-avg)*1.3)

		write(pix[i:i+3], r, g, b, fr, fg, fb, intensity)
	}
}

func dusk(pix []uint8, _, _ int, intensity float64) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])

		fr, fg, fb := fadedColor(r, g, b)

		nr := fr*0.9 + fb*0.1
		ng := fg*0.85 + fb*0.1
		nb := math.Min(255, fb*1.1+fr*0.1)

		write(pix[i:i+3], r, g, b, nr, ng, nb, intensity)
	}
}

func polaroid(pix []uint8, width, height int, intensity float64) {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return
	}

	cx := float64(width) / 2
	cy := float64(height) / 2
	maxDist := math.Hypot(cx, cy)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			r, g, b := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])

			dist := math.Hypot(float64(x)-cx, float64(y)-cy)
			vignette := math.Pow(math.Max(0, 1-dist/maxDist), 1.5)*0.8 + 0.2

			nr := math.Min(255, r*1.1) * vignette
			ng := g * vignette
			nb := b * 0.9 * vignette

			write(pix[i:i+3], r, g, b, nr, ng, nb, intensity)
		}
	}
}

// write blends the filtered color into the first three bytes of p.
func write(p []uint8, r, g, b, fr, fg, fb, intensity float64) {
	p[0] = pixel.Clamp8(pixel.Mix(r, fr, intensity))
	p[1] = pixel.Clamp8(pixel.Mix(g, fg, intensity))
	p[2] = pixel.Clamp8(pixel.Mix(b, fb, intensity))
}
