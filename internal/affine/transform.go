package affine

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Params describes a single transform applied to an image. Rotation is in
// degrees clockwise. ScaleX and ScaleY default to 1 when zero; a flip negates
// the matching scale.
type Params struct {
	FlipH    bool    `json:"flip_horizontal"`
	FlipV    bool    `json:"flip_vertical"`
	Rotation float64 `json:"rotation"`
	ScaleX   float64 `json:"scale_x,omitempty"`
	ScaleY   float64 `json:"scale_y,omitempty"`
}

// Identity reports whether p leaves an image unchanged.
func (p Params) Identity() bool {
	sx, sy := p.scales()
	return !p.FlipH && !p.FlipV && NormalizeDegrees(p.Rotation) == 0 && sx == 1 && sy == 1
}

func (p Params) scales() (float64, float64) {
	sx, sy := p.ScaleX, p.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// OutputSize returns the destination dimensions for an image of size w x h.
// Quarter turns swap width and height; every other angle keeps them.
func OutputSize(w, h int, rotation float64) (int, int) {
	switch NormalizeDegrees(rotation) {
	case 90, 270:
		return h, w
	}
	return w, h
}

// Matrix returns the forward transform from source to destination pixel
// space: move the source center to the origin, scale (with flips), rotate,
// then move the origin to the destination center.
func Matrix(w, h int, p Params) f64.Aff3 {
	nw, nh := OutputSize(w, h, p.Rotation)
	sx, sy := p.scales()
	if p.FlipH {
		sx = -sx
	}
	if p.FlipV {
		sy = -sy
	}
	cos, sin := sincos(p.Rotation)

	m := translate(-float64(w)/2, -float64(h)/2)
	m = mul(f64.Aff3{sx, 0, 0, 0, sy, 0}, m)
	m = mul(f64.Aff3{cos, -sin, 0, sin, cos, 0}, m)
	m = mul(translate(float64(nw)/2, float64(nh)/2), m)
	return m
}

// Transform returns src transformed by p. The destination is sized by
// OutputSize and filled by mapping each destination pixel center back into
// the source and taking the nearest pixel, so flips and quarter turns move
// pixels without resampling. Destination pixels that map outside the source
// stay transparent. A nil source yields nil.
func Transform(src *image.NRGBA, p Params) *image.NRGBA {
	if src == nil {
		return nil
	}
	src = pixel.Normalize(src)
	if p.Identity() {
		return pixel.Copy(src)
	}

	w, h := src.Rect.Dx(), src.Rect.Dy()
	nw, nh := OutputSize(w, h, p.Rotation)
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))

	inv, ok := invert(Matrix(w, h, p))
	if !ok {
		return dst
	}

	for y := 0; y < nh; y++ {
		dy := float64(y) + 0.5
		for x := 0; x < nw; x++ {
			dx := float64(x) + 0.5
			sx := int(math.Floor(inv[0]*dx + inv[1]*dy + inv[2]))
			sy := int(math.Floor(inv[3]*dx + inv[4]*dy + inv[5]))
			if sx < 0 || sx >= w || sy < 0 || sy >= h {
				continue
			}
			si := sy*src.Stride + sx*4
			di := y*dst.Stride + x*4
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}

// sincos returns exact values for multiples of 90 degrees so quarter turns
// map pixel centers onto pixel centers.
func sincos(deg float64) (cos, sin float64) {
	switch NormalizeDegrees(deg) {
	case 0:
		return 1, 0
	case 90:
		return 0, 1
	case 180:
		return -1, 0
	case 270:
		return 0, -1
	}
	sin, cos = math.Sincos(deg * math.Pi / 180)
	return cos, sin
}

func translate(tx, ty float64) f64.Aff3 {
	return f64.Aff3{1, 0, tx, 0, 1, ty}
}

// mul returns a·b, the transform that applies b first and then a.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func invert(m f64.Aff3) (f64.Aff3, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return f64.Aff3{}, false
	}
	a := m[4] / det
	b := -m[1] / det
	d := -m[3] / det
	e := m[0] / det
	return f64.Aff3{
		a, b, -(a*m[2] + b*m[5]),
		d, e, -(d*m[2] + e*m[5]),
	}, true
}
