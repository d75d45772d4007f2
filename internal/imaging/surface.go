package imaging

import (
	"image"
	"io"

	"golang.org/x/image/draw"
)

// Surface is a mutable drawing target with explicit dimensions. It plays the
// role of a canvas: tools draw a source onto it, then read its pixels back,
// transform them and write them in again before the result is exported.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	img *image.NRGBA
}

// NewSurface returns a transparent width x height surface. Negative sizes
// are treated as zero.
func NewSurface(width, height int) *Surface {
	return &Surface{img: image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Resize changes the surface dimensions. Like a canvas, resizing discards
// the contents even when the size is unchanged.
func (s *Surface) Resize(width, height int) {
	s.img = image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// Clear makes every pixel transparent black.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// DrawImage draws src scaled to cover the whole surface, replacing what was
// there. Sources of the same size are copied exactly; other sizes are
// resampled with Catmull-Rom.
func (s *Surface) DrawImage(src image.Image) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	if sb.Dx() == s.Width() && sb.Dy() == s.Height() {
		if n, ok := src.(*image.NRGBA); ok {
			copyRows(s.img, n)
			return
		}
		draw.Draw(s.img, s.img.Rect, src, sb.Min, draw.Src)
		return
	}
	draw.CatmullRom.Scale(s.img, s.img.Rect, src, sb, draw.Src, nil)
}

// DrawImageAt composites src over the surface with its top-left corner at p.
func (s *Surface) DrawImageAt(src image.Image, p image.Point) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	draw.Draw(s.img, sb.Sub(sb.Min).Add(p), src, sb.Min, draw.Over)
}

// ReadPixels returns a copy of the surface pixels.
func (s *Surface) ReadPixels() *image.NRGBA {
	out := image.NewNRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// WritePixels replaces the surface with img, resizing the surface to match.
func (s *Surface) WritePixels(img *image.NRGBA) {
	if img == nil {
		return
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w != s.Width() || h != s.Height() {
		s.Resize(w, h)
	}
	copyRows(s.img, img)
}

// copyRows copies src into dst byte for byte. Both must have the same size.
func copyRows(dst, src *image.NRGBA) {
	w := src.Rect.Dx() * 4
	for y := 0; y < src.Rect.Dy(); y++ {
		so := y * src.Stride
		do := y * dst.Stride
		copy(dst.Pix[do:do+w], src.Pix[so:so+w])
	}
}

// Image returns the backing raster. Changes to it are visible on the surface.
func (s *Surface) Image() *image.NRGBA {
	return s.img
}

// Encode writes the surface contents to w in format f.
func (s *Surface) Encode(w io.Writer, f Format) error {
	return Encode(w, s.img, f)
}

// DataURL encodes the surface as a base64 data URL.
func (s *Surface) DataURL(f Format) (string, error) {
	res, err := EncodeResult(s.img, f)
	if err != nil {
		return "", err
	}
	return res.DataURL(), nil
}
