package filter

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

const (
	// PreviewSize is the longer side of a preview thumbnail in pixels.
	PreviewSize = 100

	// PreviewIntensity is the filter intensity used for thumbnails.
	PreviewIntensity = 0.7
)

// Preview scales img so its longer side is PreviewSize pixels and applies kind
// at PreviewIntensity. Images are scaled up as well as down. An unknown kind
// returns the scaled image unfiltered. A nil or empty image yields nil.
func Preview(img image.Image, kind Kind) *image.NRGBA {
	thumb := thumbnail(img)
	if thumb == nil {
		return nil
	}
	ApplyBuffer(thumb.Pix, thumb.Rect.Dx(), thumb.Rect.Dy(), kind, PreviewIntensity)
	return thumb
}

// Thumbnail is a filter preview keyed by its kind.
type Thumbnail struct {
	Info  Info
	Image *image.NRGBA
}

// Previews builds a thumbnail for every registered filter. The source is
// scaled once and each filter runs on its own copy.
func Previews(img image.Image) []Thumbnail {
	thumb := thumbnail(img)
	if thumb == nil {
		return nil
	}

	out := make([]Thumbnail, 0, len(bank))
	for _, e := range bank {
		dst := pixel.Copy(thumb)
		e.fn(dst.Pix, dst.Rect.Dx(), dst.Rect.Dy(), PreviewIntensity)
		out = append(out, Thumbnail{Info: e.info, Image: dst})
	}
	return out
}

func thumbnail(img image.Image) *image.NRGBA {
	if pixel.Empty(img) {
		return nil
	}

	w, h := previewDims(img.Bounds().Dx(), img.Bounds().Dy())
	if w == img.Bounds().Dx() && h == img.Bounds().Dy() {
		return pixel.Clone(img)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// previewDims scales (w, h) so the longer side equals PreviewSize, keeping the
// aspect ratio and never returning a zero dimension.
func previewDims(w, h int) (int, int) {
	if w >= h {
		nh := int(math.Round(float64(h) * PreviewSize / float64(w)))
		return PreviewSize, max(nh, 1)
	}
	nw := int(math.Round(float64(w) * PreviewSize / float64(h)))
	return max(nw, 1), PreviewSize
}
