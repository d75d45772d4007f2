package crop

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Overlay styling.
const (
	borderWidth = 2
	handleSize  = 10
)

var (
	maskColor   = color.NRGBA{0, 0, 0, 128}
	borderColor = color.NRGBA{255, 255, 255, 255}
	handleFill  = color.NRGBA{255, 255, 255, 255}
	handleEdge  = color.NRGBA{0, 0, 0, 255}
)

// DrawOverlay paints the crop overlay onto dst, which should be a transparent
// surface the size of the image. Everything outside the region is covered by
// a 50% black mask, the region is outlined by a 2 pixel white border, and each
// handle is drawn as a 10x10 white square with a black outline.
func (c *Controller) DrawOverlay(dst draw.Image) {
	if dst == nil {
		return
	}
	b := dst.Bounds()
	fill := func(r image.Rectangle, col color.Color) {
		draw.Draw(dst, r.Add(b.Min).Intersect(b), image.NewUniform(col), image.Point{}, draw.Src)
	}

	hole := c.region.Rect()

	fill(image.Rect(0, 0, b.Dx(), b.Dy()), maskColor)
	fill(hole, color.Transparent)

	// The border is centered on the region outline.
	half := borderWidth / 2
	outer := hole.Inset(-half)
	inner := hole.Inset(borderWidth - half)
	fill(image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), borderColor)
	fill(image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), borderColor)
	fill(image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), borderColor)
	fill(image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), borderColor)

	for _, h := range c.region.Handles() {
		x := int(math.Round(h.X)) - handleSize/2
		y := int(math.Round(h.Y)) - handleSize/2
		box := image.Rect(x, y, x+handleSize, y+handleSize)
		fill(box, handleEdge)
		fill(box.Inset(1), handleFill)
	}
}

// Render returns a copy of src with the crop overlay composited on top. It
// is the preview shown while the user adjusts the region.
func (c *Controller) Render(src image.Image) *image.NRGBA {
	if pixel.Empty(src) {
		return nil
	}
	out := pixel.Clone(src)
	overlay := image.NewNRGBA(out.Rect)
	c.DrawOverlay(overlay)
	draw.Draw(out, out.Rect, overlay, image.Point{}, draw.Over)
	return out
}
