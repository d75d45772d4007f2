// Package pixelize implements the mosaic effect: the image is tiled into
// square cells and every cell is filled with the mean color of its pixels.
//
// The mean is computed exactly per cell rather than by shrinking and
// re-enlarging the image, which would smear colors across cell borders.
package pixelize

import (
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Block size limits accepted by the editor controls.
const (
	MinBlockSize     = 1
	DefaultBlockSize = 10
)

// Pixelize returns a copy of src tiled into blockSize x blockSize cells. Cells
// on the right and bottom edges are clipped to the image. Alpha is untouched.
// A blockSize below 1 is treated as 1, which leaves the image unchanged. A nil
// source yields nil.
func Pixelize(src *image.NRGBA, blockSize int) *image.NRGBA {
	if src == nil {
		return nil
	}
	dst := pixel.Copy(src)
	PixelizeBuffer(dst.Pix, dst.Rect.Dx(), dst.Rect.Dy(), blockSize)
	return dst
}

// PixelizeBuffer applies Pixelize in place on a compact RGBA buffer.
func PixelizeBuffer(pix []uint8, width, height, blockSize int) {
	if blockSize <= MinBlockSize || width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return
	}

	for y0 := 0; y0 < height; y0 += blockSize {
		y1 := min(y0+blockSize, height)
		for x0 := 0; x0 < width; x0 += blockSize {
			x1 := min(x0+blockSize, width)

			var r, g, b int
			for y := y0; y < y1; y++ {
				for i := (y*width + x0) * 4; i < (y*width+x1)*4; i += 4 {
					r += int(pix[i])
					g += int(pix[i+1])
					b += int(pix[i+2])
				}
			}

			n := (y1 - y0) * (x1 - x0)
			mr, mg, mb := roundDiv(r, n), roundDiv(g, n), roundDiv(b, n)

			for y := y0; y < y1; y++ {
				for i := (y*width + x0) * 4; i < (y*width+x1)*4; i += 4 {
					pix[i] = mr
					pix[i+1] = mg
					pix[i+2] = mb
				}
			}
		}
	}
}

// roundDiv returns sum/n rounded half up. sum is a sum of n bytes so the
// result always fits in a byte.
func roundDiv(sum, n int) uint8 {
	return uint8((2*sum + n) / (2 * n))
}
