package editor

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// Run renders tool from src onto dst. When export is true the surface is
// encoded in format and returned as a data URL; otherwise the result is
// only left on dst and Run returns "".
//
// A nil source or surface is a no-op returning "". A nil tool draws the
// source unchanged.
func Run(tool Tool, src *image.NRGBA, dst *imaging.Surface, export bool, format imaging.Format) (string, error) {
	if src == nil || dst == nil {
		return "", nil
	}
	if tool == nil {
		tool = Source{}
	}
	if err := tool.Render(src, dst); err != nil {
		return "", fmt.Errorf("%s: %w", tool.Name(), err)
	}
	Logger().Debug("rendered", "tool", tool.Name(), "width", dst.Width(), "height", dst.Height())

	if !export {
		return "", nil
	}
	url, err := dst.DataURL(format)
	if err != nil {
		return "", fmt.Errorf("%s: export: %w", tool.Name(), err)
	}
	return url, nil
}
