package editor

import (
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/affine"
	"github.com/ironsheep/image-edit-mcp/internal/crop"
	"github.com/ironsheep/image-edit-mcp/internal/filter"
	"github.com/ironsheep/image-edit-mcp/internal/glitch"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/overlay"
	"github.com/ironsheep/image-edit-mcp/internal/pixelize"
	"github.com/ironsheep/image-edit-mcp/internal/tone"
)

// Tool renders one editing operation. Render sizes dst to src, draws the
// result onto it and leaves src untouched.
type Tool interface {
	Name() string
	Render(src *image.NRGBA, dst *imaging.Surface) error
}

// prepare sizes dst to src and draws src onto it. The returned raster is
// the surface itself, ready for in-place pixel work.
func prepare(src *image.NRGBA, dst *imaging.Surface) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if dst.Width() != w || dst.Height() != h {
		dst.Resize(w, h)
	}
	dst.DrawImage(src)
	return dst.Image()
}

// Source draws the image as is.
type Source struct{}

func (Source) Name() string { return "source" }

func (Source) Render(src *image.NRGBA, dst *imaging.Surface) error {
	prepare(src, dst)
	return nil
}

// BrightnessContrast adjusts brightness then contrast, both -100..100.
type BrightnessContrast struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
}

func (BrightnessContrast) Name() string { return "brightness_contrast" }

func (t BrightnessContrast) Render(src *image.NRGBA, dst *imaging.Surface) error {
	img := prepare(src, dst)
	tone.AdjustBrightnessContrast(img.Pix, t.Brightness, t.Contrast)
	return nil
}

// ColorBalance shifts each channel by -100..100.
type ColorBalance struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

func (ColorBalance) Name() string { return "color_balance" }

func (t ColorBalance) Render(src *image.NRGBA, dst *imaging.Surface) error {
	img := prepare(src, dst)
	tone.AdjustColorBalance(img.Pix, t.Red, t.Green, t.Blue)
	return nil
}

// Grayscale converts to luma. Darkness 0 means tone.DefaultDarkness.
type Grayscale struct {
	Darkness float64 `json:"darkness"`
}

func (Grayscale) Name() string { return "grayscale" }

func (t Grayscale) Render(src *image.NRGBA, dst *imaging.Surface) error {
	img := prepare(src, dst)
	tone.ToGray(img.Pix, t.Darkness)
	return nil
}

// Filter applies a FilterBank filter at an intensity in 0..1.
type Filter struct {
	Kind      filter.Kind `json:"filter"`
	Intensity float64     `json:"intensity"`
}

func (Filter) Name() string { return "filter" }

func (t Filter) Render(src *image.NRGBA, dst *imaging.Surface) error {
	img := prepare(src, dst)
	filter.ApplyBuffer(img.Pix, img.Rect.Dx(), img.Rect.Dy(), t.Kind, t.Intensity)
	return nil
}

// Glitch runs the glitch stages with Engine, or a clock-seeded engine
// when Engine is nil.
type Glitch struct {
	Params glitch.Params
	Engine *glitch.Engine
}

func (Glitch) Name() string { return "glitch" }

func (t Glitch) Render(src *image.NRGBA, dst *imaging.Surface) error {
	e := t.Engine
	if e == nil {
		e = defaultEngine
	}
	dst.WritePixels(e.Apply(src, t.Params))
	return nil
}

var defaultEngine = glitch.New()

// Pixelize replaces each BlockSize cell with its mean color.
type Pixelize struct {
	BlockSize int `json:"block_size"`
}

func (Pixelize) Name() string { return "pixelize" }

func (t Pixelize) Render(src *image.NRGBA, dst *imaging.Surface) error {
	img := prepare(src, dst)
	pixelize.PixelizeBuffer(img.Pix, img.Rect.Dx(), img.Rect.Dy(), t.BlockSize)
	return nil
}

// Transform flips and rotates the image. The surface takes the rotated size.
type Transform struct {
	Params affine.Params
}

func (Transform) Name() string { return "transform" }

func (t Transform) Render(src *image.NRGBA, dst *imaging.Surface) error {
	dst.WritePixels(affine.Transform(src, t.Params))
	return nil
}

// Text draws a text overlay.
type Text struct {
	Text    string
	Options overlay.TextOptions
}

func (Text) Name() string { return "text" }

func (t Text) Render(src *image.NRGBA, dst *imaging.Surface) error {
	out, err := overlay.Text(src, t.Text, t.Options)
	if err != nil {
		return err
	}
	dst.WritePixels(out)
	return nil
}

// Watermark draws a text or image watermark. Locator is consulted for
// automatic placement; it may be nil.
type Watermark struct {
	Options overlay.WatermarkOptions
	Locator overlay.TextLocator
}

func (Watermark) Name() string { return "watermark" }

func (t Watermark) Render(src *image.NRGBA, dst *imaging.Surface) error {
	var loc overlay.TextLocator
	if t.Locator != nil {
		loc = loggingLocator{t.Locator}
	}
	out, err := overlay.Watermark(src, t.Options, loc)
	if err != nil {
		return err
	}
	dst.WritePixels(out)
	return nil
}

// loggingLocator reports detection failures, which the watermark otherwise
// absorbs by falling back to the bottom right corner.
type loggingLocator struct {
	overlay.TextLocator
}

func (l loggingLocator) TextRegions(img image.Image) ([]image.Rectangle, error) {
	regions, err := l.TextLocator.TextRegions(img)
	if err != nil {
		Logger().Warn("text detection failed, using default watermark position", "error", err)
		return nil, err
	}
	Logger().Debug("text detection", "regions", len(regions))
	return regions, nil
}

// CropOverlay shows the image with the crop mask, border and handles of
// Controller drawn on top.
type CropOverlay struct {
	Controller *crop.Controller
}

func (CropOverlay) Name() string { return "crop" }

func (t CropOverlay) Render(src *image.NRGBA, dst *imaging.Surface) error {
	img := prepare(src, dst)
	if t.Controller != nil {
		dst.WritePixels(t.Controller.Render(img))
	}
	return nil
}
