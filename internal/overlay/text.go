package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Align is the horizontal alignment of text relative to its anchor point.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign returns the alignment named by s, or "" when s is not one of
// left, center or right.
func ParseAlign(s string) Align {
	switch a := Align(strings.ToLower(strings.TrimSpace(s))); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a
	}
	return ""
}

// Text effect constants.
const (
	// HighlightScale is the highlight box height as a multiple of the font size.
	HighlightScale = 1.2

	DefaultOutlineWidth   = 2.0
	DefaultOutlineColor   = "#000000"
	DefaultHighlightColor = "#ffff00"

	shadowOffset  = 2
	shadowBlur    = 2.0
	shadowOpacity = 0.5
)

// Effects toggles the decorations drawn with the text.
type Effects struct {
	Shadow         bool    `json:"shadow"`
	Outline        bool    `json:"outline"`
	OutlineColor   string  `json:"outline_color,omitempty"`
	OutlineWidth   float64 `json:"outline_width,omitempty"`
	Highlight      bool    `json:"highlight"`
	HighlightColor string  `json:"highlight_color,omitempty"`
}

// TextOptions describes a text overlay.
type TextOptions struct {
	Family Family  `json:"font_family"`
	Style  Style   `json:"font_style"`
	Size   float64 `json:"font_size"`
	Color  string  `json:"color"`
	Align  Align   `json:"text_align"`

	// X and Y place the anchor point as a percentage (0..100) of the image
	// width and height. The text is centered vertically on Y.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Effects Effects `json:"effects"`
}

// DefaultTextOptions returns bold white 30px text centered on the image
// with a shadow and a 2px black outline.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Family: Sans,
		Style:  Bold,
		Size:   30,
		Color:  "#ffffff",
		Align:  AlignCenter,
		X:      50,
		Y:      50,
		Effects: Effects{
			Shadow:         true,
			Outline:        true,
			OutlineColor:   DefaultOutlineColor,
			OutlineWidth:   DefaultOutlineWidth,
			HighlightColor: DefaultHighlightColor,
		},
	}
}

// Text returns a copy of src with text drawn on it. Blank text returns an
// unmodified copy and a nil source returns nil. Malformed colors and
// non-positive sizes are errors.
func Text(src *image.NRGBA, text string, opts TextOptions) (*image.NRGBA, error) {
	if src == nil {
		return nil, nil
	}
	out := pixel.Copy(src)
	if strings.TrimSpace(text) == "" {
		return out, nil
	}

	p, err := newPen(opts.Family, opts.Style, opts.Size, opts.Color, opts.Align)
	if err != nil {
		return nil, err
	}
	fx := opts.Effects
	if fx.Outline {
		c := fx.OutlineColor
		if c == "" {
			c = DefaultOutlineColor
		}
		if p.outline, err = parseColor("outline", c); err != nil {
			return nil, err
		}
		p.outlineWidth = fx.OutlineWidth
		if p.outlineWidth <= 0 {
			p.outlineWidth = DefaultOutlineWidth
		}
	}
	if fx.Highlight {
		c := fx.HighlightColor
		if c == "" {
			c = DefaultHighlightColor
		}
		if p.highlight, err = parseColor("highlight", c); err != nil {
			return nil, err
		}
	}
	p.shadow = fx.Shadow

	w, h := float64(out.Rect.Dx()), float64(out.Rect.Dy())
	x := opts.X / 100 * w
	y := opts.Y / 100 * h
	p.draw(out, text, x, p.middleBaseline(y))
	return out, nil
}

// pen draws one line of text with optional effects.
type pen struct {
	face  font.Face
	size  float64
	fill  color.NRGBA
	align Align

	shadow       bool
	outline      *color.NRGBA
	outlineWidth float64
	highlight    *color.NRGBA
}

func newPen(family Family, style Style, size float64, fill string, align Align) (*pen, error) {
	if family == "" {
		family = Sans
	}
	if style == "" {
		style = Normal
	}
	face, err := NewFace(family, style, size)
	if err != nil {
		return nil, err
	}
	c, err := parseColor("text", fill)
	if err != nil {
		return nil, err
	}
	if align == "" {
		align = AlignLeft
	}
	return &pen{face: face, size: size, fill: *c, align: align}, nil
}

func parseColor(what, s string) (*color.NRGBA, error) {
	c, err := imaging.ParseHexColor(s)
	if err != nil {
		return nil, fmt.Errorf("%s color: %w", what, err)
	}
	return &c, nil
}

// measure returns the advance width of text in pixels.
func (p *pen) measure(text string) float64 {
	return fromFixed(font.MeasureString(p.face, text))
}

// left returns the x where text starts when anchored at x.
func (p *pen) left(text string, x float64) float64 {
	switch p.align {
	case AlignCenter:
		return x - p.measure(text)/2
	case AlignRight:
		return x - p.measure(text)
	}
	return x
}

// middleBaseline returns the baseline that centers the glyph box on y.
func (p *pen) middleBaseline(y float64) float64 {
	m := p.face.Metrics()
	return y + (fromFixed(m.Ascent)-fromFixed(m.Descent))/2
}

// bounds returns the box text occupies when anchored at (x, baseline).
func (p *pen) bounds(text string, x, baseline float64) image.Rectangle {
	m := p.face.Metrics()
	left := p.left(text, x)
	return image.Rect(
		int(math.Floor(left)),
		int(math.Floor(baseline-fromFixed(m.Ascent))),
		int(math.Ceil(left+p.measure(text))),
		int(math.Ceil(baseline+fromFixed(m.Descent))),
	)
}

// draw renders text onto dst anchored at (x, baseline). The highlight box
// goes first, then the shadow of outline and glyphs, then the outline, then
// the glyphs.
func (p *pen) draw(dst draw.Image, text string, x, baseline float64) {
	b := dst.Bounds()
	left := p.left(text, x)

	if p.highlight != nil {
		m := p.face.Metrics()
		mid := baseline - (fromFixed(m.Ascent)-fromFixed(m.Descent))/2
		half := p.size * HighlightScale / 2
		box := image.Rect(
			int(math.Round(left)), int(math.Round(mid-half)),
			int(math.Round(left+p.measure(text))), int(math.Round(mid+half)),
		)
		draw.Draw(dst, box.Intersect(b), image.NewUniform(*p.highlight), image.Point{}, draw.Over)
	}

	glyphs := image.NewRGBA(b)
	draw.Draw(glyphs, b, image.Black, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.White,
		Face: p.face,
		Dot:  fixed.Point26_6{X: toFixed(left), Y: toFixed(baseline)},
	}
	d.DrawString(text)

	silhouette := glyphs
	if p.outline != nil {
		silhouette = effect.Dilate(glyphs, p.outlineWidth/2)
	}

	if p.shadow {
		blurred := blur.Gaussian(silhouette, shadowBlur)
		mask := luminanceMask(blurred, shadowOpacity)
		draw.DrawMask(dst, b, image.Black, image.Point{}, mask, b.Min.Sub(image.Pt(shadowOffset, shadowOffset)), draw.Over)
	}
	if p.outline != nil {
		draw.DrawMask(dst, b, image.NewUniform(*p.outline), image.Point{}, luminanceMask(silhouette, 1), b.Min, draw.Over)
	}
	draw.DrawMask(dst, b, image.NewUniform(p.fill), image.Point{}, luminanceMask(glyphs, 1), b.Min, draw.Over)
}

// luminanceMask turns white-on-black coverage into an alpha mask scaled by
// opacity. Only the red channel is read.
func luminanceMask(img *image.RGBA, opacity float64) *image.Alpha {
	mask := image.NewAlpha(img.Rect)
	for i := range mask.Pix {
		mask.Pix[i] = pixel.Clamp8(float64(img.Pix[i*4]) * opacity)
	}
	return mask
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
