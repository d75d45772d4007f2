package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// MarkKind selects a text or an image watermark.
type MarkKind string

const (
	TextMark  MarkKind = "text"
	ImageMark MarkKind = "image"
)

// Position is where a watermark is anchored.
type Position string

const (
	TopLeft      Position = "topLeft"
	TopCenter    Position = "topCenter"
	TopRight     Position = "topRight"
	CenterLeft   Position = "centerLeft"
	Center       Position = "center"
	CenterRight  Position = "centerRight"
	BottomLeft   Position = "bottomLeft"
	BottomCenter Position = "bottomCenter"
	BottomRight  Position = "bottomRight"

	// Auto picks the corner that covers the least detected text.
	Auto Position = "auto"
)

// Positions lists the fixed positions, row by row.
func Positions() []Position {
	return []Position{
		TopLeft, TopCenter, TopRight,
		CenterLeft, Center, CenterRight,
		BottomLeft, BottomCenter, BottomRight,
	}
}

// ParsePosition accepts camelCase, snake_case and kebab-case names such as
// "bottomRight", "bottom_right" or "bottom-right". Unknown names fall back
// to BottomRight.
func ParsePosition(s string) Position {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	if key == "auto" {
		return Auto
	}
	for _, p := range Positions() {
		if strings.ToLower(string(p)) == key {
			return p
		}
	}
	return BottomRight
}

// row and column return -1, 0 or 1 for top/left, center and bottom/right.
func (p Position) row() int {
	switch {
	case strings.HasPrefix(string(p), "top"):
		return -1
	case strings.HasPrefix(string(p), "center"):
		return 0
	}
	return 1
}

func (p Position) column() int {
	switch {
	case strings.HasSuffix(string(p), "Left"):
		return -1
	case p == Center || p == TopCenter || p == BottomCenter:
		return 0
	}
	return 1
}

// Watermark defaults.
const (
	DefaultOpacity   = 70.0
	DefaultPadding   = 20.0
	DefaultMarkText  = "© Copyright"
	DefaultMarkSize  = 24.0
	DefaultImageSize = 20.0
)

// WatermarkOptions describes a watermark.
type WatermarkOptions struct {
	Kind     MarkKind `json:"type"`
	Position Position `json:"position"`
	Opacity  float64  `json:"opacity"` // 0..100
	Padding  float64  `json:"padding"` // pixels from the edge

	Text   string  `json:"text,omitempty"`
	Family Family  `json:"text_font,omitempty"`
	Style  Style   `json:"text_style,omitempty"`
	Size   float64 `json:"text_size,omitempty"`
	Color  string  `json:"text_color,omitempty"`

	// Align defaults to the side of the position: left positions align
	// left, right positions align right, the middle column centers.
	Align Align `json:"text_align,omitempty"`

	Image image.Image `json:"-"`

	// ImageSize is the longer side of the image mark as a percentage of the
	// smaller canvas dimension.
	ImageSize float64 `json:"image_size,omitempty"`
}

// DefaultWatermarkOptions returns a bold white "© Copyright" text mark at
// the bottom right, 70% opaque with 20px padding.
func DefaultWatermarkOptions() WatermarkOptions {
	return WatermarkOptions{
		Kind:      TextMark,
		Position:  BottomRight,
		Opacity:   DefaultOpacity,
		Padding:   DefaultPadding,
		Text:      DefaultMarkText,
		Family:    Sans,
		Style:     Bold,
		Size:      DefaultMarkSize,
		Color:     "#ffffff",
		ImageSize: DefaultImageSize,
	}
}

// TextLocator finds regions of an image that contain text.
type TextLocator interface {
	TextRegions(img image.Image) ([]image.Rectangle, error)
}

// autoCandidates are tried in order; the first with the least overlap wins.
var autoCandidates = []Position{BottomRight, BottomLeft, TopRight, TopLeft}

// Watermark returns a copy of src with a watermark composited at the given
// opacity. A text mark without text, an image mark without an image, and
// opacity 0 all return an unmodified copy. A nil source returns nil.
//
// With Position Auto the locator is asked for text regions and the corner
// covering the fewest text pixels is used. Without a locator, or when it
// fails, the mark goes to the bottom right.
func Watermark(src *image.NRGBA, opts WatermarkOptions, locator TextLocator) (*image.NRGBA, error) {
	if src == nil {
		return nil, nil
	}
	out := pixel.Copy(src)

	opacity := pixel.Clamp(opts.Opacity, 0, 100)
	if opacity == 0 {
		return out, nil
	}

	var m mark
	switch opts.Kind {
	case ImageMark:
		if opts.Image == nil {
			return out, nil
		}
		m = newImageMark(opts, out.Rect.Dx(), out.Rect.Dy())
	case TextMark, "":
		if strings.TrimSpace(opts.Text) == "" {
			return out, nil
		}
		tm, err := newTextMark(opts, out.Rect.Dx(), out.Rect.Dy())
		if err != nil {
			return nil, err
		}
		m = tm
	default:
		return nil, fmt.Errorf("unknown watermark type %q", opts.Kind)
	}

	pos := opts.Position
	if pos == Auto {
		pos = pickCorner(src, m, max(opts.Padding, 0), locator)
	}

	layer := image.NewNRGBA(out.Rect)
	m.draw(layer, pos, max(opts.Padding, 0))

	alpha := image.NewUniform(color.Alpha{A: pixel.Clamp8(opacity / 100 * 255)})
	draw.DrawMask(out, out.Rect, layer, image.Point{}, alpha, image.Point{}, draw.Over)
	return out, nil
}

// mark is something that can be placed at a Position.
type mark interface {
	bounds(pos Position, padding float64) image.Rectangle
	draw(dst *image.NRGBA, pos Position, padding float64)
}

type textMark struct {
	pen  *pen
	text string
	auto bool // align follows the position
	w, h int  // canvas
}

func newTextMark(opts WatermarkOptions, w, h int) (*textMark, error) {
	size := opts.Size
	if size <= 0 {
		size = DefaultMarkSize
	}
	c := opts.Color
	if c == "" {
		c = "#ffffff"
	}
	style := opts.Style
	if style == "" {
		style = Bold
	}
	p, err := newPen(opts.Family, style, size, c, opts.Align)
	if err != nil {
		return nil, err
	}
	return &textMark{pen: p, text: opts.Text, auto: opts.Align == "", w: w, h: h}, nil
}

// anchor returns the text anchor and baseline for pos. The baseline sits
// half a font size inside the padding at the top and bottom.
func (m *textMark) anchor(pos Position, padding float64) (float64, float64) {
	if m.auto {
		m.pen.align = [...]Align{AlignLeft, AlignCenter, AlignRight}[pos.column()+1]
	}

	var x, y float64
	switch pos.column() {
	case -1:
		x = padding
	case 0:
		x = float64(m.w) / 2
	default:
		x = float64(m.w) - padding
	}
	switch pos.row() {
	case -1:
		y = padding + m.pen.size/2
	case 0:
		y = float64(m.h) / 2
	default:
		y = float64(m.h) - padding - m.pen.size/2
	}
	return x, y
}

func (m *textMark) bounds(pos Position, padding float64) image.Rectangle {
	x, y := m.anchor(pos, padding)
	return m.pen.bounds(m.text, x, y)
}

func (m *textMark) draw(dst *image.NRGBA, pos Position, padding float64) {
	x, y := m.anchor(pos, padding)
	m.pen.draw(dst, m.text, x, y)
}

type imageMark struct {
	img  image.Image
	w, h int // canvas
}

// newImageMark scales the watermark image so its longer side is ImageSize
// percent of the smaller canvas dimension.
func newImageMark(opts WatermarkOptions, w, h int) *imageMark {
	pct := opts.ImageSize
	if pct <= 0 {
		pct = DefaultImageSize
	}
	side := float64(min(w, h)) * pct / 100

	b := opts.Image.Bounds()
	aspect := float64(b.Dx()) / float64(max(b.Dy(), 1))
	mw, mh := side, side/aspect
	if aspect < 1 {
		mw, mh = side*aspect, side
	}
	iw := max(int(math.Round(mw)), 1)
	ih := max(int(math.Round(mh)), 1)

	return &imageMark{
		img: transform.Resize(opts.Image, iw, ih, transform.Linear),
		w:   w,
		h:   h,
	}
}

// bounds keeps the image inside the padding box on the anchored sides.
func (m *imageMark) bounds(pos Position, padding float64) image.Rectangle {
	ib := m.img.Bounds()
	iw, ih := ib.Dx(), ib.Dy()
	pad := int(math.Round(padding))

	var x, y int
	switch pos.column() {
	case -1:
		x = pad
	case 0:
		x = (m.w - iw) / 2
	default:
		x = m.w - pad - iw
	}
	switch pos.row() {
	case -1:
		y = pad
	case 0:
		y = (m.h - ih) / 2
	default:
		y = m.h - pad - ih
	}
	return image.Rect(x, y, x+iw, y+ih)
}

func (m *imageMark) draw(dst *image.NRGBA, pos Position, padding float64) {
	r := m.bounds(pos, padding)
	draw.Draw(dst, r, m.img, m.img.Bounds().Min, draw.Over)
}

// pickCorner returns the corner where m overlaps the least text.
func pickCorner(img *image.NRGBA, m mark, padding float64, locator TextLocator) Position {
	if locator == nil {
		return BottomRight
	}
	regions, err := locator.TextRegions(img)
	if err != nil || len(regions) == 0 {
		return BottomRight
	}

	best, bestArea := BottomRight, -1
	for _, pos := range autoCandidates {
		box := m.bounds(pos, padding)
		area := 0
		for _, r := range regions {
			area += areaOf(box.Intersect(r))
		}
		if bestArea < 0 || area < bestArea {
			best, bestArea = pos, area
		}
	}
	return best
}

func areaOf(r image.Rectangle) int {
	if r.Empty() {
		return 0
	}
	return r.Dx() * r.Dy()
}
