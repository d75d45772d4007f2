package crop

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

const (
	// DefaultMinSize is the smallest width or height a region can be dragged to.
	DefaultMinSize = 20.0

	// HitRadius is the distance from a handle center that still grabs it.
	HitRadius = 10.0
)

// State is the interaction state of a Controller.
type State int

const (
	Idle State = iota
	Hovering
	Dragging
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	}
	return "idle"
}

// PointerKind is the type of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerEvent is a pointer action in image pixel coordinates. Callers that
// display the image scaled must convert from screen coordinates first.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// CursorFunc receives cursor hints: "move", "<handle>-resize" or "default".
type CursorFunc func(cursor string)

// Option configures a Controller.
type Option func(*Controller)

// WithCursorFunc installs a callback for cursor hints.
func WithCursorFunc(fn CursorFunc) Option {
	return func(c *Controller) {
		c.cursor = fn
	}
}

// WithMinSize overrides the minimum region size.
func WithMinSize(size float64) Option {
	return func(c *Controller) {
		if size > 0 {
			c.minSize = size
		}
	}
}

// Controller owns the crop region of one image and turns pointer input into
// region updates.
//
// Pointer down on a handle or inside the region starts a drag; pointer moves
// while dragging resize or move the region by the delta from the previous
// position; pointer up ends the drag. Handles are hit-tested before the
// region body. The region always stays inside the image and never shrinks
// below the minimum size (or the image size, for images smaller than that).
type Controller struct {
	width, height int
	minSize       float64

	region Region
	state  State
	active HandleID
	lastX  float64
	lastY  float64

	cursor CursorFunc
}

// NewController returns a Controller for a width x height image with the
// default 80% region.
func NewController(width, height int, opts ...Option) *Controller {
	c := &Controller{minSize: DefaultMinSize}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset(width, height)
	return c
}

// Reset binds the controller to new image dimensions, ends any interaction
// and restores the default region.
func (c *Controller) Reset(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	c.state = Idle
	c.active = ""
	c.SetRegion(DefaultRegion(c.width, c.height))
}

// Bounds returns the image dimensions the controller is bound to.
func (c *Controller) Bounds() (int, int) {
	return c.width, c.height
}

// Region returns the current crop region.
func (c *Controller) Region() Region {
	return c.region
}

// State returns the interaction state.
func (c *Controller) State() State {
	return c.state
}

// Active returns the handle being hovered or dragged, or "" when idle.
func (c *Controller) Active() HandleID {
	return c.active
}

// Handles returns the handles of the current region.
func (c *Controller) Handles() []Handle {
	return c.region.Handles()
}

// SetRegion replaces the region, clamped to the image and the minimum size.
func (c *Controller) SetRegion(r Region) {
	minW, minH := c.minDims()
	maxW, maxH := float64(c.width), float64(c.height)

	r.Width = pixel.Clamp(r.Width, minW, maxW)
	r.Height = pixel.Clamp(r.Height, minH, maxH)
	r.X = pixel.Clamp(r.X, 0, maxW-r.Width)
	r.Y = pixel.Clamp(r.Y, 0, maxH-r.Height)
	c.region = r
}

// HitTest returns the handle under (x, y), Move when the point is inside the
// region, or false when nothing is hit.
func (c *Controller) HitTest(x, y float64) (HandleID, bool) {
	for _, h := range c.region.Handles() {
		if math.Hypot(h.X-x, h.Y-y) <= HitRadius {
			return h.ID, true
		}
	}
	if c.region.Contains(x, y) {
		return Move, true
	}
	return "", false
}

// HandleEvent dispatches a pointer event.
func (c *Controller) HandleEvent(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		c.PointerDown(ev.X, ev.Y)
	case PointerMove:
		c.PointerMove(ev.X, ev.Y)
	case PointerUp:
		c.PointerUp()
	}
}

// PointerDown starts a drag when (x, y) hits a handle or the region. It
// reports whether a drag started.
func (c *Controller) PointerDown(x, y float64) bool {
	id, ok := c.HitTest(x, y)
	if !ok {
		return false
	}
	c.state = Dragging
	c.active = id
	c.lastX, c.lastY = x, y
	c.setCursor(id.Cursor())
	return true
}

// PointerMove drags the active handle by the movement since the previous
// pointer position. When no drag is in progress it updates the hover state
// and cursor hint instead.
func (c *Controller) PointerMove(x, y float64) {
	if c.state != Dragging {
		id, ok := c.HitTest(x, y)
		switch {
		case ok && id != Move:
			c.state = Hovering
			c.active = id
		default:
			c.state = Idle
			c.active = ""
		}
		c.setCursor(id.Cursor())
		return
	}

	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	c.Drag(c.active, dx, dy)
}

// PointerUp ends any drag.
func (c *Controller) PointerUp() {
	c.state = Idle
	c.active = ""
	c.setCursor(CursorDefault)
}

// Drag applies a pointer delta to the region as if handle id were dragged.
//
// Move translates the region, keeping it inside the image. Edge handles move
// one edge and keep the opposite edge fixed; corner handles combine their two
// edges. Edges stop at the image border and at the minimum size.
func (c *Controller) Drag(id HandleID, dx, dy float64) {
	r := c.region
	minW, minH := c.minDims()
	maxW, maxH := float64(c.width), float64(c.height)
	next := r

	left := func() {
		next.X = clamp(r.X+dx, 0, r.X+r.Width-minW)
		next.Width = r.Width - (next.X - r.X)
	}
	top := func() {
		next.Y = clamp(r.Y+dy, 0, r.Y+r.Height-minH)
		next.Height = r.Height - (next.Y - r.Y)
	}
	right := func() {
		next.Width = clamp(r.Width+dx, minW, maxW-r.X)
	}
	bottom := func() {
		next.Height = clamp(r.Height+dy, minH, maxH-r.Y)
	}

	switch id {
	case Move:
		next.X = clamp(r.X+dx, 0, maxW-r.Width)
		next.Y = clamp(r.Y+dy, 0, maxH-r.Height)
	case NW:
		left()
		top()
	case N:
		top()
	case NE:
		right()
		top()
	case E:
		right()
	case SE:
		right()
		bottom()
	case S:
		bottom()
	case SW:
		left()
		bottom()
	case W:
		left()
	default:
		return
	}
	c.region = next
}

// Apply extracts the region from src, rounded to whole pixels and limited to
// src's bounds. The controller is then bound to the cropped dimensions and
// its region resets to the default 80% inset. A nil source yields nil.
func (c *Controller) Apply(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	rect := c.region.Rect().Add(b.Min).Intersect(b)
	if rect.Empty() {
		rect = b
	}

	out := imaging.Crop(src, rect)
	c.Reset(out.Rect.Dx(), out.Rect.Dy())
	return out
}

func (c *Controller) minDims() (float64, float64) {
	return math.Min(c.minSize, float64(c.width)), math.Min(c.minSize, float64(c.height))
}

func (c *Controller) setCursor(cursor string) {
	if c.cursor != nil {
		c.cursor(cursor)
	}
}

// clamp bounds v by lo first and then hi, so hi wins when the range is empty.
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
