package crop

import (
	"image"
	"math"
)

// DefaultInset is the fraction of each image dimension left outside a fresh
// crop region on every side.
const DefaultInset = 0.1

// Region is a crop rectangle in source pixel coordinates. Coordinates are
// fractional while the user drags and are rounded only when the crop is
// applied.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultRegion returns the region a newly loaded w x h image starts with:
// inset by 10% on every side, covering the central 80%.
func DefaultRegion(w, h int) Region {
	return Region{
		X:      float64(w) * DefaultInset,
		Y:      float64(h) * DefaultInset,
		Width:  float64(w) * (1 - 2*DefaultInset),
		Height: float64(h) * (1 - 2*DefaultInset),
	}
}

// Contains reports whether (x, y) lies inside the region, edges included.
func (r Region) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Rect rounds the region to whole pixels.
func (r Region) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)),
		int(math.Round(r.Y+r.Height)),
	)
}

// HandleID names a crop handle, or Move for the region body.
type HandleID string

// Handle identifiers, clockwise from the top-left corner.
const (
	NW   HandleID = "nw"
	N    HandleID = "n"
	NE   HandleID = "ne"
	E    HandleID = "e"
	SE   HandleID = "se"
	S    HandleID = "s"
	SW   HandleID = "sw"
	W    HandleID = "w"
	Move HandleID = "move"
)

// Cursor returns the pointer cursor hint for hovering or dragging id.
func (id HandleID) Cursor() string {
	switch id {
	case "":
		return CursorDefault
	case Move:
		return CursorMove
	}
	return string(id) + "-resize"
}

// Cursor hints passed to the cursor callback.
const (
	CursorDefault = "default"
	CursorMove    = "move"
)

// Handle is a grab point on the region outline.
type Handle struct {
	ID HandleID `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
}

// Handles derives the eight handles of r, clockwise from NW.
func (r Region) Handles() []Handle {
	x, y, w, h := r.X, r.Y, r.Width, r.Height
	return []Handle{
		{NW, x, y},
		{N, x + w/2, y},
		{NE, x + w, y},
		{E, x + w, y + h/2},
		{SE, x + w, y + h},
		{S, x + w/2, y + h},
		{SW, x, y + h},
		{W, x, y + h/2},
	}
}
