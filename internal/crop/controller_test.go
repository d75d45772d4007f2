package crop

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewController_DefaultRegion(t *testing.T) {
	c := NewController(200, 100)

	assert.Equal(t, Region{X: 20, Y: 10, Width: 160, Height: 80}, c.Region())
	assert.Equal(t, Idle, c.State())
}

func TestNewController_SmallImage(t *testing.T) {
	c := NewController(10, 50)

	r := c.Region()
	assert.Equal(t, 0.0, r.X)
	assert.Equal(t, 10.0, r.Width, "region cannot be narrower than a tiny image")
	assert.Equal(t, 40.0, r.Height)
}

func TestDrag_SoutheastScenario(t *testing.T) {
	c := NewController(100, 100)
	c.SetRegion(Region{X: 10, Y: 10, Width: 80, Height: 80})

	require.True(t, c.PointerDown(90, 90))
	assert.Equal(t, Dragging, c.State())
	assert.Equal(t, SE, c.Active())

	c.PointerMove(100, 100)

	assert.Equal(t, Region{X: 10, Y: 10, Width: 90, Height: 90}, c.Region())
}

func TestDrag_Rules(t *testing.T) {
	start := Region{X: 20, Y: 20, Width: 50, Height: 40}

	tests := []struct {
		name   string
		handle HandleID
		dx, dy float64
		want   Region
	}{
		{"move", Move, 5, -5, Region{25, 15, 50, 40}},
		{"move clamps left", Move, -100, 0, Region{0, 20, 50, 40}},
		{"move clamps bottom", Move, 0, 100, Region{20, 60, 50, 40}},
		{"north grows", N, 0, -10, Region{20, 10, 50, 50}},
		{"north stops at min size", N, 0, 100, Region{20, 40, 50, 20}},
		{"north stops at top", N, 0, -50, Region{20, 0, 50, 60}},
		{"south grows", S, 0, 10, Region{20, 20, 50, 50}},
		{"south stops at bottom", S, 0, 100, Region{20, 20, 50, 80}},
		{"east shrinks to min", E, -100, 0, Region{20, 20, 20, 40}},
		{"east stops at right", E, 100, 0, Region{20, 20, 80, 40}},
		{"west grows", W, -10, 0, Region{10, 20, 60, 40}},
		{"west stops at min", W, 100, 0, Region{50, 20, 20, 40}},
		{"northwest", NW, -5, -5, Region{15, 15, 55, 45}},
		{"northeast", NE, 5, -5, Region{20, 15, 55, 45}},
		{"southwest", SW, -5, 5, Region{15, 20, 55, 45}},
		{"southeast", SE, 5, 5, Region{20, 20, 55, 45}},
		{"unknown handle", HandleID("x"), 5, 5, start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(100, 100)
			c.SetRegion(start)
			c.Drag(tt.handle, tt.dx, tt.dy)
			assert.Equal(t, tt.want, c.Region())
		})
	}
}

func TestHitTest(t *testing.T) {
	c := NewController(100, 100)
	c.SetRegion(Region{X: 10, Y: 10, Width: 80, Height: 80})

	tests := []struct {
		name   string
		x, y   float64
		want   HandleID
		wantOK bool
	}{
		{"nw corner", 10, 10, NW, true},
		{"near ne", 95, 12, NE, true},
		{"north edge center", 50, 4, N, true},
		{"west edge center", 18, 50, W, true},
		{"body", 40, 40, Move, true},
		{"outside", 0, 0, "", false},
		{"just outside radius", 10, 21, Move, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.HitTest(tt.x, tt.y)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPointerEvents_CursorHints(t *testing.T) {
	var cursors []string
	c := NewController(100, 100, WithCursorFunc(func(s string) {
		cursors = append(cursors, s)
	}))
	c.SetRegion(Region{X: 10, Y: 10, Width: 80, Height: 80})

	c.HandleEvent(PointerEvent{Kind: PointerMove, X: 10, Y: 50})
	assert.Equal(t, Hovering, c.State())
	assert.Equal(t, W, c.Active())

	c.HandleEvent(PointerEvent{Kind: PointerMove, X: 50, Y: 50})
	assert.Equal(t, Idle, c.State())

	c.HandleEvent(PointerEvent{Kind: PointerMove, X: 99, Y: 30})
	c.HandleEvent(PointerEvent{Kind: PointerDown, X: 50, Y: 50})
	assert.Equal(t, Dragging, c.State())
	c.HandleEvent(PointerEvent{Kind: PointerMove, X: 55, Y: 52})
	c.HandleEvent(PointerEvent{Kind: PointerUp})

	assert.Equal(t, []string{"w-resize", "move", "default", "move", "default"}, cursors)
	assert.Equal(t, Region{X: 15, Y: 12, Width: 80, Height: 80}, c.Region())
	assert.Equal(t, Idle, c.State())
}

func TestPointerDown_Miss(t *testing.T) {
	c := NewController(100, 100)
	c.SetRegion(Region{X: 40, Y: 40, Width: 20, Height: 20})

	assert.False(t, c.PointerDown(5, 5))
	assert.Equal(t, Idle, c.State())

	// Moves without a drag never change the region.
	c.PointerMove(50, 50)
	assert.Equal(t, Region{X: 40, Y: 40, Width: 20, Height: 20}, c.Region())
}

func TestDrag_InvariantsHold(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	handles := []HandleID{NW, N, NE, E, SE, S, SW, W, Move}
	const eps = 1e-9

	for _, size := range [][2]int{{100, 100}, {640, 120}, {15, 300}} {
		c := NewController(size[0], size[1])
		w, h := float64(size[0]), float64(size[1])
		minW, minH := min(20, w), min(20, h)

		for i := 0; i < 2000; i++ {
			id := handles[rng.Intn(len(handles))]
			c.Drag(id, rng.Float64()*120-60, rng.Float64()*120-60)

			r := c.Region()
			require.GreaterOrEqual(t, r.Width, minW-eps)
			require.GreaterOrEqual(t, r.Height, minH-eps)
			require.GreaterOrEqual(t, r.X, -eps)
			require.GreaterOrEqual(t, r.Y, -eps)
			require.LessOrEqual(t, r.X+r.Width, w+eps)
			require.LessOrEqual(t, r.Y+r.Height, h+eps)
		}
	}
}

func TestSetRegion_Clamps(t *testing.T) {
	c := NewController(100, 50)

	c.SetRegion(Region{X: -10, Y: 40, Width: 5, Height: 500})

	assert.Equal(t, Region{X: 0, Y: 0, Width: 20, Height: 50}, c.Region())
}

func TestApply(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 0, 255})
		}
	}

	c := NewController(100, 80)
	c.SetRegion(Region{X: 10.4, Y: 20.6, Width: 30, Height: 40})

	out := c.Apply(img)

	require.NotNil(t, out)
	assert.Equal(t, 30, out.Rect.Dx())
	assert.Equal(t, 40, out.Rect.Dy())
	assert.Equal(t, color.NRGBA{10, 21, 0, 255}, out.NRGBAAt(0, 0))

	// The controller now follows the cropped image with a fresh default region.
	w, h := c.Bounds()
	assert.Equal(t, 30, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, Region{X: 3, Y: 4, Width: 24, Height: 32}, c.Region())
}

func TestApply_Nil(t *testing.T) {
	c := NewController(10, 10)
	assert.Nil(t, c.Apply(nil))
}

func TestHandleCursor(t *testing.T) {
	assert.Equal(t, "move", Move.Cursor())
	assert.Equal(t, "nw-resize", NW.Cursor())
	assert.Equal(t, "default", HandleID("").Cursor())
}
