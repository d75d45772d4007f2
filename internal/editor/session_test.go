package editor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-edit-mcp/internal/affine"
	"github.com/ironsheep/image-edit-mcp/internal/crop"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/tone"
)

func TestSession_Empty(t *testing.T) {
	s := NewSession()

	assert.False(t, s.Loaded())
	url, err := s.Export(imaging.PNG)
	assert.NoError(t, err)
	assert.Empty(t, url)
	assert.NoError(t, s.Commit())
	assert.NoError(t, s.Transform(affine.RotateRight))
	s.ApplyCrop()

	rendered, err := s.Frame()
	assert.NoError(t, err)
	assert.False(t, rendered)
}

func TestSession_Load(t *testing.T) {
	s := NewSession()
	src := createGradient(40, 30)

	s.Load(src)

	require.True(t, s.Loaded())
	assert.Equal(t, src.Pix, s.Image().Pix)
	assert.NotSame(t, src, s.Image())
	assert.True(t, s.Pending())

	w, h := s.Crop().Bounds()
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)
	assert.Equal(t, crop.Region{X: 4, Y: 3, Width: 32, Height: 24}, s.Crop().Region())

	preview, err := s.Preview()
	require.NoError(t, err)
	assert.Equal(t, src.Pix, preview.Image().Pix)
	assert.False(t, s.Pending())
}

func TestSession_PreviewCoalesces(t *testing.T) {
	s := NewSession()
	s.Load(createGradient(10, 10))

	renders := 0
	tool := countingTool{renders: &renders}
	for i := 0; i < 5; i++ {
		s.SetTool(tool)
	}
	s.RequestPreview()

	rendered, err := s.Frame()
	require.NoError(t, err)
	assert.True(t, rendered)
	assert.Equal(t, 1, renders)

	rendered, err = s.Frame()
	require.NoError(t, err)
	assert.False(t, rendered, "no request since the last frame")
	assert.Equal(t, 1, renders)
}

func TestSession_FrameError(t *testing.T) {
	s := NewSession()
	s.Load(createGradient(4, 4))
	s.SetTool(failingTool{})

	rendered, err := s.Frame()
	assert.True(t, rendered)
	assert.Error(t, err)
	assert.False(t, s.Pending(), "a failed render still consumes the request")
	assert.Error(t, s.Commit())
}

func TestSession_Commit(t *testing.T) {
	s := NewSession()
	src := createGradient(20, 10)
	s.Load(src)

	s.SetTool(BrightnessContrast{Brightness: 25})
	preview, err := s.Preview()
	require.NoError(t, err)
	want := tone.BrightnessContrast(src, 25, 0)
	assert.Equal(t, want.Pix, preview.Image().Pix)
	assert.Equal(t, src.Pix, s.Image().Pix, "previewing does not change the working image")

	require.NoError(t, s.Commit())
	assert.Nil(t, s.Tool())
	assert.Equal(t, want.Pix, s.Image().Pix)

	// Tools stack on the committed result.
	s.SetTool(Grayscale{})
	require.NoError(t, s.Commit())
	assert.Equal(t, tone.Grayscale(want, 0).Pix, s.Image().Pix)
}

func TestSession_Transform(t *testing.T) {
	s := NewSession()
	src := createGradient(30, 10)
	s.Load(src)

	require.NoError(t, s.Transform(affine.RotateRight))
	assert.Equal(t, image.Rect(0, 0, 10, 30), s.Image().Rect)
	assert.Equal(t, affine.State{Rotation: 90}, s.Orientation())

	w, h := s.Crop().Bounds()
	assert.Equal(t, 10, w, "crop follows the rotated size")
	assert.Equal(t, 30, h)

	require.NoError(t, s.Transform(affine.FlipHorizontal))
	require.NoError(t, s.Transform(affine.RotateLeft))
	assert.Equal(t, affine.State{FlipH: true}, s.Orientation())

	assert.Error(t, s.Transform(affine.Operation("spin")))
}

func TestSession_RotateFourTimes(t *testing.T) {
	s := NewSession()
	src := createGradient(9, 5)
	s.Load(src)

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Transform(affine.RotateRight))
	}
	assert.Equal(t, src.Pix, s.Image().Pix)
	assert.Equal(t, affine.State{}, s.Orientation())
}

func TestSession_Crop(t *testing.T) {
	s := NewSession()
	s.Load(createGradient(100, 50))

	c := s.Crop()
	c.SetRegion(crop.Region{X: 10, Y: 5, Width: 30, Height: 20})
	s.ApplyCrop()

	assert.Equal(t, image.Rect(0, 0, 30, 20), s.Image().Rect)
	w, h := c.Bounds()
	assert.Equal(t, 30, w)
	assert.Equal(t, 20, h)
	assert.True(t, s.Pending())
}

func TestSession_ExportDoesNotCommit(t *testing.T) {
	s := NewSession(WithFormat(imaging.JPEG))
	src := createGradient(16, 16)
	s.Load(src)
	s.SetTool(Grayscale{})

	url, err := s.ExportDefault()
	require.NoError(t, err)
	assert.Contains(t, url, "data:image/jpeg;base64,")
	assert.Equal(t, src.Pix, s.Image().Pix)
	assert.NotNil(t, s.Tool())

	url, err = s.Export(imaging.PNG)
	require.NoError(t, err)
	decoded, err := imaging.DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, tone.Grayscale(src, 0).Pix, decoded.Pix)
}

func TestSession_Revert(t *testing.T) {
	s := NewSession()
	src := createGradient(20, 12)
	s.Load(src)

	s.SetTool(ColorBalance{Red: 80})
	require.NoError(t, s.Commit())
	require.NoError(t, s.Transform(affine.RotateLeft))

	s.Revert()
	assert.Equal(t, src.Pix, s.Image().Pix)
	assert.Equal(t, image.Rect(0, 0, 20, 12), s.Image().Rect)
	assert.Equal(t, affine.State{}, s.Orientation())
}

func TestSession_LoadNil(t *testing.T) {
	s := NewSession()
	s.Load(createGradient(5, 5))
	s.Load(nil)

	assert.False(t, s.Loaded())
	w, h := s.Crop().Bounds()
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestSession_CropOptions(t *testing.T) {
	var cursors []string
	s := NewSession(WithCropOptions(crop.WithCursorFunc(func(c string) { cursors = append(cursors, c) })))
	s.Load(createGradient(100, 100))

	s.Crop().PointerMove(50, 50)
	assert.Equal(t, []string{"move"}, cursors)
}
