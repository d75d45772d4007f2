package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createInMemoryImage creates a solid-color NRGBA test image
func createInMemoryImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var (
	red  = color.NRGBA{255, 0, 0, 255}
	blue = color.NRGBA{0, 0, 255, 255}
)

func TestExtract_SolidColor(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		want []string
	}{
		{"saturated red", color.NRGBA{200, 30, 30, 255}, []string{"#c81e1e"}},
		{"pure blue", blue, []string{"#0000ff"}},
		{"white is background", color.NRGBA{255, 255, 255, 255}, []string{}},
		{"black is background", color.NRGBA{0, 0, 0, 255}, []string{}},
		{"flat gray is background", color.NRGBA{128, 128, 128, 255}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(30, 20, tt.c)
			assert.Equal(t, tt.want, Extract(img, 5))
		})
	}
}

func TestExtract_SortedByHue(t *testing.T) {
	// Blue on top, red below so blue is encountered first.
	img := createInMemoryImage(20, 20, red)
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			img.SetNRGBA(x, y, blue)
		}
	}

	assert.Equal(t, []string{"#ff0000", "#0000ff"}, Extract(img, 5))
}

func TestExtract_QuantityLimit(t *testing.T) {
	img := createInMemoryImage(20, 20, red)
	for y := 0; y < 5; y++ {
		for x := 0; x < 20; x++ {
			img.SetNRGBA(x, y, blue)
		}
	}

	assert.Equal(t, []string{"#ff0000"}, Extract(img, 1))
	assert.Len(t, Extract(img, 0), 2, "quantity 0 should fall back to the default")
}

func TestExtract_ColorFamilyDedup(t *testing.T) {
	img := createInMemoryImage(20, 20, red)
	for y := 0; y < 5; y++ {
		for x := 0; x < 20; x++ {
			img.SetNRGBA(x, y, color.NRGBA{240, 10, 10, 255})
		}
	}

	assert.Equal(t, []string{"#ff0000"}, Extract(img, 5))
}

func TestExtract_SamplesEveryTenthPixel(t *testing.T) {
	// Only column 0 is red; with width 10 every sample lands on it.
	img := createInMemoryImage(10, 10, blue)
	for y := 0; y < 10; y++ {
		img.SetNRGBA(0, y, red)
	}

	assert.Equal(t, []string{"#ff0000"}, Extract(img, 5))
}

func TestExtract_EmptyInput(t *testing.T) {
	assert.Empty(t, Extract(nil, 5))
	assert.Empty(t, Extract(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 5))
}

func TestExtract_AcceptsAnyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
		img.Pix[i+3] = 255
	}

	assert.Equal(t, []string{"#ff0000"}, Extract(img, 5))
}

func TestEntries(t *testing.T) {
	img := createInMemoryImage(25, 1, blue)
	img.SetNRGBA(10, 0, red)

	entries, sampled := Entries(img)

	// Pixels 0, 10 and 20 are sampled.
	require.Equal(t, 3, sampled)
	require.Len(t, entries, 2)
	assert.Equal(t, "#0000ff", entries[0].Hex)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, "#ff0000", entries[1].Hex)
	assert.Equal(t, 1, entries[1].Count)
}

func TestEntries_TiesKeepEncounterOrder(t *testing.T) {
	img := createInMemoryImage(20, 1, blue)
	img.SetNRGBA(10, 0, red)

	entries, _ := Entries(img)

	require.Len(t, entries, 2)
	assert.Equal(t, "#0000ff", entries[0].Hex)
	assert.Equal(t, "#ff0000", entries[1].Hex)
}

func TestIsBackground(t *testing.T) {
	tests := []struct {
		name           string
		c              HSL
		count, sampled int
		want           bool
	}{
		{"common low saturation", HSL{0, 10, 50}, 30, 100, true},
		{"rare low saturation", HSL{0, 10, 50}, 20, 100, false},
		{"very light", HSL{120, 80, 95}, 1, 100, true},
		{"very dark", HSL{120, 80, 5}, 1, 100, true},
		{"vivid and common", HSL{120, 80, 50}, 90, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBackground(tt.c, tt.count, tt.sampled))
		})
	}
}

func TestSameFamily(t *testing.T) {
	assert.True(t, SameFamily(HSL{10, 50, 50}, HSL{25, 60, 40}))
	assert.False(t, SameFamily(HSL{10, 50, 50}, HSL{30, 50, 50}))
	assert.False(t, SameFamily(HSL{10, 50, 50}, HSL{10, 75, 50}))
}

func TestFromHex(t *testing.T) {
	hsl, err := FromHex("#00ff00")
	require.NoError(t, err)
	assert.InDelta(t, 120, hsl.H, 1e-9)
	assert.InDelta(t, 100, hsl.S, 1e-9)
	assert.InDelta(t, 50, hsl.L, 1e-9)

	_, err = FromHex("not a color")
	assert.Error(t, err)
}
