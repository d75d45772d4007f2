package palette

import (
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Extraction tuning.
const (
	// DefaultQuantity is the palette size used when the caller asks for none.
	DefaultQuantity = 5

	// SampleStride is the pixel stride used when scanning the image.
	SampleStride = 10

	// BucketSize is the rounding step applied to each HSL axis.
	BucketSize = 10

	// FamilyThreshold is the per-axis distance below which two colors are
	// considered the same family.
	FamilyThreshold = 20
)

// HSL is a color in hue (0..360), saturation (0..100) and lightness (0..100).
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Entry is one quantized HSL bucket. Color holds the first sampled pixel that
// fell into the bucket.
type Entry struct {
	Color HSL    `json:"color"`
	Hex   string `json:"hex"`
	Count int    `json:"count"`
}

type bucketKey struct {
	h, s, l int
}

// Entries samples img and returns its HSL buckets ordered by descending count.
// Buckets with equal counts keep the order in which they were first seen. The
// second return value is the number of sampled pixels.
func Entries(img image.Image) ([]Entry, int) {
	if pixel.Empty(img) {
		return nil, 0
	}
	src := pixel.Normalize(asNRGBA(img))

	index := make(map[bucketKey]int)
	var entries []Entry
	sampled := 0

	for i := 0; i+3 < len(src.Pix); i += 4 * SampleStride {
		c := colorful.Color{
			R: float64(src.Pix[i]) / 255,
			G: float64(src.Pix[i+1]) / 255,
			B: float64(src.Pix[i+2]) / 255,
		}
		hsl := toHSL(c)
		sampled++

		key := bucketKey{quantize(hsl.H), quantize(hsl.S), quantize(hsl.L)}
		if n, ok := index[key]; ok {
			entries[n].Count++
			continue
		}
		index[key] = len(entries)
		entries = append(entries, Entry{Color: hsl, Hex: hsl.Hex(), Count: 1})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Count > entries[b].Count
	})
	return entries, sampled
}

// Extract returns up to quantity dominant colors of img as lowercase
// "#rrggbb" strings sorted by ascending hue.
//
// Buckets are visited from most to least common. A bucket is skipped when it
// looks like background (low saturation covering more than 20% of the
// samples, or near white or near black) or when it belongs to the same color
// family as a color already chosen. A quantity of 0 or less selects
// DefaultQuantity. The result is deterministic for a given image.
func Extract(img image.Image, quantity int) []string {
	if quantity <= 0 {
		quantity = DefaultQuantity
	}

	entries, sampled := Entries(img)
	if len(entries) == 0 {
		return []string{}
	}

	type pick struct {
		hsl HSL
		hex string
	}
	chosen := make([]pick, 0, quantity)

	for _, e := range entries {
		if IsBackground(e.Color, e.Count, sampled) {
			continue
		}

		similar := false
		for _, c := range chosen {
			if SameFamily(e.Color, c.hsl) {
				similar = true
				break
			}
		}
		if similar {
			continue
		}

		// Later buckets are compared against the color as it is reported,
		// not the unrounded bucket color.
		hsl, err := FromHex(e.Hex)
		if err != nil {
			hsl = e.Color
		}
		chosen = append(chosen, pick{hsl: hsl, hex: e.Hex})
		if len(chosen) >= quantity {
			break
		}
	}

	sort.SliceStable(chosen, func(a, b int) bool {
		return chosen[a].hsl.H < chosen[b].hsl.H
	})

	out := make([]string, len(chosen))
	for i, c := range chosen {
		out[i] = c.hex
	}
	return out
}

// IsBackground reports whether a bucket is probably background: low
// saturation and covering more than 20% of the samples, or extremely light or
// dark.
func IsBackground(c HSL, count, sampled int) bool {
	ratio := 0.0
	if sampled > 0 {
		ratio = float64(count) / float64(sampled)
	}
	lowSat := c.S < 15
	common := ratio > 0.2
	extreme := c.L > 90 || c.L < 10
	return (lowSat && common) || extreme
}

// SameFamily reports whether a and b are closer than FamilyThreshold on every
// HSL axis.
func SameFamily(a, b HSL) bool {
	return math.Abs(a.H-b.H) < FamilyThreshold &&
		math.Abs(a.S-b.S) < FamilyThreshold &&
		math.Abs(a.L-b.L) < FamilyThreshold
}

// Hex formats c as a lowercase "#rrggbb" string.
func (c HSL) Hex() string {
	return colorful.Hsl(c.H, c.S/100, c.L/100).Clamped().Hex()
}

// FromHex parses a "#rrggbb" or "#rgb" string into HSL.
func FromHex(hex string) (HSL, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return HSL{}, err
	}
	return toHSL(c), nil
}

func toHSL(c colorful.Color) HSL {
	h, s, l := c.Hsl()
	return HSL{H: h, S: s * 100, L: l * 100}
}

func quantize(v float64) int {
	return int(math.Round(v/BucketSize)) * BucketSize
}

func asNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return pixel.Clone(img)
}
