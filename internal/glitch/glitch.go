package glitch

import (
	"image"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Params holds the four stage amounts, each 0..100. A zero amount skips the
// stage.
type Params struct {
	RGBShift  float64 `json:"rgb_shift"`
	Scanlines float64 `json:"scanlines"`
	Noise     float64 `json:"noise"`
	Blocks    float64 `json:"blocks"`
}

// Zero reports whether every stage is disabled.
func (p Params) Zero() bool {
	return p.RGBShift == 0 && p.Scanlines == 0 && p.Noise == 0 && p.Blocks == 0
}

// Clamped returns p with every amount constrained to 0..100.
func (p Params) Clamped() Params {
	return Params{
		RGBShift:  pixel.Clamp(p.RGBShift, 0, 100),
		Scanlines: pixel.Clamp(p.Scanlines, 0, 100),
		Noise:     pixel.Clamp(p.Noise, 0, 100),
		Blocks:    pixel.Clamp(p.Blocks, 0, 100),
	}
}

// Upper bounds (exclusive) of the amounts picked by RandomPreset.
const (
	presetRGBShift  = 80
	presetScanlines = 70
	presetNoise     = 60
	presetBlocks    = 50
)

// Engine runs the glitch stages with its own random source. An Engine is safe
// for concurrent use.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an Engine seeded from the clock. Its output is not
// reproducible.
func New() *Engine {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns an Engine whose output is fully determined by seed.
func NewWithSeed(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// RandomPreset picks whole-number amounts for every stage, each drawn
// uniformly from [0,80), [0,70), [0,60) and [0,50) respectively.
func (e *Engine) RandomPreset() Params {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Params{
		RGBShift:  float64(e.rng.Intn(presetRGBShift)),
		Scanlines: float64(e.rng.Intn(presetScanlines)),
		Noise:     float64(e.rng.Intn(presetNoise)),
		Blocks:    float64(e.rng.Intn(presetBlocks)),
	}
}

// Apply runs the glitch stages on src and returns the result. The stages
// always run in the same order: RGB shift, scanlines, noise, block
// displacement. A nil source yields nil.
func (e *Engine) Apply(src *image.NRGBA, p Params) *image.NRGBA {
	if src == nil {
		return nil
	}
	p = p.Clamped()

	var dst *image.NRGBA
	if shift := ShiftPixels(p.RGBShift); shift > 0 {
		dst = RGBShift(src, shift)
	} else {
		dst = pixel.Copy(src)
	}
	if p.Zero() {
		return dst
	}

	w, h := dst.Rect.Dx(), dst.Rect.Dy()

	if p.Scanlines > 0 {
		Scanlines(dst.Pix, w, h, p.Scanlines)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if p.Noise > 0 {
		e.noise(dst.Pix, p.Noise)
	}
	if p.Blocks > 0 {
		e.displaceBlocks(dst.Pix, w, h, p.Blocks)
	}
	return dst
}

// ShiftPixels converts an RGB shift amount into a horizontal pixel offset of
// 0..20.
func ShiftPixels(amount float64) int {
	return int(math.Floor(pixel.Clamp(amount, 0, 100) / 100 * 20))
}

// ghostAlpha is the opacity of each shifted copy in RGBShift.
const ghostAlpha = 0.7

// RGBShift draws src twice onto a transparent image of the same size, offset
// by +shift and -shift pixels horizontally, each copy at 0.7 opacity and
// combined additively. Where the copies overlap on opaque pixels the colors
// add up; along the left and right edges only one copy lands and the result
// stays partially transparent.
func RGBShift(src *image.NRGBA, shift int) *image.NRGBA {
	src = pixel.Normalize(src)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			var pr, pg, pb, pa float64

			// The copy drawn at +shift shows source column x-shift, the one at
			// -shift shows x+shift.
			for _, sx := range [2]int{x - shift, x + shift} {
				if sx < 0 || sx >= w {
					continue
				}
				s := src.Pix[row+sx*4 : row+sx*4+4]
				a := float64(s[3]) / 255 * ghostAlpha
				pr += float64(s[0]) * a
				pg += float64(s[1]) * a
				pb += float64(s[2]) * a
				pa += a
			}
			if pa == 0 {
				continue
			}

			// Additive compositing saturates each premultiplied component.
			pa = math.Min(pa, 1)
			pr = math.Min(pr, 255)
			pg = math.Min(pg, 255)
			pb = math.Min(pb, 255)

			i := row + x*4
			dst.Pix[i] = pixel.Clamp8(pr / pa)
			dst.Pix[i+1] = pixel.Clamp8(pg / pa)
			dst.Pix[i+2] = pixel.Clamp8(pb / pa)
			dst.Pix[i+3] = pixel.Clamp8(pa * 255)
		}
	}
	return dst
}

// ScanlinePeriod returns the row period N of the scanline stage: rows with
// y%N == 0 are darkened.
func ScanlinePeriod(amount float64) int {
	n := int(math.Floor((1-amount/100)*10)) + 2
	return max(n, 2)
}

// Scanlines darkens every Nth row of a compact RGBA buffer by 0.7*amount/100.
// Alpha is untouched.
func Scanlines(pix []uint8, width, height int, amount float64) {
	amount = pixel.Clamp(amount, 0, 100)
	if amount == 0 || len(pix) < width*height*4 {
		return
	}
	period := ScanlinePeriod(amount)
	keep := 1 - 0.7*amount/100

	for y := 0; y < height; y += period {
		row := pix[y*width*4 : (y+1)*width*4]
		for i := 0; i+3 < len(row); i += 4 {
			row[i] = pixel.Clamp8(float64(row[i]) * keep)
			row[i+1] = pixel.Clamp8(float64(row[i+1]) * keep)
			row[i+2] = pixel.Clamp8(float64(row[i+2]) * keep)
		}
	}
}

// noise brightens a random subset of pixels. Each pixel is picked with
// probability 0.3*amount/100 and gets the same random offset on R, G and B.
// Callers must hold e.mu.
func (e *Engine) noise(pix []uint8, amount float64) {
	intensity := amount / 100
	chance := 0.3 * intensity

	for i := 0; i+3 < len(pix); i += 4 {
		if e.rng.Float64() >= chance {
			continue
		}
		n := e.rng.Float64() * 255 * intensity
		pix[i] = pixel.Clamp8(float64(pix[i]) + n)
		pix[i+1] = pixel.Clamp8(float64(pix[i+1]) + n)
		pix[i+2] = pixel.Clamp8(float64(pix[i+2]) + n)
	}
}

// displaceBlocks copies random rectangular blocks to random offsets. Reads
// come from a snapshot taken before the first block moves; writes that land
// outside the image are dropped pixel by pixel. Callers must hold e.mu.
func (e *Engine) displaceBlocks(pix []uint8, width, height int, amount float64) {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return
	}
	snapshot := append([]uint8(nil), pix...)

	maxBlock := int(math.Floor(amount/100*30)) + 1
	blocks := int(math.Floor(amount/10)) + 1

	for b := 0; b < blocks; b++ {
		bx := e.rng.Intn(width)
		by := e.rng.Intn(height)
		bw := e.rng.Intn(maxBlock) + 5
		bh := e.rng.Intn(maxBlock) + 5
		dx := e.rng.Intn(maxBlock*2) - maxBlock
		dy := e.rng.Intn(maxBlock*2) - maxBlock

		for y := by; y < by+bh && y < height; y++ {
			ty := y + dy
			if ty < 0 || ty >= height {
				continue
			}
			for x := bx; x < bx+bw && x < width; x++ {
				tx := x + dx
				if tx < 0 || tx >= width {
					continue
				}
				si := (y*width + x) * 4
				di := (ty*width + tx) * 4
				copy(pix[di:di+4], snapshot[si:si+4])
			}
		}
	}
}
