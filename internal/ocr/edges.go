package ocr

import (
	"errors"
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/effect"
)

// Edge density heuristics. Text has a moderate share of edge pixels per
// window, peaking around 20%, and more horizontal than vertical structure.
const (
	edgeThreshold = 30
	minDensity    = 0.05
	maxDensity    = 0.4
	peakDensity   = 0.2
)

// edgeWindows are the window sizes scanned, roughly one per text size.
var edgeWindows = []image.Point{
	{X: 100, Y: 30},
	{X: 150, Y: 40},
	{X: 200, Y: 50},
	{X: 80, Y: 25},
}

// Region is a text-like area found by EdgeLocator.
type Region struct {
	Bounds     image.Rectangle `json:"bounds"`
	Confidence float64         `json:"confidence"`
}

// EdgeLocator finds text-like regions without Tesseract by sliding windows
// over a Sobel edge map. It is much less precise than a Detector but needs
// no native library, so it serves as a fallback.
type EdgeLocator struct {
	// MinConfidence is the lowest region score (0.0 to 1.0) reported.
	// Zero selects DefaultMinConfidence.
	MinConfidence float64
}

// Regions returns the merged text-like regions of img, most confident
// first.
func (l EdgeLocator) Regions(img image.Image) []Region {
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	threshold := l.MinConfidence
	if threshold == 0 {
		threshold = DefaultMinConfidence
	}

	m := newEdgeMap(img)
	origin := img.Bounds().Min

	var candidates []Region
	for _, ws := range edgeWindows {
		step := image.Pt(max(ws.X/2, 1), max(ws.Y/2, 1))
		for y := 0; y+ws.Y <= m.h; y += step.Y {
			for x := 0; x+ws.X <= m.w; x += step.X {
				r := image.Rect(x, y, x+ws.X, y+ws.Y)
				density := float64(m.count(r)) / float64(ws.X*ws.Y)
				if density < minDensity || density > maxDensity {
					continue
				}
				confidence := m.horizontalScore(r) * (1 - math.Abs(density-peakDensity)/peakDensity)
				if confidence < threshold {
					continue
				}
				candidates = append(candidates, Region{
					Bounds:     r.Add(origin),
					Confidence: math.Round(confidence*1000) / 1000,
				})
			}
		}
	}

	merged := mergeRegions(candidates)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	return merged
}

// TextRegions returns the bounds of Regions(img).
func (l EdgeLocator) TextRegions(img image.Image) ([]image.Rectangle, error) {
	if img == nil {
		return nil, errors.New("no image")
	}
	regions := l.Regions(img)
	out := make([]image.Rectangle, len(regions))
	for i, r := range regions {
		out[i] = r.Bounds
	}
	return out, nil
}

// edgeMap marks edge pixels and keeps a summed-area table of them so window
// densities cost four lookups.
type edgeMap struct {
	w, h  int
	edges []bool
	sums  []int // (w+1) x (h+1)
}

func newEdgeMap(img image.Image) *edgeMap {
	sobel := effect.Sobel(img)
	w, h := sobel.Rect.Dx(), sobel.Rect.Dy()
	m := &edgeMap{
		w:     w,
		h:     h,
		edges: make([]bool, w*h),
		sums:  make([]int, (w+1)*(h+1)),
	}
	for y := 0; y < h; y++ {
		row := 0
		for x := 0; x < w; x++ {
			// Sobel output is gray, so red carries the magnitude.
			if sobel.Pix[y*sobel.Stride+x*4] > edgeThreshold {
				m.edges[y*w+x] = true
				row++
			}
			m.sums[(y+1)*(w+1)+x+1] = m.sums[y*(w+1)+x+1] + row
		}
	}
	return m
}

func (m *edgeMap) at(x, y int) bool {
	return m.edges[y*m.w+x]
}

// count returns the number of edge pixels in r.
func (m *edgeMap) count(r image.Rectangle) int {
	s := func(x, y int) int { return m.sums[y*(m.w+1)+x] }
	return s(r.Max.X, r.Max.Y) - s(r.Min.X, r.Max.Y) - s(r.Max.X, r.Min.Y) + s(r.Min.X, r.Min.Y)
}

// horizontalScore is the share of horizontal edge runs among all runs in r.
// Lines of text produce many short horizontal runs.
func (m *edgeMap) horizontalScore(r image.Rectangle) float64 {
	var horizontal, vertical int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		inRun := false
		for x := r.Min.X; x < r.Max.X; x++ {
			e := m.at(x, y)
			if e && !inRun {
				horizontal++
			}
			inRun = e
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		inRun := false
		for y := r.Min.Y; y < r.Max.Y; y++ {
			e := m.at(x, y)
			if e && !inRun {
				vertical++
			}
			inRun = e
		}
	}
	if horizontal+vertical == 0 {
		return 0
	}
	return float64(horizontal) / float64(horizontal+vertical)
}

// mergeRegions folds each region into the first earlier region it overlaps,
// keeping the higher confidence.
func mergeRegions(regions []Region) []Region {
	merged := make([]Region, 0, len(regions))
	for _, r := range regions {
		found := false
		for i := range merged {
			if r.Bounds.Overlaps(merged[i].Bounds) {
				merged[i].Bounds = merged[i].Bounds.Union(r.Bounds)
				merged[i].Confidence = math.Max(merged[i].Confidence, r.Confidence)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, r)
		}
	}
	return merged
}

// Locator finds text regions in an image.
type Locator interface {
	TextRegions(img image.Image) ([]image.Rectangle, error)
}

// Chain asks each locator in order and returns the first answer that is not
// an error. It fails only when every locator fails.
type Chain []Locator

// TextRegions implements Locator.
func (c Chain) TextRegions(img image.Image) ([]image.Rectangle, error) {
	var errs []error
	for _, l := range c {
		regions, err := l.TextRegions(img)
		if err == nil {
			return regions, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.New("no text locator")
	}
	return nil, errors.Join(errs...)
}
