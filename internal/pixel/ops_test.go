package pixel

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestClamp8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{127.49, 127},
		{191.5, 192},
		{254.6, 255},
		{300, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}

	for _, tt := range tests {
		if got := Clamp8(tt.in); got != tt.want {
			t.Errorf("Clamp8(%v): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLuma(t *testing.T) {
	if got := Luma(255, 255, 255); math.Abs(got-255) > 1e-9 {
		t.Errorf("Luma(white): got %v, want 255", got)
	}
	if got := Luma(0, 0, 0); got != 0 {
		t.Errorf("Luma(black): got %v, want 0", got)
	}
	// Pure red weighs 0.299
	if got := Luma(255, 0, 0); math.Abs(got-76.245) > 1e-9 {
		t.Errorf("Luma(red): got %v, want 76.245", got)
	}
	// Green dominates perceived brightness
	if Luma(0, 255, 0) <= Luma(255, 0, 0) || Luma(255, 0, 0) <= Luma(0, 0, 255) {
		t.Error("Luma weights should order green > red > blue")
	}
}

func TestMix(t *testing.T) {
	tests := []struct {
		orig, filtered, t, want float64
	}{
		{100, 200, 0, 100},
		{100, 200, 1, 200},
		{100, 200, 0.5, 150},
		{0, 255, 0.2, 51},
	}
	for _, tt := range tests {
		if got := Mix(tt.orig, tt.filtered, tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Mix(%v,%v,%v): got %v, want %v", tt.orig, tt.filtered, tt.t, got, tt.want)
		}
	}
}

func TestAverage(t *testing.T) {
	if got := Average(30, 60, 90); got != 60 {
		t.Errorf("Average: got %v, want 60", got)
	}
}

func TestClone_NormalizesSubImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	src.SetNRGBA(5, 5, color.NRGBA{10, 20, 30, 40})

	sub := src.SubImage(image.Rect(4, 4, 8, 8))
	got := Clone(sub)

	if got.Rect != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds: got %v, want (0,0)-(4,4)", got.Rect)
	}
	if got.Stride != 16 {
		t.Errorf("stride: got %d, want 16", got.Stride)
	}
	if c := got.NRGBAAt(1, 1); c != (color.NRGBA{10, 20, 30, 40}) {
		t.Errorf("pixel: got %v, want {10 20 30 40}", c)
	}
}

func TestClone_Nil(t *testing.T) {
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
	if Copy(nil) != nil {
		t.Error("Copy(nil) should be nil")
	}
}

func TestCopy_Independent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Pix[0] = 99

	dst := Copy(src)
	dst.Pix[0] = 1

	if src.Pix[0] != 99 {
		t.Error("Copy should not share pixel storage with the source")
	}
}

func TestNormalize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	if Normalize(src) != src {
		t.Error("Normalize should return compact images unchanged")
	}

	sub := src.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	if got := Normalize(sub); got == sub || got.Rect.Min != (image.Point{}) {
		t.Error("Normalize should copy offset sub-images")
	}
}

func TestEmpty(t *testing.T) {
	if !Empty(nil) {
		t.Error("nil image should be empty")
	}
	if !Empty(image.NewNRGBA(image.Rect(0, 0, 0, 5))) {
		t.Error("zero-width image should be empty")
	}
	if Empty(image.NewNRGBA(image.Rect(0, 0, 1, 1))) {
		t.Error("1x1 image should not be empty")
	}
}
