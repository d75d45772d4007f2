package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestNewSurface(t *testing.T) {
	s := NewSurface(30, 20)
	if s.Width() != 30 || s.Height() != 20 {
		t.Errorf("size: got %dx%d, want 30x20", s.Width(), s.Height())
	}
	if got := s.Image().NRGBAAt(5, 5); got != (color.NRGBA{}) {
		t.Errorf("new surface should be transparent, got %v", got)
	}

	s = NewSurface(-1, 5)
	if s.Width() != 0 {
		t.Errorf("negative width should clamp to 0, got %d", s.Width())
	}
}

func TestSurface_DrawImage_SameSize(t *testing.T) {
	src := createPatternImage(10, 10)
	s := NewSurface(10, 10)

	s.DrawImage(src)

	if !bytes.Equal(s.Image().Pix, src.Pix) {
		t.Error("same-size draw should copy pixels exactly")
	}
}

func TestSurface_DrawImage_Scaled(t *testing.T) {
	src := createInMemoryImage(10, 10, color.RGBA{0, 0, 255, 255})
	s := NewSurface(40, 25)

	s.DrawImage(src)

	if s.Width() != 40 || s.Height() != 25 {
		t.Fatalf("DrawImage must not change the surface size")
	}
	got := s.Image().NRGBAAt(20, 12)
	if got.B < 250 || got.R > 5 || got.A != 255 {
		t.Errorf("scaled solid color: got %v, want blue", got)
	}
}

func TestSurface_ReadWritePixels(t *testing.T) {
	s := NewSurface(4, 4)
	img := createPatternImage(8, 6)

	s.WritePixels(img)
	if s.Width() != 8 || s.Height() != 6 {
		t.Fatalf("WritePixels should resize to 8x6, got %dx%d", s.Width(), s.Height())
	}

	read := s.ReadPixels()
	if !bytes.Equal(read.Pix, img.Pix) {
		t.Error("ReadPixels should return what was written")
	}

	read.Pix[0] = 7
	if s.Image().Pix[0] == 7 {
		t.Error("ReadPixels must return a copy")
	}

	s.WritePixels(nil)
	if s.Width() != 8 {
		t.Error("writing nil should be a no-op")
	}
}

func TestSurface_ResizeAndClear(t *testing.T) {
	s := NewSurface(5, 5)
	s.WritePixels(createPatternImage(5, 5))

	s.Clear()
	for _, v := range s.Image().Pix {
		if v != 0 {
			t.Fatal("Clear should zero every byte")
		}
	}

	s.WritePixels(createPatternImage(5, 5))
	s.Resize(5, 5)
	if s.Image().NRGBAAt(0, 0).A != 0 {
		t.Error("Resize should discard contents")
	}
}

func TestSurface_DrawImageAt(t *testing.T) {
	s := NewSurface(10, 10)
	stamp := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range stamp.Pix {
		stamp.Pix[i] = 255
	}

	s.DrawImageAt(stamp, image.Pt(3, 4))

	if got := s.Image().NRGBAAt(4, 5); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("stamped pixel: got %v", got)
	}
	if got := s.Image().NRGBAAt(5, 5); got.A != 0 {
		t.Errorf("pixel outside stamp: got %v", got)
	}
}

func TestSurface_DataURL(t *testing.T) {
	s := NewSurface(6, 3)
	s.WritePixels(createPatternImage(6, 3))

	url, err := s.DataURL(PNG)
	if err != nil {
		t.Fatalf("DataURL failed: %v", err)
	}
	prefix := "data:image/png;base64,"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("unexpected prefix: %.40s", url)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 3 {
		t.Errorf("decoded size: got %v", img.Bounds())
	}
}
