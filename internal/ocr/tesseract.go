package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

const (
	// DefaultLanguage is the Tesseract language used when none is given.
	DefaultLanguage = "eng"

	// DefaultMinConfidence drops blocks Tesseract is unsure about.
	DefaultMinConfidence = 0.3
)

// Box is a block of text found in an image.
type Box struct {
	// Text is the recognized content of the block, trimmed.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the block's bounding box in image coordinates.
	Bounds image.Rectangle `json:"bounds"`
}

// Detector locates text in images with Tesseract. The zero value uses
// English and DefaultMinConfidence.
//
// A Detector holds no Tesseract state between calls, so one value can be
// shared; each call creates and closes its own client.
type Detector struct {
	// Language is a Tesseract language code such as "eng" or "deu". The
	// language data must be installed.
	Language string

	// MinConfidence is the lowest block confidence (0.0 to 1.0) reported.
	// Zero selects DefaultMinConfidence; a negative value keeps everything.
	MinConfidence float64

	// TessdataPrefix overrides the directory Tesseract loads language data
	// from. Empty uses the Tesseract default.
	TessdataPrefix string
}

// NewDetector returns a Detector for language, or English when empty.
func NewDetector(language string) *Detector {
	return &Detector{Language: language}
}

func (d *Detector) language() string {
	if d == nil || d.Language == "" {
		return DefaultLanguage
	}
	return d.Language
}

func (d *Detector) minConfidence() float64 {
	if d == nil || d.MinConfidence == 0 {
		return DefaultMinConfidence
	}
	return d.MinConfidence
}

// Boxes runs block-level OCR on img and returns the blocks that contain text
// and meet the minimum confidence, in Tesseract's reading order.
//
// The image is encoded to PNG in memory; no temporary files are written.
// Coordinates are relative to img's top-left corner.
func (d *Detector) Boxes(img image.Image) ([]Box, error) {
	if img == nil {
		return nil, fmt.Errorf("no image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if d != nil && d.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(d.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(d.language()); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	blocks, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, fmt.Errorf("failed to get bounding boxes: %w", err)
	}

	threshold := d.minConfidence()
	origin := img.Bounds().Min
	boxes := make([]Box, 0, len(blocks))
	for _, b := range blocks {
		text := strings.TrimSpace(b.Word)
		confidence := float64(b.Confidence) / 100.0
		if text == "" || confidence < threshold || b.Box.Empty() {
			continue
		}
		boxes = append(boxes, Box{
			Text:       text,
			Confidence: confidence,
			Bounds:     b.Box.Add(origin),
		})
	}
	return boxes, nil
}

// TextRegions returns the bounding boxes of the text blocks in img. It lets
// a Detector steer watermark placement away from text.
func (d *Detector) TextRegions(img image.Image) ([]image.Rectangle, error) {
	boxes, err := d.Boxes(img)
	if err != nil {
		return nil, err
	}
	regions := make([]image.Rectangle, len(boxes))
	for i, b := range boxes {
		regions[i] = b.Bounds
	}
	return regions, nil
}

// Version returns the version of the linked Tesseract library.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
