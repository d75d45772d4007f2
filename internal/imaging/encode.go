package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Format identifies an output encoding.
type Format = imaging.Format

// Supported output formats.
const (
	PNG  = imaging.PNG
	JPEG = imaging.JPEG
	GIF  = imaging.GIF
	BMP  = imaging.BMP
	TIFF = imaging.TIFF
)

// DefaultJPEGQuality is used when encoding JPEG output.
const DefaultJPEGQuality = 92

// ImageResult contains an encoded image ready to be returned to a client.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// DataURL returns the result as a "data:<mime>;base64,..." URL.
func (r *ImageResult) DataURL() string {
	return "data:" + r.MimeType + ";base64," + r.ImageBase64
}

// FormatFromName resolves a format name or file extension such as "png",
// "jpg", "jpeg" or ".gif". An empty name selects PNG.
func FormatFromName(name string) (Format, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PNG, nil
	}
	f, err := imaging.FormatFromExtension(name)
	if err != nil {
		return PNG, fmt.Errorf("unsupported image format %q: %w", name, err)
	}
	return f, nil
}

// MimeType returns the MIME type for f.
func MimeType(f Format) string {
	return "image/" + formatName(f)
}

func formatName(f Format) string {
	return strings.ToLower(f.String())
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(DefaultJPEGQuality)); err != nil {
		return fmt.Errorf("failed to encode %s image: %w", formatName(f), err)
	}
	return nil
}

// EncodeResult encodes img and wraps it with its dimensions and MIME type.
func EncodeResult(img image.Image, f Format) (*ImageResult, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to encode")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &ImageResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    MimeType(f),
	}, nil
}

// DecodeDataURL decodes a "data:<mime>;base64,..." URL or a bare base64
// payload into an image.
func DecodeDataURL(s string) (*image.NRGBA, error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 {
			return nil, fmt.Errorf("malformed data URL")
		}
		payload = s[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.Clone(img), nil
}
