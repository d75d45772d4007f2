package overlay

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family selects the typeface.
type Family string

const (
	Sans Family = "sans"
	Mono Family = "mono"
)

// ParseFamily maps a font family name to a Family. Monospace names
// ("mono", "monospace", "courier", "courier new", ...) select Mono and
// every other name, including the usual web fonts, selects Sans.
func ParseFamily(name string) Family {
	n := strings.ToLower(strings.TrimSpace(name))
	if strings.Contains(n, "mono") || strings.Contains(n, "courier") || strings.Contains(n, "consol") {
		return Mono
	}
	return Sans
}

// Style selects weight and slant, using CSS font-style spelling.
type Style string

const (
	Normal     Style = "normal"
	Bold       Style = "bold"
	Italic     Style = "italic"
	BoldItalic Style = "bold italic"
)

// ParseStyle accepts "normal", "bold", "italic" and "bold italic" in any
// order or case. Unknown words are ignored.
func ParseStyle(s string) Style {
	var bold, italic bool
	for _, word := range strings.Fields(strings.ToLower(s)) {
		switch word {
		case "bold", "bolder":
			bold = true
		case "italic", "oblique":
			italic = true
		}
	}
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	}
	return Normal
}

type fontKey struct {
	family Family
	style  Style
}

var fontData = map[fontKey][]byte{
	{Sans, Normal}:     goregular.TTF,
	{Sans, Bold}:       gobold.TTF,
	{Sans, Italic}:     goitalic.TTF,
	{Sans, BoldItalic}: gobolditalic.TTF,
	{Mono, Normal}:     gomono.TTF,
	{Mono, Bold}:       gomonobold.TTF,
	{Mono, Italic}:     gomonoitalic.TTF,
	{Mono, BoldItalic}: gomonobolditalic.TTF,
}

var (
	fontsMu sync.Mutex
	fonts   = map[fontKey]*opentype.Font{}
)

// loadFont parses the embedded font for key once.
func loadFont(key fontKey) (*opentype.Font, error) {
	fontsMu.Lock()
	defer fontsMu.Unlock()

	if f, ok := fonts[key]; ok {
		return f, nil
	}
	data, ok := fontData[key]
	if !ok {
		data = fontData[fontKey{Sans, Normal}]
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s %s font: %w", key.family, key.style, err)
	}
	fonts[key] = f
	return f, nil
}

// NewFace returns a face of the given family and style whose em size is
// size pixels. Faces are not safe for concurrent use; callers get a fresh
// one each time.
func NewFace(family Family, style Style, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", size)
	}
	f, err := loadFont(fontKey{family, style})
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
