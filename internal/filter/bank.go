package filter

import (
	"image"
	"strings"

	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Kind names a filter in the bank.
type Kind string

// Registered filter kinds, in catalogue order.
const (
	None     Kind = "none"
	Sepia    Kind = "sepia"
	Vintage  Kind = "vintage"
	Noir     Kind = "noir"
	Cool     Kind = "cool"
	Warm     Kind = "warm"
	Emerald  Kind = "emerald"
	Faded    Kind = "faded"
	Dramatic Kind = "dramatic"
	Dusk     Kind = "dusk"
	Polaroid Kind = "polaroid"
)

// Func mutates a compact RGBA buffer of the given dimensions in place,
// blending the filtered color with the original by intensity (0..1).
// Alpha bytes are never written.
type Func func(pix []uint8, width, height int, intensity float64)

// Info describes a filter for display.
type Info struct {
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type entry struct {
	info Info
	fn   Func
}

var bank = []entry{
	{Info{Sepia, "Sepia", "Warm brown tone of an aged photograph"}, sepia},
	{Info{Vintage, "Vintage", "Warm highlights with faded channel crossover"}, vintage},
	{Info{Noir, "Noir", "High contrast black and white"}, noir},
	{Info{Cool, "Cool", "Blue tint with softened reds"}, cool},
	{Info{Warm, "Warm", "Golden tint with softened blues"}, warm},
	{Info{Emerald, "Emerald", "Green boost fed into reds and blues"}, emerald},
	{Info{Faded, "Faded", "Desaturated with lifted blacks"}, faded},
	{Info{Dramatic, "Dramatic", "Strong contrast and saturation"}, dramatic},
	{Info{Dusk, "Dusk", "Faded look with a blue evening cast"}, dusk},
	{Info{Polaroid, "Polaroid", "Warm tint with a soft vignette"}, polaroid},
}

var byKind = func() map[Kind]Func {
	m := make(map[Kind]Func, len(bank))
	for _, e := range bank {
		m[e.info.Kind] = e.fn
	}
	return m
}()

// ParseKind normalizes a user supplied filter name. Unknown names are
// returned as-is and behave like None when applied.
func ParseKind(name string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(name)))
}

// Kinds returns every registered filter kind in catalogue order. None is not
// included.
func Kinds() []Kind {
	kinds := make([]Kind, len(bank))
	for i, e := range bank {
		kinds[i] = e.info.Kind
	}
	return kinds
}

// Lookup returns the filter function for kind.
func Lookup(kind Kind) (Func, bool) {
	fn, ok := byKind[kind]
	return fn, ok
}

// Catalogue returns display information for every registered filter.
func Catalogue() []Info {
	infos := make([]Info, len(bank))
	for i, e := range bank {
		infos[i] = e.info
	}
	return infos
}

// Describe returns display information for kind.
func Describe(kind Kind) (Info, bool) {
	for _, e := range bank {
		if e.info.Kind == kind {
			return e.info, true
		}
	}
	return Info{}, false
}

// Apply returns a copy of src with the filter applied at the given intensity.
//
// Intensity is clamped to 0..1. None, unknown kinds and intensity 0 all
// return an unmodified copy so callers can always draw the result. A nil
// source yields nil.
func Apply(src *image.NRGBA, kind Kind, intensity float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	dst := pixel.Copy(src)
	ApplyBuffer(dst.Pix, dst.Rect.Dx(), dst.Rect.Dy(), kind, intensity)
	return dst
}

// ApplyBuffer applies the filter in place on a compact RGBA buffer. It
// reports whether any filter ran.
func ApplyBuffer(pix []uint8, width, height int, kind Kind, intensity float64) bool {
	intensity = pixel.Clamp(intensity, 0, 1)
	if intensity == 0 {
		return false
	}
	fn, ok := byKind[kind]
	if !ok {
		return false
	}
	fn(pix, width, height, intensity)
	return true
}
