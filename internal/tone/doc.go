// Package tone implements the tone adjustments of the editor: brightness and
// contrast, per-channel color balance, and grayscale conversion.
//
// Each adjustment comes in two forms. The image form (BrightnessContrast,
// ColorBalance, Grayscale) takes an *image.NRGBA and returns a modified copy,
// leaving the source untouched. The buffer form (AdjustBrightnessContrast,
// AdjustColorBalance, ToGray) mutates a raw RGBA buffer in place and is what
// the image form calls internally.
//
// Neutral parameters are exact no-ops: the returned copy is byte-identical to
// the source. Alpha is never modified.
package tone
