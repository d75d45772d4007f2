// Package glitch implements the digital glitch effect.
//
// The effect is four stages applied in a fixed order, each controlled by an
// amount from 0 to 100 and skipped when its amount is zero:
//
//  1. RGB shift: two horizontally offset ghost copies combined additively.
//  2. Scanlines: periodic darkened rows.
//  3. Noise: random brightening of a fraction of the pixels.
//  4. Block displacement: random rectangles copied to random offsets.
//
// Noise and block displacement draw from the Engine's random source. Use
// NewWithSeed for reproducible output; New seeds from the clock and produces
// different results on every run.
package glitch
