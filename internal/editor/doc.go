// Package editor runs the editing tools against a source image and a drawing
// surface.
//
// Every tool has the same shape: it takes the source raster and a Surface,
// sizes the surface to the source, draws the source and then rewrites the
// surface pixels. Run is the single entry point for one render, optionally
// exporting the surface as a data URL.
//
// Session layers interactive editing on top: a working image, the tool being
// adjusted, a coalesced preview, commits, flips and rotations, and the crop
// controller.
package editor
