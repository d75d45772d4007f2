// Package overlay draws text and watermarks onto images.
//
// Text renders a single line with the Go fonts (sans and mono, each in
// normal, bold, italic and bold italic) at a percentage position of the
// image, with optional highlight box, drop shadow and outline.
//
// Watermark places a text or image mark at one of nine positions, or lets a
// TextLocator steer it to the corner with the least text, and blends it in
// at a given opacity.
//
// Both functions leave their source untouched and return a new image.
package overlay
