// Package imaging provides the raster plumbing shared by the editing tools.
//
// This package supplies what sits around the pixel transforms: loading images
// from disk, the drawing Surface the tools render onto, color parsing, and
// encoding results for clients. All rasters are compact *image.NRGBA values
// with their origin at (0,0): non-premultiplied RGBA, row-major, four bytes
// per pixel.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. A Surface belongs to a
// single owner and must be synchronized by the caller if shared.
//
// # Color Representation
//
// Colors are accepted as CSS style strings ("#rgb", "#rrggbb", "#rrggbbaa" or
// a few keywords) and returned as lowercase "#rrggbb" hex.
//
// # Encoding
//
// Output formats are PNG, JPEG, GIF, BMP and TIFF. Encoded images are returned
// as ImageResult values carrying base64 data and a MIME type, or as data URLs.
//
// # Error Handling
//
// Functions return wrapped errors for file I/O failures, undecodable input,
// unsupported formats and malformed colors.
package imaging
