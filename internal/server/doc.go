// Package server implements the MCP (Model Context Protocol) server for image editing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the editing
// pipeline through the MCP protocol, so MCP clients can adjust, filter,
// transform and annotate image files.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//
// Tone Adjustments:
//   - image_brightness_contrast
//   - image_color_balance
//   - image_grayscale
//
// Filters and Effects:
//   - image_filter: Named color filter at an intensity
//   - image_filter_previews: Thumbnail of every filter
//   - image_glitch: RGB shift, scanlines, noise and blocks
//   - image_pixelize: Block averaging
//
// Color Analysis:
//   - image_palette: Dominant colors as hex strings
//
// Geometry:
//   - image_transform: Flips, quarter turns and free rotation
//   - image_crop: Crop region or crop overlay preview
//
// Overlays:
//   - image_text: Styled text with shadow, outline and highlight
//   - image_watermark: Text or image watermark, with OCR based auto placement
//
// Editing tools return {width, height, image_base64, mime_type}. The output
// format defaults to the configured format and can be overridden per call;
// output_path additionally writes the result to disk.
//
// # Configuration
//
// LoadConfig reads IMAGE_EDIT_MCP_LOG_LEVEL, IMAGE_EDIT_MCP_FORMAT and
// IMAGE_EDIT_MCP_OCR_LANG.
//
// # Image Caching
//
// Source images are cached by path and reused across tool calls. Writing a
// result to output_path evicts that path so the next call sees the new file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := server.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.NewWithConfig(cfg).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
