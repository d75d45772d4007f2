// Package crop implements the interactive crop tool.
//
// A Controller holds the crop Region for one image and reacts to pointer
// events delivered through HandleEvent (or PointerDown, PointerMove and
// PointerUp). It moves between three states:
//
//	Idle -> Hovering(handle)   pointer moves over a handle
//	Idle -> Dragging(handle)   pointer down on a handle or inside the region
//	Dragging -> Idle           pointer up
//
// While dragging, each move applies the pointer delta to the region with
// per-handle rules that keep the opposite edges fixed, the region inside the
// image, and both sides at least 20 pixels. Cursor hints ("move",
// "se-resize", "default", ...) are reported to an optional callback so any UI
// toolkit can mirror them.
//
// Apply cuts the region out of the image. Afterwards the controller is bound
// to the cropped size and the region returns to the default 10% inset, ready
// for another crop.
package crop
