package editor

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-edit-mcp/internal/affine"
	"github.com/ironsheep/image-edit-mcp/internal/crop"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/pixel"
)

// Session is one image being edited. It holds the working image, the tool
// currently being adjusted and a preview surface showing the tool's result.
//
// Parameter changes call RequestPreview; Frame performs at most one pending
// render, so any number of requests between two frames costs one render.
// Commit bakes the current tool into the working image.
//
// A Session is not safe for concurrent use.
type Session struct {
	original *image.NRGBA
	working  *image.NRGBA

	tool    Tool
	preview *imaging.Surface
	pending bool

	orientation affine.State
	crop        *crop.Controller
	cropOpts    []crop.Option

	format imaging.Format
}

// Option configures a Session.
type Option func(*Session)

// WithFormat sets the default export format.
func WithFormat(f imaging.Format) Option {
	return func(s *Session) {
		s.format = f
	}
}

// WithCropOptions passes options to the session's crop controller.
func WithCropOptions(opts ...crop.Option) Option {
	return func(s *Session) {
		s.cropOpts = append(s.cropOpts, opts...)
	}
}

// NewSession returns an empty session. Load an image before using it.
func NewSession(opts ...Option) *Session {
	s := &Session{
		preview: imaging.NewSurface(0, 0),
		format:  imaging.PNG,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.crop = crop.NewController(0, 0, s.cropOpts...)
	return s
}

// Load starts editing img. Any previous image, tool and orientation are
// discarded and a preview of the unedited image is requested.
func (s *Session) Load(img image.Image) {
	if pixel.Empty(img) {
		s.original, s.working = nil, nil
		s.crop.Reset(0, 0)
		s.preview.Resize(0, 0)
		return
	}
	s.original = pixel.Clone(img)
	s.working = pixel.Copy(s.original)
	s.tool = nil
	s.orientation.Reset()
	s.crop.Reset(s.working.Rect.Dx(), s.working.Rect.Dy())
	s.RequestPreview()
	Logger().Info("image loaded", "width", s.working.Rect.Dx(), "height", s.working.Rect.Dy())
}

// Loaded reports whether the session has an image.
func (s *Session) Loaded() bool {
	return s.working != nil
}

// Image returns the working image with all committed edits. Callers must
// not modify it.
func (s *Session) Image() *image.NRGBA {
	return s.working
}

// Tool returns the tool being previewed, or nil.
func (s *Session) Tool() Tool {
	return s.tool
}

// SetTool selects the tool to preview and requests a preview. Setting the
// same tool type with new parameters is how sliders update the preview.
func (s *Session) SetTool(t Tool) {
	s.tool = t
	s.RequestPreview()
}

// RequestPreview marks the preview as stale.
func (s *Session) RequestPreview() {
	s.pending = true
}

// Pending reports whether a preview render is waiting for the next Frame.
func (s *Session) Pending() bool {
	return s.pending
}

// Frame renders the preview if one was requested since the last frame. It
// reports whether a render happened.
func (s *Session) Frame() (bool, error) {
	if !s.pending {
		return false, nil
	}
	s.pending = false
	if s.working == nil {
		return false, nil
	}
	if _, err := Run(s.tool, s.working, s.preview, false, s.format); err != nil {
		return true, err
	}
	return true, nil
}

// Preview renders any pending preview and returns the preview surface.
func (s *Session) Preview() (*imaging.Surface, error) {
	if _, err := s.Frame(); err != nil {
		return s.preview, err
	}
	return s.preview, nil
}

// Commit applies the current tool to the working image and clears the
// tool. Committing without a tool does nothing.
func (s *Session) Commit() error {
	if s.working == nil || s.tool == nil {
		return nil
	}
	surface := imaging.NewSurface(0, 0)
	if _, err := Run(s.tool, s.working, surface, false, s.format); err != nil {
		return err
	}
	Logger().Debug("committed", "tool", s.tool.Name())

	s.replace(surface.ReadPixels())
	s.tool = nil
	return nil
}

// Transform flips or rotates the working image in place and records the
// operation in the session's orientation.
func (s *Session) Transform(op affine.Operation) error {
	if _, ok := op.Params(); !ok {
		return fmt.Errorf("unknown transform %q", op)
	}
	if s.working == nil {
		return nil
	}
	s.replace(s.orientation.Apply(s.working, op))
	return nil
}

// Orientation returns the net flips and rotation applied so far.
func (s *Session) Orientation() affine.State {
	return s.orientation
}

// Crop returns the crop controller, bound to the working image size.
// Feed it pointer events, then call ApplyCrop.
func (s *Session) Crop() *crop.Controller {
	return s.crop
}

// ApplyCrop cuts the controller's region out of the working image. The
// controller resets to a default region on the cropped image.
func (s *Session) ApplyCrop() {
	if s.working == nil {
		return
	}
	s.working = s.crop.Apply(s.working)
	s.RequestPreview()
	Logger().Debug("cropped", "width", s.working.Rect.Dx(), "height", s.working.Rect.Dy())
}

// Revert drops every committed edit and returns to the loaded image.
func (s *Session) Revert() {
	if s.original == nil {
		return
	}
	s.tool = nil
	s.orientation.Reset()
	s.replace(pixel.Copy(s.original))
}

// Export renders the current tool over the working image and encodes the
// result as a data URL in format. The working image is not changed.
func (s *Session) Export(format imaging.Format) (string, error) {
	if s.working == nil {
		return "", nil
	}
	url, err := Run(s.tool, s.working, imaging.NewSurface(0, 0), true, format)
	if err != nil {
		return "", err
	}
	Logger().Info("exported", "format", imaging.MimeType(format), "bytes", len(url))
	return url, nil
}

// ExportDefault exports in the session's default format.
func (s *Session) ExportDefault() (string, error) {
	return s.Export(s.format)
}

// replace swaps in a new working image and rebinds the crop controller when
// the size changes.
func (s *Session) replace(img *image.NRGBA) {
	if img == nil {
		return
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if cw, ch := s.crop.Bounds(); cw != w || ch != h {
		s.crop.Reset(w, h)
	}
	s.working = img
	s.RequestPreview()
}
