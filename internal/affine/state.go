package affine

import (
	"fmt"
	"image"
	"strings"
)

// Operation is a single user transform request. Each operation is an
// incremental delta applied to the current image, never a cumulative total.
type Operation string

// Supported operations.
const (
	FlipHorizontal Operation = "flip_horizontal"
	FlipVertical   Operation = "flip_vertical"
	RotateRight    Operation = "rotate_right"
	RotateLeft     Operation = "rotate_left"
)

// Operations lists every supported operation.
func Operations() []Operation {
	return []Operation{FlipHorizontal, FlipVertical, RotateRight, RotateLeft}
}

// ParseOperation converts a name such as "rotate_right" into an Operation.
// Hyphens and case are ignored.
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	if _, ok := op.Params(); !ok {
		return "", fmt.Errorf("unknown transform operation %q", name)
	}
	return op, nil
}

// Params returns the transform delta for op.
func (op Operation) Params() (Params, bool) {
	switch op {
	case FlipHorizontal:
		return Params{FlipH: true}, true
	case FlipVertical:
		return Params{FlipV: true}, true
	case RotateRight:
		return Params{Rotation: 90}, true
	case RotateLeft:
		return Params{Rotation: -90}, true
	}
	return Params{}, false
}

// State tracks the net orientation produced by a sequence of operations. The
// image itself is transformed destructively by Apply; State only records
// where the sequence has led.
type State struct {
	FlipH    bool `json:"flip_horizontal"`
	FlipV    bool `json:"flip_vertical"`
	Rotation int  `json:"rotation"`
}

// Record folds op into the state.
func (s *State) Record(op Operation) {
	switch op {
	case FlipHorizontal:
		s.FlipH = !s.FlipH
	case FlipVertical:
		s.FlipV = !s.FlipV
	case RotateRight:
		s.Rotation = (s.Rotation + 90) % 360
	case RotateLeft:
		s.Rotation = (s.Rotation + 270) % 360
	}
}

// Apply transforms img by op, records op, and returns the new image. Unknown
// operations return img unchanged.
func (s *State) Apply(img *image.NRGBA, op Operation) *image.NRGBA {
	p, ok := op.Params()
	if !ok || img == nil {
		return img
	}
	s.Record(op)
	return Transform(img, p)
}

// Reset clears the recorded orientation.
func (s *State) Reset() {
	*s = State{}
}
