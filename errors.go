package anno

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedShapeType indicates a shape type outside the known set.
	// Unknown types are never silently treated as polygons.
	ErrUnsupportedShapeType = errors.New("anno: unsupported shape type")

	// ErrInvalidShapeGeometry indicates a degenerate point count or a
	// pasted mask whose dimensions do not match its anchor box.
	ErrInvalidShapeGeometry = errors.New("anno: invalid shape geometry")

	// ErrUnknownLabelClass indicates a shape label missing from the
	// label-to-class-id table.
	ErrUnknownLabelClass = errors.New("anno: label has no class id")

	// ErrEmptyInstanceMask indicates an instance mask with no covered
	// pixels, typically an instance fully overwritten by later shapes.
	ErrEmptyInstanceMask = errors.New("anno: instance mask has no pixels")

	// ErrInvalidRasterSize indicates non-positive raster dimensions.
	// This is the only condition that aborts a whole batch.
	ErrInvalidRasterSize = errors.New("anno: raster dimensions must be positive")
)

// ShapeError records a failure scoped to a single shape within a batch
// operation. The batch continues with the remaining shapes.
type ShapeError struct {
	Index int // position of the shape in the input slice
	Err   error
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("anno: shape %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e ShapeError) Unwrap() error { return e.Err }
