package anno

import (
	"fmt"
	"math"
)

// ShapeType identifies the geometric primitive of a Shape.
//
// The set is exhaustive: values outside it fail with
// ErrUnsupportedShapeType rather than falling back to any default
// interpretation.
type ShapeType int

const (
	// ShapePoint is a single location, rasterized as a filled disc.
	ShapePoint ShapeType = iota

	// ShapeLine is a single stroked segment between two points.
	ShapeLine

	// ShapeLineStrip is an open chain of stroked segments.
	ShapeLineStrip

	// ShapeRectangle is an axis-aligned filled rectangle given by two
	// opposite corners in any order.
	ShapeRectangle

	// ShapeCircle is a filled ellipse inscribed in the axis-aligned
	// square spanned by the radius around the center; the two points
	// are the center and a point on the rim.
	ShapeCircle

	// ShapePolygon is a filled closed polygon over the vertex loop.
	ShapePolygon

	// ShapeMask is a pre-rasterized boolean patch pasted at the box
	// spanned by two corner points.
	ShapeMask
)

// String returns the wire name of the shape type, as used in annotation
// files ("point", "line", "linestrip", "rectangle", "circle", "polygon",
// "mask"). Unknown values return "unknown".
func (t ShapeType) String() string {
	switch t {
	case ShapePoint:
		return "point"
	case ShapeLine:
		return "line"
	case ShapeLineStrip:
		return "linestrip"
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	case ShapeMask:
		return "mask"
	default:
		return "unknown"
	}
}

// ParseShapeType converts a wire name to a ShapeType.
// Unrecognized names return ErrUnsupportedShapeType.
func ParseShapeType(s string) (ShapeType, error) {
	switch s {
	case "point":
		return ShapePoint, nil
	case "line":
		return ShapeLine, nil
	case "linestrip":
		return ShapeLineStrip, nil
	case "rectangle":
		return ShapeRectangle, nil
	case "circle":
		return ShapeCircle, nil
	case "polygon":
		return ShapePolygon, nil
	case "mask":
		return ShapeMask, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedShapeType, s)
	}
}

// Shape is a single vector annotation in pixel space.
//
// Shapes are plain values; once rasterized they are treated as
// immutable. GroupID ties multiple shapes together as one logical
// instance: shapes sharing both Label and GroupID merge during label
// map compositing, while shapes without a GroupID always form their
// own instance.
type Shape struct {
	Type   ShapeType
	Points []Point
	Label  string

	// GroupID is nil for ungrouped shapes.
	GroupID *int

	// Mask holds the pre-rasterized patch for ShapeMask shapes; its
	// dimensions must match the integer box spanned by the two Points.
	Mask *BitMask
}

// Validate checks the point-count invariants for the shape's type and
// the mask-patch dimensions for ShapeMask. It returns
// ErrUnsupportedShapeType for types outside the known set and
// ErrInvalidShapeGeometry for count or dimension violations.
func (s Shape) Validate() error {
	switch s.Type {
	case ShapePoint:
		if len(s.Points) != 1 {
			return fmt.Errorf("%w: point needs 1 point, got %d", ErrInvalidShapeGeometry, len(s.Points))
		}
	case ShapeLine, ShapeRectangle, ShapeCircle:
		if len(s.Points) != 2 {
			return fmt.Errorf("%w: %s needs 2 points, got %d", ErrInvalidShapeGeometry, s.Type, len(s.Points))
		}
	case ShapeLineStrip:
		if len(s.Points) < 2 {
			return fmt.Errorf("%w: linestrip needs at least 2 points, got %d", ErrInvalidShapeGeometry, len(s.Points))
		}
	case ShapePolygon:
		if len(s.Points) < 3 {
			return fmt.Errorf("%w: polygon needs at least 3 points, got %d", ErrInvalidShapeGeometry, len(s.Points))
		}
	case ShapeMask:
		if len(s.Points) != 2 {
			return fmt.Errorf("%w: mask needs 2 corner points, got %d", ErrInvalidShapeGeometry, len(s.Points))
		}
		if s.Mask == nil {
			return fmt.Errorf("%w: mask shape has no mask data", ErrInvalidShapeGeometry)
		}
		x0, y0, x1, y1 := s.maskBox()
		if w, h := x1-x0+1, y1-y0+1; s.Mask.Width() != w || s.Mask.Height() != h {
			return fmt.Errorf("%w: mask is %dx%d but anchor box is %dx%d",
				ErrInvalidShapeGeometry, s.Mask.Width(), s.Mask.Height(), w, h)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedShapeType, int(s.Type))
	}
	return nil
}

// maskBox returns the integer anchor box (x0, y0, x1, y1), corners
// inclusive and normalized so x0 <= x1 and y0 <= y1.
func (s Shape) maskBox() (x0, y0, x1, y1 int) {
	ax, ay := int(math.Round(s.Points[0].X)), int(math.Round(s.Points[0].Y))
	bx, by := int(math.Round(s.Points[1].X)), int(math.Round(s.Points[1].Y))
	x0, x1 = min(ax, bx), max(ax, bx)
	y0, y1 = min(ay, by), max(ay, by)
	return x0, y0, x1, y1
}
