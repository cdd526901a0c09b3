package anno

import (
	"fmt"
	"strings"

	"github.com/vizlab/anno/grounding"
)

// ShapeFromAnnotation converts a decoded grounding annotation into a
// vector shape at pixel scale for the given image dimensions. Points
// become point shapes, bounding boxes become rectangles, and oriented
// boxes and polygons become polygons over their corner loop.
func ShapeFromAnnotation(a grounding.Annotation, width, height int) (Shape, error) {
	if len(a.Coords)%2 != 0 || len(a.Coords) < 2 {
		return Shape{}, fmt.Errorf("%w: %d coordinates", ErrInvalidShapeGeometry, len(a.Coords))
	}
	px := a.ToPixels(width, height)
	pts := make([]Point, len(px.Coords)/2)
	for i := range pts {
		pts[i] = Point{X: px.Coords[2*i], Y: px.Coords[2*i+1]}
	}

	s := Shape{Label: a.Label, Points: pts}
	switch a.Kind {
	case grounding.KindPoint:
		s.Type = ShapePoint
	case grounding.KindBBox:
		s.Type = ShapeRectangle
	case grounding.KindOrientedBox, grounding.KindPolygon:
		s.Type = ShapePolygon
	default:
		return Shape{}, fmt.Errorf("%w: annotation kind %d", ErrUnsupportedShapeType, int(a.Kind))
	}
	return s, s.Validate()
}

// AnnotationFromShape converts a shape into a normalized grounding
// annotation. Only shapes expressible in the grammar convert: points,
// rectangles, and polygons. Circles, lines, linestrips, and masks
// return ErrUnsupportedShapeType.
func AnnotationFromShape(s Shape, width, height int) (grounding.Annotation, error) {
	if err := s.Validate(); err != nil {
		return grounding.Annotation{}, err
	}

	var kind grounding.Kind
	switch s.Type {
	case ShapePoint:
		kind = grounding.KindPoint
	case ShapeRectangle:
		kind = grounding.KindBBox
	case ShapePolygon:
		var ok bool
		kind, ok = grounding.KindForCount(2 * len(s.Points))
		if !ok {
			return grounding.Annotation{}, fmt.Errorf("%w: %d polygon points", ErrInvalidShapeGeometry, len(s.Points))
		}
	default:
		return grounding.Annotation{}, fmt.Errorf("%w: %s is not expressible in the grounding grammar",
			ErrUnsupportedShapeType, s.Type)
	}

	coords := make([]float64, 0, 2*len(s.Points))
	for _, p := range s.Points {
		coords = append(coords, p.X, p.Y)
	}
	a := grounding.Annotation{Label: s.Label, Kind: kind, Coords: coords, Normalized: false}
	return a.ToNormalized(width, height), nil
}

// GroundingResponse renders shapes as an assistant response sentence
// embedding one grammar annotation per shape, e.g.
//
//	There are <p>car</p>[...] and <p>dog</p>[...] in the image.
//
// Shapes that cannot be expressed in the grammar are skipped and
// reported in the returned error list; the sentence is built from the
// rest. With no convertible shapes the response says so in plain text.
func GroundingResponse(shapes []Shape, width, height int, opts ...grounding.EncodeOption) (string, []ShapeError) {
	var (
		parts   []string
		skipped []ShapeError
	)
	for i, s := range shapes {
		a, err := AnnotationFromShape(s, width, height)
		if err != nil {
			skipped = append(skipped, ShapeError{Index: i, Err: err})
			continue
		}
		parts = append(parts, grounding.EncodeAnnotation(a, opts...))
	}

	switch len(parts) {
	case 0:
		return "I don't see any specific objects to detect in this image.", skipped
	case 1:
		return fmt.Sprintf("There is %s in the image.", parts[0]), skipped
	case 2:
		return fmt.Sprintf("There are %s and %s in the image.", parts[0], parts[1]), skipped
	default:
		head := strings.Join(parts[:len(parts)-1], ", ")
		return fmt.Sprintf("There are %s, and %s in the image.", head, parts[len(parts)-1]), skipped
	}
}
