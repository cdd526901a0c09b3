package anno

import (
	"errors"
	"testing"
)

func TestParseShapeType(t *testing.T) {
	tests := []struct {
		name string
		want ShapeType
	}{
		{"point", ShapePoint},
		{"line", ShapeLine},
		{"linestrip", ShapeLineStrip},
		{"rectangle", ShapeRectangle},
		{"circle", ShapeCircle},
		{"polygon", ShapePolygon},
		{"mask", ShapeMask},
	}
	for _, tt := range tests {
		got, err := ParseShapeType(tt.name)
		if err != nil {
			t.Errorf("ParseShapeType(%q) error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseShapeType(%q) = %v, want %v", tt.name, got, tt.want)
		}
		if got.String() != tt.name {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.name)
		}
	}
}

func TestParseShapeTypeUnknown(t *testing.T) {
	// Unknown names must be a first-class error, never a polygon fallback.
	if _, err := ParseShapeType("ellipse"); !errors.Is(err, ErrUnsupportedShapeType) {
		t.Errorf("expected ErrUnsupportedShapeType, got %v", err)
	}
}

func TestShapeValidate(t *testing.T) {
	pts := func(n int) []Point {
		p := make([]Point, n)
		for i := range p {
			p[i] = Pt(float64(i), float64(i))
		}
		return p
	}

	tests := []struct {
		name    string
		shape   Shape
		wantErr error
	}{
		{"point ok", Shape{Type: ShapePoint, Points: pts(1)}, nil},
		{"point too many", Shape{Type: ShapePoint, Points: pts(2)}, ErrInvalidShapeGeometry},
		{"line ok", Shape{Type: ShapeLine, Points: pts(2)}, nil},
		{"line too few", Shape{Type: ShapeLine, Points: pts(1)}, ErrInvalidShapeGeometry},
		{"rectangle ok", Shape{Type: ShapeRectangle, Points: pts(2)}, nil},
		{"circle ok", Shape{Type: ShapeCircle, Points: pts(2)}, nil},
		{"circle too many", Shape{Type: ShapeCircle, Points: pts(3)}, ErrInvalidShapeGeometry},
		{"linestrip ok", Shape{Type: ShapeLineStrip, Points: pts(5)}, nil},
		{"linestrip too few", Shape{Type: ShapeLineStrip, Points: pts(1)}, ErrInvalidShapeGeometry},
		{"polygon ok", Shape{Type: ShapePolygon, Points: pts(3)}, nil},
		{"polygon too few", Shape{Type: ShapePolygon, Points: pts(2)}, ErrInvalidShapeGeometry},
		{"unknown type", Shape{Type: ShapeType(42), Points: pts(3)}, ErrUnsupportedShapeType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shape.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestShapeValidateMask(t *testing.T) {
	patch := NewBitMask(3, 2)
	ok := Shape{
		Type:   ShapeMask,
		Points: []Point{Pt(4, 5), Pt(6, 6)}, // 3x2 box, corners inclusive
		Mask:   patch,
	}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	missing := Shape{Type: ShapeMask, Points: []Point{Pt(4, 5), Pt(6, 6)}}
	if err := missing.Validate(); !errors.Is(err, ErrInvalidShapeGeometry) {
		t.Errorf("expected ErrInvalidShapeGeometry for nil mask, got %v", err)
	}

	mismatched := Shape{
		Type:   ShapeMask,
		Points: []Point{Pt(4, 5), Pt(10, 10)},
		Mask:   patch,
	}
	if err := mismatched.Validate(); !errors.Is(err, ErrInvalidShapeGeometry) {
		t.Errorf("expected ErrInvalidShapeGeometry for dimension mismatch, got %v", err)
	}
}
