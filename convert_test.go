package anno

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vizlab/anno/grounding"
)

func TestShapeFromAnnotationBBox(t *testing.T) {
	a := grounding.Annotation{
		Label:      "car",
		Kind:       grounding.KindBBox,
		Coords:     []float64{0.1, 0.2, 0.4, 0.6},
		Normalized: true,
	}
	s, err := ShapeFromAnnotation(a, 100, 50)
	if err != nil {
		t.Fatalf("ShapeFromAnnotation() error: %v", err)
	}
	if s.Type != ShapeRectangle || s.Label != "car" {
		t.Errorf("got %v %q", s.Type, s.Label)
	}
	want := []Point{Pt(10, 10), Pt(40, 30)}
	for i, p := range want {
		if math.Abs(s.Points[i].X-p.X) > 1e-9 || math.Abs(s.Points[i].Y-p.Y) > 1e-9 {
			t.Errorf("point %d = %+v, want %+v", i, s.Points[i], p)
		}
	}
}

func TestShapeFromAnnotationKinds(t *testing.T) {
	tests := []struct {
		kind   grounding.Kind
		coords []float64
		want   ShapeType
	}{
		{grounding.KindPoint, []float64{0.5, 0.5}, ShapePoint},
		{grounding.KindBBox, []float64{0.1, 0.1, 0.9, 0.9}, ShapeRectangle},
		{grounding.KindOrientedBox, []float64{0.1, 0.2, 0.2, 0.15, 0.4, 0.3, 0.3, 0.35}, ShapePolygon},
		{grounding.KindPolygon, []float64{0.1, 0.1, 0.5, 0.1, 0.3, 0.5}, ShapePolygon},
	}
	for _, tt := range tests {
		a := grounding.Annotation{Label: "x", Kind: tt.kind, Coords: tt.coords, Normalized: true}
		s, err := ShapeFromAnnotation(a, 100, 100)
		if err != nil {
			t.Errorf("kind %v: error %v", tt.kind, err)
			continue
		}
		if s.Type != tt.want {
			t.Errorf("kind %v -> shape %v, want %v", tt.kind, s.Type, tt.want)
		}
	}
}

func TestAnnotationFromShapeRoundTrip(t *testing.T) {
	s := Shape{
		Type:   ShapeRectangle,
		Label:  "car",
		Points: []Point{Pt(10, 10), Pt(40, 30)},
	}
	a, err := AnnotationFromShape(s, 100, 50)
	if err != nil {
		t.Fatalf("AnnotationFromShape() error: %v", err)
	}
	if !a.Normalized || a.Kind != grounding.KindBBox {
		t.Fatalf("got %+v", a)
	}
	want := []float64{0.1, 0.2, 0.4, 0.6}
	for i, v := range want {
		if math.Abs(a.Coords[i]-v) > 1e-9 {
			t.Errorf("coord %d = %g, want %g", i, a.Coords[i], v)
		}
	}

	back, err := ShapeFromAnnotation(a, 100, 50)
	if err != nil {
		t.Fatalf("ShapeFromAnnotation() error: %v", err)
	}
	for i := range s.Points {
		if math.Abs(back.Points[i].X-s.Points[i].X) > 1e-9 ||
			math.Abs(back.Points[i].Y-s.Points[i].Y) > 1e-9 {
			t.Errorf("round trip point %d = %+v, want %+v", i, back.Points[i], s.Points[i])
		}
	}
}

func TestAnnotationFromShapeUnsupported(t *testing.T) {
	for _, s := range []Shape{
		{Type: ShapeCircle, Label: "c", Points: []Point{Pt(5, 5), Pt(8, 5)}},
		{Type: ShapeLine, Label: "l", Points: []Point{Pt(0, 0), Pt(5, 5)}},
	} {
		if _, err := AnnotationFromShape(s, 100, 100); !errors.Is(err, ErrUnsupportedShapeType) {
			t.Errorf("%v: expected ErrUnsupportedShapeType, got %v", s.Type, err)
		}
	}
}

func TestGroundingResponse(t *testing.T) {
	one := []Shape{
		{Type: ShapeRectangle, Label: "car", Points: []Point{Pt(10, 20), Pt(40, 60)}},
	}
	got, skipped := GroundingResponse(one, 100, 100)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	if got != "There is <p>car</p>[0.1000,0.2000,0.4000,0.6000] in the image." {
		t.Errorf("unexpected response: %q", got)
	}

	two := append(one, Shape{Type: ShapePoint, Label: "light", Points: []Point{Pt(50, 50)}})
	got, _ = GroundingResponse(two, 100, 100)
	if !strings.HasPrefix(got, "There are ") || !strings.Contains(got, " and <p>light</p>[") {
		t.Errorf("unexpected two-shape response: %q", got)
	}

	three := append(two, Shape{Type: ShapePoint, Label: "sign", Points: []Point{Pt(25, 75)}})
	got, _ = GroundingResponse(three, 100, 100)
	if !strings.Contains(got, ", and <p>sign</p>[") {
		t.Errorf("unexpected three-shape response: %q", got)
	}
}

func TestGroundingResponseSkipsInexpressible(t *testing.T) {
	shapes := []Shape{
		{Type: ShapeCircle, Label: "c", Points: []Point{Pt(5, 5), Pt(8, 5)}},
		{Type: ShapeRectangle, Label: "car", Points: []Point{Pt(10, 20), Pt(40, 60)}},
	}
	got, skipped := GroundingResponse(shapes, 100, 100)
	if len(skipped) != 1 || skipped[0].Index != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	if !strings.Contains(got, "<p>car</p>") {
		t.Errorf("remaining shapes should still be encoded: %q", got)
	}
}

func TestGroundingResponseEmpty(t *testing.T) {
	got, _ := GroundingResponse(nil, 100, 100)
	if got != "I don't see any specific objects to detect in this image." {
		t.Errorf("unexpected empty response: %q", got)
	}
}

func TestDecodedResponseRasterizes(t *testing.T) {
	// Full pipeline: model text -> annotations -> shapes -> label map.
	text := "There is <p>car</p>[0.1,0.1,0.5,0.5] in the image."
	anns, warns := grounding.Decode(text)
	if len(anns) != 1 || len(warns) != 0 {
		t.Fatalf("decode: %d annotations, %d warnings", len(anns), len(warns))
	}
	s, err := ShapeFromAnnotation(anns[0], 100, 100)
	if err != nil {
		t.Fatalf("ShapeFromAnnotation() error: %v", err)
	}
	res, err := BuildLabelMap(100, 100, []Shape{s}, map[string]int32{"car": 1})
	if err != nil {
		t.Fatalf("BuildLabelMap() error: %v", err)
	}
	if res.Maps.InstanceAt(30, 30) != 1 {
		t.Error("decoded annotation should rasterize at pixel scale")
	}
}
