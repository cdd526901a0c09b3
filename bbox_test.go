package anno

import (
	"errors"
	"math"
	"testing"
)

func TestBoxFromMask(t *testing.T) {
	m := NewBitMask(20, 20)
	m.Set(3, 4, true)
	m.Set(8, 11, true)
	m.Set(5, 7, true)

	box, err := BoxFromMask(m)
	if err != nil {
		t.Fatalf("BoxFromMask() error: %v", err)
	}
	want := BoundingBox{X1: 3, Y1: 4, X2: 8, Y2: 11}
	if box != want {
		t.Errorf("BoxFromMask() = %+v, want %+v", box, want)
	}
}

func TestBoxFromMaskEmpty(t *testing.T) {
	m := NewBitMask(20, 20)
	if _, err := BoxFromMask(m); !errors.Is(err, ErrEmptyInstanceMask) {
		t.Errorf("expected ErrEmptyInstanceMask, got %v", err)
	}
}

func TestBoxFromRasterizedRectangle(t *testing.T) {
	// A rasterized rectangle (2,2)-(7,9) on a 20x20 canvas extracts to
	// a box within one pixel of the source corners.
	s := Shape{Type: ShapeRectangle, Points: []Point{Pt(2, 2), Pt(7, 9)}}
	m, err := Rasterize(20, 20, s)
	if err != nil {
		t.Fatalf("Rasterize() error: %v", err)
	}
	box, err := BoxFromMask(m)
	if err != nil {
		t.Fatalf("BoxFromMask() error: %v", err)
	}
	want := BoundingBox{X1: 2, Y1: 2, X2: 7, Y2: 9}
	for _, d := range []float64{
		box.X1 - want.X1, box.Y1 - want.Y1,
		box.X2 - want.X2, box.Y2 - want.Y2,
	} {
		if math.Abs(d) > 1 {
			t.Fatalf("BoxFromMask() = %+v, want %+v within one pixel", box, want)
		}
	}
}

func TestBoxesFromMasksOrderAndIsolation(t *testing.T) {
	full := NewBitMask(10, 10)
	full.Set(1, 2, true)
	empty := NewBitMask(10, 10)
	other := NewBitMask(10, 10)
	other.Set(5, 5, true)
	other.Set(7, 8, true)

	boxes, errs := BoxesFromMasks([]*BitMask{full, empty, other})
	if len(boxes) != 3 || len(errs) != 3 {
		t.Fatalf("outputs must align with input: %d boxes, %d errs", len(boxes), len(errs))
	}
	if errs[0] != nil || errs[2] != nil {
		t.Errorf("valid masks must not error: %v, %v", errs[0], errs[2])
	}
	// A failed entry never aborts the remaining ones.
	if !errors.Is(errs[1], ErrEmptyInstanceMask) {
		t.Errorf("errs[1] = %v, want ErrEmptyInstanceMask", errs[1])
	}
	if boxes[0] != (BoundingBox{X1: 1, Y1: 2, X2: 1, Y2: 2}) {
		t.Errorf("boxes[0] = %+v", boxes[0])
	}
	if boxes[2] != (BoundingBox{X1: 5, Y1: 5, X2: 7, Y2: 8}) {
		t.Errorf("boxes[2] = %+v", boxes[2])
	}
}

func TestBuildResultBoxes(t *testing.T) {
	shapes := []Shape{
		rect("a", nil, Pt(2, 2), Pt(7, 9)),
		rect("b", nil, Pt(2, 2), Pt(7, 9)), // fully overwrites the first
	}
	res, err := BuildLabelMap(20, 20, shapes, map[string]int32{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("BuildLabelMap() error: %v", err)
	}
	boxes, errs := res.Boxes()
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(boxes))
	}
	// The first instance lost every pixel to the second.
	if !errors.Is(errs[0], ErrEmptyInstanceMask) {
		t.Errorf("errs[0] = %v, want ErrEmptyInstanceMask", errs[0])
	}
	if errs[1] != nil {
		t.Errorf("errs[1] = %v, want nil", errs[1])
	}
	if boxes[1].Width() <= 0 || boxes[1].Height() <= 0 {
		t.Errorf("surviving instance box is degenerate: %+v", boxes[1])
	}
}

func TestBoundingBoxDims(t *testing.T) {
	b := BoundingBox{X1: 2, Y1: 3, X2: 7, Y2: 9}
	if b.Width() != 5 || b.Height() != 6 {
		t.Errorf("Width/Height = %g/%g, want 5/6", b.Width(), b.Height())
	}
}
