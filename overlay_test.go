package anno

import "testing"

func TestRenderInstances(t *testing.T) {
	shapes := []Shape{
		rect("a", nil, Pt(1, 1), Pt(5, 5)),
		rect("b", nil, Pt(10, 10), Pt(15, 15)),
	}
	res, err := BuildLabelMap(20, 20, shapes, map[string]int32{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("BuildLabelMap() error: %v", err)
	}

	img := RenderInstances(res.Maps)
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Error("background must be transparent")
	}
	c1, c2 := img.NRGBAAt(2, 2), img.NRGBAAt(12, 12)
	if c1.A != 0xff || c2.A != 0xff {
		t.Error("instance pixels must be opaque")
	}
	if c1 == c2 {
		t.Error("different instances must get different colors")
	}
}

func TestRenderInstancesDeterministic(t *testing.T) {
	shapes := []Shape{rect("a", nil, Pt(1, 1), Pt(5, 5))}
	res, err := BuildLabelMap(20, 20, shapes, map[string]int32{"a": 1})
	if err != nil {
		t.Fatalf("BuildLabelMap() error: %v", err)
	}
	a := RenderInstances(res.Maps)
	b := RenderInstances(res.Maps)
	if a.NRGBAAt(2, 2) != b.NRGBAAt(2, 2) {
		t.Error("instance colors must be stable across runs")
	}
}

func TestScaleOverlay(t *testing.T) {
	shapes := []Shape{rect("a", nil, Pt(0, 0), Pt(10, 10))}
	res, err := BuildLabelMap(20, 20, shapes, map[string]int32{"a": 1})
	if err != nil {
		t.Fatalf("BuildLabelMap() error: %v", err)
	}
	src := RenderInstances(res.Maps)
	dst := ScaleOverlay(src, 40, 40)
	if dst.Bounds().Dx() != 40 || dst.Bounds().Dy() != 40 {
		t.Fatalf("unexpected bounds %v", dst.Bounds())
	}
	// Nearest-neighbor sampling never invents colors: a pixel deep
	// inside the scaled instance keeps the source color exactly.
	if got, want := dst.NRGBAAt(10, 10), src.NRGBAAt(5, 5); got != want {
		t.Errorf("scaled color %v, want %v", got, want)
	}
	if a := dst.NRGBAAt(39, 39).A; a != 0 {
		t.Error("scaled background must stay transparent")
	}
}
