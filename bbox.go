package anno

// BoundingBox is an axis-aligned box (X1, Y1)-(X2, Y2) with X1 <= X2
// and Y1 <= Y2, tightly enclosing the covered pixels of one instance
// mask. Boxes are derived values, never persisted independently of
// their source mask.
type BoundingBox struct {
	X1, Y1, X2, Y2 float64
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// BoxFromMask computes the tight bounding box of the covered pixels of
// a mask: the minimum and maximum covered column and row. A mask with
// no covered pixel returns ErrEmptyInstanceMask.
func BoxFromMask(m *BitMask) (BoundingBox, error) {
	minX, minY := m.Width(), m.Height()
	maxX, maxY := -1, -1
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.At(x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return BoundingBox{}, ErrEmptyInstanceMask
	}
	return BoundingBox{
		X1: float64(minX),
		Y1: float64(minY),
		X2: float64(maxX),
		Y2: float64(maxY),
	}, nil
}

// BoxesFromMasks computes bounding boxes for an ordered list of masks.
// Outputs are aligned with the input: boxes[i] corresponds to masks[i],
// and errs[i] is non-nil when masks[i] was empty. A failed entry never
// aborts the remaining ones.
func BoxesFromMasks(masks []*BitMask) ([]BoundingBox, []error) {
	boxes := make([]BoundingBox, len(masks))
	errs := make([]error, len(masks))
	for i, m := range masks {
		boxes[i], errs[i] = BoxFromMask(m)
	}
	return boxes, errs
}
