package anno

import "image"

// BitMask represents boolean pixel coverage over a rectangular raster.
// A pixel is either covered or not; there is no anti-aliasing.
type BitMask struct {
	width  int
	height int
	data   []bool
}

// NewBitMask creates a new empty mask with the given dimensions.
// All pixels start uncovered.
func NewBitMask(width, height int) *BitMask {
	return &BitMask{
		width:  width,
		height: height,
		data:   make([]bool, width*height),
	}
}

// Width returns the mask width.
func (m *BitMask) Width() int { return m.width }

// Height returns the mask height.
func (m *BitMask) Height() int { return m.height }

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *BitMask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// At reports whether the pixel at (x, y) is covered.
// Returns false for coordinates outside the mask bounds.
func (m *BitMask) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.data[y*m.width+x]
}

// Set sets the coverage of the pixel at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *BitMask) Set(x, y int, covered bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = covered
}

// Any reports whether at least one pixel is covered.
func (m *BitMask) Any() bool {
	for _, v := range m.data {
		if v {
			return true
		}
	}
	return false
}

// Count returns the number of covered pixels.
func (m *BitMask) Count() int {
	n := 0
	for _, v := range m.data {
		if v {
			n++
		}
	}
	return n
}

// Clone creates a copy of the mask.
func (m *BitMask) Clone() *BitMask {
	clone := NewBitMask(m.width, m.height)
	copy(clone.data, m.data)
	return clone
}

// Union sets every pixel covered in o. The masks must have equal
// dimensions; a mismatched mask leaves m unchanged and returns
// ErrInvalidShapeGeometry.
func (m *BitMask) Union(o *BitMask) error {
	if o.width != m.width || o.height != m.height {
		return ErrInvalidShapeGeometry
	}
	for i, v := range o.data {
		if v {
			m.data[i] = true
		}
	}
	return nil
}

// ToAlpha converts the mask to an image.Alpha with covered pixels fully
// opaque. Useful for compositing masks over images.
func (m *BitMask) ToAlpha() *image.Alpha {
	img := image.NewAlpha(m.Bounds())
	for i, v := range m.data {
		if v {
			img.Pix[i] = 0xff
		}
	}
	return img
}
