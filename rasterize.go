package anno

import (
	"math"

	"github.com/vizlab/anno/internal/scanfill"
)

// Default stroke and marker sizes, in pixels.
const (
	// DefaultLineWidth is the stroke width used for line and linestrip
	// shapes when no option overrides it.
	DefaultLineWidth = 10.0

	// DefaultPointSize is the disc radius used for point shapes when no
	// option overrides it.
	DefaultPointSize = 5.0
)

// RasterOption configures shape rasterization.
type RasterOption func(*rasterConfig)

type rasterConfig struct {
	lineWidth float64
	pointSize float64
}

func defaultRasterConfig() rasterConfig {
	return rasterConfig{
		lineWidth: DefaultLineWidth,
		pointSize: DefaultPointSize,
	}
}

// WithLineWidth sets the stroke width for line and linestrip shapes.
func WithLineWidth(w float64) RasterOption {
	return func(c *rasterConfig) {
		c.lineWidth = w
	}
}

// WithPointSize sets the disc radius for point shapes.
func WithPointSize(r float64) RasterOption {
	return func(c *rasterConfig) {
		c.pointSize = r
	}
}

// Rasterize converts a single shape into boolean pixel coverage over a
// width-by-height raster. It is a pure function with no shared state;
// rasterizing independent shapes from multiple goroutines is safe.
//
// Coverage follows the pixel-center convention documented in the
// package comment. Shapes whose geometry violates the point-count
// invariants fail with ErrInvalidShapeGeometry; unknown shape types
// fail with ErrUnsupportedShapeType. Both are scoped to this shape only.
func Rasterize(width, height int, s Shape, opts ...RasterOption) (*BitMask, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidRasterSize
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultRasterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := NewBitMask(width, height)
	switch s.Type {
	case ShapePoint:
		fillEllipse(m, s.Points[0], cfg.pointSize, cfg.pointSize)
	case ShapeLine, ShapeLineStrip:
		strokePolyline(m, s.Points, cfg.lineWidth)
	case ShapeRectangle:
		fillRectangle(m, s.Points[0], s.Points[1])
	case ShapeCircle:
		r := s.Points[0].Distance(s.Points[1])
		fillEllipse(m, s.Points[0], r, r)
	case ShapePolygon:
		fillPolygon(m, s.Points)
	case ShapeMask:
		pasteMask(m, s)
	}
	return m, nil
}

// fillEllipse covers the pixels whose centers lie inside the ellipse
// with the given center and radii, row by row.
func fillEllipse(m *BitMask, center Point, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	y0 := int(math.Floor(center.Y - ry - 0.5))
	y1 := int(math.Ceil(center.Y + ry + 0.5))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > m.Height() {
		y1 = m.Height()
	}
	for y := y0; y < y1; y++ {
		t := (float64(y) + 0.5 - center.Y) / ry
		if t <= -1 || t >= 1 {
			continue
		}
		half := rx * math.Sqrt(1-t*t)
		x0 := int(math.Ceil(center.X - half - 0.5))
		x1 := int(math.Ceil(center.X + half - 0.5))
		if x0 < 0 {
			x0 = 0
		}
		if x1 > m.Width() {
			x1 = m.Width()
		}
		for x := x0; x < x1; x++ {
			m.Set(x, y, true)
		}
	}
}

// fillRectangle covers the axis-aligned rectangle spanned by two
// opposite corners given in any order. With the pixel-center
// convention, a rectangle (x1,y1)-(x2,y2) covers exactly the pixels
// whose centers fall in [x1,x2) x [y1,y2), so integer-cornered
// rectangles cover (x2-x1)*(y2-y1) pixels.
func fillRectangle(m *BitMask, a, b Point) {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	loop := []scanfill.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
	scanfill.Fill(m.Width(), m.Height(), [][]scanfill.Point{loop}, scanfill.EvenOdd,
		func(x, y int) { m.Set(x, y, true) })
}

// fillPolygon covers the closed vertex loop using the even-odd rule.
func fillPolygon(m *BitMask, pts []Point) {
	loop := make([]scanfill.Point, len(pts))
	for i, p := range pts {
		loop[i] = scanfill.Point{X: p.X, Y: p.Y}
	}
	scanfill.Fill(m.Width(), m.Height(), [][]scanfill.Point{loop}, scanfill.EvenOdd,
		func(x, y int) { m.Set(x, y, true) })
}

// strokePolyline covers the stroke footprint of the open chain through
// pts: one oriented quad of the given width per segment, butt caps at
// the open ends, and disc joints at interior vertices so sharp turns
// leave no cracks. There is no interior fill and no closing segment.
func strokePolyline(m *BitMask, pts []Point, width float64) {
	if width <= 0 {
		return
	}
	half := width / 2
	set := func(x, y int) { m.Set(x, y, true) }
	for i := 0; i+1 < len(pts); i++ {
		p, q := pts[i], pts[i+1]
		d := q.Sub(p)
		if d.Length() == 0 {
			continue
		}
		n := d.Normalize().Perp().Mul(half)
		quad := []scanfill.Point{
			{X: p.X + n.X, Y: p.Y + n.Y},
			{X: q.X + n.X, Y: q.Y + n.Y},
			{X: q.X - n.X, Y: q.Y - n.Y},
			{X: p.X - n.X, Y: p.Y - n.Y},
		}
		scanfill.Fill(m.Width(), m.Height(), [][]scanfill.Point{quad}, scanfill.NonZero, set)
	}
	for i := 1; i+1 < len(pts); i++ {
		fillEllipse(m, pts[i], half, half)
	}
}

// pasteMask copies the shape's pre-rasterized patch onto the canvas at
// its anchor box. Pixels falling outside the canvas are clipped. The
// patch dimensions were checked against the box by Validate.
func pasteMask(m *BitMask, s Shape) {
	x0, y0, _, _ := s.maskBox()
	for py := 0; py < s.Mask.Height(); py++ {
		for px := 0; px < s.Mask.Width(); px++ {
			if s.Mask.At(px, py) {
				m.Set(x0+px, y0+py, true)
			}
		}
	}
}
