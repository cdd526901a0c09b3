package anno

import "log/slog"

// LabelMap holds two same-shaped integer rasters: a class map and an
// instance map, both with background value 0. The maps satisfy the
// invariant that a pixel has a positive class value exactly when it has
// a positive instance value.
//
// A LabelMap is rebuilt from scratch whenever the shape list changes;
// there is no incremental mutation.
type LabelMap struct {
	width    int
	height   int
	class    []int32
	instance []int32
}

// NewLabelMap creates an all-background label map.
func NewLabelMap(width, height int) *LabelMap {
	return &LabelMap{
		width:    width,
		height:   height,
		class:    make([]int32, width*height),
		instance: make([]int32, width*height),
	}
}

// Width returns the raster width.
func (lm *LabelMap) Width() int { return lm.width }

// Height returns the raster height.
func (lm *LabelMap) Height() int { return lm.height }

// ClassAt returns the class id at (x, y), 0 for background or
// out-of-bounds coordinates.
func (lm *LabelMap) ClassAt(x, y int) int32 {
	if x < 0 || x >= lm.width || y < 0 || y >= lm.height {
		return 0
	}
	return lm.class[y*lm.width+x]
}

// InstanceAt returns the instance id at (x, y), 0 for background or
// out-of-bounds coordinates.
func (lm *LabelMap) InstanceAt(x, y int) int32 {
	if x < 0 || x >= lm.width || y < 0 || y >= lm.height {
		return 0
	}
	return lm.instance[y*lm.width+x]
}

// set overwrites both maps at (x, y). Out-of-bounds writes are ignored.
func (lm *LabelMap) set(x, y int, classID, instanceID int32) {
	if x < 0 || x >= lm.width || y < 0 || y >= lm.height {
		return
	}
	i := y*lm.width + x
	lm.class[i] = classID
	lm.instance[i] = instanceID
}

// InstanceMask extracts the boolean coverage of one instance id.
// The mask may be empty if every pixel of the instance was overwritten
// by later shapes.
func (lm *LabelMap) InstanceMask(id int32) *BitMask {
	m := NewBitMask(lm.width, lm.height)
	for i, v := range lm.instance {
		if v == id {
			m.data[i] = true
		}
	}
	return m
}

// Instance describes one composited object occurrence. Multiple shapes
// sharing a label and group id collapse into a single instance.
type Instance struct {
	ID      int32 // 1-based, in first-seen order
	ClassID int32
	Label   string
	GroupID *int // nil for ungrouped shapes
}

// BuildResult is the output of BuildLabelMap: the composited maps, the
// instance identity table, and the shapes that could not be composited.
type BuildResult struct {
	Maps      *LabelMap
	Instances []Instance // index i corresponds to instance id i+1

	// Skipped lists per-shape failures. The build continues past them;
	// a skipped shape contributes no pixels and no instance.
	Skipped []ShapeError
}

// instanceKey identifies one (label, group id) pair for grouped shapes.
type instanceKey struct {
	label string
	group int
}

// BuildLabelMap composites shapes, in input order, into class and
// instance rasters.
//
// Identity resolution: an ungrouped shape always allocates a fresh
// instance, even when it shares a label with another ungrouped shape; a
// grouped shape joins the instance of any earlier shape with the same
// label and group id, and the instance mask becomes the union of their
// coverage. Instance ids are 1-based and increase in first-seen order.
//
// Compositing is an ordered fold with last-write-wins semantics: on
// overlap, the shape later in the input always owns the pixel. Shapes
// whose label is missing from classes, whose geometry is invalid, or
// whose type is unknown are skipped and recorded in the result; only
// non-positive dimensions abort the whole build.
func BuildLabelMap(width, height int, shapes []Shape, classes map[string]int32, opts ...RasterOption) (*BuildResult, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidRasterSize
	}

	res := &BuildResult{Maps: NewLabelMap(width, height)}
	grouped := make(map[instanceKey]int32)

	for i, s := range shapes {
		classID, ok := classes[s.Label]
		if !ok {
			res.skip(i, s, ErrUnknownLabelClass)
			continue
		}

		cover, err := Rasterize(width, height, s, opts...)
		if err != nil {
			res.skip(i, s, err)
			continue
		}

		var instanceID int32
		if s.GroupID != nil {
			key := instanceKey{label: s.Label, group: *s.GroupID}
			if id, seen := grouped[key]; seen {
				instanceID = id
			} else {
				instanceID = res.allocate(s, classID)
				grouped[key] = instanceID
			}
		} else {
			instanceID = res.allocate(s, classID)
		}

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if cover.At(x, y) {
					res.Maps.set(x, y, classID, instanceID)
				}
			}
		}
		Logger().Debug("composited shape",
			slog.Int("index", i),
			slog.String("label", s.Label),
			slog.Int("instance", int(instanceID)),
			slog.Int("pixels", cover.Count()))
	}

	return res, nil
}

// allocate appends a new instance for the shape and returns its id.
func (r *BuildResult) allocate(s Shape, classID int32) int32 {
	id := int32(len(r.Instances) + 1)
	r.Instances = append(r.Instances, Instance{
		ID:      id,
		ClassID: classID,
		Label:   s.Label,
		GroupID: s.GroupID,
	})
	return id
}

// skip records a per-shape failure and logs it.
func (r *BuildResult) skip(index int, s Shape, err error) {
	r.Skipped = append(r.Skipped, ShapeError{Index: index, Err: err})
	Logger().Warn("skipping shape",
		slog.Int("index", index),
		slog.String("label", s.Label),
		slog.String("type", s.Type.String()),
		slog.Any("error", err))
}

// Boxes extracts a tight bounding box for every instance, in instance id
// order. The error slice is aligned with the box slice; an entry is
// non-nil (ErrEmptyInstanceMask) when the instance lost all its pixels
// to later shapes.
func (r *BuildResult) Boxes() ([]BoundingBox, []error) {
	masks := make([]*BitMask, len(r.Instances))
	for i, inst := range r.Instances {
		masks[i] = r.Maps.InstanceMask(inst.ID)
	}
	return BoxesFromMasks(masks)
}
