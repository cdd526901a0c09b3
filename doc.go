// Package anno converts between the annotation representations used in
// image labeling pipelines: vector shapes, dense label/instance rasters,
// axis-aligned bounding boxes, and the inline <p>label</p>[coords]
// grounding grammar embedded in vision-language model output.
//
// # Overview
//
// Shapes drawn by an annotation tool (polygons, rectangles, circles,
// lines, points, pasted masks) are rasterized into exact boolean pixel
// coverage and composited into class and instance maps with
// last-write-wins overwrite semantics. Instance maps feed tight bounding
// box extraction. Independently, the grounding subpackage decodes and
// encodes spatial annotations embedded in free-form model text and
// classifies conversation records by whether they carry such annotations.
//
// # Quick Start
//
//	shapes := []anno.Shape{
//	    {Type: anno.ShapeRectangle, Label: "car",
//	        Points: []anno.Point{{X: 12, Y: 8}, {X: 96, Y: 54}}},
//	}
//	res, err := anno.BuildLabelMap(640, 480, shapes, map[string]int32{"car": 1})
//	if err != nil {
//	    // width/height were invalid; per-shape failures land in res.Skipped
//	}
//	boxes, _ := res.Boxes()
//
// # Coordinate System
//
// Pixel space has its origin at the top-left corner, x increasing right
// and y increasing down. A pixel (x, y) is covered by a shape exactly
// when the pixel center (x+0.5, y+0.5) lies inside the filled region;
// masks are strictly boolean with no anti-aliasing. The grounding
// grammar uses coordinates normalized to [0, 1] relative to the image
// width and height.
//
// # Error Handling
//
// Failures are scoped to the single shape or instance being processed.
// Batch operations collect per-item errors and keep going; only
// structurally impossible input (non-positive raster dimensions) aborts
// a whole call. Decoding grounding text never fails: malformed matches
// become warnings and everything recoverable is returned.
package anno

// Version is the current version of the library.
const Version = "0.1.0"
