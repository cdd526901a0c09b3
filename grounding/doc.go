// Package grounding encodes and decodes the inline annotation grammar
// used to anchor vision-language model output in image space, and
// classifies conversation records by whether they carry such
// annotations.
//
// The grammar embeds one annotation per match of
//
//	<p>label</p>[x1,y1,...]
//
// in otherwise free-form text. Coordinates are normalized to [0, 1]
// relative to the image width and height; the coordinate count selects
// the annotation kind (2 point, 4 bounding box, 8 oriented box, any
// other even count of at least 6 polygon).
//
// Model output is untrusted: Decode scans it as a recoverable tokenizer
// that reports malformed matches as warnings and returns every
// well-formed annotation it can find. It never fails.
package grounding
