package grounding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind identifies the spatial interpretation of an annotation's
// coordinate list.
type Kind int

const (
	// KindPoint is a single location: [x, y].
	KindPoint Kind = iota

	// KindBBox is an axis-aligned box: [x1, y1, x2, y2].
	KindBBox

	// KindOrientedBox is four arbitrary corner points:
	// [x1, y1, x2, y2, x3, y3, x4, y4].
	KindOrientedBox

	// KindPolygon is a closed vertex loop of three or more points.
	KindPolygon
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindBBox:
		return "bbox"
	case KindOrientedBox:
		return "oriented_box"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// KindForCount maps a coordinate count to its kind. It reports false
// for odd counts and counts below 2, which are invalid.
func KindForCount(n int) (Kind, bool) {
	switch {
	case n < 2 || n%2 != 0:
		return 0, false
	case n == 2:
		return KindPoint, true
	case n == 4:
		return KindBBox, true
	case n == 8:
		return KindOrientedBox, true
	default:
		return KindPolygon, true
	}
}

// Annotation is one spatial annotation recovered from or destined for
// grounding text. Coords has even length matching Kind; the invariant
// is established at construction and preserved by the conversions.
type Annotation struct {
	Label      string
	Kind       Kind
	Coords     []float64
	Normalized bool
}

// ToPixels converts normalized coordinates to pixel space by scaling x
// values by the image width and y values by the image height. Pixel
// annotations are returned unchanged.
func (a Annotation) ToPixels(width, height int) Annotation {
	if !a.Normalized {
		return a
	}
	return a.scaled(float64(width), float64(height), false)
}

// ToNormalized converts pixel coordinates to normalized [0, 1] space by
// dividing x values by the image width and y values by the image
// height. Normalized annotations are returned unchanged.
func (a Annotation) ToNormalized(width, height int) Annotation {
	if a.Normalized {
		return a
	}
	return a.scaled(1/float64(width), 1/float64(height), true)
}

func (a Annotation) scaled(sx, sy float64, normalized bool) Annotation {
	coords := make([]float64, len(a.Coords))
	for i, v := range a.Coords {
		if i%2 == 0 {
			coords[i] = v * sx
		} else {
			coords[i] = v * sy
		}
	}
	return Annotation{Label: a.Label, Kind: a.Kind, Coords: coords, Normalized: normalized}
}

// WarningCode classifies a non-fatal decode finding.
type WarningCode int

const (
	// WarnMalformed marks a match with unparseable numeric tokens or an
	// invalid coordinate count. The match is skipped.
	WarnMalformed WarningCode = iota

	// WarnOutOfRange marks a match with coordinates outside [0, 1]. The
	// annotation is kept with its values unclamped.
	WarnOutOfRange
)

// String returns the warning code name.
func (c WarningCode) String() string {
	switch c {
	case WarnMalformed:
		return "malformed_annotation"
	case WarnOutOfRange:
		return "coordinate_out_of_range"
	default:
		return "unknown"
	}
}

// Warning describes one non-fatal finding attached to a decode result.
type Warning struct {
	Code   WarningCode
	Offset int // byte offset of the offending match in the input text
	Detail string
}

// String formats the warning for logs and user-visible warning lists.
func (w Warning) String() string {
	return fmt.Sprintf("%s at offset %d: %s", w.Code, w.Offset, w.Detail)
}

// pattern matches one annotation: open tag, label (no tag delimiter),
// close tag, optional whitespace, bracketed comma-separated tokens.
var pattern = regexp.MustCompile(`<p>([^<]+)</p>\s*\[([^\]]+)\]`)

// Decode scans text left to right for non-overlapping annotation
// matches. Well-formed matches become annotations with normalized
// coordinates; matches with unparseable tokens or an invalid count are
// skipped with a WarnMalformed warning, and coordinates outside [0, 1]
// are kept but flagged WarnOutOfRange. Decoding never aborts: every
// recoverable annotation in the text is returned regardless of how
// many matches are malformed.
//
// Labels are whitespace-trimmed and NFC-normalized so that identity
// matching against class tables is byte-stable across model output
// encodings.
func Decode(text string) ([]Annotation, []Warning) {
	var (
		anns  []Annotation
		warns []Warning
	)
	for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
		offset := m[0]
		label := norm.NFC.String(strings.TrimSpace(text[m[2]:m[3]]))
		tokens := strings.Split(text[m[4]:m[5]], ",")

		coords := make([]float64, 0, len(tokens))
		bad := false
		for _, tok := range tokens {
			v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err != nil {
				warns = append(warns, Warning{
					Code:   WarnMalformed,
					Offset: offset,
					Detail: fmt.Sprintf("unparseable coordinate %q", strings.TrimSpace(tok)),
				})
				bad = true
				break
			}
			coords = append(coords, v)
		}
		if bad {
			continue
		}

		kind, ok := KindForCount(len(coords))
		if !ok {
			warns = append(warns, Warning{
				Code:   WarnMalformed,
				Offset: offset,
				Detail: fmt.Sprintf("invalid coordinate count %d", len(coords)),
			})
			continue
		}

		for _, v := range coords {
			if v < 0 || v > 1 {
				warns = append(warns, Warning{
					Code:   WarnOutOfRange,
					Offset: offset,
					Detail: fmt.Sprintf("coordinate %g outside [0,1]", v),
				})
				break
			}
		}

		anns = append(anns, Annotation{
			Label:      label,
			Kind:       kind,
			Coords:     coords,
			Normalized: true,
		})
	}
	return anns, warns
}

// DefaultPrecision is the number of decimal digits used to serialize
// coordinates. Round-trips through Encode and Decode are exact to
// within half of the last serialized digit, 0.5e-4 at the default.
const DefaultPrecision = 4

// EncodeOption configures annotation serialization.
type EncodeOption func(*encodeConfig)

type encodeConfig struct {
	precision int
}

// WithPrecision sets the number of decimal digits for coordinates.
func WithPrecision(digits int) EncodeOption {
	return func(c *encodeConfig) {
		c.precision = digits
	}
}

// Encode serializes one annotation to the grammar. The kind is implied
// by the coordinate count, so only the label and coordinates appear in
// the output. Encode formats whatever it is given; semantic bounds are
// the decoder's concern on re-parse.
func Encode(label string, coords []float64, opts ...EncodeOption) string {
	cfg := encodeConfig{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	b.WriteString("<p>")
	b.WriteString(label)
	b.WriteString("</p>[")
	for i, v := range coords {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'f', cfg.precision, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// EncodeAnnotation serializes an annotation value. Pixel-space
// annotations must be normalized by the caller first; the coordinates
// are written as-is.
func EncodeAnnotation(a Annotation, opts ...EncodeOption) string {
	return Encode(a.Label, a.Coords, opts...)
}
