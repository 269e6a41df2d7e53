// Package bbox implements the bounding-box subsystem: coordinate-format
// conversion, tolerant parsing of wrapped and unwrapped box representations,
// and rasterization of boxes into binary masks.
//
// The internal normal form is corner+dimensions (XYWH). In transit between
// nodes a box travels "wrapped" as a single-element sequence containing the
// four-number sequence ([[x, y, w, h]]); parsing accepts both the wrapped and
// the bare form.
package bbox

import "fmt"

// Box is a bounding box in corner+dimensions form.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Format identifies a four-number coordinate convention.
type Format int

const (
	// XYWH is corner+dimensions: x, y, width, height.
	XYWH Format = iota
	// XYXY is two-corner: x1, y1, x2, y2.
	XYXY
)

// String returns the config-facing format name.
func (f Format) String() string {
	if f == XYXY {
		return "XYXY"
	}
	return "XYWH"
}

// ParseFormat maps a config string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "XYXY":
		return XYXY, nil
	case "XYWH":
		return XYWH, nil
	}
	return XYWH, fmt.Errorf("unknown bbox format %q (want XYXY or XYWH)", s)
}

// Convert translates a four-number quad between coordinate conventions.
// Two-corner to corner+dimensions is (x1, y1, x2-x1, y2-y1); the other
// direction is the inverse; same-to-same is identity. Negative extents from
// reversed corners are clamped to zero so the rasterizer never sees them.
func Convert(q [4]float64, in, out Format) [4]float64 {
	if in == out {
		return q
	}
	if in == XYXY {
		w := q[2] - q[0]
		h := q[3] - q[1]
		if w < 0 {
			w = 0
		}
		if h < 0 {
			h = 0
		}
		return [4]float64{q[0], q[1], w, h}
	}
	w := q[2]
	h := q[3]
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return [4]float64{q[0], q[1], q[0] + w, q[1] + h}
}

// Quad returns the box as a four-number XYWH quad.
func (b Box) Quad() [4]float64 { return [4]float64{b.X, b.Y, b.W, b.H} }

// FromQuad builds a Box from an XYWH quad.
func FromQuad(q [4]float64) Box { return Box{X: q[0], Y: q[1], W: q[2], H: q[3]} }

// Wrap returns the transport form: a single-element sequence holding the
// four-number sequence.
func (b Box) Wrap() [][]float64 {
	return [][]float64{{b.X, b.Y, b.W, b.H}}
}

// WrapInts returns the transport form with truncated integer coordinates,
// the shape box-visualizer hosts expect.
func (b Box) WrapInts() [][]int {
	return [][]int{{int(b.X), int(b.Y), int(b.W), int(b.H)}}
}

// ParseQuad extracts four numbers from a raw sequence value. It accepts
// []float64, []int, []any (with numeric elements) and the wrapped
// single-element form of each.
func ParseQuad(v any) ([4]float64, bool) {
	seq, ok := toFloats(v)
	if !ok {
		return [4]float64{}, false
	}
	if len(seq) == 4 {
		return [4]float64{seq[0], seq[1], seq[2], seq[3]}, true
	}
	return [4]float64{}, false
}

// ParseAny parses a box in XYWH convention from a raw value, tolerating both
// wrapped and unwrapped representations.
func ParseAny(v any) (Box, bool) {
	q, ok := ParseQuad(v)
	if !ok {
		return Box{}, false
	}
	return FromQuad(q), true
}

// toFloats flattens a raw value into a numeric slice. A single-element
// sequence whose element is itself a sequence is unwrapped one level.
func toFloats(v any) ([]float64, bool) {
	switch s := v.(type) {
	case []float64:
		return s, true
	case []float32:
		out := make([]float64, len(s))
		for i, f := range s {
			out[i] = float64(f)
		}
		return out, true
	case []int:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case []int64:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case [][]float64:
		if len(s) == 1 {
			return toFloats(s[0])
		}
	case [][]int:
		if len(s) == 1 {
			return toFloats(s[0])
		}
	case []any:
		// Wrapped form: one element that is itself a sequence.
		if len(s) == 1 {
			if inner, ok := toFloats(s[0]); ok {
				return inner, true
			}
		}
		out := make([]float64, 0, len(s))
		for _, item := range s {
			f, ok := toFloat(item)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	}
	return nil, false
}

// toFloat coerces a single numeric value.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
