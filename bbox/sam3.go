package bbox

import (
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// sam3Opts keeps query serialization deterministic.
var sam3Opts = ojg.Options{Sort: true}

// SAM3BoxQuery renders a box query for SAM3-style selector nodes: a
// single-element JSON array holding the two-corner form of the box.
func SAM3BoxQuery(b Box) string {
	return oj.JSON([]any{map[string]any{
		"x1": b.X,
		"y1": b.Y,
		"x2": b.X + b.W,
		"y2": b.Y + b.H,
	}}, &sam3Opts)
}

// SAM3PointQuery renders a point query: the box center as a single-element
// JSON array.
func SAM3PointQuery(b Box) string {
	return oj.JSON([]any{map[string]any{
		"x": b.X + b.W/2,
		"y": b.Y + b.H/2,
	}}, &sam3Opts)
}

// Centroid returns the center of mass of mask foreground (cells above 0.5),
// weighting every foreground cell equally. ok is false for an empty mask.
func Centroid(m *Mask) (cx, cy float64, ok bool) {
	if m == nil {
		return 0, 0, false
	}
	var sumX, sumY, n float64
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.data[y*m.Width+x] > 0.5 {
				sumX += float64(x)
				sumY += float64(y)
				n++
			}
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	return sumX / n, sumY / n, true
}
