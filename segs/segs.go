// Package segs converts segmentation results into masks and selector
// queries. A segmentation is a set of cropped per-segment masks, each tagged
// with a label, a confidence score, and the image-space crop region the
// cropped mask belongs to.
package segs

import (
	"fmt"
	"sort"

	texttools "github.com/Nakamura2828/ComfyUI-JK-TextTools"
	"github.com/Nakamura2828/ComfyUI-JK-TextTools/bbox"
)

// Segment is one segmentation fragment: a cropped mask plus where it sits in
// the full image.
type Segment struct {
	Label      string
	Confidence float64
	// CropRegion is the image-space placement in two-corner form
	// (x1, y1, x2, y2).
	CropRegion [4]int
	// Mask is the cropped mask, sized to the crop region (mismatches are
	// cropped or padded on placement).
	Mask *bbox.Mask
}

// Segs is a full segmentation: the image dimensions plus the segments.
type Segs struct {
	Width    int
	Height   int
	Segments []Segment
}

// SortOrder selects how segments are ordered before grouping.
type SortOrder string

// Supported sort orders.
const (
	SortDefault    SortOrder = "default"
	SortXThenY     SortOrder = "x_then_y"
	SortYThenX     SortOrder = "y_then_x"
	SortConfidence SortOrder = "confidence_high_to_low"
)

// Options filters and shapes mask construction.
type Options struct {
	// LabelFilter is a glob-style pattern over segment labels.
	LabelFilter string
	// MinConfidence is an inclusive lower bound.
	MinConfidence float64
	// MinAreaPercent drops group masks covering less than this percentage
	// of the image.
	MinAreaPercent float64
	// SortOrder orders segments before grouping.
	SortOrder SortOrder
	// UnionSameLabels merges all segments sharing a label into one mask.
	UnionSameLabels bool
	// Invert swaps foreground/background once, on the final masks.
	Invert bool
}

// MaskResult is the conversion outcome. Labels parallels Individual and
// carries "label: confidence" strings for downstream display.
type MaskResult struct {
	Combined   *bbox.Mask
	Individual []*bbox.Mask
	Labels     []string
	Count      int
}

// fallbackSize stands in when a segmentation arrives without usable
// dimensions.
const fallbackSize = 512

// ToMask converts a segmentation into one combined union mask plus one mask
// per group (per label when UnionSameLabels is set, per segment otherwise).
// Segments failing the label, confidence or area filters are skipped, never
// an error; an input that filters down to nothing yields an empty combined
// mask and zero groups.
func ToMask(s Segs, opts Options) MaskResult {
	width, height := s.Width, s.Height
	if width <= 0 || height <= 0 {
		width, height = fallbackSize, fallbackSize
	}

	res := MaskResult{Combined: bbox.NewMask(width, height)}

	segments := s.Segments
	if opts.SortOrder != "" && opts.SortOrder != SortDefault {
		segments = sortSegments(segments, opts.SortOrder)
	}

	imageArea := float64(width * height)
	for _, grp := range groupSegments(segments, opts.UnionSameLabels) {
		groupMask := bbox.NewMask(width, height)
		maxConfidence := 0.0
		hasMask := false

		for _, seg := range grp.segments {
			if !matchesLabel(seg.Label, opts.LabelFilter) {
				continue
			}
			if seg.Confidence < opts.MinConfidence {
				continue
			}
			if seg.Confidence > maxConfidence {
				maxConfidence = seg.Confidence
			}
			if seg.Mask == nil {
				continue
			}
			if place(groupMask, seg) {
				hasMask = true
			}
		}

		if !hasMask {
			continue
		}
		if imageArea > 0 && groupMask.Sum()/imageArea*100 < opts.MinAreaPercent {
			continue
		}

		res.Combined.Or(groupMask)
		res.Individual = append(res.Individual, groupMask)
		res.Labels = append(res.Labels, fmt.Sprintf("%s: %.2f", grp.label, maxConfidence))
	}

	if opts.Invert {
		res.Combined.Invert()
		for _, m := range res.Individual {
			m.Invert()
		}
	}
	res.Count = len(res.Individual)
	return res
}

// SAM3Query unions every segment (unfiltered) and renders selector queries:
// a box query over the two-corner bounds of the union's foreground pixels
// and a point query at its centroid. An empty union yields "[]" for both.
func SAM3Query(s Segs) (boxQuery, pointQuery string) {
	width, height := s.Width, s.Height
	if width <= 0 || height <= 0 {
		return "[]", "[]"
	}

	full := bbox.NewMask(width, height)
	placed := false
	for _, seg := range s.Segments {
		if seg.Mask == nil {
			continue
		}
		if place(full, seg) {
			placed = true
		}
	}
	if !placed {
		return "[]", "[]"
	}

	b, ok := bbox.FromMask(full)
	if !ok {
		return "[]", "[]"
	}
	cx, cy, _ := bbox.Centroid(full)

	// The box query spans pixel indices, so the far corner is the last
	// foreground pixel rather than one past it.
	corner := bbox.Box{X: b.X, Y: b.Y, W: b.W - 1, H: b.H - 1}
	return bbox.SAM3BoxQuery(corner), pointJSON(cx, cy)
}

// place copies a segment's cropped mask into image space, clamped to the
// target bounds, cropping or padding when the mask and crop region disagree
// on size. It reports whether any region survived clamping.
func place(target *bbox.Mask, seg Segment) bool {
	x1 := clamp(seg.CropRegion[0], 0, target.Width)
	y1 := clamp(seg.CropRegion[1], 0, target.Height)
	x2 := clamp(seg.CropRegion[2], 0, target.Width)
	y2 := clamp(seg.CropRegion[3], 0, target.Height)

	regionW := x2 - x1
	regionH := y2 - y1
	if regionW <= 0 || regionH <= 0 {
		return false
	}

	copyW := regionW
	if seg.Mask.Width < copyW {
		copyW = seg.Mask.Width
	}
	copyH := regionH
	if seg.Mask.Height < copyH {
		copyH = seg.Mask.Height
	}

	for y := 0; y < copyH; y++ {
		for x := 0; x < copyW; x++ {
			v := seg.Mask.At(x, y)
			if v > target.At(x1+x, y1+y) {
				target.Set(x1+x, y1+y, v)
			}
		}
	}
	return true
}

// group is a set of segments rendered as one mask.
type group struct {
	label    string
	segments []Segment
}

// groupSegments groups by label (first-seen order) when union is set,
// otherwise every segment stands alone.
func groupSegments(segments []Segment, union bool) []group {
	if !union {
		groups := make([]group, 0, len(segments))
		for _, seg := range segments {
			groups = append(groups, group{label: seg.Label, segments: []Segment{seg}})
		}
		return groups
	}

	index := make(map[string]int)
	var groups []group
	for _, seg := range segments {
		i, ok := index[seg.Label]
		if !ok {
			i = len(groups)
			index[seg.Label] = i
			groups = append(groups, group{label: seg.Label})
		}
		groups[i].segments = append(groups[i].segments, seg)
	}
	return groups
}

// matchesLabel applies the wildcard filter; an empty label only matches the
// empty pattern (or the match-all "*").
func matchesLabel(label, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if label == "" {
		return pattern == ""
	}
	return texttools.MatchWildcard(pattern, label)
}

// sortSegments orders segments by position or by descending confidence,
// stably so equal keys keep their arrival order.
func sortSegments(segments []Segment, order SortOrder) []Segment {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)

	switch order {
	case SortConfidence:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Confidence > sorted[j].Confidence
		})
	case SortXThenY:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].CropRegion, sorted[j].CropRegion
			if a[0] != b[0] {
				return a[0] < b[0]
			}
			return a[1] < b[1]
		})
	case SortYThenX:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].CropRegion, sorted[j].CropRegion
			if a[1] != b[1] {
				return a[1] < b[1]
			}
			return a[0] < b[0]
		})
	}
	return sorted
}

func pointJSON(x, y float64) string {
	return bbox.SAM3PointQuery(bbox.Box{X: x, Y: y, W: 0, H: 0})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
