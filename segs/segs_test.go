package segs

import (
	"strings"
	"testing"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/bbox"
)

// solidSegment builds a segment whose cropped mask is all-foreground.
func solidSegment(label string, conf float64, x1, y1, x2, y2 int) Segment {
	m := bbox.NewMask(x2-x1, y2-y1)
	m.Fill(1)
	return Segment{Label: label, Confidence: conf, CropRegion: [4]int{x1, y1, x2, y2}, Mask: m}
}

func TestToMaskBasic(t *testing.T) {
	s := Segs{Width: 10, Height: 10, Segments: []Segment{
		solidSegment("cat", 0.9, 1, 1, 3, 3),
		solidSegment("dog", 0.7, 5, 5, 8, 8),
	}}

	res := ToMask(s, Options{LabelFilter: "*"})
	if res.Count != 2 {
		t.Fatalf("count = %d, want 2", res.Count)
	}
	if res.Combined.At(1, 1) != 1 || res.Combined.At(5, 5) != 1 {
		t.Error("combined mask missing segment coverage")
	}
	if res.Combined.At(0, 0) != 0 || res.Combined.At(4, 4) != 0 {
		t.Error("combined mask covers area outside segments")
	}
	if res.Individual[0].At(5, 5) != 0 {
		t.Error("individual masks not separated")
	}
	if res.Labels[0] != "cat: 0.90" || res.Labels[1] != "dog: 0.70" {
		t.Errorf("labels = %v", res.Labels)
	}
}

func TestToMaskLabelFilter(t *testing.T) {
	s := Segs{Width: 10, Height: 10, Segments: []Segment{
		solidSegment("cat", 0.9, 0, 0, 2, 2),
		solidSegment("car", 0.8, 4, 4, 6, 6),
		solidSegment("dog", 0.7, 7, 7, 9, 9),
	}}

	res := ToMask(s, Options{LabelFilter: "ca*"})
	if res.Count != 2 {
		t.Fatalf("ca* count = %d, want 2", res.Count)
	}
	for _, label := range res.Labels {
		if !strings.HasPrefix(label, "ca") {
			t.Errorf("unexpected group %q", label)
		}
	}
}

func TestToMaskMinConfidenceInclusive(t *testing.T) {
	s := Segs{Width: 10, Height: 10, Segments: []Segment{
		solidSegment("a", 0.5, 0, 0, 2, 2),
		solidSegment("b", 0.49, 4, 4, 6, 6),
	}}

	// A segment scoring exactly the threshold is retained.
	res := ToMask(s, Options{LabelFilter: "*", MinConfidence: 0.5})
	if res.Count != 1 || res.Labels[0] != "a: 0.50" {
		t.Errorf("count = %d, labels = %v", res.Count, res.Labels)
	}
}

func TestToMaskUnionSameLabels(t *testing.T) {
	s := Segs{Width: 10, Height: 10, Segments: []Segment{
		solidSegment("cat", 0.6, 0, 0, 2, 2),
		solidSegment("dog", 0.8, 4, 4, 6, 6),
		solidSegment("cat", 0.9, 7, 7, 9, 9),
	}}

	res := ToMask(s, Options{LabelFilter: "*", UnionSameLabels: true})
	if res.Count != 2 {
		t.Fatalf("count = %d, want 2 groups", res.Count)
	}
	// Groups keep first-seen label order; confidence is the group maximum.
	if res.Labels[0] != "cat: 0.90" || res.Labels[1] != "dog: 0.80" {
		t.Errorf("labels = %v", res.Labels)
	}
	catMask := res.Individual[0]
	if catMask.At(0, 0) != 1 || catMask.At(7, 7) != 1 {
		t.Error("same-label segments not unioned into one mask")
	}
	if catMask.At(4, 4) != 0 {
		t.Error("union leaked another label's segment")
	}
}

func TestToMaskMinAreaPercent(t *testing.T) {
	s := Segs{Width: 10, Height: 10, Segments: []Segment{
		solidSegment("big", 0.9, 0, 0, 5, 5),  // 25% of the image
		solidSegment("tiny", 0.9, 8, 8, 9, 9), // 1%
	}}

	res := ToMask(s, Options{LabelFilter: "*", MinAreaPercent: 10})
	if res.Count != 1 || res.Labels[0] != "big: 0.90" {
		t.Errorf("count = %d, labels = %v", res.Count, res.Labels)
	}
}

func TestToMaskSortOrders(t *testing.T) {
	s := Segs{Width: 10, Height: 10, Segments: []Segment{
		solidSegment("right", 0.5, 6, 0, 8, 2),
		solidSegment("left", 0.9, 0, 4, 2, 6),
	}}

	res := ToMask(s, Options{LabelFilter: "*", SortOrder: SortXThenY})
	if res.Labels[0] != "left: 0.90" {
		t.Errorf("x_then_y first group = %v", res.Labels)
	}

	res = ToMask(s, Options{LabelFilter: "*", SortOrder: SortYThenX})
	if res.Labels[0] != "right: 0.50" {
		t.Errorf("y_then_x first group = %v", res.Labels)
	}

	res = ToMask(s, Options{LabelFilter: "*", SortOrder: SortConfidence})
	if res.Labels[0] != "left: 0.90" {
		t.Errorf("confidence first group = %v", res.Labels)
	}
}

func TestToMaskInvert(t *testing.T) {
	s := Segs{Width: 4, Height: 4, Segments: []Segment{
		solidSegment("a", 0.9, 0, 0, 2, 2),
	}}

	res := ToMask(s, Options{LabelFilter: "*", Invert: true})
	if res.Combined.At(0, 0) != 0 || res.Combined.At(3, 3) != 1 {
		t.Error("combined mask not inverted")
	}
	if res.Individual[0].At(0, 0) != 0 || res.Individual[0].At(3, 3) != 1 {
		t.Error("individual mask not inverted")
	}
}

func TestToMaskEmpty(t *testing.T) {
	res := ToMask(Segs{Width: 4, Height: 4}, Options{LabelFilter: "*"})
	if res.Count != 0 || len(res.Individual) != 0 {
		t.Errorf("empty segmentation: count = %d", res.Count)
	}
	if res.Combined.Sum() != 0 {
		t.Error("combined mask not empty")
	}

	// Everything filtered out behaves the same.
	s := Segs{Width: 4, Height: 4, Segments: []Segment{solidSegment("a", 0.1, 0, 0, 2, 2)}}
	res = ToMask(s, Options{LabelFilter: "*", MinConfidence: 0.9})
	if res.Count != 0 || res.Combined.Sum() != 0 {
		t.Errorf("fully filtered: count = %d, sum = %v", res.Count, res.Combined.Sum())
	}
}

func TestToMaskCropRegionClamped(t *testing.T) {
	// Crop region hanging off the image edge gets clipped, not dropped.
	s := Segs{Width: 4, Height: 4, Segments: []Segment{
		solidSegment("a", 0.9, 2, 2, 6, 6),
	}}
	res := ToMask(s, Options{LabelFilter: "*"})
	if res.Count != 1 {
		t.Fatalf("count = %d, want 1", res.Count)
	}
	if res.Combined.At(3, 3) != 1 || res.Combined.At(1, 1) != 0 {
		t.Error("clipped placement wrong")
	}
}

func TestToMaskUndersizedMask(t *testing.T) {
	// Cropped mask smaller than its crop region only covers what it has.
	m := bbox.NewMask(1, 1)
	m.Fill(1)
	s := Segs{Width: 4, Height: 4, Segments: []Segment{
		{Label: "a", Confidence: 0.9, CropRegion: [4]int{0, 0, 3, 3}, Mask: m},
	}}
	res := ToMask(s, Options{LabelFilter: "*"})
	if res.Combined.At(0, 0) != 1 || res.Combined.At(1, 1) != 0 {
		t.Error("undersized mask placement wrong")
	}
}

func TestSAM3Query(t *testing.T) {
	s := Segs{Width: 10, Height: 10, Segments: []Segment{
		solidSegment("a", 0.9, 2, 3, 5, 6),
	}}

	boxQ, pointQ := SAM3Query(s)
	// Foreground spans pixels x 2..4, y 3..5.
	if !strings.Contains(boxQ, `"x1":2`) || !strings.Contains(boxQ, `"x2":4`) ||
		!strings.Contains(boxQ, `"y1":3`) || !strings.Contains(boxQ, `"y2":5`) {
		t.Errorf("box query = %s", boxQ)
	}
	if !strings.Contains(pointQ, `"x":3`) || !strings.Contains(pointQ, `"y":4`) {
		t.Errorf("point query = %s", pointQ)
	}
}

func TestSAM3QueryEmpty(t *testing.T) {
	boxQ, pointQ := SAM3Query(Segs{Width: 10, Height: 10})
	if boxQ != "[]" || pointQ != "[]" {
		t.Errorf("empty queries = %s, %s", boxQ, pointQ)
	}
	boxQ, pointQ = SAM3Query(Segs{})
	if boxQ != "[]" || pointQ != "[]" {
		t.Errorf("dimensionless queries = %s, %s", boxQ, pointQ)
	}
}
