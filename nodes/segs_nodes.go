package nodes

import (
	"fmt"
	"log"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/bbox"
	"github.com/Nakamura2828/ComfyUI-JK-TextTools/segs"
)

// parseSegs reads a raw segmentation value: an object with width, height and
// a segments array of {label, confidence, crop_region, mask} entries.
func parseSegs(v any) (segs.Segs, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return segs.Segs{}, fmt.Errorf("segs is not an object")
	}

	s := segs.Segs{
		Width:  intInput(obj, "width", 0),
		Height: intInput(obj, "height", 0),
	}
	for i, raw := range listInput(obj, "segments") {
		entry, ok := raw.(map[string]any)
		if !ok {
			return segs.Segs{}, fmt.Errorf("segment %d is not an object", i)
		}
		seg := segs.Segment{
			Label:      stringInput(entry, "label", ""),
			Confidence: floatInput(entry, "confidence", 0),
		}
		if quad, ok := bbox.ParseQuad(entry["crop_region"]); ok {
			seg.CropRegion = [4]int{int(quad[0]), int(quad[1]), int(quad[2]), int(quad[3])}
		}
		if rawMask, present := entry["mask"]; present {
			m, ok := bbox.MaskFromRows(rawMask)
			if !ok {
				return segs.Segs{}, fmt.Errorf("segment %d mask is not a rectangular array", i)
			}
			seg.Mask = m
		}
		s.Segments = append(s.Segments, seg)
	}
	return s, nil
}

// segsInputProperty is the shared schema fragment for the segmentation input.
var segsInputProperty = map[string]any{
	"type":        "object",
	"description": "Segmentation: width, height and a segments array of {label, confidence, crop_region, mask}",
	"properties": map[string]any{
		"width":    map[string]any{"type": "integer"},
		"height":   map[string]any{"type": "integer"},
		"segments": map[string]any{"type": "array"},
	},
}

// SegsToMaskNode converts a segmentation into masks.
type SegsToMaskNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *SegsToMaskNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "segs-to-mask",
		Name:        "SEGS to Mask",
		Category:    "JK-TextTools/segs",
		Description: "Converts a segmentation into a combined mask plus per-group masks, with label, confidence and area filtering",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"segs": segsInputProperty,
				"label_filter": map[string]any{
					"type":        "string",
					"description": "Glob-style label pattern",
					"default":     "*",
				},
				"min_confidence": map[string]any{
					"type":        "number",
					"description": "Inclusive confidence threshold",
					"default":     0.0,
				},
				"min_area_percent": map[string]any{
					"type":        "number",
					"description": "Drop groups covering less than this percentage of the image",
					"default":     0.0,
				},
				"sort_order": map[string]any{
					"type":        "string",
					"description": "Segment ordering before grouping",
					"enum":        []string{"default", "x_then_y", "y_then_x", "confidence_high_to_low"},
					"default":     "default",
				},
				"union_same_labels": map[string]any{
					"type":        "boolean",
					"description": "Merge segments sharing a label into one mask",
					"default":     true,
				},
				"invert": map[string]any{
					"type":        "boolean",
					"description": "Swap foreground and background on every output mask",
					"default":     false,
				},
			},
			"required": []string{"segs"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"combined_mask": map[string]any{"type": "array"},
				"masks":         map[string]any{"type": "array"},
				"labels":        map[string]any{"type": "array"},
				"count":         map[string]any{"type": "integer"},
				"is_valid":      map[string]any{"type": "boolean"},
				"error_message": map[string]any{"type": "string"},
			},
		},
		Defaults: map[string]any{
			"label_filter":      "*",
			"min_confidence":    0.0,
			"min_area_percent":  0.0,
			"sort_order":        "default",
			"union_same_labels": true,
			"invert":            false,
		},
		OutputNames:  []string{"combined_mask", "masks", "labels", "count", "is_valid", "error_message"},
		OutputIsList: map[string]bool{"masks": true, "labels": true},
		Examples: []Example{
			{
				Name:        "Union by label",
				Description: "Merge all segments of each label and report the group's best confidence",
				Input:       map[string]any{"segs": map[string]any{"width": 64, "height": 64}, "union_same_labels": true},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke builds the masks. A malformed segmentation is recoverable: empty
// outputs plus an explanatory message.
func (n *SegsToMaskNode) Invoke(inputs map[string]any) (map[string]any, error) {
	s, err := parseSegs(inputs["segs"])
	if err != nil {
		if n.Verbose {
			log.Printf("[segs-to-mask] %v", err)
		}
		return map[string]any{
			"combined_mask": bbox.NewMask(0, 0),
			"masks":         []any{},
			"labels":        []any{},
			"count":         0,
			"is_valid":      false,
			"error_message": err.Error(),
		}, nil
	}

	res := segs.ToMask(s, segs.Options{
		LabelFilter:     stringInput(inputs, "label_filter", "*"),
		MinConfidence:   floatInput(inputs, "min_confidence", 0),
		MinAreaPercent:  floatInput(inputs, "min_area_percent", 0),
		SortOrder:       segs.SortOrder(stringInput(inputs, "sort_order", "default")),
		UnionSameLabels: boolInput(inputs, "union_same_labels", true),
		Invert:          boolInput(inputs, "invert", false),
	})
	if n.Verbose {
		log.Printf("[segs-to-mask] %d groups from %d segments", res.Count, len(s.Segments))
	}

	masks := make([]any, len(res.Individual))
	for i, m := range res.Individual {
		masks[i] = m
	}
	labels := make([]any, len(res.Labels))
	for i, l := range res.Labels {
		labels[i] = l
	}
	return map[string]any{
		"combined_mask": res.Combined,
		"masks":         masks,
		"labels":        labels,
		"count":         res.Count,
		"is_valid":      true,
		"error_message": "",
	}, nil
}

// SegsToSAM3QueryNode renders selector queries from a segmentation.
type SegsToSAM3QueryNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *SegsToSAM3QueryNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "segs-to-sam3-query",
		Name:        "SEGS to SAM3 Query",
		Category:    "JK-TextTools/segs",
		Description: "Unions all segments and renders SAM3-style box and centroid-point selector queries",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"segs": segsInputProperty,
			},
			"required": []string{"segs"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"box_query":     map[string]any{"type": "string"},
				"point_query":   map[string]any{"type": "string"},
				"is_valid":      map[string]any{"type": "boolean"},
				"error_message": map[string]any{"type": "string"},
			},
		},
		OutputNames: []string{"box_query", "point_query", "is_valid", "error_message"},
		Since:       "1.0.0",
	}
}

// Invoke renders the queries. An empty union yields "[]" for both, which is
// valid output, not an error.
func (n *SegsToSAM3QueryNode) Invoke(inputs map[string]any) (map[string]any, error) {
	s, err := parseSegs(inputs["segs"])
	if err != nil {
		if n.Verbose {
			log.Printf("[segs-to-sam3-query] %v", err)
		}
		return map[string]any{
			"box_query":     "[]",
			"point_query":   "[]",
			"is_valid":      false,
			"error_message": err.Error(),
		}, nil
	}

	boxQuery, pointQuery := segs.SAM3Query(s)
	return map[string]any{
		"box_query":     boxQuery,
		"point_query":   pointQuery,
		"is_valid":      true,
		"error_message": "",
	}, nil
}
