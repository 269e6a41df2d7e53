package nodes

import (
	"log"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/bbox"
)

// parseBoxInput reads a bounding-box input (wrapped or bare quad) and
// normalizes it to the corner+dimensions form.
func parseBoxInput(inputs map[string]any, key, formatKey string) (bbox.Box, bool) {
	quad, ok := bbox.ParseQuad(inputs[key])
	if !ok {
		return bbox.Box{}, false
	}
	in, _ := bbox.ParseFormat(stringInput(inputs, formatKey, "XYWH"))
	return bbox.FromQuad(bbox.Convert(quad, in, bbox.XYWH)), true
}

// BBoxToMaskNode rasterizes one bounding box into a binary mask.
type BBoxToMaskNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *BBoxToMaskNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "bbox-to-mask",
		Name:        "BBox to Mask",
		Category:    "JK-TextTools/mask",
		Description: "Rasterizes a bounding box into a binary mask of the given dimensions",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"bbox": map[string]any{
					"type":        "array",
					"description": "Four-number box, wrapped ([[x,y,w,h]]) or bare",
				},
				"width": map[string]any{
					"type":        "integer",
					"description": "Mask width in pixels",
					"default":     512,
				},
				"height": map[string]any{
					"type":        "integer",
					"description": "Mask height in pixels",
					"default":     512,
				},
				"format": formatProperty("Coordinate convention of the box", "XYWH"),
				"invert": map[string]any{
					"type":        "boolean",
					"description": "Swap foreground and background",
					"default":     false,
				},
			},
			"required": []string{"bbox"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"mask":          map[string]any{"type": "array"},
				"is_valid":      map[string]any{"type": "boolean"},
				"error_message": map[string]any{"type": "string"},
			},
		},
		Defaults: map[string]any{
			"width":  512,
			"height": 512,
			"format": "XYWH",
			"invert": false,
		},
		OutputNames: []string{"mask", "is_valid", "error_message"},
		Examples: []Example{
			{
				Name:        "Fill a rectangle",
				Description: "Coordinates are truncated to integers and clamped into the mask",
				Input:       map[string]any{"bbox": []any{10, 20, 30, 40}, "width": 64, "height": 64},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke rasterizes the box. An unparseable box is recoverable: the mask is
// all background (inverted if requested) with an explanatory message.
func (n *BBoxToMaskNode) Invoke(inputs map[string]any) (map[string]any, error) {
	width := intInput(inputs, "width", 512)
	height := intInput(inputs, "height", 512)
	invert := boolInput(inputs, "invert", false)

	b, ok := parseBoxInput(inputs, "bbox", "format")
	mask := bbox.Rasterize(b, width, height, invert)
	if n.Verbose {
		log.Printf("[bbox-to-mask] %dx%d mask, foreground area %.0f", width, height, mask.Sum())
	}
	if !ok {
		return map[string]any{
			"mask":          mask,
			"is_valid":      false,
			"error_message": "bbox is not a 4-number array",
		}, nil
	}
	return map[string]any{
		"mask":          mask,
		"is_valid":      true,
		"error_message": "",
	}, nil
}

// BBoxesToMaskNode rasterizes several boxes onto one grid.
type BBoxesToMaskNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *BBoxesToMaskNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "bboxes-to-mask",
		Name:        "BBoxes to Mask",
		Category:    "JK-TextTools/mask",
		Description: "Rasterizes a list of bounding boxes into per-box masks plus their union",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"bboxes": map[string]any{
					"type":        "array",
					"description": "List of four-number boxes",
				},
				"width": map[string]any{
					"type":        "integer",
					"description": "Mask width in pixels",
					"default":     512,
				},
				"height": map[string]any{
					"type":        "integer",
					"description": "Mask height in pixels",
					"default":     512,
				},
				"format": formatProperty("Coordinate convention of the boxes", "XYWH"),
				"invert": map[string]any{
					"type":        "boolean",
					"description": "Swap foreground and background on every output mask",
					"default":     false,
				},
			},
			"required": []string{"bboxes"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"combined_mask": map[string]any{"type": "array"},
				"masks":         map[string]any{"type": "array"},
				"count":         map[string]any{"type": "integer"},
			},
		},
		Defaults: map[string]any{
			"width":  512,
			"height": 512,
			"format": "XYWH",
			"invert": false,
		},
		OutputNames:  []string{"combined_mask", "masks", "count"},
		OutputIsList: map[string]bool{"masks": true},
		Since:        "1.0.0",
	}
}

// Invoke rasterizes the boxes. Entries that are not four-number arrays are
// skipped; the union is built before any inversion so invert is applied
// exactly once per output mask.
func (n *BBoxesToMaskNode) Invoke(inputs map[string]any) (map[string]any, error) {
	width := intInput(inputs, "width", 512)
	height := intInput(inputs, "height", 512)
	in, _ := bbox.ParseFormat(stringInput(inputs, "format", "XYWH"))

	var boxes []bbox.Box
	for _, raw := range listInput(inputs, "bboxes") {
		quad, ok := bbox.ParseQuad(raw)
		if !ok {
			continue
		}
		boxes = append(boxes, bbox.FromQuad(bbox.Convert(quad, in, bbox.XYWH)))
	}

	combined, individual := bbox.RasterizeAll(boxes, width, height, boolInput(inputs, "invert", false))
	if n.Verbose {
		log.Printf("[bboxes-to-mask] rasterized %d boxes onto %dx%d", len(individual), width, height)
	}

	masks := make([]any, len(individual))
	for i, m := range individual {
		masks[i] = m
	}
	return map[string]any{
		"combined_mask": combined,
		"masks":         masks,
		"count":         len(masks),
	}, nil
}

// MaskToBBoxNode recovers the tightest box around mask foreground.
type MaskToBBoxNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *MaskToBBoxNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "mask-to-bbox",
		Name:        "Mask to BBox",
		Category:    "JK-TextTools/mask",
		Description: "Computes the tightest bounding box around mask foreground pixels",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"mask": map[string]any{
					"type":        "array",
					"description": "Mask as an array of rows of 0/1 values",
				},
				"format": formatProperty("Coordinate convention to emit", "XYWH"),
			},
			"required": []string{"mask"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"bbox":          map[string]any{"type": "array"},
				"x":             map[string]any{"type": "number"},
				"y":             map[string]any{"type": "number"},
				"w":             map[string]any{"type": "number"},
				"h":             map[string]any{"type": "number"},
				"is_valid":      map[string]any{"type": "boolean"},
				"error_message": map[string]any{"type": "string"},
			},
		},
		Defaults: map[string]any{
			"format": "XYWH",
		},
		OutputNames: []string{"bbox", "x", "y", "w", "h", "is_valid", "error_message"},
		Examples: []Example{
			{
				Name:        "Recover a box",
				Description: "The reported width and height include the outermost foreground pixels",
				Input:       map[string]any{"mask": []any{[]any{0, 1, 1}, []any{0, 1, 1}}},
				Output: map[string]any{
					"bbox": []any{[]any{1, 0, 2, 2}},
					"x": 1, "y": 0, "w": 2, "h": 2,
					"is_valid": true,
				},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke recovers the box. An empty or unreadable mask yields the zero box
// with an explanatory message, never a failure. The scalar components are
// always the corner+dimensions reading, regardless of the emitted format.
func (n *MaskToBBoxNode) Invoke(inputs map[string]any) (map[string]any, error) {
	out, _ := bbox.ParseFormat(stringInput(inputs, "format", "XYWH"))

	m, ok := bbox.MaskFromRows(inputs["mask"])
	if !ok {
		return maskToBBoxDegraded("mask is not a rectangular array of numbers"), nil
	}

	b, found := bbox.FromMask(m)
	if !found {
		return maskToBBoxDegraded("mask has no foreground pixels"), nil
	}
	if n.Verbose {
		log.Printf("[mask-to-bbox] foreground bounds %v", b.Quad())
	}

	quad := bbox.Convert(b.Quad(), bbox.XYWH, out)
	return map[string]any{
		"bbox": [][]float64{{quad[0], quad[1], quad[2], quad[3]}},
		"x": b.X, "y": b.Y, "w": b.W, "h": b.H,
		"is_valid":      true,
		"error_message": "",
	}, nil
}

func maskToBBoxDegraded(message string) map[string]any {
	return map[string]any{
		"bbox": [][]float64{{0, 0, 0, 0}},
		"x": 0.0, "y": 0.0, "w": 0.0, "h": 0.0,
		"is_valid":      false,
		"error_message": message,
	}
}

// BBoxToSAM3QueryNode renders selector queries from a bounding box.
type BBoxToSAM3QueryNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *BBoxToSAM3QueryNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "bbox-to-sam3-query",
		Name:        "BBox to SAM3 Query",
		Category:    "JK-TextTools/mask",
		Description: "Renders SAM3-style box and center-point selector queries from a bounding box",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"bbox": map[string]any{
					"type":        "array",
					"description": "Four-number box, wrapped or bare",
				},
				"format": formatProperty("Coordinate convention of the box", "XYWH"),
			},
			"required": []string{"bbox"},
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
		Defaults: map[string]any{
			"format": "XYWH",
		},
		OutputNames: []string{"box_query", "point_query", "is_valid", "error_message"},
		Examples: []Example{
			{
				Name:        "Box and point",
				Description: "The point query is the box center",
				Input:       map[string]any{"bbox": []any{10, 20, 30, 40}},
				Output: map[string]any{
					"box_query":   `[{"x1":10,"x2":40,"y1":20,"y2":60}]`,
					"point_query": `[{"x":25,"y":40}]`,
					"is_valid":    true,
				},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke renders the queries.
func (n *BBoxToSAM3QueryNode) Invoke(inputs map[string]any) (map[string]any, error) {
	b, ok := parseBoxInput(inputs, "bbox", "format")
	if !ok {
		return map[string]any{
			"box_query":     "[]",
			"point_query":   "[]",
			"is_valid":      false,
			"error_message": "bbox is not a 4-number array",
		}, nil
	}
	if n.Verbose {
		log.Printf("[bbox-to-sam3-query] box %v", b.Quad())
	}
	return map[string]any{
		"box_query":     bbox.SAM3BoxQuery(b),
		"point_query":   bbox.SAM3PointQuery(b),
		"is_valid":      true,
		"error_message": "",
	}, nil
}
