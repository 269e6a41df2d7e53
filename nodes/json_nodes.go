package nodes

import (
	"log"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/bbox"
	"github.com/Nakamura2828/ComfyUI-JK-TextTools/detection"
	"github.com/Nakamura2828/ComfyUI-JK-TextTools/jsontext"
)

// formatProperty builds the schema fragment for a coordinate-format input.
func formatProperty(description, fallback string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
		"enum":        []string{"XYXY", "XYWH"},
		"default":     fallback,
	}
}

// JSONPrettyPrinterNode validates and re-formats JSON text.
type JSONPrettyPrinterNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *JSONPrettyPrinterNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "json-pretty-printer",
		Name:        "JSON Pretty Printer",
		Category:    "JK-TextTools/json",
		Description: "Validates JSON text and re-serializes it with configurable indentation",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"json": map[string]any{
					"type":        "string",
					"description": "JSON text to format",
				},
				"indent": map[string]any{
					"type":        "integer",
					"description": "Spaces per level, clamped to 0-8",
					"default":     2,
				},
				"sort_keys": map[string]any{
					"type":        "boolean",
					"description": "Order object keys alphabetically",
					"default":     false,
				},
				"compact": map[string]any{
					"type":        "boolean",
					"description": "Minimize whitespace regardless of indent",
					"default":     false,
				},
			},
			"required": []string{"json"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"formatted":     map[string]any{"type": "string"},
				"is_valid":      map[string]any{"type": "boolean"},
				"error_message": map[string]any{"type": "string"},
			},
		},
		Defaults: map[string]any{
			"indent":    2,
			"sort_keys": false,
			"compact":   false,
		},
		OutputNames: []string{"formatted", "is_valid", "error_message"},
		Examples: []Example{
			{
				Name:        "Pretty print",
				Description: "Indent a compact object",
				Input:       map[string]any{"json": `{"b":1,"a":2}`, "sort_keys": true},
				Output:      map[string]any{"formatted": "{\n  \"a\": 2,\n  \"b\": 1\n}", "is_valid": true, "error_message": ""},
			},
			{
				Name:        "Malformed input",
				Description: "Invalid JSON passes through with an error message",
				Input:       map[string]any{"json": "{not json"},
				Output:      map[string]any{"formatted": "{not json", "is_valid": false},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke formats the JSON.
func (n *JSONPrettyPrinterNode) Invoke(inputs map[string]any) (map[string]any, error) {
	res := jsontext.Format(stringInput(inputs, "json", ""), jsontext.Options{
		Indent:   intInput(inputs, "indent", 2),
		SortKeys: boolInput(inputs, "sort_keys", false),
		Compact:  boolInput(inputs, "compact", false),
	})
	if n.Verbose && !res.Valid {
		log.Printf("[json-pretty-printer] %s", res.ErrMessage)
	}
	return map[string]any{
		"formatted":     res.Formatted,
		"is_valid":      res.Valid,
		"error_message": res.ErrMessage,
	}, nil
}

// DetectionQueryNode filters a detection document by class, score and count.
type DetectionQueryNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *DetectionQueryNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "detection-query",
		Name:        "Detection Query",
		Category:    "JK-TextTools/json",
		Description: "Filters detection JSON by wildcard class pattern, score threshold and result cap",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"json": map[string]any{
					"type":        "string",
					"description": "Detection result JSON",
				},
				"class_filter": map[string]any{
					"type":        "string",
					"description": "Glob-style class pattern (*, ?, character classes)",
					"default":     "*",
				},
				"min_score": map[string]any{
					"type":        "number",
					"description": "Inclusive score threshold",
					"default":     0.0,
				},
				"max_results": map[string]any{
					"type":        "integer",
					"description": "Result cap, 0 for unlimited; original order is preserved",
					"default":     0,
				},
				"field": map[string]any{
					"type":        "string",
					"description": "Field (or path) to read from the first matching record",
					"default":     "",
				},
			},
			"required": []string{"json"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"filtered_json": map[string]any{"type": "string"},
				"records":       map[string]any{"type": "array"},
				"count":         map[string]any{"type": "integer"},
				"boxes":         map[string]any{"type": "array"},
				"field_value":   map[string]any{"type": []string{"null", "string", "number", "boolean", "object", "array"}},
				"is_valid":      map[string]any{"type": "boolean"},
				"error_message": map[string]any{"type": "string"},
			},
		},
		Defaults: map[string]any{
			"class_filter": "*",
			"min_score":    0.0,
			"max_results":  0,
			"field":        "",
		},
		OutputNames:  []string{"filtered_json", "records", "count", "boxes", "field_value", "is_valid", "error_message"},
		OutputIsList: map[string]bool{"records": true, "boxes": true},
		Examples: []Example{
			{
				Name:        "Prefix filter",
				Description: "Keep detections whose class starts with A_",
				Input:       map[string]any{"json": `[{"class":"A_1","score":0.9,"box":[1,2,3,4]}]`, "class_filter": "A_*"},
				Output:      map[string]any{"count": 1, "is_valid": true},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke runs the query.
func (n *DetectionQueryNode) Invoke(inputs map[string]any) (map[string]any, error) {
	res := detection.Query(stringInput(inputs, "json", ""), detection.QueryOptions{
		ClassFilter: stringInput(inputs, "class_filter", "*"),
		MinScore:    floatInput(inputs, "min_score", 0),
		MaxResults:  intInput(inputs, "max_results", 0),
		Field:       stringInput(inputs, "field", ""),
	})
	if n.Verbose {
		log.Printf("[detection-query] %d matches (valid=%v)", res.Count, res.Valid)
	}

	records := make([]any, len(res.Records))
	for i, rec := range res.Records {
		records[i] = map[string]any(rec)
	}
	boxes := make([]any, len(res.Boxes))
	for i, b := range res.Boxes {
		boxes[i] = b
	}
	return map[string]any{
		"filtered_json": res.FilteredJSON,
		"records":       records,
		"count":         res.Count,
		"boxes":         boxes,
		"field_value":   res.FieldValue,
		"is_valid":      res.Valid,
		"error_message": res.ErrMessage,
	}, nil
}

// DetectionToBBoxNode extracts the bounding box from one detection record.
type DetectionToBBoxNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *DetectionToBBoxNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "detection-to-bbox",
		Name:        "Detection to BBox",
		Category:    "JK-TextTools/json",
		Description: "Extracts the bounding box, class and score from a single detection record",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"detection": map[string]any{
					"type":        []string{"string", "object"},
					"description": "One detection, as JSON text or an object",
				},
				"key": map[string]any{
					"type":        "string",
					"description": "Preferred box key; box and bbox are tried as fallbacks",
					"default":     "box",
				},
				"input_format":  formatProperty("Coordinate convention of the stored box", "XYXY"),
				"output_format": formatProperty("Coordinate convention to emit", "XYXY"),
			},
			"required": []string{"detection"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"bbox":          map[string]any{"type": "array"},
				"x":             map[string]any{"type": "number"},
				"y":             map[string]any{"type": "number"},
				"width":         map[string]any{"type": "number"},
				"height":        map[string]any{"type": "number"},
				"class":         map[string]any{"type": "string"},
				"score":         map[string]any{"type": "number"},
				"is_valid":      map[string]any{"type": "boolean"},
				"error_message": map[string]any{"type": "string"},
			},
		},
		Defaults: map[string]any{
			"key":           "box",
			"input_format":  "XYXY",
			"output_format": "XYXY",
		},
		OutputNames: []string{"bbox", "x", "y", "width", "height", "class", "score", "is_valid", "error_message"},
		Examples: []Example{
			{
				Name:        "Extract box",
				Description: "Pull the wrapped box, its scalar components and metadata from a detection",
				Input:       map[string]any{"detection": `{"class":"person","score":0.87,"box":[10,20,30,40]}`},
				Output: map[string]any{
					"bbox": []any{[]any{10, 20, 30, 40}},
					"x": 10, "y": 20, "width": 20, "height": 20,
					"class": "person", "score": 0.87, "is_valid": true,
				},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke extracts the box. The scalar components are always the
// corner+dimensions reading of the box, regardless of the emitted format.
func (n *DetectionToBBoxNode) Invoke(inputs map[string]any) (map[string]any, error) {
	info, err := detection.ExtractBox(inputs["detection"], stringInput(inputs, "key", "box"))
	if err != nil {
		if n.Verbose {
			log.Printf("[detection-to-bbox] %v", err)
		}
		return map[string]any{
			"bbox": [][]float64{{0, 0, 0, 0}},
			"x": 0.0, "y": 0.0, "width": 0.0, "height": 0.0,
			"class":         info.Class,
			"score":         info.Score,
			"is_valid":      false,
			"error_message": err.Error(),
		}, nil
	}

	inFmt, _ := bbox.ParseFormat(stringInput(inputs, "input_format", "XYXY"))
	outFmt, _ := bbox.ParseFormat(stringInput(inputs, "output_format", "XYXY"))
	quad := bbox.Convert(info.Box.Quad(), inFmt, outFmt)
	xywh := bbox.Convert(info.Box.Quad(), inFmt, bbox.XYWH)
	return map[string]any{
		"bbox": bbox.FromQuad(quad).Wrap(),
		"x": xywh[0], "y": xywh[1], "width": xywh[2], "height": xywh[3],
		"class":         info.Class,
		"score":         info.Score,
		"is_valid":      true,
		"error_message": "",
	}, nil
}

// JSONToBBoxNode converts a JSON array of boxes between coordinate formats.
type JSONToBBoxNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *JSONToBBoxNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "json-to-bbox",
		Name:        "JSON to BBox",
		Category:    "JK-TextTools/json",
		Description: "Parses a JSON array of four-number boxes and converts between coordinate conventions",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"json": map[string]any{
					"type":        "string",
					"description": "JSON array of four-number box arrays",
				},
				"input_format":  formatProperty("Coordinate convention of the input boxes", "XYXY"),
				"output_format": formatProperty("Coordinate convention to emit", "XYWH"),
			},
			"required": []string{"json"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"bboxes":        map[string]any{"type": "array"},
				"count":         map[string]any{"type": "integer"},
				"is_valid":      map[string]any{"type": "boolean"},
				"error_message": map[string]any{"type": "string"},
			},
		},
		Defaults: map[string]any{
			"input_format":  "XYXY",
			"output_format": "XYWH",
		},
		OutputNames:  []string{"bboxes", "count", "is_valid", "error_message"},
		OutputIsList: map[string]bool{"bboxes": true},
		Examples: []Example{
			{
				Name:        "Corners to dimensions",
				Description: "Convert a two-corner box to a wrapped corner+dimensions box",
				Input:       map[string]any{"json": "[[245.3, 167.8, 512.6, 389.2]]"},
				Output:      map[string]any{"bboxes": []any{[]any{[]any{245.3, 167.8, 267.3, 221.4}}}, "count": 1, "is_valid": true},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke converts the boxes.
func (n *JSONToBBoxNode) Invoke(inputs map[string]any) (map[string]any, error) {
	inFmt, _ := bbox.ParseFormat(stringInput(inputs, "input_format", "XYXY"))
	outFmt, _ := bbox.ParseFormat(stringInput(inputs, "output_format", "XYWH"))

	quads, err := bbox.ParseJSONQuads(stringInput(inputs, "json", ""), inFmt, outFmt)
	if err != nil {
		if n.Verbose {
			log.Printf("[json-to-bbox] %v", err)
		}
		return map[string]any{
			"bboxes":        []any{},
			"count":         0,
			"is_valid":      false,
			"error_message": err.Error(),
		}, nil
	}

	bboxes := make([]any, len(quads))
	for i, q := range quads {
		bboxes[i] = [][]float64{{q[0], q[1], q[2], q[3]}}
	}
	return map[string]any{
		"bboxes":        bboxes,
		"count":         len(bboxes),
		"is_valid":      true,
		"error_message": "",
	}, nil
}
