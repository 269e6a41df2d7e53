package nodes

import (
	"log"

	texttools "github.com/Nakamura2828/ComfyUI-JK-TextTools"
)

// castProperty is the shared schema fragment for the optional cast input.
var castProperty = map[string]any{
	"type":        "string",
	"description": "Output type for selected values",
	"enum":        []string{"string", "int", "float"},
	"default":     "string",
}

// StringIndexSelectorNode splits delimited text and selects one item by index.
type StringIndexSelectorNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *StringIndexSelectorNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "string-index-selector",
		Name:        "String Index Selector",
		Category:    "JK-TextTools/strings",
		Description: "Splits delimited text and selects the item at an index",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Delimited text to split",
				},
				"delimiter": map[string]any{
					"type":        "string",
					"description": "Delimiter; \\n, \\t, \\r and \\\\ escapes are decoded",
					"default":     ",",
				},
				"index": map[string]any{
					"type":        "integer",
					"description": "Item index to select",
					"default":     0,
				},
				"one_based": map[string]any{
					"type":        "boolean",
					"description": "Treat index 1 as the first item",
					"default":     false,
				},
				"strip": map[string]any{
					"type":        "boolean",
					"description": "Strip whitespace from each item",
					"default":     true,
				},
				"remove_empty": map[string]any{
					"type":        "boolean",
					"description": "Drop empty items after stripping",
					"default":     false,
				},
				"cast": castProperty,
			},
			"required": []string{"text"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{"type": []string{"string", "integer", "number"}},
				"count": map[string]any{"type": "integer"},
			},
		},
		Defaults: map[string]any{
			"delimiter":    ",",
			"index":        0,
			"one_based":    false,
			"strip":        true,
			"remove_empty": false,
			"cast":         "string",
		},
		OutputNames: []string{"value", "count"},
		Examples: []Example{
			{
				Name:        "Third item",
				Description: "Select index 2 from a comma list",
				Input:       map[string]any{"text": "10,25,42,100", "index": 2},
				Output:      map[string]any{"value": "42", "count": 4},
			},
			{
				Name:        "Out of range",
				Description: "An out-of-range index yields the empty sentinel, never a failure",
				Input:       map[string]any{"text": "a,b", "index": 9},
				Output:      map[string]any{"value": "", "count": 2},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke selects the item.
func (n *StringIndexSelectorNode) Invoke(inputs map[string]any) (map[string]any, error) {
	items := texttools.Split(
		stringInput(inputs, "text", ""),
		stringInput(inputs, "delimiter", ","),
		texttools.SplitOptions{
			Strip:       boolInput(inputs, "strip", true),
			RemoveEmpty: boolInput(inputs, "remove_empty", false),
		},
	)
	selected, count := texttools.SelectIndex(items,
		intInput(inputs, "index", 0),
		boolInput(inputs, "one_based", false))

	kind := texttools.ParseKind(stringInput(inputs, "cast", "string"))
	if n.Verbose {
		log.Printf("[string-index-selector] selected %q of %d items", selected, count)
	}
	return map[string]any{
		"value": texttools.Cast(selected, kind).Native(),
		"count": count,
	}, nil
}

// StringSplitterNode splits delimited text into a list.
type StringSplitterNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *StringSplitterNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "string-splitter",
		Name:        "String Splitter",
		Category:    "JK-TextTools/strings",
		Description: "Splits delimited text into a list of items",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Delimited text to split",
				},
				"delimiter": map[string]any{
					"type":        "string",
					"description": "Delimiter; \\n, \\t, \\r and \\\\ escapes are decoded",
					"default":     ",",
				},
				"strip": map[string]any{
					"type":        "boolean",
					"description": "Strip whitespace from each item",
					"default":     true,
				},
				"remove_empty": map[string]any{
					"type":        "boolean",
					"description": "Drop empty items after stripping",
					"default":     true,
				},
				"cast": castProperty,
			},
			"required": []string{"text"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"values": map[string]any{"type": "array"},
				"count":  map[string]any{"type": "integer"},
			},
		},
		Defaults: map[string]any{
			"delimiter":    ",",
			"strip":        true,
			"remove_empty": true,
			"cast":         "string",
		},
		OutputNames:  []string{"values", "count"},
		OutputIsList: map[string]bool{"values": true},
		Examples: []Example{
			{
				Name:        "Comma split",
				Description: "Split a comma list into items",
				Input:       map[string]any{"text": "a, b, c"},
				Output:      map[string]any{"values": []any{"a", "b", "c"}, "count": 3},
			},
			{
				Name:        "Integer cast",
				Description: "Split and cast every item to an integer",
				Input:       map[string]any{"text": "10,25,42", "cast": "int"},
				Output:      map[string]any{"values": []any{10, 25, 42}, "count": 3},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke splits the text.
func (n *StringSplitterNode) Invoke(inputs map[string]any) (map[string]any, error) {
	items := texttools.Split(
		stringInput(inputs, "text", ""),
		stringInput(inputs, "delimiter", ","),
		texttools.SplitOptions{
			Strip:       boolInput(inputs, "strip", true),
			RemoveEmpty: boolInput(inputs, "remove_empty", true),
		},
	)

	kind := texttools.ParseKind(stringInput(inputs, "cast", "string"))
	values := make([]any, len(items))
	for i, item := range items {
		values[i] = texttools.Cast(item, kind).Native()
	}
	if n.Verbose {
		log.Printf("[string-splitter] split into %d items", len(values))
	}
	return map[string]any{
		"values": values,
		"count":  len(values),
	}, nil
}

// ListIndexSelectorNode selects one element from a list by index.
type ListIndexSelectorNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *ListIndexSelectorNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "list-index-selector",
		Name:        "List Index Selector",
		Category:    "JK-TextTools/strings",
		Description: "Selects the element at an index from a list",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"values": map[string]any{
					"type":        "array",
					"description": "List to select from",
				},
				"index": map[string]any{
					"type":        "integer",
					"description": "Element index to select",
					"default":     0,
				},
				"one_based": map[string]any{
					"type":        "boolean",
					"description": "Treat index 1 as the first element",
					"default":     false,
				},
			},
			"required": []string{"values"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{"type": []string{"string", "integer", "number"}},
				"count": map[string]any{"type": "integer"},
			},
		},
		Defaults: map[string]any{
			"index":     0,
			"one_based": false,
		},
		OutputNames: []string{"value", "count"},
		Examples: []Example{
			{
				Name:        "Second element",
				Description: "Select index 1 from a list",
				Input:       map[string]any{"values": []any{"x", "y", "z"}, "index": 1},
				Output:      map[string]any{"value": "y", "count": 3},
			},
			{
				Name:        "Typed sentinel",
				Description: "Out of range on an integer list yields 0, not a failure",
				Input:       map[string]any{"values": []any{1, 2, 3}, "index": 9},
				Output:      map[string]any{"value": 0, "count": 3},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke selects the element.
func (n *ListIndexSelectorNode) Invoke(inputs map[string]any) (map[string]any, error) {
	list := texttools.ListFromNative(listInput(inputs, "values"))

	index := intInput(inputs, "index", 0)
	if boolInput(inputs, "one_based", false) {
		index--
	}
	value, inRange := list.At(index)
	if n.Verbose && !inRange {
		log.Printf("[list-index-selector] index %d out of range (count %d)", index, list.Len())
	}
	return map[string]any{
		"value": value.Native(),
		"count": list.Len(),
	}, nil
}

// StringJoinerNode joins a list into delimited text.
type StringJoinerNode struct {
	Verbose bool
}

// Metadata returns the node metadata.
func (n *StringJoinerNode) Metadata() NodeMetadata {
	return NodeMetadata{
		Type:        "string-joiner",
		Name:        "String Joiner",
		Category:    "JK-TextTools/strings",
		Description: "Joins a list of values into delimited text",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"values": map[string]any{
					"type":        "array",
					"description": "Values to join",
				},
				"delimiter": map[string]any{
					"type":        "string",
					"description": "Delimiter; \\n, \\t, \\r and \\\\ escapes are decoded",
					"default":     ",",
				},
			},
			"required": []string{"values"},
		},
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text":       map[string]any{"type": "string"},
				"item_count": map[string]any{"type": "integer"},
			},
		},
		Defaults: map[string]any{
			"delimiter": ",",
		},
		OutputNames: []string{"text", "item_count"},
		Examples: []Example{
			{
				Name:        "Join numbers",
				Description: "Numbers stringify without a decimal point",
				Input:       map[string]any{"values": []any{10, 25, 42}, "delimiter": ", "},
				Output:      map[string]any{"text": "10, 25, 42", "item_count": 3},
			},
		},
		Since: "1.0.0",
	}
}

// Invoke joins the values.
func (n *StringJoinerNode) Invoke(inputs map[string]any) (map[string]any, error) {
	values := listInput(inputs, "values")
	text := texttools.Join(values, stringInput(inputs, "delimiter", ","))
	if n.Verbose {
		log.Printf("[string-joiner] joined %d items into %d characters", len(values), len(text))
	}
	return map[string]any{
		"text":       text,
		"item_count": len(values),
	}, nil
}
