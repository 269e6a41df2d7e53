package bbox

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
)

// ParseJSONQuads parses a JSON array of raw four-number arrays and converts
// every box between coordinate conventions. Entries that are not four-number
// arrays are skipped rather than failing the whole document. Malformed JSON
// or a non-array document is an error for the caller to surface.
func ParseJSONQuads(jsonText string, in, out Format) ([][4]float64, error) {
	doc, err := oj.ParseString(jsonText)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	arr, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("top-level JSON is not an array")
	}

	quads := make([][4]float64, 0, len(arr))
	for _, item := range arr {
		q, ok := ParseQuad(item)
		if !ok {
			continue
		}
		quads = append(quads, Convert(q, in, out))
	}
	return quads, nil
}
