// Package detection queries object-detection result documents: wildcard
// class filtering, score thresholds, and bounding-box extraction from the
// inconsistently shaped JSON that detector nodes emit.
package detection

import (
	"fmt"

	"github.com/ohler55/ojg/oj"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/bbox"
)

// Record is one detection: a mapping carrying at least a class name, a
// confidence score, and a bounding box under the "box" or "bbox" key.
type Record map[string]any

// Class returns the record's class name.
func (r Record) Class() (string, bool) {
	s, ok := r["class"].(string)
	return s, ok
}

// Score returns the record's confidence score.
func (r Record) Score() (float64, bool) {
	return toFloat(r["score"])
}

// Box returns the record's bounding box. The preferred key is tried first,
// then "box", then "bbox"; wrapped and unwrapped forms are both accepted.
func (r Record) Box(key string) (bbox.Box, bool) {
	for _, k := range boxKeys(key) {
		if raw, ok := r[k]; ok {
			if b, ok := bbox.ParseAny(raw); ok {
				return b, true
			}
		}
	}
	return bbox.Box{}, false
}

// BoxInfo is one extracted bounding box plus the record metadata that rides
// along with it.
type BoxInfo struct {
	Box   bbox.Box
	Class string
	Score float64
}

// ExtractBox pulls the bounding box out of a single detection. The detection
// may be a JSON string or an already-parsed mapping. The class and score are
// extracted even when the box is missing or malformed, so the error return
// still comes with usable metadata.
func ExtractBox(det any, key string) (BoxInfo, error) {
	var rec Record
	switch d := det.(type) {
	case string:
		parsed, err := oj.ParseString(d)
		if err != nil {
			return BoxInfo{}, fmt.Errorf("invalid detection JSON: %w", err)
		}
		m, ok := parsed.(map[string]any)
		if !ok {
			return BoxInfo{}, fmt.Errorf("detection is not an object")
		}
		rec = m
	case map[string]any:
		rec = d
	case Record:
		rec = d
	default:
		return BoxInfo{}, fmt.Errorf("detection is not an object")
	}

	info := BoxInfo{}
	info.Class, _ = rec.Class()
	info.Score, _ = rec.Score()

	for _, k := range boxKeys(key) {
		if v, ok := rec[k]; ok {
			b, ok := bbox.ParseAny(v)
			if !ok {
				return info, fmt.Errorf("key %q is not a 4-number array", k)
			}
			info.Box = b
			return info, nil
		}
	}
	return info, fmt.Errorf("no bounding box under %q, \"box\" or \"bbox\"", key)
}

// boxKeys lists the lookup order for a preferred key.
func boxKeys(key string) []string {
	switch key {
	case "", "box":
		return []string{"box", "bbox"}
	case "bbox":
		return []string{"bbox", "box"}
	default:
		return []string{key, "box", "bbox"}
	}
}

// extractRecords locates the detection sequence inside a parsed document.
// Exactly three shapes are recognized:
//
//  1. a bare array of detections,
//  2. an object with the detections under "detect_result",
//  3. a single-element array whose first element is shape 2.
//
// root is the wrapper object for shapes 2 and 3 (nil for shape 1), and
// listWrapped reports shape 3 so re-serialization can preserve the wrapper.
// Unrecognized shapes yield zero records, never an error.
func extractRecords(doc any) (records []any, root map[string]any, listWrapped bool) {
	switch d := doc.(type) {
	case []any:
		if len(d) > 0 {
			if obj, ok := d[0].(map[string]any); ok {
				if inner, ok := obj["detect_result"].([]any); ok {
					return inner, obj, true
				}
			}
		}
		return d, nil, false
	case map[string]any:
		if inner, ok := d["detect_result"].([]any); ok {
			return inner, d, false
		}
	}
	return nil, nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
