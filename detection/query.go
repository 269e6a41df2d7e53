package detection

import (
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	texttools "github.com/Nakamura2828/ComfyUI-JK-TextTools"
)

// QueryOptions filters a detection document.
type QueryOptions struct {
	// ClassFilter is a glob-style pattern ("*" matches everything,
	// "A_*" matches classes beginning with "A_", no wildcard means exact).
	ClassFilter string
	// MinScore is an inclusive lower bound; a record scoring exactly
	// MinScore is retained.
	MinScore float64
	// MaxResults caps the match count, preserving original order.
	// Zero means unlimited.
	MaxResults int
	// Field, when non-empty, names a field (or JSONPath) to read from the
	// first matching record.
	Field string
}

// Result is the query outcome. Boxes parallels Records: a record without a
// usable box contributes a wrapped zero box at its position. FieldValue is
// the empty-string sentinel when Field was empty or the first match lacks
// the field. When Valid is false (malformed JSON), every other output holds
// its documented empty value.
type Result struct {
	FilteredJSON string
	Count        int
	Records      []Record
	Boxes        [][][]float64
	FieldValue   any
	Valid        bool
	ErrMessage   string
}

var queryJSONOpts = ojg.Options{Indent: 2, Sort: true}

// Query parses a detection document and filters it by class pattern, score
// threshold and result cap. Malformed input never escapes as a failure; it
// is reported through Valid and ErrMessage. A record that cannot be read
// (missing class, unparseable score) is a non-match, not an error.
func Query(jsonText string, opts QueryOptions) Result {
	empty := Result{FilteredJSON: "[]", Records: []Record{}, Boxes: [][][]float64{}, FieldValue: ""}

	doc, err := oj.ParseString(jsonText)
	if err != nil {
		empty.ErrMessage = fmt.Sprintf("invalid JSON: %v", err)
		return empty
	}

	raw, root, listWrapped := extractRecords(doc)

	filtered := make([]Record, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := Record(m)
		class, ok := rec.Class()
		if !ok {
			continue
		}
		score, ok := rec.Score()
		if !ok {
			continue
		}
		if !texttools.MatchWildcard(opts.ClassFilter, class) {
			continue
		}
		if score < opts.MinScore {
			continue
		}
		filtered = append(filtered, rec)
	}

	if opts.MaxResults > 0 && len(filtered) > opts.MaxResults {
		filtered = filtered[:opts.MaxResults]
	}

	res := Result{
		Count:      len(filtered),
		Records:    filtered,
		Boxes:      make([][][]float64, 0, len(filtered)),
		FieldValue: "",
		Valid:      true,
	}
	for _, rec := range filtered {
		b, _ := rec.Box("")
		res.Boxes = append(res.Boxes, b.Wrap())
	}

	if opts.Field != "" && len(filtered) > 0 {
		res.FieldValue = fieldValue(filtered[0], opts.Field)
	}

	res.FilteredJSON = serializeFiltered(filtered, root, listWrapped)
	return res
}

// fieldValue reads a field from a record via a JSONPath lookup, so nested
// paths like "attributes.color" work alongside plain field names. Missing
// fields yield the empty-string sentinel.
func fieldValue(rec Record, field string) any {
	expr, err := jp.ParseString(field)
	if err != nil {
		return ""
	}
	results := expr.Get(map[string]any(rec))
	if len(results) == 0 {
		return ""
	}
	return results[0]
}

// serializeFiltered re-serializes the matches, preserving the wrapper shape
// the document arrived in: documents that nested their records under
// detect_result keep the wrapper object (and its sibling fields), and the
// single-element-array form keeps its outer array.
func serializeFiltered(filtered []Record, root map[string]any, listWrapped bool) string {
	records := make([]any, len(filtered))
	for i, rec := range filtered {
		records[i] = map[string]any(rec)
	}

	if root == nil {
		return oj.JSON(records, &queryJSONOpts)
	}

	out := map[string]any{"detect_result": records}
	for k, v := range root {
		if k != "detect_result" {
			out[k] = v
		}
	}
	if listWrapped {
		return oj.JSON([]any{out}, &queryJSONOpts)
	}
	return oj.JSON(out, &queryJSONOpts)
}
