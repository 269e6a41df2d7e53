package detection

import (
	"strings"
	"testing"

	"github.com/ohler55/ojg/oj"
)

const sampleDoc = `[
  {"class": "A_1", "score": 0.95, "box": [10, 20, 30, 40]},
  {"class": "A_2", "score": 0.80, "box": [50, 60, 70, 80]},
  {"class": "B_1", "score": 0.60, "bbox": [1, 2, 3, 4]},
  {"class": "A_X", "score": 0.40, "box": [5, 5, 5, 5], "is_dog": true}
]`

func TestQueryWildcardAll(t *testing.T) {
	res := Query(sampleDoc, QueryOptions{ClassFilter: "*"})
	if !res.Valid {
		t.Fatal(res.ErrMessage)
	}
	if res.Count != 4 {
		t.Errorf("count = %d, want 4", res.Count)
	}
	if len(res.Records) != 4 || len(res.Boxes) != 4 {
		t.Errorf("records=%d boxes=%d, want parallel 4/4", len(res.Records), len(res.Boxes))
	}
}

func TestQueryPrefixWildcard(t *testing.T) {
	res := Query(sampleDoc, QueryOptions{ClassFilter: "A_*"})
	if res.Count != 3 {
		t.Fatalf("A_* count = %d, want 3", res.Count)
	}
	for _, rec := range res.Records {
		class, _ := rec.Class()
		if !strings.HasPrefix(class, "A_") {
			t.Errorf("unexpected match %q", class)
		}
	}
}

func TestQuerySuffixWildcard(t *testing.T) {
	res := Query(sampleDoc, QueryOptions{ClassFilter: "*_1"})
	if res.Count != 2 {
		t.Errorf("*_1 count = %d, want 2", res.Count)
	}
}

func TestQueryExactMatch(t *testing.T) {
	res := Query(sampleDoc, QueryOptions{ClassFilter: "A_2"})
	if res.Count != 1 {
		t.Fatalf("exact count = %d, want 1", res.Count)
	}
	if class, _ := res.Records[0].Class(); class != "A_2" {
		t.Errorf("matched %q", class)
	}
}

func TestQueryMinScoreInclusive(t *testing.T) {
	// A record scoring exactly min_score is retained.
	res := Query(sampleDoc, QueryOptions{ClassFilter: "*", MinScore: 0.80})
	if res.Count != 2 {
		t.Fatalf("count = %d, want 2", res.Count)
	}
	for _, rec := range res.Records {
		if score, _ := rec.Score(); score < 0.80 {
			t.Errorf("score %v below threshold", score)
		}
	}
}

func TestQueryMaxResultsPreservesOrder(t *testing.T) {
	res := Query(sampleDoc, QueryOptions{ClassFilter: "*", MaxResults: 2})
	if res.Count != 2 {
		t.Fatalf("count = %d, want 2", res.Count)
	}
	first, _ := res.Records[0].Class()
	second, _ := res.Records[1].Class()
	if first != "A_1" || second != "A_2" {
		t.Errorf("order not preserved: %q, %q", first, second)
	}
}

func TestQueryFieldFromFirstMatch(t *testing.T) {
	res := Query(sampleDoc, QueryOptions{ClassFilter: "A_X", Field: "is_dog"})
	if res.FieldValue != true {
		t.Errorf("FieldValue = %v, want true", res.FieldValue)
	}

	// Missing field yields the empty-string sentinel.
	res = Query(sampleDoc, QueryOptions{ClassFilter: "A_1", Field: "is_dog"})
	if res.FieldValue != "" {
		t.Errorf("missing field sentinel = %v", res.FieldValue)
	}

	// No matches at all: sentinel too.
	res = Query(sampleDoc, QueryOptions{ClassFilter: "nothing", Field: "is_dog"})
	if res.FieldValue != "" {
		t.Errorf("no-match sentinel = %v", res.FieldValue)
	}
}

func TestQueryBoxesParallel(t *testing.T) {
	res := Query(`[
	  {"class": "a", "score": 1.0, "box": [1, 2, 3, 4]},
	  {"class": "b", "score": 1.0}
	]`, QueryOptions{ClassFilter: "*"})

	if len(res.Boxes) != 2 {
		t.Fatalf("boxes = %d, want 2 (parallel to records)", len(res.Boxes))
	}
	if res.Boxes[0][0][0] != 1 {
		t.Errorf("box 0 = %v", res.Boxes[0])
	}
	// Boxless record contributes a wrapped zero box.
	if res.Boxes[1][0][0] != 0 || res.Boxes[1][0][2] != 0 {
		t.Errorf("boxless record box = %v, want zeros", res.Boxes[1])
	}
}

func TestQueryDocumentShapes(t *testing.T) {
	records := `{"class": "a", "score": 0.9, "box": [1,2,3,4]}`

	tests := []struct {
		name  string
		doc   string
		count int
	}{
		{"bare array", "[" + records + "]", 1},
		{"detect_result object", `{"detect_result": [` + records + `], "is_dog": true}`, 1},
		{"wrapped detect_result", `[{"detect_result": [` + records + `]}]`, 1},
		{"unrecognized object", `{"items": [` + records + `]}`, 0},
		{"scalar", `42`, 0},
		{"empty array", `[]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Query(tt.doc, QueryOptions{ClassFilter: "*"})
			if !res.Valid {
				t.Fatalf("shape should not be a hard error: %s", res.ErrMessage)
			}
			if res.Count != tt.count {
				t.Errorf("count = %d, want %d", res.Count, tt.count)
			}
		})
	}
}

func TestQueryWrapperPreserved(t *testing.T) {
	doc := `[{"detect_result": [{"class": "a", "score": 0.9, "box": [1,2,3,4]}], "frame": 7}]`
	res := Query(doc, QueryOptions{ClassFilter: "*"})

	parsed, err := oj.ParseString(res.FilteredJSON)
	if err != nil {
		t.Fatalf("filtered JSON does not parse: %v", err)
	}
	arr, ok := parsed.([]any)
	if !ok || len(arr) != 1 {
		t.Fatalf("wrapper array lost: %v", parsed)
	}
	obj := arr[0].(map[string]any)
	if _, ok := obj["detect_result"]; !ok {
		t.Error("detect_result key lost")
	}
	if obj["frame"] != int64(7) {
		t.Errorf("sibling field lost: %v", obj["frame"])
	}
}

func TestQuerySkipsUnreadableRecords(t *testing.T) {
	doc := `[
	  {"class": "a", "score": "not-a-number"},
	  {"score": 0.9},
	  "just a string",
	  {"class": "b", "score": 0.9}
	]`
	res := Query(doc, QueryOptions{ClassFilter: "*"})
	if !res.Valid {
		t.Fatal(res.ErrMessage)
	}
	if res.Count != 1 {
		t.Errorf("count = %d, want 1 (bad records skipped, not fatal)", res.Count)
	}
}

func TestQueryMalformedJSON(t *testing.T) {
	res := Query("{not json", QueryOptions{ClassFilter: "*"})
	if res.Valid {
		t.Error("malformed input reported valid")
	}
	if res.ErrMessage == "" {
		t.Error("missing error message")
	}
	if res.FilteredJSON != "[]" || res.Count != 0 {
		t.Errorf("failure outputs = %q, %d", res.FilteredJSON, res.Count)
	}
	if res.FieldValue != "" {
		t.Errorf("failure field sentinel = %v", res.FieldValue)
	}
}

func TestExtractBox(t *testing.T) {
	det := `{"class": "person", "score": 0.87, "box": [10, 20, 30, 40]}`
	info, err := ExtractBox(det, "box")
	if err != nil {
		t.Fatal(err)
	}
	if info.Class != "person" || info.Score != 0.87 {
		t.Errorf("metadata = %+v", info)
	}
	if info.Box.X != 10 || info.Box.H != 40 {
		t.Errorf("box = %+v", info.Box)
	}
}

func TestExtractBoxKeyFallback(t *testing.T) {
	// Asking for "box" falls back to "bbox" and vice versa.
	info, err := ExtractBox(`{"class": "c", "score": 0.5, "bbox": [1, 2, 3, 4]}`, "box")
	if err != nil || info.Box.X != 1 {
		t.Errorf("fallback to bbox: %+v, %v", info, err)
	}
	info, err = ExtractBox(`{"class": "c", "score": 0.5, "box": [5, 6, 7, 8]}`, "bbox")
	if err != nil || info.Box.X != 5 {
		t.Errorf("fallback to box: %+v, %v", info, err)
	}
}

func TestExtractBoxErrors(t *testing.T) {
	// Missing box still yields class/score metadata alongside the error.
	info, err := ExtractBox(`{"class": "cat", "score": 0.7}`, "box")
	if err == nil {
		t.Fatal("expected error for missing box")
	}
	if info.Class != "cat" || info.Score != 0.7 {
		t.Errorf("metadata lost on error: %+v", info)
	}

	if _, err := ExtractBox(`{"class": "c", "score": 1.0, "box": [1, 2]}`, "box"); err == nil {
		t.Error("expected error for short box")
	}
	if _, err := ExtractBox("{not json", "box"); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := ExtractBox(`[1, 2, 3]`, "box"); err == nil {
		t.Error("expected error for non-object")
	}
}

func TestRecordBoxWrappedForm(t *testing.T) {
	rec := Record{"class": "a", "score": 1.0, "box": []any{[]any{1.0, 2.0, 3.0, 4.0}}}
	b, ok := rec.Box("")
	if !ok || b.X != 1 || b.H != 4 {
		t.Errorf("wrapped box = %+v, %v", b, ok)
	}
}
