package bbox

import "testing"

func TestParseJSONQuads(t *testing.T) {
	text := `[[245.3, 167.8, 512.6, 389.2], [0, 0, 100, 50]]`

	quads, err := ParseJSONQuads(text, XYXY, XYWH)
	if err != nil {
		t.Fatal(err)
	}
	if len(quads) != 2 {
		t.Fatalf("count = %d, want 2", len(quads))
	}
	want := [4]float64{245.3, 167.8, 267.3, 221.4}
	for i := range want {
		if !almostEqual(quads[0][i], want[i]) {
			t.Fatalf("converted = %v, want %v", quads[0], want)
		}
	}
}

func TestParseJSONQuadsIdentity(t *testing.T) {
	quads, err := ParseJSONQuads(`[[1, 2, 3, 4]]`, XYWH, XYWH)
	if err != nil || len(quads) != 1 || quads[0] != [4]float64{1, 2, 3, 4} {
		t.Errorf("identity = %v, %v", quads, err)
	}
}

func TestParseJSONQuadsSkipsBadEntries(t *testing.T) {
	quads, err := ParseJSONQuads(`[[1,2,3,4], [1,2], "x", [5,6,7,8]]`, XYWH, XYWH)
	if err != nil {
		t.Fatal(err)
	}
	if len(quads) != 2 {
		t.Errorf("count = %d, want 2 (bad entries skipped)", len(quads))
	}
}

func TestParseJSONQuadsErrors(t *testing.T) {
	if _, err := ParseJSONQuads("{not json", XYWH, XYWH); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := ParseJSONQuads(`{"a": 1}`, XYWH, XYWH); err == nil {
		t.Error("expected error for non-array document")
	}
	if quads, err := ParseJSONQuads(`[]`, XYWH, XYWH); err != nil || len(quads) != 0 {
		t.Errorf("empty array = %v, %v", quads, err)
	}
}
