package texttools

import (
	"reflect"
	"testing"
)

func TestDecodeDelimiter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{",", ","},
		{`\n`, "\n"},
		{`\t`, "\t"},
		{`\r`, "\r"},
		{`\\`, `\`},
		{`\x`, `\x`},
		{`a\nb`, "a\nb"},
		{`\`, `\`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DecodeDelimiter(tt.in); got != tt.want {
			t.Errorf("DecodeDelimiter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		delim string
		opts  SplitOptions
		want  []string
	}{
		{
			name: "basic comma", text: "10,25,42,100", delim: ",",
			want: []string{"10", "25", "42", "100"},
		},
		{
			name: "strip whitespace", text: "a, b , c", delim: ",",
			opts: SplitOptions{Strip: true},
			want: []string{"a", "b", "c"},
		},
		{
			name: "no strip keeps spaces", text: "a, b", delim: ",",
			want: []string{"a", " b"},
		},
		{
			name: "remove empty", text: "a,,b,", delim: ",",
			opts: SplitOptions{RemoveEmpty: true},
			want: []string{"a", "b"},
		},
		{
			name: "strip then remove empty", text: "a, ,b", delim: ",",
			opts: SplitOptions{Strip: true, RemoveEmpty: true},
			want: []string{"a", "b"},
		},
		{
			name: "empty delimiter is one element", text: "abc", delim: "",
			want: []string{"abc"},
		},
		{
			name: "escaped newline delimiter", text: "a\nb", delim: `\n`,
			want: []string{"a", "b"},
		},
		{
			name: "delimiter absent", text: "abc", delim: ",",
			want: []string{"abc"},
		},
		{
			name: "empty text", text: "", delim: ",",
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.delim, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q, %q, %+v) = %v, want %v", tt.text, tt.delim, tt.opts, got, tt.want)
			}
		})
	}
}

func TestSelectIndex(t *testing.T) {
	items := []string{"10", "25", "42", "100"}

	tests := []struct {
		name     string
		index    int
		oneBased bool
		want     string
	}{
		{"zero based", 2, false, "42"},
		{"one based", 2, true, "25"},
		{"first zero based", 0, false, "10"},
		{"first one based", 1, true, "10"},
		{"out of range high", 10, false, ""},
		{"out of range negative", -1, false, ""},
		{"one based zero is out of range", 0, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := SelectIndex(items, tt.index, tt.oneBased)
			if got != tt.want {
				t.Errorf("SelectIndex(%d, oneBased=%v) = %q, want %q", tt.index, tt.oneBased, got, tt.want)
			}
			if count != 4 {
				t.Errorf("count = %d, want 4", count)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name  string
		items []any
		delim string
		want  string
	}{
		{"strings", []any{"a", "b", "c"}, ",", "a,b,c"},
		{"mixed types", []any{10, 25.5, "x"}, ",", "10,25.5,x"},
		{"escaped delimiter", []any{"a", "b"}, `\n`, "a\nb"},
		{"single item", []any{"only"}, ",", "only"},
		{"empty sequence", nil, ",", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.items, tt.delim); got != tt.want {
				t.Errorf("Join(%v, %q) = %q, want %q", tt.items, tt.delim, got, tt.want)
			}
		})
	}
}

// Splitting then joining with the same delimiter reconstructs the input when
// no stripping or empty-removal was applied.
func TestSplitJoinRoundTrip(t *testing.T) {
	inputs := []string{"10,25,42,100", "a,,b", " x , y ", "single", ""}
	for _, s := range inputs {
		items := Split(s, ",", SplitOptions{})
		raw := make([]any, len(items))
		for i, item := range items {
			raw[i] = item
		}
		if got := Join(raw, ","); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestMatchWildcard(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"*", "anything", true},
		{"*", "", true},
		{"A_*", "A_1", true},
		{"A_*", "A_2", true},
		{"A_*", "B_1", false},
		{"*_X", "A_X", true},
		{"*_X", "B_X", true},
		{"*_X", "A_Y", false},
		{"exact", "exact", true},
		{"exact", "exactly", false},
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"[ab]_1", "a_1", true},
		{"[ab]_1", "c_1", false},
		{"[a-c]x", "bx", true},
		{"[!a]x", "bx", true},
		{"[!a]x", "ax", false},
		{"a*b*c", "a123b456c", true},
		{"a*b*c", "a123c", false},
		// Malformed class falls back to exact comparison.
		{"a[bc", "ab", false},
		{"a[bc", "a[bc", true},
	}

	for _, tt := range tests {
		if got := MatchWildcard(tt.pattern, tt.s); got != tt.want {
			t.Errorf("MatchWildcard(%q, %q) = %v, want %v", tt.pattern, tt.s, got, tt.want)
		}
	}
}
