package texttools

import "strings"

// SplitOptions controls Split behavior.
type SplitOptions struct {
	// Strip removes leading/trailing whitespace from every item.
	Strip bool
	// RemoveEmpty drops empty items after stripping.
	RemoveEmpty bool
}

// DecodeDelimiter decodes the escape sequences a delimiter input may carry:
// \n, \t, \r and \\. Any other sequence is left as-is.
func DecodeDelimiter(d string) string {
	if !strings.Contains(d, `\`) {
		return d
	}
	var b strings.Builder
	b.Grow(len(d))
	for i := 0; i < len(d); i++ {
		if d[i] != '\\' || i+1 == len(d) {
			b.WriteByte(d[i])
			continue
		}
		switch d[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte(d[i])
			b.WriteByte(d[i+1])
		}
		i++
	}
	return b.String()
}

// Split splits text by a delimiter (after escape decoding) into the ordered
// sequence of substrings between occurrences. An empty decoded delimiter
// treats the whole string as a single element. Stripping happens before
// empty-item removal, so "a, ,b" with both options yields ["a" "b"].
func Split(text, delimiter string, opts SplitOptions) []string {
	d := DecodeDelimiter(delimiter)
	var items []string
	if d == "" {
		items = []string{text}
	} else {
		items = strings.Split(text, d)
	}
	if opts.Strip {
		for i, item := range items {
			items[i] = strings.TrimSpace(item)
		}
	}
	if opts.RemoveEmpty {
		kept := items[:0]
		for _, item := range items {
			if item != "" {
				kept = append(kept, item)
			}
		}
		items = kept
	}
	return items
}

// SelectIndex picks the item at index from a sequence. With oneBased set the
// first item is index 1. An out-of-range index never fails: it yields the
// empty string plus the true item count for caller-side validation.
func SelectIndex(items []string, index int, oneBased bool) (string, int) {
	actual := index
	if oneBased {
		actual = index - 1
	}
	if actual < 0 || actual >= len(items) {
		return "", len(items)
	}
	return items[actual], len(items)
}

// Join stringifies every item and interleaves the decoded delimiter. Joining
// the empty sequence yields the empty string. Join is the inverse of Split
// only when Split ran without stripping or empty-removal; that round trip is
// documented as lossy otherwise.
func Join(items []any, delimiter string) string {
	d := DecodeDelimiter(delimiter)
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = FromNative(item).String()
	}
	return strings.Join(parts, d)
}
