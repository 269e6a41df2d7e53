// Package jsontext formats JSON text: parse, validate, re-serialize with
// caller-controlled indentation and key ordering. Malformed input is never an
// error at this boundary; it is reported through the result's validity flag
// while the original text passes through unchanged.
package jsontext

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// Indent bounds; requests outside the range are clamped.
const (
	MinIndent = 0
	MaxIndent = 8
)

// Options controls formatting.
type Options struct {
	// Indent is the number of spaces per level, clamped to [0, 8].
	// Zero produces compact output.
	Indent int
	// SortKeys orders object keys alphabetically.
	SortKeys bool
	// Compact minimizes whitespace regardless of Indent.
	Compact bool
}

// Result is the formatting outcome. When Valid is false, Formatted carries
// the original input text and ErrMessage explains the failure.
type Result struct {
	Formatted  string
	Valid      bool
	ErrMessage string
}

// Format parses input as JSON and re-serializes it per opts. Parse failures
// are recoverable: the result reports is-valid false with a human-readable
// message, and the input text flows through untouched.
func Format(input string, opts Options) Result {
	// The parser accepts an empty document as null, which would rewrite the
	// pass-through text; an empty input is invalid here, not a null value.
	if strings.TrimSpace(input) == "" {
		return Result{
			Formatted:  input,
			ErrMessage: "invalid JSON: empty input",
		}
	}

	parsed, err := oj.ParseString(input)
	if err != nil {
		return Result{
			Formatted:  input,
			ErrMessage: fmt.Sprintf("invalid JSON: %v", err),
		}
	}

	indent := opts.Indent
	if indent < MinIndent {
		indent = MinIndent
	}
	if indent > MaxIndent {
		indent = MaxIndent
	}
	if opts.Compact {
		indent = 0
	}

	wopts := ojg.Options{Indent: indent, Sort: opts.SortKeys}
	return Result{Formatted: oj.JSON(parsed, &wopts), Valid: true}
}
