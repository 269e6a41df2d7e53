/*
Package texttools provides the core functions behind the JK-TextTools node
pack: string splitting, joining and indexed selection over delimited text,
plus the tagged value type used to carry typed sequences between nodes.

Every function here is a stateless pure function: fully-materialized inputs
in, fully-materialized outputs out, no I/O and no cross-call state. Recoverable
conditions (an out-of-range index, an unparseable cast) never fail; they yield
documented sentinel values instead so a workflow host can keep running.

Basic usage:

	items := texttools.Split("10, 25, 42, 100", ",", texttools.SplitOptions{Strip: true})
	// items = ["10" "25" "42" "100"]

	selected, count := texttools.SelectIndex(items, 2, false)
	// selected = "42", count = 4

	joined := texttools.Join([]any{10, 25, 42}, ",")
	// joined = "10,25,42"

The bounding-box, detection-query, JSON-formatting and segmentation helpers
live in the bbox, detection, jsontext and segs sub-packages. The nodes package
wraps everything into the host-facing node table.
*/
package texttools
