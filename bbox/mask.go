package bbox

import (
	"strconv"
	"strings"
)

// Mask is a width x height grid of 0/1 float values, the binary-mask shape
// image hosts exchange. Row 0 is the top of the image.
type Mask struct {
	Width  int
	Height int
	data   []float32
}

// NewMask creates an all-background mask. Non-positive dimensions collapse
// to an empty grid rather than failing.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{Width: width, Height: height, data: make([]float32, width*height)}
}

// At returns the value at (x, y); out-of-bounds reads are background.
func (m *Mask) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.data[y*m.Width+x]
}

// Set writes the value at (x, y); out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, v float32) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.data[y*m.Width+x] = v
}

// Fill sets every cell to v.
func (m *Mask) Fill(v float32) {
	for i := range m.data {
		m.data[i] = v
	}
}

// FillRect sets the half-open rectangle [x1,x2) x [y1,y2) to v. The
// rectangle is assumed already clamped into bounds.
func (m *Mask) FillRect(x1, y1, x2, y2 int, v float32) {
	for y := y1; y < y2; y++ {
		row := m.data[y*m.Width : y*m.Width+m.Width]
		for x := x1; x < x2; x++ {
			row[x] = v
		}
	}
}

// Invert swaps foreground and background over the whole grid.
func (m *Mask) Invert() {
	for i, v := range m.data {
		m.data[i] = 1 - v
	}
}

// Or unions another mask of identical dimensions into this one.
func (m *Mask) Or(o *Mask) {
	if o == nil || o.Width != m.Width || o.Height != m.Height {
		return
	}
	for i, v := range o.data {
		if v > m.data[i] {
			m.data[i] = v
		}
	}
}

// Sum returns the total foreground area (the sum of all cells).
func (m *Mask) Sum() float64 {
	var total float64
	for _, v := range m.data {
		total += float64(v)
	}
	return total
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.Width, m.Height)
	copy(c.data, m.data)
	return c
}

// Rows returns the grid as height rows of width values.
func (m *Mask) Rows() [][]float32 {
	rows := make([][]float32, m.Height)
	for y := 0; y < m.Height; y++ {
		rows[y] = m.data[y*m.Width : y*m.Width+m.Width]
	}
	return rows
}

// MarshalJSON encodes the mask as an array of rows so CLI output and host
// transports see a plain 2D grid.
func (m *Mask) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('[')
	for y := 0; y < m.Height; y++ {
		if y > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		for x := 0; x < m.Width; x++ {
			if x > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(float64(m.data[y*m.Width+x]), 'g', -1, 32))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// MaskFromRows rebuilds a mask from a raw row-major value (as parsed from
// JSON or YAML). Ragged or non-numeric input is rejected.
func MaskFromRows(v any) (*Mask, bool) {
	rows, ok := v.([]any)
	if !ok {
		if typed, isTyped := v.(*Mask); isTyped {
			return typed, true
		}
		return nil, false
	}
	if len(rows) == 0 {
		return NewMask(0, 0), true
	}
	first, ok := toFloats(rows[0])
	if !ok {
		return nil, false
	}
	m := NewMask(len(first), len(rows))
	for y, raw := range rows {
		row, ok := toFloats(raw)
		if !ok || len(row) != m.Width {
			return nil, false
		}
		for x, val := range row {
			m.data[y*m.Width+x] = float32(val)
		}
	}
	return m, true
}

// Rasterize renders one XYWH box into a width x height mask. Coordinates are
// truncated to integers, clamped into [0,width) x [0,height), and the
// surviving rectangle becomes foreground. An empty clamped rectangle is not
// an error: the mask is all background. With invert set, foreground and
// background swap roles for the entire mask.
func Rasterize(b Box, width, height int, invert bool) *Mask {
	m := NewMask(width, height)
	bg, fg := float32(0), float32(1)
	if invert {
		bg, fg = 1, 0
	}
	if bg != 0 {
		m.Fill(bg)
	}
	x, y, w, h := int(b.X), int(b.Y), int(b.W), int(b.H)
	x1 := clampInt(x, 0, width)
	y1 := clampInt(y, 0, height)
	x2 := clampInt(x+w, 0, width)
	y2 := clampInt(y+h, 0, height)
	if x2 > x1 && y2 > y1 {
		m.FillRect(x1, y1, x2, y2, fg)
	}
	return m
}

// RasterizeAll renders every box onto the same grid, returning one mask per
// box plus the union of all of them. The union is OR'd before any inversion;
// invert is then applied once to the combined result and once per individual
// mask, never twice.
func RasterizeAll(boxes []Box, width, height int, invert bool) (combined *Mask, individual []*Mask) {
	combined = NewMask(width, height)
	individual = make([]*Mask, 0, len(boxes))
	for _, b := range boxes {
		m := Rasterize(b, width, height, false)
		combined.Or(m)
		individual = append(individual, m)
	}
	if invert {
		combined.Invert()
		for _, m := range individual {
			m.Invert()
		}
	}
	return combined, individual
}

// FromMask recovers the tightest XYWH box around mask foreground (cells
// above 0.5). The reported width and height include the outermost foreground
// pixels. An empty mask yields the zero box and ok=false.
func FromMask(m *Mask) (Box, bool) {
	if m == nil {
		return Box{}, false
	}
	minX, minY := m.Width, m.Height
	maxX, maxY := -1, -1
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.data[y*m.Width+x] <= 0.5 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return Box{}, false
	}
	return Box{
		X: float64(minX),
		Y: float64(minY),
		W: float64(maxX - minX + 1),
		H: float64(maxY - minY + 1),
	}, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
