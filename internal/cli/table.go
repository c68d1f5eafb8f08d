package cli

import (
	"fmt"
	"strings"

	"github.com/MuhammadMiqdad/tugas-color-picker/internal/colour"
)

// Table is a plain-text table with columns sized to their widest cell.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	rightAlign map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		padding:    2,
		rightAlign: make(map[int]bool),
	}
}

// AlignRight right-aligns the column at colIndex, for numbers.
func (t *Table) AlignRight(colIndex int) {
	t.rightAlign[colIndex] = true
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats the table with a dashed separator under the header.
// Trailing spaces are trimmed from every line.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	sep := strings.Repeat(" ", t.padding)
	var b strings.Builder
	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = t.pad(cell, widths[i], i)
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		b.WriteByte('\n')
	}

	writeLine(t.headers)
	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	writeLine(dashes)
	for _, row := range t.rows {
		writeLine(row)
	}

	return b.String()
}

func (t *Table) pad(s string, width, col int) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if t.rightAlign[col] {
		return fill + s
	}
	return s + fill
}

// formatTable lists the palette as #, HEX, RGB and WEIGHT columns. Weights are
// percentages; backends that report none show "-".
func formatTable(palette *colour.Palette) string {
	table := NewTable([]string{"#", "HEX", "RGB", "WEIGHT"})
	table.AlignRight(0)
	table.AlignRight(3)

	for i, c := range palette.Colours {
		weight := "-"
		if i < len(palette.Weights) {
			weight = fmt.Sprintf("%.1f%%", palette.Weights[i]*100)
		}
		table.AddRow([]string{
			fmt.Sprint(i + 1),
			c.Hex(),
			fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B),
			weight,
		})
	}

	return table.Render()
}
