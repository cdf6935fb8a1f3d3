package output

import (
	"fmt"
	"io"
	"strings"
)

// Column is a table column with its header and current width.
type Column struct {
	Header string
	Width  int
}

// Table aligns rows into columns using display widths, so names with wide
// characters still line up.
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates an empty table with a two-space column separator.
func NewTable() *Table {
	return &Table{separator: "  "}
}

// AddColumn appends a column sized to its header.
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumn(header string) *Table {
	t.columns = append(t.columns, Column{Header: header, Width: DisplayWidth(header)})
	return t
}

// UpdateWidths widens columns so every value in the row fits.
// Values beyond the last column are ignored.
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, val := range values {
		if i >= len(t.columns) {
			break
		}
		t.columns[i].Width = max(t.columns[i].Width, DisplayWidth(val))
	}
	return t
}

// HeaderRow returns the padded header line.
func (t *Table) HeaderRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = ToWidth(col.Header, col.Width)
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// SeparatorRow returns dashes matching each column width.
func (t *Table) SeparatorRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = strings.Repeat("-", col.Width)
	}
	return strings.Join(parts, t.separator)
}

// FormatRow pads each value to its column. Missing values are blank.
func (t *Table) FormatRow(values ...string) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts[i] = ToWidth(val, col.Width)
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// Render sizes the table to rows and writes header, separator and rows to w.
func (t *Table) Render(w io.Writer, rows [][]string) {
	for _, row := range rows {
		t.UpdateWidths(row...)
	}
	_, _ = fmt.Fprintln(w, t.HeaderRow())
	_, _ = fmt.Fprintln(w, t.SeparatorRow())
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, t.FormatRow(row...))
	}
}
