// Package output renders command results as an aligned table, JSON or CSV.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format is an output format name.
type Format string

const (
	// FormatTable is the default terminal table output.
	FormatTable Format = "table"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
	// FormatCSV outputs data as comma-separated values.
	FormatCSV Format = "csv"
)

// ParseFormat parses a case-insensitive format name. An empty name is
// FormatTable; anything unrecognised is an error.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatCSV):
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or csv)", s)
	}
}

// IsStructured reports whether f is meant for machine consumption.
func (f Format) IsStructured() bool {
	return f == FormatJSON || f == FormatCSV
}

// Formatter writes data in one format.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{format: format, writer: w}
}

// Format returns the configured format.
func (f *Formatter) Format() Format {
	return f.format
}

// WriteCSV writes a header and rows. csv.Writer only reports errors after Flush.
func (f *Formatter) WriteCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)
	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes data as indented JSON followed by a newline.
func (f *Formatter) WriteJSON(data interface{}) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteRaw writes pre-encoded bytes unchanged.
func (f *Formatter) WriteRaw(data []byte) error {
	_, err := f.writer.Write(data)
	return err
}
