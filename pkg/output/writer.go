package output

import (
	"fmt"
	"io"

	"github.com/ajxudir/pinlock/pkg/formats"
	"github.com/ajxudir/pinlock/pkg/outdated"
	"github.com/ajxudir/pinlock/pkg/pin"
)

var updateHeaders = []string{"NAME", "SECTION", "CURRENT", "LATEST", "SUGGESTED"}

// WriteUpdateReport writes an update check result.
//
// JSON output is the "name -> suggested spec" object in manifest order. Table
// and CSV output carry one row per upgradable dependency.
func WriteUpdateReport(w io.Writer, format Format, report *outdated.Report) error {
	f := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		data, err := formats.EncodeObject(report.Upgraded())
		if err != nil {
			return err
		}
		return f.WriteRaw(data)
	case FormatCSV:
		return f.WriteCSV(updateHeaders, updateRows(report))
	case FormatTable:
		if !report.HasUpdates() {
			_, _ = fmt.Fprintf(w, "All %d checked dependencies are up to date.\n", report.Checked)
			return nil
		}
		t := NewTable()
		for _, h := range updateHeaders {
			t.AddColumn(h)
		}
		t.Render(w, updateRows(report))
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func updateRows(report *outdated.Report) [][]string {
	rows := make([][]string, 0, len(report.Updates))
	for _, u := range report.Updates {
		rows = append(rows, []string{u.Name, string(u.Section), u.Current, u.Latest, u.Suggested})
	}
	return rows
}

var pinHeaders = []string{"NAME", "VERSION"}

// WritePinResult writes the records a pinning run merged.
//
// Table output lists them only when verbose is set, since the confirmation
// line is the primary result. A dry run also prints the manifest that would
// have been written.
func WritePinResult(w io.Writer, format Format, result pin.Result, verbose bool) error {
	f := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return f.WriteJSON(result)
	case FormatCSV:
		return f.WriteCSV(pinHeaders, pinRows(result))
	case FormatTable:
		if verbose && len(result.Pinned) > 0 {
			t := NewTable()
			for _, h := range pinHeaders {
				t.AddColumn(h)
			}
			t.Render(w, pinRows(result))
		}
		if result.DryRun {
			return f.WriteRaw(result.Output)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func pinRows(result pin.Result) [][]string {
	rows := make([][]string, 0, len(result.Pinned))
	for _, r := range result.Pinned {
		rows = append(rows, []string{r.Name, r.Version})
	}
	return rows
}
