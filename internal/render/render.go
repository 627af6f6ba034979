// Package render turns a dispatcher result into the two shapes spec §6
// recognizes: a tabular ResultSet with a header row, or a bare status
// string. Rendering is the only place row counts get truncated for
// display (spec §5) — the ResultSet itself always carries every row.
package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// maxDisplayRows caps how many data rows the terminal renderer prints;
// the underlying ResultSet stays complete regardless.
const maxDisplayRows = 50

// ResultSet is a tabular result: one header row plus zero or more data
// rows, all of equal width.
type ResultSet struct {
	Header []string
	Rows   [][]string
}

// NewResultSet builds a ResultSet, stringifying every cell with fmt.Sprint.
func NewResultSet(header []string, rows [][]interface{}) ResultSet {
	out := make([][]string, len(rows))
	for i, row := range rows {
		strRow := make([]string, len(row))
		for j, cell := range row {
			strRow[j] = fmt.Sprint(cell)
		}
		out[i] = strRow
	}
	return ResultSet{Header: header, Rows: out}
}

// Render writes the result set to w as an ASCII table, truncating the
// displayed rows to maxDisplayRows and noting how many were omitted.
func (rs ResultSet) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(rs.Header)
	table.SetAutoWrapText(false)

	shown := rs.Rows
	truncated := len(rs.Rows) > maxDisplayRows
	if truncated {
		shown = rs.Rows[:maxDisplayRows]
	}
	for _, row := range shown {
		table.Append(row)
	}
	table.Render()

	if truncated {
		fmt.Fprintf(w, "(showing first %d of %d rows)\n", maxDisplayRows, len(rs.Rows))
	}
}

// Status renders a single status line, e.g. "3 row(s) in 1.2345 ms".
type Status struct {
	Message string
}

func (s Status) Render(w io.Writer) {
	fmt.Fprintln(w, s.Message)
}

// FormatDuration renders an elapsed duration per spec §4.6/§6: four
// decimal places, milliseconds below one second, seconds otherwise.
func FormatDuration(seconds float64) string {
	if seconds < 1.0 {
		return fmt.Sprintf("%.4f ms", seconds*1000)
	}
	return fmt.Sprintf("%.4f s", seconds)
}

// CountLine formats the dispatcher's standard "N row(s) in T" status.
func CountLine(n int, seconds float64) string {
	return fmt.Sprintf("%d row(s) in %s", n, FormatDuration(seconds))
}
