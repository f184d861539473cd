package inspect

import (
	"fmt"
	"io"
	"strings"
)

const cellWidth = 15

// WriteStats prints the row count of each table.
func WriteStats(w io.Writer, counts []TableCount) {
	fmt.Fprintln(w, "\nDATABASE STATISTICS")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	for _, c := range counts {
		fmt.Fprintf(w, "%-15s: %3d records\n", c.Table, c.Rows)
	}
}

// WriteTable prints every row in fixed 15-character columns. NULL renders
// as N/A; longer values are cut.
func WriteTable(w io.Writer, t *Table) {
	if len(t.Rows) == 0 {
		fmt.Fprintf(w, "Table '%s' is empty.\n", t.Name)
		return
	}

	fmt.Fprintf(w, "\nTABLE: %s\n", strings.ToUpper(t.Name))
	fmt.Fprintln(w, strings.Repeat("=", 80))

	header := make([]string, len(t.Columns))
	for k, c := range t.Columns {
		header[k] = cell(c)
	}
	line := strings.Join(header, " | ")
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, strings.Repeat("-", len(line)))

	cells := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for k, v := range row {
			if v == nil {
				cells[k] = cell("N/A")
				continue
			}
			cells[k] = cell(FormatValue(v))
		}
		fmt.Fprintln(w, strings.Join(cells, " | "))
	}
	fmt.Fprintf(w, "\nTotal records: %d\n", len(t.Rows))
}

func cell(s string) string {
	r := []rune(s)
	if len(r) > cellWidth {
		r = r[:cellWidth]
	}
	return fmt.Sprintf("%-*s", cellWidth, string(r))
}
