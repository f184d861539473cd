package menu

import (
	"fmt"
	"strings"
)

type column struct {
	title string
	width int
}

// printTable writes rows in fixed-width columns between dashed rules.
// Cells wider than their column are not cut.
func (a *App) printTable(title string, rule int, cols []column, rows [][]string) {
	a.console.Printf("\n%s\n", title)
	a.console.Println(strings.Repeat("-", rule))
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = pad(c.title, c.width)
	}
	a.console.Println(strings.TrimRight(strings.Join(header, " "), " "))
	a.console.Println(strings.Repeat("-", rule))
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = pad(row[i], c.width)
		}
		a.console.Println(strings.TrimRight(strings.Join(cells, " "), " "))
	}
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

// orNA renders empty values as N/A.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func money(v float64) string {
	return fmt.Sprintf("R$%.2f", v)
}
