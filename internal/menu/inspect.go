package menu

import (
	"errors"
	"strconv"

	"comercio/internal/inspect"
)

func (a *App) inspectMenu() error {
	return a.loop("DATABASE INSPECTION", 40, []option{
		{"Statistics", a.showStats},
		{"View one table", a.viewTable},
		{"View all tables", a.viewAllTables},
		{"Export table to CSV", a.exportTable},
	}, "Back to main menu")
}

func (a *App) showStats() error {
	counts, err := a.inspector.Stats()
	if err != nil {
		a.report(err, "", "")
		return nil
	}
	inspect.WriteStats(a.console.out, counts)
	return nil
}

// chooseTable lists the tables and reads a 1-based choice. ok is false
// when there are no tables or the choice is out of range.
func (a *App) chooseTable() (table string, ok bool, err error) {
	tables, err := a.inspector.Tables()
	if err != nil {
		a.report(err, "", "")
		return "", false, nil
	}
	if len(tables) == 0 {
		a.console.Println("No tables found.")
		return "", false, nil
	}
	a.console.Println("\nAvailable tables:")
	for i, t := range tables {
		a.console.Printf("%d. %s\n", i+1, t)
	}
	raw, err := a.console.Ask("Table number: ")
	if err != nil {
		return "", false, err
	}
	n, convErr := strconv.Atoi(raw)
	if convErr != nil || n < 1 || n > len(tables) {
		a.console.Println("Enter a valid number.")
		return "", false, nil
	}
	return tables[n-1], true, nil
}

func (a *App) viewTable() error {
	table, ok, err := a.chooseTable()
	if !ok || err != nil {
		return err
	}
	t, err := a.inspector.Read(table)
	if err != nil {
		a.report(err, "", "")
		return nil
	}
	inspect.WriteTable(a.console.out, t)
	return nil
}

func (a *App) viewAllTables() error {
	tables, err := a.inspector.Tables()
	if err != nil {
		a.report(err, "", "")
		return nil
	}
	for _, name := range tables {
		t, err := a.inspector.Read(name)
		if err != nil {
			a.report(err, "", "")
			continue
		}
		inspect.WriteTable(a.console.out, t)
	}
	return nil
}

func (a *App) exportTable() error {
	table, ok, err := a.chooseTable()
	if !ok || err != nil {
		return err
	}
	path, err := a.inspector.Export(table, a.exportDir)
	switch {
	case errors.Is(err, inspect.ErrEmptyTable):
		a.console.Printf("Table '%s' is empty. Nothing to export.\n", table)
	case err != nil:
		a.report(err, "", "")
	default:
		a.console.Printf("Data exported to: %s\n", path)
	}
	return nil
}
