// Package menu implements the interactive text menu over the entity
// services and the inspection utility.
package menu

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"comercio/internal/inspect"
	"comercio/internal/services"

	"github.com/rs/zerolog/log"
)

// App is the interactive session. It is single-threaded: every action
// blocks on the console.
type App struct {
	console   *Console
	products  *services.ProductService
	customers *services.CustomerService
	suppliers *services.SupplierService
	inspector *inspect.Inspector
	exportDir string
}

// Deps are the services the menu dispatches to.
type Deps struct {
	Products  *services.ProductService
	Customers *services.CustomerService
	Suppliers *services.SupplierService
	Inspector *inspect.Inspector
	ExportDir string
}

// New creates an App reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, deps Deps) *App {
	return &App{
		console:   NewConsole(in, out),
		products:  deps.Products,
		customers: deps.Customers,
		suppliers: deps.Suppliers,
		inspector: deps.Inspector,
		exportDir: deps.ExportDir,
	}
}

type option struct {
	label string
	run   func() error
}

// Run shows the main menu until the user exits or input ends.
func (a *App) Run() error {
	log.Info().Msg("Interactive session started")
	err := a.loop("COMMERCIAL MANAGEMENT SYSTEM", 50, []option{
		{"Manage products", a.productMenu},
		{"Manage customers", a.customerMenu},
		{"Manage suppliers", a.supplierMenu},
		{"Inspect database", a.inspectMenu},
	}, "Exit")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	a.console.Println("Shutting down...")
	log.Info().Msg("Interactive session ended")
	return nil
}

// loop renders a numbered menu with a trailing back entry and dispatches
// choices until back is chosen. Only console errors end it early.
func (a *App) loop(title string, rule int, opts []option, back string) error {
	for {
		a.console.Printf("\n%s\n%s\n%s\n", strings.Repeat("=", rule), title, strings.Repeat("=", rule))
		for i, o := range opts {
			a.console.Printf("%d. %s\n", i+1, o.label)
		}
		a.console.Printf("%d. %s\n", len(opts)+1, back)
		a.console.Println(strings.Repeat("=", rule))

		choice, err := a.console.Ask("Choose an option: ")
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(choice)
		switch {
		case convErr == nil && n >= 1 && n <= len(opts):
			if err := opts[n-1].run(); err != nil {
				return err
			}
		case convErr == nil && n == len(opts)+1:
			return nil
		default:
			a.console.Println("Invalid option. Try again.")
		}
	}
}

// inputError is a user-facing message about unparseable input.
type inputError string

func (e inputError) Error() string { return string(e) }

// report prints a user-facing message for err. duplicate is the message
// for unique constraint conflicts.
func (a *App) report(err error, notFound, duplicate string) {
	var (
		ie inputError
		ve *services.ValidationError
	)
	switch {
	case errors.As(err, &ie):
		a.console.Println(ie.Error())
	case errors.As(err, &ve):
		a.console.Printf("Invalid input: %s.\n", ve.Error())
	case errors.Is(err, services.ErrDuplicate):
		a.console.Println(duplicate)
	case errors.Is(err, services.ErrNotFound):
		a.console.Println(notFound)
	default:
		log.Error().Err(err).Msg("Operation failed")
		a.console.Printf("Unexpected error: %v\n", err)
	}
}

// askID reads a record id. ok is false when the input is not a positive integer.
func (a *App) askID(prompt string) (id uint, ok bool, err error) {
	raw, err := a.console.Ask(prompt)
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.ParseUint(raw, 10, 64)
	if convErr != nil || n == 0 {
		a.console.Println("Invalid ID.")
		return 0, false, nil
	}
	return uint(n), true, nil
}

// confirm asks a y/N question; only "y" confirms.
func (a *App) confirm(name string) (bool, error) {
	answer, err := a.console.Ask("Confirm deletion of '" + name + "'? (y/N): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

func parsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, inputError("Invalid price.")
	}
	return v, nil
}

func parseStock(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, inputError("Invalid stock quantity.")
	}
	return v, nil
}

type fieldEdit struct {
	label  string
	prompt string
	apply  func(raw string) error
}

// editLoop is the update state machine: pick a field, read a value,
// validate and persist it, refresh, repeat until back.
func (a *App) editLoop(header func() string, fields []fieldEdit, notFound, duplicate string) error {
	for {
		a.console.Printf("\n%s\n", header())
		a.console.Println("What do you want to update?")
		for i, f := range fields {
			a.console.Printf("%d. %s\n", i+1, f.label)
		}
		a.console.Printf("%d. Back\n", len(fields)+1)

		choice, err := a.console.Ask("Option: ")
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(choice)
		if convErr == nil && n == len(fields)+1 {
			return nil
		}
		if convErr != nil || n < 1 || n > len(fields) {
			a.console.Println("Invalid option.")
			continue
		}

		f := fields[n-1]
		raw, err := a.console.Ask(f.prompt)
		if err != nil {
			return err
		}
		if err := f.apply(raw); err != nil {
			a.report(err, notFound, duplicate)
			continue
		}
		a.console.Printf("%s updated!\n", f.label)
	}
}
