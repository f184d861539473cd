package menu

import (
	"fmt"
	"strconv"
	"strings"

	"comercio/internal/models"
	"comercio/internal/services"
)

const (
	customerNotFound  = "Customer not found."
	customerDuplicate = "Email already in use."
)

var customerColumns = []column{{"ID", 3}, {"Name", 25}, {"Email", 25}, {"Phone", 15}, {"Address", 25}}

func (a *App) customerMenu() error {
	return a.loop("CUSTOMER MANAGEMENT", 40, []option{
		{"Add customer", a.addCustomer},
		{"List customers", func() error { _, err := a.listCustomers(); return err }},
		{"Search customers", a.searchCustomers},
		{"Update customer", a.updateCustomer},
		{"Delete customer", a.deleteCustomer},
	}, "Back to main menu")
}

func (a *App) addCustomer() error {
	a.console.Println("\nNew customer")
	a.console.Println(strings.Repeat("-", 30))

	name, err := a.console.Ask("Full name: ")
	if err != nil {
		return err
	}
	if name == "" {
		a.console.Println("Name cannot be empty.")
		return nil
	}
	email, err := a.console.Ask("Email: ")
	if err != nil {
		return err
	}
	if !services.ValidContactEmail(services.NormalizeEmail(email)) {
		a.console.Println("Invalid email.")
		return nil
	}
	phone, err := a.console.Ask("Phone: ")
	if err != nil {
		return err
	}
	address, err := a.console.Ask("Address: ")
	if err != nil {
		return err
	}

	c := &models.Customer{Name: name, Email: email, Phone: phone, Address: address}
	if err := a.customers.CreateCustomer(c); err != nil {
		a.report(err, customerNotFound, "Could not add customer. Email may already be registered.")
		return nil
	}
	a.console.Printf("Customer added successfully! (ID %d)\n", c.ID)
	return nil
}

func customerRows(customers []models.Customer) [][]string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.Name,
			c.Email,
			orNA(c.Phone),
			orNA(c.Address),
		})
	}
	return rows
}

func (a *App) listCustomers() (bool, error) {
	customers, err := a.customers.GetAllCustomers()
	if err != nil {
		a.report(err, customerNotFound, customerDuplicate)
		return false, nil
	}
	if len(customers) == 0 {
		a.console.Println("No customers registered.")
		return false, nil
	}
	a.printTable("Customers:", 80, customerColumns, customerRows(customers))
	return true, nil
}

func (a *App) searchCustomers() error {
	term, err := a.console.Ask("Enter a name or email to search: ")
	if err != nil {
		return err
	}
	customers, err := a.customers.SearchCustomers(term)
	if err != nil {
		a.report(err, customerNotFound, customerDuplicate)
		return nil
	}
	if len(customers) == 0 {
		a.console.Println("No customers found.")
		return nil
	}
	a.printTable(fmt.Sprintf("Results for '%s':", term), 80, customerColumns, customerRows(customers))
	return nil
}

func (a *App) updateCustomer() error {
	if ok, err := a.listCustomers(); !ok || err != nil {
		return err
	}
	id, ok, err := a.askID("\nCustomer ID to update: ")
	if !ok || err != nil {
		return err
	}
	customer, err := a.customers.GetCustomerByID(id)
	if err != nil {
		a.report(err, customerNotFound, customerDuplicate)
		return nil
	}

	save := func(changes models.CustomerChanges) error {
		updated, err := a.customers.UpdateCustomer(id, changes)
		if err != nil {
			return err
		}
		customer = updated
		return nil
	}

	return a.editLoop(
		func() string { return fmt.Sprintf("Selected customer: %s - %s", customer.Name, customer.Email) },
		[]fieldEdit{
			{"Name", "New name: ", func(raw string) error { return save(models.CustomerChanges{Name: &raw}) }},
			{"Email", "New email: ", func(raw string) error { return save(models.CustomerChanges{Email: &raw}) }},
			{"Phone", "New phone: ", func(raw string) error { return save(models.CustomerChanges{Phone: &raw}) }},
			{"Address", "New address: ", func(raw string) error { return save(models.CustomerChanges{Address: &raw}) }},
		},
		customerNotFound, customerDuplicate,
	)
}

func (a *App) deleteCustomer() error {
	if ok, err := a.listCustomers(); !ok || err != nil {
		return err
	}
	id, ok, err := a.askID("\nCustomer ID to delete: ")
	if !ok || err != nil {
		return err
	}
	customer, err := a.customers.GetCustomerByID(id)
	if err != nil {
		a.report(err, customerNotFound, customerDuplicate)
		return nil
	}
	yes, err := a.confirm(customer.Name)
	if err != nil {
		return err
	}
	if !yes {
		a.console.Println("Deletion cancelled.")
		return nil
	}
	if err := a.customers.DeleteCustomer(id); err != nil {
		a.report(err, customerNotFound, customerDuplicate)
		return nil
	}
	a.console.Printf("Customer '%s' deleted.\n", customer.Name)
	return nil
}
