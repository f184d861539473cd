package menu

import (
	"fmt"
	"strconv"
	"strings"

	"comercio/internal/models"
	"comercio/internal/services"
)

const (
	supplierNotFound  = "Supplier not found."
	supplierDuplicate = "Tax ID already in use."
)

var supplierColumns = []column{{"ID", 3}, {"Name", 25}, {"Tax ID", 18}, {"Category", 20}, {"Phone", 15}}

func (a *App) supplierMenu() error {
	return a.loop("SUPPLIER MANAGEMENT", 40, []option{
		{"Add supplier", a.addSupplier},
		{"List suppliers", func() error { _, err := a.listSuppliers(); return err }},
		{"Search suppliers", a.searchSuppliers},
		{"Update supplier", a.updateSupplier},
		{"Delete supplier", a.deleteSupplier},
	}, "Back to main menu")
}

func (a *App) addSupplier() error {
	a.console.Println("\nNew supplier")
	a.console.Println(strings.Repeat("-", 35))

	name, err := a.console.Ask("Company name: ")
	if err != nil {
		return err
	}
	if name == "" {
		a.console.Println("Name cannot be empty.")
		return nil
	}
	taxID, err := a.console.Ask("Tax ID (14 digits): ")
	if err != nil {
		return err
	}
	if !services.ValidTaxID(models.NormalizeTaxID(taxID)) {
		a.console.Println("Invalid tax ID. It must have 14 digits.")
		return nil
	}
	email, err := a.console.Ask("Email (optional): ")
	if err != nil {
		return err
	}
	if e := services.NormalizeEmail(email); e != "" && !services.ValidLooseEmail(e) {
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
	category, err := a.console.Ask("Category: ")
	if err != nil {
		return err
	}

	s := &models.Supplier{Name: name, TaxID: taxID, Email: email, Phone: phone, Address: address, Category: category}
	if err := a.suppliers.CreateSupplier(s); err != nil {
		a.report(err, supplierNotFound, "Could not add supplier. Tax ID may already be registered.")
		return nil
	}
	a.console.Printf("Supplier added successfully! (ID %d)\n", s.ID)
	return nil
}

func supplierRows(suppliers []models.Supplier) [][]string {
	rows := make([][]string, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(s.ID), 10),
			s.Name,
			models.FormatTaxID(s.TaxID),
			orNA(s.Category),
			orNA(s.Phone),
		})
	}
	return rows
}

func (a *App) listSuppliers() (bool, error) {
	suppliers, err := a.suppliers.GetAllSuppliers()
	if err != nil {
		a.report(err, supplierNotFound, supplierDuplicate)
		return false, nil
	}
	if len(suppliers) == 0 {
		a.console.Println("No suppliers registered.")
		return false, nil
	}
	a.printTable("Suppliers:", 90, supplierColumns, supplierRows(suppliers))
	return true, nil
}

func (a *App) searchSuppliers() error {
	term, err := a.console.Ask("Enter a name, tax ID or category to search: ")
	if err != nil {
		return err
	}
	suppliers, err := a.suppliers.SearchSuppliers(term)
	if err != nil {
		a.report(err, supplierNotFound, supplierDuplicate)
		return nil
	}
	if len(suppliers) == 0 {
		a.console.Println("No suppliers found.")
		return nil
	}
	a.printTable(fmt.Sprintf("Results for '%s':", term), 90, supplierColumns, supplierRows(suppliers))
	return nil
}

func (a *App) updateSupplier() error {
	if ok, err := a.listSuppliers(); !ok || err != nil {
		return err
	}
	id, ok, err := a.askID("\nSupplier ID to update: ")
	if !ok || err != nil {
		return err
	}
	supplier, err := a.suppliers.GetSupplierByID(id)
	if err != nil {
		a.report(err, supplierNotFound, supplierDuplicate)
		return nil
	}

	save := func(changes models.SupplierChanges) error {
		updated, err := a.suppliers.UpdateSupplier(id, changes)
		if err != nil {
			return err
		}
		supplier = updated
		return nil
	}

	return a.editLoop(
		func() string {
			return fmt.Sprintf("Selected supplier: %s - %s", supplier.Name, models.FormatTaxID(supplier.TaxID))
		},
		[]fieldEdit{
			{"Name", "New name: ", func(raw string) error { return save(models.SupplierChanges{Name: &raw}) }},
			{"Tax ID", "New tax ID (14 digits): ", func(raw string) error { return save(models.SupplierChanges{TaxID: &raw}) }},
			{"Email", "New email: ", func(raw string) error { return save(models.SupplierChanges{Email: &raw}) }},
			{"Phone", "New phone: ", func(raw string) error { return save(models.SupplierChanges{Phone: &raw}) }},
			{"Address", "New address: ", func(raw string) error { return save(models.SupplierChanges{Address: &raw}) }},
			{"Category", "New category: ", func(raw string) error { return save(models.SupplierChanges{Category: &raw}) }},
		},
		supplierNotFound, supplierDuplicate,
	)
}

func (a *App) deleteSupplier() error {
	if ok, err := a.listSuppliers(); !ok || err != nil {
		return err
	}
	id, ok, err := a.askID("\nSupplier ID to delete: ")
	if !ok || err != nil {
		return err
	}
	supplier, err := a.suppliers.GetSupplierByID(id)
	if err != nil {
		a.report(err, supplierNotFound, supplierDuplicate)
		return nil
	}
	yes, err := a.confirm(supplier.Name)
	if err != nil {
		return err
	}
	if !yes {
		a.console.Println("Deletion cancelled.")
		return nil
	}
	if err := a.suppliers.DeleteSupplier(id); err != nil {
		a.report(err, supplierNotFound, supplierDuplicate)
		return nil
	}
	a.console.Printf("Supplier '%s' deleted.\n", supplier.Name)
	return nil
}
