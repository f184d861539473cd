package menu

import (
	"fmt"
	"strconv"
	"strings"

	"comercio/internal/models"
)

const (
	productNotFound = "Product not found."
	productFailed   = "Could not save product."
)

var productColumns = []column{{"ID", 3}, {"Name", 20}, {"Price", 10}, {"Size", 8}, {"Stock", 8}}

func (a *App) productMenu() error {
	return a.loop("PRODUCT MANAGEMENT", 40, []option{
		{"Add product", a.addProduct},
		{"List products", func() error { _, err := a.listProducts(); return err }},
		{"Search products", a.searchProducts},
		{"Update product", a.updateProduct},
		{"Delete product", a.deleteProduct},
	}, "Back to main menu")
}

func (a *App) addProduct() error {
	a.console.Println("\nNew product")
	a.console.Println(strings.Repeat("-", 30))

	name, err := a.console.Ask("Product name: ")
	if err != nil {
		return err
	}
	if name == "" {
		a.console.Println("Name cannot be empty.")
		return nil
	}
	rawPrice, err := a.console.Ask("Price: R$")
	if err != nil {
		return err
	}
	price, perr := parsePrice(rawPrice)
	if perr != nil {
		a.report(perr, productNotFound, productFailed)
		return nil
	}
	size, err := a.console.Ask("Size (P, M, G, GG): ")
	if err != nil {
		return err
	}
	rawStock, err := a.console.Ask("Stock quantity: ")
	if err != nil {
		return err
	}
	stock, serr := parseStock(rawStock)
	if serr != nil {
		a.report(serr, productNotFound, productFailed)
		return nil
	}

	p := &models.Product{Name: name, Price: price, Size: models.Size(size), Stock: stock}
	if err := a.products.CreateProduct(p); err != nil {
		a.report(err, productNotFound, productFailed)
		return nil
	}
	a.console.Printf("Product added successfully! (ID %d)\n", p.ID)
	return nil
}

func productRows(products []models.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			money(p.Price),
			string(p.Size),
			strconv.Itoa(p.Stock),
		})
	}
	return rows
}

// listProducts prints every product and reports whether there were any.
func (a *App) listProducts() (bool, error) {
	products, err := a.products.GetAllProducts()
	if err != nil {
		a.report(err, productNotFound, productFailed)
		return false, nil
	}
	if len(products) == 0 {
		a.console.Println("No products registered.")
		return false, nil
	}
	a.printTable("Products:", 70, productColumns, productRows(products))
	return true, nil
}

func (a *App) searchProducts() error {
	term, err := a.console.Ask("Enter a name to search: ")
	if err != nil {
		return err
	}
	products, err := a.products.SearchProducts(term)
	if err != nil {
		a.report(err, productNotFound, productFailed)
		return nil
	}
	if len(products) == 0 {
		a.console.Println("No products found.")
		return nil
	}
	a.printTable(fmt.Sprintf("Results for '%s':", term), 70, productColumns, productRows(products))
	return nil
}

func (a *App) updateProduct() error {
	if ok, err := a.listProducts(); !ok || err != nil {
		return err
	}
	id, ok, err := a.askID("\nProduct ID to update: ")
	if !ok || err != nil {
		return err
	}
	product, err := a.products.GetProductByID(id)
	if err != nil {
		a.report(err, productNotFound, productFailed)
		return nil
	}

	save := func(changes models.ProductChanges) error {
		updated, err := a.products.UpdateProduct(id, changes)
		if err != nil {
			return err
		}
		product = updated
		return nil
	}

	return a.editLoop(
		func() string { return fmt.Sprintf("Selected product: %s - %s", product.Name, money(product.Price)) },
		[]fieldEdit{
			{"Name", "New name: ", func(raw string) error {
				return save(models.ProductChanges{Name: &raw})
			}},
			{"Price", "New price: R$", func(raw string) error {
				price, err := parsePrice(raw)
				if err != nil {
					return err
				}
				return save(models.ProductChanges{Price: &price})
			}},
			{"Size", "New size (P, M, G, GG): ", func(raw string) error {
				size := models.Size(raw)
				return save(models.ProductChanges{Size: &size})
			}},
			{"Stock", "New stock: ", func(raw string) error {
				stock, err := parseStock(raw)
				if err != nil {
					return err
				}
				return save(models.ProductChanges{Stock: &stock})
			}},
		},
		productNotFound, productFailed,
	)
}

func (a *App) deleteProduct() error {
	if ok, err := a.listProducts(); !ok || err != nil {
		return err
	}
	id, ok, err := a.askID("\nProduct ID to delete: ")
	if !ok || err != nil {
		return err
	}
	product, err := a.products.GetProductByID(id)
	if err != nil {
		a.report(err, productNotFound, productFailed)
		return nil
	}
	yes, err := a.confirm(product.Name)
	if err != nil {
		return err
	}
	if !yes {
		a.console.Println("Deletion cancelled.")
		return nil
	}
	if err := a.products.DeleteProduct(id); err != nil {
		a.report(err, productNotFound, productFailed)
		return nil
	}
	a.console.Printf("Product '%s' deleted.\n", product.Name)
	return nil
}
