package repositories

import "comercio/internal/models"

// SupplierRepository defines the interface for supplier data access.
type SupplierRepository interface {
	GetAll() ([]models.Supplier, error)
	Search(term string) ([]models.Supplier, error)
	GetByID(id uint) (*models.Supplier, error)
	Create(supplier *models.Supplier) error
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}
