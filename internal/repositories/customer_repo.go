package repositories

import "comercio/internal/models"

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	GetAll() ([]models.Customer, error)
	Search(term string) ([]models.Customer, error)
	GetByID(id uint) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
}
