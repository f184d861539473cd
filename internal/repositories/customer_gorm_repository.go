package repositories

import (
	"errors"
	"fmt"

	"comercio/internal/database"
	"comercio/internal/models"

	"gorm.io/gorm"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	store *database.Manager
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(store *database.Manager) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		store: store,
	}
}

// GetAll retrieves all customers ordered by name.
func (r *GORMCustomerRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.store.Run(func(db *gorm.DB) error {
		return db.Order("name").Order("id").Find(&customers).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

// Search returns customers whose name or email contains term.
func (r *GORMCustomerRepository) Search(term string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := likePattern(term)
	err := r.store.Run(func(db *gorm.DB) error {
		return db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
			Order("name").Order("id").
			Find(&customers).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a single customer by its ID.
func (r *GORMCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.store.Run(func(db *gorm.DB) error {
		return db.First(&customer, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with ID %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, err)
	}
	return &customer, nil
}

// Create inserts a new customer. A repeated email yields ErrDuplicate.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	err := r.store.Run(func(db *gorm.DB) error {
		return db.Create(customer).Error
	})
	if err != nil {
		return writeError("create customer", err)
	}
	return nil
}

// Update sets the given columns on one customer.
func (r *GORMCustomerRepository) Update(id uint, fields map[string]interface{}) error {
	var affected int64
	err := r.store.Run(func(db *gorm.DB) error {
		res := db.Model(&models.Customer{}).Where("id = ?", id).Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return writeError("update customer", err)
	}
	if affected == 0 {
		return fmt.Errorf("customer with ID %d not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete deletes a customer by its ID.
func (r *GORMCustomerRepository) Delete(id uint) error {
	var affected int64
	err := r.store.Run(func(db *gorm.DB) error {
		res := db.Delete(&models.Customer{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("customer with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
