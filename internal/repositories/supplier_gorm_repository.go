package repositories

import (
	"errors"
	"fmt"

	"comercio/internal/database"
	"comercio/internal/models"

	"gorm.io/gorm"
)

// GORMSupplierRepository is a GORM implementation of SupplierRepository.
type GORMSupplierRepository struct {
	store *database.Manager
}

// NewGORMSupplierRepository creates a new instance of GORMSupplierRepository.
func NewGORMSupplierRepository(store *database.Manager) *GORMSupplierRepository {
	return &GORMSupplierRepository{
		store: store,
	}
}

// GetAll retrieves all suppliers ordered by name.
func (r *GORMSupplierRepository) GetAll() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.store.Run(func(db *gorm.DB) error {
		return db.Order("name").Order("id").Find(&suppliers).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get all suppliers: %w", err)
	}
	return suppliers, nil
}

// Search matches term against name and category, and its digits against
// the tax id. A term without digits does not match on tax id.
func (r *GORMSupplierRepository) Search(term string) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	pattern := likePattern(term)
	digits := models.NormalizeTaxID(term)
	query := "LOWER(name) LIKE ? OR LOWER(category) LIKE ?"
	args := []interface{}{pattern, pattern}
	if digits != "" {
		query += " OR tax_id LIKE ?"
		args = append(args, "%"+digits+"%")
	}
	err := r.store.Run(func(db *gorm.DB) error {
		return db.Where(query, args...).Order("name").Order("id").Find(&suppliers).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search suppliers: %w", err)
	}
	return suppliers, nil
}

// GetByID retrieves a single supplier by its ID.
func (r *GORMSupplierRepository) GetByID(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.store.Run(func(db *gorm.DB) error {
		return db.First(&supplier, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier with ID %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get supplier by ID %d: %w", id, err)
	}
	return &supplier, nil
}

// Create inserts a new supplier. A repeated tax id yields ErrDuplicate.
func (r *GORMSupplierRepository) Create(supplier *models.Supplier) error {
	err := r.store.Run(func(db *gorm.DB) error {
		return db.Create(supplier).Error
	})
	if err != nil {
		return writeError("create supplier", err)
	}
	return nil
}

// Update sets the given columns on one supplier.
func (r *GORMSupplierRepository) Update(id uint, fields map[string]interface{}) error {
	var affected int64
	err := r.store.Run(func(db *gorm.DB) error {
		res := db.Model(&models.Supplier{}).Where("id = ?", id).Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return writeError("update supplier", err)
	}
	if affected == 0 {
		return fmt.Errorf("supplier with ID %d not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete deletes a supplier by its ID.
func (r *GORMSupplierRepository) Delete(id uint) error {
	var affected int64
	err := r.store.Run(func(db *gorm.DB) error {
		res := db.Delete(&models.Supplier{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("supplier with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
