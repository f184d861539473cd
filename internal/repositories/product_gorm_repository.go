package repositories

import (
	"errors"
	"fmt"

	"comercio/internal/database"
	"comercio/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	store *database.Manager
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(store *database.Manager) *GORMProductRepository {
	return &GORMProductRepository{
		store: store,
	}
}

// GetAll retrieves all products ordered by name.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.store.Run(func(db *gorm.DB) error {
		return db.Order("name").Order("id").Find(&products).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// Search returns products whose name contains term.
func (r *GORMProductRepository) Search(term string) ([]models.Product, error) {
	var products []models.Product
	err := r.store.Run(func(db *gorm.DB) error {
		return db.Where("LOWER(name) LIKE ?", likePattern(term)).
			Order("name").Order("id").
			Find(&products).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.store.Run(func(db *gorm.DB) error {
		return db.First(&product, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product; the store assigns its ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	err := r.store.Run(func(db *gorm.DB) error {
		return db.Create(product).Error
	})
	if err != nil {
		return writeError("create product", err)
	}
	return nil
}

// Update sets the given columns on one product.
func (r *GORMProductRepository) Update(id uint, fields map[string]interface{}) error {
	var affected int64
	err := r.store.Run(func(db *gorm.DB) error {
		res := db.Model(&models.Product{}).Where("id = ?", id).Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return writeError("update product", err)
	}
	if affected == 0 {
		return fmt.Errorf("product with ID %d not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id uint) error {
	var affected int64
	err := r.store.Run(func(db *gorm.DB) error {
		res := db.Delete(&models.Product{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
