package services

import (
	"fmt"
	"strings"

	"comercio/internal/models"
	"comercio/internal/repositories"

	"github.com/rs/zerolog/log"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	notifier *Notifier
}

// NewProductService creates a new ProductService. notifier may be nil.
func NewProductService(repo repositories.ProductRepository, notifier *Notifier) *ProductService {
	return &ProductService{
		repo:     repo,
		notifier: notifier,
	}
}

// NormalizeSize trims and upper-cases a size as typed by a user.
func NormalizeSize(s string) models.Size {
	return models.Size(strings.ToUpper(strings.TrimSpace(s)))
}

// GetAllProducts retrieves all products ordered by name.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// SearchProducts returns products whose name contains term.
func (s *ProductService) SearchProducts(term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalid("term", "search term cannot be empty")
	}
	return s.repo.Search(term)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates and stores a new product, filling in its ID.
func (s *ProductService) CreateProduct(product *models.Product) error {
	product.ID = 0
	product.Name = strings.TrimSpace(product.Name)
	product.Size = NormalizeSize(string(product.Size))
	if err := checkStruct(product); err != nil {
		return err
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}
	log.Info().Uint("id", product.ID).Str("name", product.Name).Msg("Product created")
	s.notifier.Notify("product", ActionCreated, product.ID)
	return nil
}

// UpdateProduct validates and writes only the fields set in changes, then
// returns the stored record.
func (s *ProductService) UpdateProduct(id uint, changes models.ProductChanges) (*models.Product, error) {
	var (
		candidate models.Product
		names     []string
		fields    = map[string]interface{}{}
	)
	if changes.Name != nil {
		candidate.Name = strings.TrimSpace(*changes.Name)
		names = append(names, "Name")
		fields["name"] = candidate.Name
	}
	if changes.Price != nil {
		candidate.Price = *changes.Price
		names = append(names, "Price")
		fields["price"] = candidate.Price
	}
	if changes.Size != nil {
		candidate.Size = NormalizeSize(string(*changes.Size))
		names = append(names, "Size")
		fields["size"] = candidate.Size
	}
	if changes.Stock != nil {
		candidate.Stock = *changes.Stock
		names = append(names, "Stock")
		fields["stock"] = candidate.Stock
	}
	if len(fields) == 0 {
		return nil, invalid("", "no fields to update")
	}
	if err := checkFields(&candidate, names...); err != nil {
		return nil, err
	}

	if err := s.repo.Update(id, fields); err != nil {
		return nil, err
	}
	updated, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product %d: %w", id, err)
	}
	log.Info().Uint("id", id).Strs("fields", names).Msg("Product updated")
	s.notifier.Notify("product", ActionUpdated, id)
	return updated, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	log.Info().Uint("id", id).Msg("Product deleted")
	s.notifier.Notify("product", ActionDeleted, id)
	return nil
}
