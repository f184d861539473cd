package services

import (
	"fmt"
	"strings"

	"comercio/internal/models"
	"comercio/internal/repositories"

	"github.com/rs/zerolog/log"
)

// SupplierService handles business logic related to suppliers.
type SupplierService struct {
	repo     repositories.SupplierRepository
	notifier *Notifier
}

// NewSupplierService creates a new SupplierService. notifier may be nil.
func NewSupplierService(repo repositories.SupplierRepository, notifier *Notifier) *SupplierService {
	return &SupplierService{
		repo:     repo,
		notifier: notifier,
	}
}

// GetAllSuppliers retrieves all suppliers ordered by name.
func (s *SupplierService) GetAllSuppliers() ([]models.Supplier, error) {
	return s.repo.GetAll()
}

// SearchSuppliers matches term against name, category and tax id.
func (s *SupplierService) SearchSuppliers(term string) ([]models.Supplier, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalid("term", "search term cannot be empty")
	}
	return s.repo.Search(term)
}

// GetSupplierByID retrieves a single supplier by its ID.
func (s *SupplierService) GetSupplierByID(id uint) (*models.Supplier, error) {
	return s.repo.GetByID(id)
}

// CreateSupplier validates and stores a new supplier. The tax id may carry
// any punctuation; it is stored digits-only.
func (s *SupplierService) CreateSupplier(supplier *models.Supplier) error {
	supplier.ID = 0
	supplier.Name = strings.TrimSpace(supplier.Name)
	supplier.TaxID = models.NormalizeTaxID(supplier.TaxID)
	supplier.Email = NormalizeEmail(supplier.Email)
	supplier.Phone = strings.TrimSpace(supplier.Phone)
	supplier.Address = strings.TrimSpace(supplier.Address)
	supplier.Category = strings.TrimSpace(supplier.Category)
	if err := checkStruct(supplier); err != nil {
		return err
	}
	if err := s.repo.Create(supplier); err != nil {
		return err
	}
	log.Info().Uint("id", supplier.ID).Str("tax_id", supplier.TaxID).Msg("Supplier created")
	s.notifier.Notify("supplier", ActionCreated, supplier.ID)
	return nil
}

// UpdateSupplier validates and writes only the fields set in changes.
func (s *SupplierService) UpdateSupplier(id uint, changes models.SupplierChanges) (*models.Supplier, error) {
	var (
		candidate models.Supplier
		names     []string
		fields    = map[string]interface{}{}
	)
	if changes.Name != nil {
		candidate.Name = strings.TrimSpace(*changes.Name)
		names = append(names, "Name")
		fields["name"] = candidate.Name
	}
	if changes.TaxID != nil {
		candidate.TaxID = models.NormalizeTaxID(*changes.TaxID)
		names = append(names, "TaxID")
		fields["tax_id"] = candidate.TaxID
	}
	if changes.Email != nil {
		candidate.Email = NormalizeEmail(*changes.Email)
		names = append(names, "Email")
		fields["email"] = candidate.Email
	}
	if changes.Phone != nil {
		candidate.Phone = strings.TrimSpace(*changes.Phone)
		names = append(names, "Phone")
		fields["phone"] = candidate.Phone
	}
	if changes.Address != nil {
		candidate.Address = strings.TrimSpace(*changes.Address)
		names = append(names, "Address")
		fields["address"] = candidate.Address
	}
	if changes.Category != nil {
		candidate.Category = strings.TrimSpace(*changes.Category)
		names = append(names, "Category")
		fields["category"] = candidate.Category
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
		return nil, fmt.Errorf("failed to reload supplier %d: %w", id, err)
	}
	log.Info().Uint("id", id).Strs("fields", names).Msg("Supplier updated")
	s.notifier.Notify("supplier", ActionUpdated, id)
	return updated, nil
}

// DeleteSupplier deletes a supplier by its ID.
func (s *SupplierService) DeleteSupplier(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	log.Info().Uint("id", id).Msg("Supplier deleted")
	s.notifier.Notify("supplier", ActionDeleted, id)
	return nil
}
