package services

import (
	"fmt"
	"strings"

	"comercio/internal/models"
	"comercio/internal/repositories"

	"github.com/rs/zerolog/log"
)

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo     repositories.CustomerRepository
	notifier *Notifier
}

// NewCustomerService creates a new CustomerService. notifier may be nil.
func NewCustomerService(repo repositories.CustomerRepository, notifier *Notifier) *CustomerService {
	return &CustomerService{
		repo:     repo,
		notifier: notifier,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetAllCustomers retrieves all customers ordered by name.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.repo.GetAll()
}

// SearchCustomers returns customers whose name or email contains term.
func (s *CustomerService) SearchCustomers(term string) ([]models.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalid("term", "search term cannot be empty")
	}
	return s.repo.Search(term)
}

// GetCustomerByID retrieves a single customer by its ID.
func (s *CustomerService) GetCustomerByID(id uint) (*models.Customer, error) {
	return s.repo.GetByID(id)
}

// CreateCustomer validates and stores a new customer. An email that is
// already registered yields ErrDuplicate.
func (s *CustomerService) CreateCustomer(customer *models.Customer) error {
	customer.ID = 0
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = NormalizeEmail(customer.Email)
	customer.Phone = strings.TrimSpace(customer.Phone)
	customer.Address = strings.TrimSpace(customer.Address)
	if err := checkStruct(customer); err != nil {
		return err
	}
	if err := s.repo.Create(customer); err != nil {
		return err
	}
	log.Info().Uint("id", customer.ID).Str("email", customer.Email).Msg("Customer created")
	s.notifier.Notify("customer", ActionCreated, customer.ID)
	return nil
}

// UpdateCustomer validates and writes only the fields set in changes.
func (s *CustomerService) UpdateCustomer(id uint, changes models.CustomerChanges) (*models.Customer, error) {
	var (
		candidate models.Customer
		names     []string
		fields    = map[string]interface{}{}
	)
	if changes.Name != nil {
		candidate.Name = strings.TrimSpace(*changes.Name)
		names = append(names, "Name")
		fields["name"] = candidate.Name
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
		return nil, fmt.Errorf("failed to reload customer %d: %w", id, err)
	}
	log.Info().Uint("id", id).Strs("fields", names).Msg("Customer updated")
	s.notifier.Notify("customer", ActionUpdated, id)
	return updated, nil
}

// DeleteCustomer deletes a customer by its ID.
func (s *CustomerService) DeleteCustomer(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	log.Info().Uint("id", id).Msg("Customer deleted")
	s.notifier.Notify("customer", ActionDeleted, id)
	return nil
}
