package handlers

import (
	"comercio/internal/models"
	"comercio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// RegisterRoutes registers the customer routes. guards run before every
// mutating route.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	r := router.Group("/customers")
	r.Get("/", h.HandleGetCustomers)
	r.Get("/:id", h.HandleGetCustomerByID)
	r.Post("/", guarded(guards, h.HandleCreateCustomer)...)
	r.Patch("/:id", guarded(guards, h.HandleUpdateCustomer)...)
	r.Delete("/:id", guarded(guards, h.HandleDeleteCustomer)...)
}

// HandleGetCustomers lists customers, or searches them by name or email when ?q= is set.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	var (
		customers []models.Customer
		err       error
	)
	if q := c.Query("q"); q != "" {
		customers, err = h.service.SearchCustomers(q)
	} else {
		customers, err = h.service.GetAllCustomers()
	}
	if err != nil {
		return respondError(c, err, "customer")
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) HandleGetCustomerByID(c *fiber.Ctx) error {
	id, ok, err := recordID(c)
	if !ok {
		return err
	}
	customer, err := h.service.GetCustomerByID(id)
	if err != nil {
		return respondError(c, err, "customer")
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return badBody(c, err)
	}
	if err := h.service.CreateCustomer(&customer); err != nil {
		return respondError(c, err, "customer")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleUpdateCustomer applies only the fields present in the body.
func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	id, ok, err := recordID(c)
	if !ok {
		return err
	}
	var changes models.CustomerChanges
	if err := c.BodyParser(&changes); err != nil {
		return badBody(c, err)
	}
	customer, err := h.service.UpdateCustomer(id, changes)
	if err != nil {
		return respondError(c, err, "customer")
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	id, ok, err := recordID(c)
	if !ok {
		return err
	}
	if err := h.service.DeleteCustomer(id); err != nil {
		return respondError(c, err, "customer")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
