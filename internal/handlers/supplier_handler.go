package handlers

import (
	"comercio/internal/models"
	"comercio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SupplierHandler handles HTTP requests for suppliers.
type SupplierHandler struct {
	service *services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(service *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// RegisterRoutes registers the supplier routes. guards run before every
// mutating route.
func (h *SupplierHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	r := router.Group("/suppliers")
	r.Get("/", h.HandleGetSuppliers)
	r.Get("/:id", h.HandleGetSupplierByID)
	r.Post("/", guarded(guards, h.HandleCreateSupplier)...)
	r.Patch("/:id", guarded(guards, h.HandleUpdateSupplier)...)
	r.Delete("/:id", guarded(guards, h.HandleDeleteSupplier)...)
}

// HandleGetSuppliers lists suppliers, or searches them by name, tax ID or category when ?q= is set.
func (h *SupplierHandler) HandleGetSuppliers(c *fiber.Ctx) error {
	var (
		suppliers []models.Supplier
		err       error
	)
	if q := c.Query("q"); q != "" {
		suppliers, err = h.service.SearchSuppliers(q)
	} else {
		suppliers, err = h.service.GetAllSuppliers()
	}
	if err != nil {
		return respondError(c, err, "supplier")
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) HandleGetSupplierByID(c *fiber.Ctx) error {
	id, ok, err := recordID(c)
	if !ok {
		return err
	}
	supplier, err := h.service.GetSupplierByID(id)
	if err != nil {
		return respondError(c, err, "supplier")
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) HandleCreateSupplier(c *fiber.Ctx) error {
	var supplier models.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return badBody(c, err)
	}
	if err := h.service.CreateSupplier(&supplier); err != nil {
		return respondError(c, err, "supplier")
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// HandleUpdateSupplier applies only the fields present in the body.
func (h *SupplierHandler) HandleUpdateSupplier(c *fiber.Ctx) error {
	id, ok, err := recordID(c)
	if !ok {
		return err
	}
	var changes models.SupplierChanges
	if err := c.BodyParser(&changes); err != nil {
		return badBody(c, err)
	}
	supplier, err := h.service.UpdateSupplier(id, changes)
	if err != nil {
		return respondError(c, err, "supplier")
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) HandleDeleteSupplier(c *fiber.Ctx) error {
	id, ok, err := recordID(c)
	if !ok {
		return err
	}
	if err := h.service.DeleteSupplier(id); err != nil {
		return respondError(c, err, "supplier")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
