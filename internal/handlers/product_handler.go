package handlers

import (
	"comercio/internal/models"
	"comercio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes. guards run before every
// mutating route.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	r := router.Group("/products")
	r.Get("/", h.HandleGetProducts)
	r.Get("/:id", h.HandleGetProductByID)
	r.Post("/", guarded(guards, h.HandleCreateProduct)...)
	r.Patch("/:id", guarded(guards, h.HandleUpdateProduct)...)
	r.Delete("/:id", guarded(guards, h.HandleDeleteProduct)...)
}

// HandleGetProducts lists products, or searches them by name when ?q= is set.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var (
		products []models.Product
		err      error
	)
	if q := c.Query("q"); q != "" {
		products, err = h.service.SearchProducts(q)
	} else {
		products, err = h.service.GetAllProducts()
	}
	if err != nil {
		return respondError(c, err, "product")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok, err := recordID(c)
	if !ok {
		return err
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return respondError(c, err, "product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badBody(c, err)
	}
	if err := h.service.CreateProduct(&product); err != nil {
		return respondError(c, err, "product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies only the fields present in the body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok, err := recordID(c)
	if !ok {
		return err
	}
	var changes models.ProductChanges
	if err := c.BodyParser(&changes); err != nil {
		return badBody(c, err)
	}
	product, err := h.service.UpdateProduct(id, changes)
	if err != nil {
		return respondError(c, err, "product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok, err := recordID(c)
	if !ok {
		return err
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err, "product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
