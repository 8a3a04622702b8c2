package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/products", h.listProducts)
	app.Post("/api/products", h.createProduct)
	app.Get("/api/products/:id", h.getProduct)
	app.Put("/api/products/:id", h.updateProduct)
	app.Delete("/api/products/:id", h.deleteProduct)
}

// productPayload covers create and update bodies. Pointers distinguish absent
// fields from zero values so updates can be partial.
type productPayload struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"image_url"`
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(productPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if payload.Name == nil || *payload.Name == "" || payload.Price == nil || payload.Category == nil || *payload.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	if payload.Price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must be non-negative"})
	}

	stock := 0
	if payload.Stock != nil {
		stock = *payload.Stock
	}
	if stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Stock must be non-negative"})
	}

	created, err := h.service.Create(Product{
		Name:        *payload.Name,
		Description: payload.Description,
		Price:       *payload.Price,
		Stock:       stock,
		Category:    *payload.Category,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": created,
	})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return err
	}
	return c.JSON(p)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	payload := new(productPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if payload.Price != nil && payload.Price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must be non-negative"})
	}
	if payload.Stock != nil && *payload.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Stock must be non-negative"})
	}

	updated, err := h.service.Update(id, UpdateParams{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Category:    payload.Category,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": updated,
	})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
