package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/sirawit-s/shop-backend/internal/product"
)

type Handler struct {
	service  *Service
	sessions *fsession.Store
}

func NewHandler(service *Service, sessions *fsession.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/cart", h.viewCart)
	app.Post("/api/cart", h.addToCart)
	app.Delete("/api/cart", h.removeFromCart)
	app.Put("/api/cart/update", h.updateCart)
	app.Post("/api/cart/clear", h.clearCart)
}

type cartRequest struct {
	ProductID *int `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

// sid resolves the opaque session token for the current request, persisting a
// fresh session so the cart survives to the next call.
func (h *Handler) sid(c *fiber.Ctx) (string, error) {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return "", err
	}
	id := sess.ID()
	if sess.Fresh() {
		if err := sess.Save(); err != nil {
			return "", err
		}
	}
	return id, nil
}

func (h *Handler) viewCart(c *fiber.Ctx) error {
	sid, err := h.sid(c)
	if err != nil {
		return err
	}

	view, err := h.service.View(sid)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if payload.ProductID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing product_id"})
	}
	qty := 1
	if payload.Quantity != nil {
		qty = *payload.Quantity
	}

	sid, err := h.sid(c)
	if err != nil {
		return err
	}

	items, total, err := h.service.Add(sid, *payload.ProductID, qty)
	if err != nil {
		switch err {
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		case ErrInsufficientStock:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient stock"})
		default:
			return err
		}
	}

	return c.JSON(fiber.Map{
		"message": "Product added to cart",
		"cart":    items,
		"total":   total,
	})
}

func (h *Handler) updateCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if payload.ProductID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing product_id"})
	}
	qty := 1
	if payload.Quantity != nil {
		qty = *payload.Quantity
	}

	sid, err := h.sid(c)
	if err != nil {
		return err
	}

	total, err := h.service.Update(sid, *payload.ProductID, qty)
	if err != nil {
		switch err {
		case ErrNotInCart:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not in cart"})
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		case ErrInsufficientStock:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient stock"})
		default:
			return err
		}
	}

	return c.JSON(fiber.Map{"message": "Cart updated", "total": total})
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	sid, err := h.sid(c)
	if err != nil {
		return err
	}

	// a missing or malformed product_id matches nothing, so removal stays a
	// no-op rather than an error
	productID, convErr := strconv.Atoi(c.Query("product_id"))
	if convErr != nil {
		productID = -1
	}

	total, err := h.service.Remove(sid, productID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Product removed from cart", "total": total})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	sid, err := h.sid(c)
	if err != nil {
		return err
	}
	if err := h.service.Clear(sid); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
