package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/sirawit-s/shop-backend/internal/session"
)

type Handler struct {
	service  *Service
	sessions *fsession.Store
}

func NewHandler(service *Service, sessions *fsession.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// RegisterRoutes mounts the checkout and order endpoints behind the given
// login guard.
func (h *Handler) RegisterRoutes(app *fiber.App, requireLogin fiber.Handler) {
	app.Post("/api/checkout", requireLogin, h.checkout)
	app.Get("/api/orders", requireLogin, h.listOrders)
	app.Get("/api/orders/:id", requireLogin, h.getOrder)
}

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	// tolerate an absent body; a blank address is rejected below either way
	_ = c.BodyParser(payload)

	userID, ok := session.UserIDFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}

	ord, err := h.service.Checkout(c.UserContext(), sess.ID(), &userID, payload.ShippingAddress)
	if err != nil {
		var stockErr InsufficientStockError
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cart is empty"})
		case errors.Is(err, ErrMissingAddress):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Shipping address is required"})
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": stockErr.Error()})
		default:
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"order": fiber.Map{
			"id":               ord.ID,
			"user_id":          ord.UserID,
			"total_amount":     ord.TotalAmount,
			"status":           ord.Status,
			"shipping_address": ord.ShippingAddress,
			"created_at":       ord.CreatedAt,
		},
		"items": checkoutItems(ord.Items),
	})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	userID, ok := session.UserIDFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	orders, err := h.service.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(orders))
	for _, ord := range orders {
		items := make([]fiber.Map, 0, len(ord.Items))
		for _, item := range ord.Items {
			items = append(items, fiber.Map{
				"product_name": item.ProductName,
				"quantity":     item.Quantity,
				"price":        item.Price,
			})
		}
		out = append(out, fiber.Map{
			"id":           ord.ID,
			"total_amount": ord.TotalAmount,
			"status":       ord.Status,
			"created_at":   ord.CreatedAt,
			"items":        items,
		})
	}
	return c.JSON(out)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, ok := session.UserIDFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	ord, err := h.service.Get(c.UserContext(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		case errors.Is(err, ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
		default:
			return err
		}
	}

	return c.JSON(fiber.Map{
		"id":               ord.ID,
		"total_amount":     ord.TotalAmount,
		"status":           ord.Status,
		"shipping_address": ord.ShippingAddress,
		"created_at":       ord.CreatedAt,
		"items":            checkoutItems(ord.Items),
	})
}

func checkoutItems(items []Item) []fiber.Map {
	out := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		out = append(out, fiber.Map{
			"product_id":   item.ProductID,
			"product_name": item.ProductName,
			"quantity":     item.Quantity,
			"price":        item.Price,
		})
	}
	return out
}
