// Package httpapi assembles the fiber application from injected
// repositories, so main can wire postgres and tests can wire in-memory
// implementations.
package httpapi

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fsession "github.com/gofiber/fiber/v2/middleware/session"

	"github.com/sirawit-s/shop-backend/internal/cart"
	"github.com/sirawit-s/shop-backend/internal/order"
	"github.com/sirawit-s/shop-backend/internal/product"
	"github.com/sirawit-s/shop-backend/internal/session"
	"github.com/sirawit-s/shop-backend/internal/user"
)

type Deps struct {
	Products product.Repository
	Users    user.Repository
	Orders   order.Repository
	Carts    cart.Store
	Sessions *fsession.Store
}

func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/", index)

	productService := product.NewService(deps.Products)
	product.NewHandler(productService).RegisterRoutes(app)

	userService := user.NewService(deps.Users)
	user.NewHandler(userService, deps.Sessions).RegisterRoutes(app)

	cartService := cart.NewService(deps.Carts, deps.Products)
	cart.NewHandler(cartService, deps.Sessions).RegisterRoutes(app)

	orderService := order.NewService(deps.Orders, cartService)
	order.NewHandler(orderService, deps.Sessions).
		RegisterRoutes(app, session.RequireLogin(deps.Sessions))

	// unmatched routes get the generic JSON body instead of fiber's plain text
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	})

	return app
}

// errorHandler renders every unhandled error as the generic JSON body.
// Internal details are logged, never leaked to the caller.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("internal error: %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

func index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to the Shop API",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"authentication": fiber.Map{
				"register": "/register",
				"login":    "/login",
				"logout":   "/logout",
			},
			"products": fiber.Map{
				"list_all":   "GET /api/products",
				"create":     "POST /api/products",
				"get_detail": "GET /api/products/:id",
				"update":     "PUT /api/products/:id",
				"delete":     "DELETE /api/products/:id",
			},
			"cart": fiber.Map{
				"view":        "GET /api/cart",
				"add_item":    "POST /api/cart",
				"update_item": "PUT /api/cart/update",
				"remove_item": "DELETE /api/cart?product_id=:id",
				"clear":       "POST /api/cart/clear",
			},
			"checkout": fiber.Map{
				"checkout":     "POST /api/checkout",
				"orders":       "GET /api/orders",
				"order_detail": "GET /api/orders/:id",
			},
		},
	})
}
