package user

import (
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

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/register", h.registerHint)
	app.Post("/register", h.register)
	app.Get("/login", h.loginHint)
	app.Post("/login", h.login)
	app.Get("/logout", h.logout)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) registerHint(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Send POST request with username, email, password"})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	_, err := h.service.Register(payload.Username, payload.Email, payload.Password)
	if err != nil {
		switch err {
		case ErrUsernameExists:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
		case ErrEmailExists:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already exists"})
		default:
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Registration successful"})
}

func (h *Handler) loginHint(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Send POST request with username and password"})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	u, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}
	session.SetUser(sess, u.ID, u.Username)
	if err := sess.Save(); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Login successful", "user_id": u.ID})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err == nil {
		// dropping the session also abandons the cart tied to its token
		_ = sess.Destroy()
	}
	return c.Redirect("/")
}
