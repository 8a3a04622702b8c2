// Package session wraps fiber's server-side session middleware. The client
// only ever sees an opaque token in the session_id cookie; identity and cart
// state stay on the server.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"

	// localsUserID is where RequireLogin parks the authenticated user id.
	localsUserID = "auth_user_id"
)

func NewStore() *fsession.Store {
	return fsession.New(fsession.Config{
		KeyLookup:      "cookie:session_id",
		KeyGenerator:   uuid.NewString,
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
	})
}

// SetUser records the session identity after a successful login.
func SetUser(sess *fsession.Session, id int, username string) {
	sess.Set(userIDKey, id)
	sess.Set(usernameKey, username)
}

// UserID returns the logged-in user id stored in the session, if any.
func UserID(sess *fsession.Session) (int, bool) {
	id, ok := sess.Get(userIDKey).(int)
	return id, ok
}

// RequireLogin rejects requests without a logged-in session identity.
// Protected handlers never run without a user id in locals.
func RequireLogin(store *fsession.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
		}
		id, ok := UserID(sess)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
		}
		c.Locals(localsUserID, id)
		return c.Next()
	}
}

// UserIDFromCtx reads the id RequireLogin stored for the current request.
func UserIDFromCtx(c *fiber.Ctx) (int, bool) {
	id, ok := c.Locals(localsUserID).(int)
	return id, ok
}
