package session

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// UserLookup re-checks that the session's user row still resolves. A
// deleted user turns an otherwise valid session back into anonymous.
type UserLookup interface {
	UserExists(ctx context.Context, id string) (bool, error)
}

// Middleware resolves the session cookie and stores user_id in locals.
// Every gated route shares this one guard; it runs before any route
// logic and rejects anonymous requests uniformly.
func Middleware(store *Store, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(CookieName)
		if sessionID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		userID, err := store.Resolve(c.Context(), sessionID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		ok, err := users.UserExists(c.Context(), userID)
		if err != nil || !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		c.Locals("user_id", userID)
		c.Locals("session_id", sessionID)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by Middleware.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
