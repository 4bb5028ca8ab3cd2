package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lopotigo/nomadlife-app-sub000/internal/session"
)

func RegisterRoutes(r fiber.Router, svc *Service, store *session.Store, requireAuth fiber.Handler) {
	r.Post("/signup", func(c *fiber.Ctx) error {
		var req SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		user, err := svc.Signup(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := issueSession(c, store, user.ID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username and password required")
		}
		user, err := svc.Login(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		if err := issueSession(c, store, user.ID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(user)
	})

	r.Post("/logout", func(c *fiber.Ctx) error {
		if id := c.Cookies(session.CookieName); id != "" {
			_ = store.Revoke(c.Context(), id)
		}
		c.Cookie(&fiber.Cookie{
			Name:     session.CookieName,
			Value:    "",
			Path:     "/",
			HTTPOnly: true,
			Expires:  time.Now().Add(-time.Hour),
		})
		return c.JSON(fiber.Map{"success": true})
	})

	r.Get("/me", requireAuth, func(c *fiber.Ctx) error {
		user, err := svc.GetUser(c.Context(), session.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		return c.JSON(user)
	})
}

// RegisterUserRoutes serves public profiles and owner-gated updates.
func RegisterUserRoutes(r fiber.Router, svc *Service, requireAuth fiber.Handler) {
	r.Get("/:id", func(c *fiber.Ctx) error {
		user, err := svc.GetUser(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(user)
	})

	r.Patch("/:id", requireAuth, func(c *fiber.Ctx) error {
		if c.Params("id") != session.UserID(c) {
			return fiber.NewError(fiber.StatusForbidden, "cannot update another user's profile")
		}
		var patch ProfileUpdate
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		user, err := svc.UpdateProfile(c.Context(), session.UserID(c), patch)
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(user)
	})
}

func issueSession(c *fiber.Ctx, store *session.Store, userID string) error {
	id, err := store.Issue(c.Context(), userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}
