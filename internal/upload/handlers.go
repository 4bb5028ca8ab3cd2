package upload

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lopotigo/nomadlife-app-sub000/internal/session"
)

// RegisterRoutes mounts the authenticated request-url endpoint under
// /api/uploads and the raw object endpoints under /objects.
func RegisterRoutes(api fiber.Router, objects fiber.Router, svc *Service, requireAuth fiber.Handler) {
	api.Post("/request-url", requireAuth, func(c *fiber.Ctx) error {
		var req RequestURLRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		grant, err := svc.RequestURL(session.UserID(c), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(grant)
	})

	objects.Put("/upload", func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			return fiber.NewError(fiber.StatusBadRequest, "token required")
		}
		path, err := svc.Receive(c.Context(), token, bytes.NewReader(c.Body()))
		if errors.Is(err, ErrInvalidToken) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"path": path})
	})

	objects.Get("/+", func(c *fiber.Ctx) error {
		f, contentType, err := svc.Open(c.Context(), c.Params("+"))
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "object not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if contentType != "" {
			c.Set(fiber.HeaderContentType, contentType)
		}
		return c.SendStream(f)
	})
}
