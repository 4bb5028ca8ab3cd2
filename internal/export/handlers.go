package export

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lopotigo/nomadlife-app-sub000/internal/session"
)

func RegisterRoutes(r fiber.Router, svc *Service, requireAuth fiber.Handler) {
	r.Post("/github", requireAuth, func(c *fiber.Ctx) error {
		if !svc.Enabled() {
			return fiber.NewError(fiber.StatusServiceUnavailable, "github export is not configured")
		}
		url, err := svc.ExportPosts(c.Context(), session.UserID(c))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "export failed")
		}
		return c.JSON(fiber.Map{"url": url})
	})
}
