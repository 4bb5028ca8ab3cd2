package subscription

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lopotigo/nomadlife-app-sub000/internal/session"
)

func RegisterRoutes(r fiber.Router, svc *Service, requireAuth fiber.Handler) {
	r.Get("/", requireAuth, func(c *fiber.Ctx) error {
		sub, err := svc.Active(c.Context(), session.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		// null body when no active subscription exists.
		return c.JSON(sub)
	})

	r.Post("/", requireAuth, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.Plan == "" {
			return fiber.NewError(fiber.StatusBadRequest, "plan required")
		}
		sub, err := svc.Subscribe(c.Context(), session.UserID(c), req.Plan)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(sub)
	})

	r.Patch("/:id", requireAuth, func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		sub, err := svc.UpdateStatus(c.Context(), c.Params("id"), session.UserID(c), req.Status)
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "subscription not found")
		}
		if errors.Is(err, ErrNotOwner) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if errors.Is(err, ErrInvalidStatus) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(sub)
	})
}
