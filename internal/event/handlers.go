package event

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lopotigo/nomadlife-app-sub000/internal/session"
)

// RegisterRoutes mounts /events and /event-registrations on the api
// router.
func RegisterRoutes(api fiber.Router, svc *Service, requireAuth fiber.Handler) {
	events := api.Group("/events")

	events.Get("/", func(c *fiber.Ctx) error {
		list, err := svc.List(c.Context(), c.Query("city"), c.Query("type"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if list == nil {
			list = []Event{}
		}
		return c.JSON(list)
	})

	events.Get("/:id", func(c *fiber.Ctx) error {
		e, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "event not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(e)
	})

	events.Post("/", requireAuth, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.Title == "" || req.City == "" || req.StartsAt.IsZero() {
			return fiber.NewError(fiber.StatusBadRequest, "title, city, startsAt required")
		}
		e, err := svc.Create(c.Context(), session.UserID(c), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	})

	events.Post("/:id/register", requireAuth, func(c *fiber.Ctx) error {
		reg, err := svc.Register(c.Context(), c.Params("id"), session.UserID(c))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "event not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(reg)
	})

	events.Delete("/:id/register", requireAuth, func(c *fiber.Ctx) error {
		err := svc.Unregister(c.Context(), c.Params("id"), session.UserID(c))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "registration not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	})

	api.Get("/event-registrations", requireAuth, func(c *fiber.Ctx) error {
		regs, err := svc.ByUser(c.Context(), session.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if regs == nil {
			regs = []Registration{}
		}
		return c.JSON(regs)
	})
}
