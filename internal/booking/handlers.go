package booking

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lopotigo/nomadlife-app-sub000/internal/session"
)

func RegisterRoutes(r fiber.Router, svc *Service, requireAuth fiber.Handler) {
	r.Get("/", requireAuth, func(c *fiber.Ctx) error {
		bookings, err := svc.ByUser(c.Context(), session.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if bookings == nil {
			bookings = []Booking{}
		}
		return c.JSON(bookings)
	})

	r.Post("/", requireAuth, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.PlaceID == "" || req.GuestName == "" || req.CheckInDate.IsZero() {
			return fiber.NewError(fiber.StatusBadRequest, "placeId, guestName, checkInDate required")
		}
		b, err := svc.Create(c.Context(), session.UserID(c), req)
		if err != nil {
			// Missing place foreign key lands here as well.
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	})

	r.Delete("/:id", requireAuth, func(c *fiber.Ctx) error {
		b, err := svc.Cancel(c.Context(), c.Params("id"), session.UserID(c))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "booking not found")
		}
		if errors.Is(err, ErrNotOwner) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(b)
	})
}
