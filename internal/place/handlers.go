package place

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, requireAuth fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		places, err := svc.List(c.Context(), c.Query("city"), c.Query("type"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if places == nil {
			places = []Place{}
		}
		return c.JSON(places)
	})

	r.Get("/search", func(c *fiber.Ctx) error {
		filter := SearchFilter{
			Query: c.Query("query"),
			City:  c.Query("city"),
			Type:  c.Query("type"),
		}
		if v := c.Query("priceMin"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.PriceMin = &n
			}
		}
		if v := c.Query("priceMax"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.PriceMax = &n
			}
		}
		if v := c.Query("amenities"); v != "" {
			for _, a := range strings.Split(v, ",") {
				if a = strings.TrimSpace(a); a != "" {
					filter.Amenities = append(filter.Amenities, a)
				}
			}
		}

		places, err := svc.Search(c.Context(), filter)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if places == nil {
			places = []Place{}
		}
		return c.JSON(places)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		p, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "place not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Post("/", requireAuth, func(c *fiber.Ctx) error {
		var input Place
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if input.Name == "" || input.Type == "" || input.City == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name, type, city required")
		}
		p, err := svc.Create(c.Context(), input)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})
}
