package chat

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lopotigo/nomadlife-app-sub000/internal/session"
)

// RegisterRoutes mounts both /chat-groups and /messages on the api
// router.
func RegisterRoutes(api fiber.Router, svc *Service, requireAuth fiber.Handler) {
	groups := api.Group("/chat-groups")

	groups.Get("/", func(c *fiber.Ctx) error {
		list, err := svc.Groups(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if list == nil {
			list = []Group{}
		}
		return c.JSON(list)
	})

	groups.Get("/:id", func(c *fiber.Ctx) error {
		g, err := svc.GetGroup(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return fiber.NewError(fiber.StatusNotFound, "chat group not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(g)
	})

	groups.Post("/", requireAuth, func(c *fiber.Ctx) error {
		var input Group
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if input.Name == "" || input.City == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and city required")
		}
		g, err := svc.CreateGroup(c.Context(), input)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	})

	messages := api.Group("/messages")

	messages.Get("/group/:groupId", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit"))
		history, err := svc.GroupHistory(c.Context(), c.Params("groupId"), limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if history == nil {
			history = []Message{}
		}
		return c.JSON(history)
	})

	messages.Get("/private/:userId", requireAuth, func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit"))
		history, err := svc.PrivateHistory(c.Context(), session.UserID(c), c.Params("userId"), limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if history == nil {
			history = []Message{}
		}
		return c.JSON(history)
	})

	messages.Post("/", requireAuth, func(c *fiber.Ctx) error {
		var req SendRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if req.Content == "" {
			return fiber.NewError(fiber.StatusBadRequest, "content required")
		}
		m, err := svc.Send(c.Context(), session.UserID(c), req)
		if errors.Is(err, ErrBadDestination) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	})
}
