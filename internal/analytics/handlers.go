package analytics

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, requireAuth fiber.Handler) {
	r.Get("/", requireAuth, func(c *fiber.Ctx) error {
		report, err := svc.Report(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(report)
	})
}
