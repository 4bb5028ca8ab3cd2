package server

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lopotigo/nomadlife-app-sub000/internal/analytics"
	"github.com/lopotigo/nomadlife-app-sub000/internal/auth"
	"github.com/lopotigo/nomadlife-app-sub000/internal/booking"
	"github.com/lopotigo/nomadlife-app-sub000/internal/chat"
	"github.com/lopotigo/nomadlife-app-sub000/internal/config"
	"github.com/lopotigo/nomadlife-app-sub000/internal/db"
	"github.com/lopotigo/nomadlife-app-sub000/internal/event"
	"github.com/lopotigo/nomadlife-app-sub000/internal/export"
	"github.com/lopotigo/nomadlife-app-sub000/internal/place"
	"github.com/lopotigo/nomadlife-app-sub000/internal/post"
	"github.com/lopotigo/nomadlife-app-sub000/internal/session"
	"github.com/lopotigo/nomadlife-app-sub000/internal/subscription"
	"github.com/lopotigo/nomadlife-app-sub000/internal/upload"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       db.Querier
	Redis    *redis.Client
	Sessions *session.Store
	Logger   *zap.Logger
}

func NewServer(cfg config.Config, pg db.Querier, redisClient *redis.Client, logger *zap.Logger) *Server {
	bodyLimit := int(cfg.MaxUploadMB) * 1024 * 1024
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}
	app := fiber.New(fiber.Config{BodyLimit: bodyLimit})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       pg,
		Redis:    redisClient,
		Sessions: session.NewStore(redisClient, cfg.SessionTTL),
		Logger:   logger,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authSvc := auth.NewService(s.DB)
	postSvc := post.NewService(s.DB)
	requireAuth := session.Middleware(s.Sessions, authSvc)

	api := s.App.Group("/api")

	auth.RegisterRoutes(api.Group("/auth"), authSvc, s.Sessions, requireAuth)
	auth.RegisterUserRoutes(api.Group("/users"), authSvc, requireAuth)
	post.RegisterRoutes(api.Group("/posts"), postSvc, requireAuth)
	place.RegisterRoutes(api.Group("/places"), place.NewService(s.DB), requireAuth)
	booking.RegisterRoutes(api.Group("/bookings"), booking.NewService(s.DB), requireAuth)
	chat.RegisterRoutes(api, chat.NewService(s.DB), requireAuth)
	subscription.RegisterRoutes(api.Group("/subscription"), subscription.NewService(s.DB), requireAuth)
	event.RegisterRoutes(api, event.NewService(s.DB), requireAuth)
	analytics.RegisterRoutes(api.Group("/analytics"), analytics.NewService(s.DB), requireAuth)
	upload.RegisterRoutes(api.Group("/uploads"), s.App.Group("/objects"),
		upload.NewService(s.DB, s.Cfg), requireAuth)

	githubClient := export.NewGithubClient(s.Cfg, s.Logger)
	export.RegisterRoutes(api.Group("/export"),
		export.NewService(githubClient, postSvc, authSvc, s.Logger), requireAuth)
}
