package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/venue-finder/internal/config"
	"github.com/venue-finder/internal/delivery/http/handler"
	"github.com/venue-finder/internal/delivery/http/middleware"
	"github.com/venue-finder/internal/metrics"
	"go.uber.org/zap"
)

// Handlers - обработчики, которые регистрирует сервер
type Handlers struct {
	Venue  *handler.VenueHandler
	Seed   *handler.SeedHandler
	Stats  *handler.StatsHandler
	Health *handler.HealthHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Collector
	handlers Handlers
}

// NewServer - создание нового HTTP сервера. collector может быть nil, тогда /metrics не регистрируется.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	collector *metrics.Collector,
	handlers Handlers,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "Venue Finder",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		metrics:  collector,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	if s.metrics != nil {
		s.app.Use(middleware.Metrics(s.metrics))
	}
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Query gateway
	s.app.Get("/", s.handlers.Venue.NearByRoot)

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	}

	api := s.app.Group("/api/v1")

	api.Get("/health", s.handlers.Health.Health)
	api.Get("/stats", s.handlers.Stats.GetStatistics)

	api.Get("/venues/nearby", s.handlers.Venue.NearBy)
	api.Post("/venues", s.handlers.Venue.Add)
	api.Post("/venues/seed", s.handlers.Seed.Seed)
}

// App возвращает fiber приложение (для тестов через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - обработчик ошибок, не отданных хендлерами (404, 405, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			code = fe.Code
			errCode = "HTTP_ERROR"
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
