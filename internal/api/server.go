package api

import (
	"context"
	"fmt"

	"github.com/careerdock/jobportal/internal/api/handler"
	"github.com/careerdock/jobportal/internal/api/jwt"
	"github.com/careerdock/jobportal/internal/api/middleware"
	"github.com/careerdock/jobportal/internal/api/response"
	"github.com/careerdock/jobportal/internal/config"
	"github.com/gofiber/fiber/v3"
)

// Server wires handlers behind the shared middleware chain. The error
// middleware sits outermost so every later failure, panics included, turns
// into an envelope response.
type Server struct {
	app  *fiber.App
	port int
}

type Handlers struct {
	Jobs        *handler.JobsHandler
	Moderation  *handler.ModerationHandler
	Match       *handler.MatchHandler
	Engagements *handler.EngagementHandler
}

func NewServer(cfg config.ServerConfig, jwtSvc jwt.Service, handlers Handlers) *Server {

	app := fiber.New(fiber.Config{})

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware().Middleware())

	app.Get("/health", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	})

	public := app.Group("/api/v1")
	handlers.Jobs.RegisterPublicRoutes(public)

	private := app.Group("/api/v1", middleware.NewAuthMiddleware(jwtSvc).Middleware())
	handlers.Jobs.RegisterRoutes(private)
	handlers.Moderation.RegisterRoutes(private)
	handlers.Match.RegisterRoutes(private)
	handlers.Engagements.RegisterRoutes(private)

	return &Server{app: app, port: cfg.Port}
}

func (s *Server) Listen() error {
	return s.app.Listen(fmt.Sprintf(":%d", s.port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber instance for in-process request tests.
func (s *Server) App() *fiber.App {
	return s.app
}
