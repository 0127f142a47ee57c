package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nguyentantai21042004/recap/internal/history"
	"github.com/nguyentantai21042004/recap/internal/identity"
	"github.com/nguyentantai21042004/recap/internal/logger"
	"github.com/nguyentantai21042004/recap/internal/pipeline"
)

type Options struct {
	MaxUploadMiB int
}

// Server exposes the pipeline and history operations over HTTP.
type Server struct {
	app      *fiber.App
	pipeline pipeline.Pipeline
	recorder pipeline.Recorder
	history  *history.Manager
	checker  identity.Checker
	logger   logger.Logger
}

// New builds the server. checker scopes the history routes to the caller.
func New(p pipeline.Pipeline, rec pipeline.Recorder, mgr *history.Manager, checker identity.Checker, opts Options, log logger.Logger) *Server {
	if opts.MaxUploadMiB <= 0 {
		opts.MaxUploadMiB = 200
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			BodyLimit:             opts.MaxUploadMiB * 1024 * 1024,
			DisableStartupMessage: true,
		}),
		pipeline: p,
		recorder: rec,
		history:  mgr,
		checker:  checker,
		logger:   log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(cors.New())
	s.app.Use(s.requestID)
	s.app.Use(s.bearerToken)

	s.app.Get("/", s.home)

	s.app.Post("/chat/", s.chat)
	s.app.Post("/chat/stored", s.chatStored)

	s.app.Post("/save-history", s.saveHistory)
	s.app.Get("/history", s.listHistory)
	s.app.Delete("/delete-history", s.deleteHistory)
	s.app.Delete("/delete/all/history", s.deleteAllHistory)
	s.app.Post("/delete/select/history", s.deleteSelectedHistory)
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(ctx context.Context, addr string) error {
	s.logger.Info(ctx, "HTTP server listening on %s", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
