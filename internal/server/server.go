package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sautiwatch/sautiwatch/config"
	"github.com/sautiwatch/sautiwatch/internal/client"
)

const SHUTDOWN_TIMEOUT = 30 * time.Second

type Server struct {
	cfg    *config.Config
	router *chi.Mux
	client *client.ResultClient
	server *http.Server
}

func New(cfg *config.Config, rc *client.ResultClient) *Server {
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		client: rc,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.loggingMiddleware)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/export", s.handleExport)
		r.Get("/logs", s.handleLogs)
		r.Get("/health", s.handleHealth)
	})

	// Single-page form
	fs := http.FileServer(http.Dir("web/static"))
	s.router.Handle("/*", fs)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Info("[Server] Request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)))
	})
}

// Run serves until an interrupt or SIGTERM, then drains outstanding
// requests before returning.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("[Server] Listening",
			slog.String("addr", s.server.Addr))
		serverErrors <- s.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info("[Server] Shutting down",
			slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	return nil
}
