// Package ui provides the web dashboard for a benchmark dataset.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/benchboard/internal/theme"
	dashboardFeature "github.com/leapstack-labs/benchboard/internal/ui/features/dashboard"
	"github.com/leapstack-labs/benchboard/internal/ui/router"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// Server is the dashboard server.
type Server struct {
	source       *source.Source
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	dev          bool
	title        string
	theme        theme.Mode
	logger       *slog.Logger
}

// Config holds configuration for the UI server.
type Config struct {
	Source        *source.Source
	Port          int
	Watch         bool
	Dev           bool
	Title         string
	Theme         theme.Mode
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 365) // theme preference lasts a year
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		source:       cfg.Source,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		dev:          cfg.Dev,
		title:        cfg.Title,
		theme:        cfg.Theme,
		logger:       cfg.Logger,
	}
}

// Handler builds the server's router.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
		clientHints,
	)

	opts := dashboardFeature.Options{Title: s.title, Theme: s.theme, Logger: s.logger}
	if err := router.SetupRoutes(r, s.source, s.sessionStore, opts, s.dev); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", s.URL(), "dataset", s.source.Path())

	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Reload the dataset when its file changes
	if s.watch {
		eg.Go(func() error {
			return s.source.Watch(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// URL is the address to open in a browser.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// clientHints asks browsers to send their preferred color scheme with
// subsequent requests.
func clientHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", dashboardFeature.ClientHintHeader)
		w.Header().Add("Vary", dashboardFeature.ClientHintHeader)
		next.ServeHTTP(w, r)
	})
}
