package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(router chi.Router, src *source.Source, sessionStore sessions.Store, opts Options) error {
	handlers := NewHandlers(src, sessionStore, opts)

	router.Get("/", handlers.Page)
	router.Get("/updates", handlers.Updates)
	router.Get("/refresh", handlers.Refresh)
	router.Get("/results", handlers.Results)
	router.Get("/results/sort", handlers.SortResults)
	router.Post("/theme/toggle", handlers.ToggleTheme)

	return nil
}
