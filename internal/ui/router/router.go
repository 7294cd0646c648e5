// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	apiFeature "github.com/leapstack-labs/benchboard/internal/ui/features/api"
	dashboardFeature "github.com/leapstack-labs/benchboard/internal/ui/features/dashboard"
	"github.com/leapstack-labs/benchboard/internal/ui/resources"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	src *source.Source,
	sessionStore sessions.Store,
	opts dashboardFeature.Options,
	isDev bool,
) error {
	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := dashboardFeature.SetupRoutes(router, src, sessionStore, opts); err != nil {
		return err
	}

	if err := apiFeature.SetupRoutes(router, src); err != nil {
		return err
	}

	return nil
}

// setupReload lets a dev watcher (air, reflex) reload open pages after a
// rebuild by hitting /hotreload.
func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
