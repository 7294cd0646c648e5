package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/benchboard/internal/results"
	"github.com/leapstack-labs/benchboard/internal/ui/source"
)

// Version is reported by the health endpoint. The CLI sets it at startup.
var Version = "dev"

// Handlers holds the HTTP handler methods for the JSON API.
type Handlers struct {
	source *source.Source
}

// NewHandlers creates a new Handlers serving src.
func NewHandlers(src *source.Source) *Handlers {
	return &Handlers{source: src}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := h.source.Snapshot()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		Version:        Version,
		DatasetVersion: snap.Version,
		LoadedAt:       snap.LoadedAt,
	})
}

// HandleDataset returns the whole dataset.
func (h *Handlers) HandleDataset(w http.ResponseWriter, _ *http.Request) {
	snap := h.source.Snapshot()
	writeJSON(w, http.StatusOK, NewDatasetResponse(snap.Dataset, snap.Colors))
}

// HandleResults returns the results table filtered by the type and model
// query params and sorted by the sort param.
func (h *Handlers) HandleResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	order, err := results.ParseSortOrder(q.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := results.Query{
		Filter: results.Filter{Kind: q.Get("type"), Model: q.Get("model")},
		Sort:   order,
	}
	writeJSON(w, http.StatusOK, NewResultsResponse(query, query.Apply(h.source.Snapshot().Rows)))
}

// SetupRoutes registers the JSON API routes.
func SetupRoutes(router chi.Router, src *source.Source) error {
	h := NewHandlers(src)
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/dataset", h.HandleDataset)
		r.Get("/results", h.HandleResults)
	})
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
