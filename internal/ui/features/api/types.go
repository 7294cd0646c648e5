// Package api serves the dashboard data as JSON.
package api

import (
	"time"

	"github.com/leapstack-labs/benchboard/internal/dataset"
	"github.com/leapstack-labs/benchboard/internal/present"
	"github.com/leapstack-labs/benchboard/internal/results"
)

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	// DatasetVersion counts reloads of the dataset file, starting at 1.
	DatasetVersion int `json:"datasetVersion"`
	// LoadedAt is when the current dataset version was read.
	LoadedAt time.Time `json:"loadedAt"`
}

// DatasetResponse is the loaded dataset, models in display order.
type DatasetResponse struct {
	Metadata dataset.Metadata `json:"metadata"`
	Models   []ModelResponse  `json:"models"`
}

// NewDatasetResponse pairs each model with its color.
func NewDatasetResponse(ds *dataset.Dataset, colors []present.Color) DatasetResponse {
	resp := DatasetResponse{
		Metadata: ds.Metadata,
		Models:   make([]ModelResponse, 0, len(ds.Models)),
	}
	for i, m := range ds.Models {
		resp.Models = append(resp.Models, ModelResponse{ModelEntry: m, Color: colors[i].CSS})
	}
	return resp
}

// ModelResponse is one model with its assigned display color.
type ModelResponse struct {
	dataset.ModelEntry
	Color string `json:"color"`
}

// ResultsResponse is a filtered, sorted slice of the results table.
type ResultsResponse struct {
	Filter results.Filter    `json:"filter"`
	Sort   results.SortOrder `json:"sort"`
	Count  int               `json:"count"`
	Rows   []ResultRow       `json:"rows"`
}

// NewResultsResponse wraps rows already produced by q.
func NewResultsResponse(q results.Query, rows []results.Row) ResultsResponse {
	resp := ResultsResponse{
		Filter: q.Filter,
		Sort:   q.Sort,
		Count:  len(rows),
		Rows:   make([]ResultRow, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, ResultRow{Row: row, Verdict: results.Classify(row)})
	}
	return resp
}

// ResultRow is a table row with its badge state.
type ResultRow struct {
	results.Row
	Verdict results.Verdict `json:"verdict"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
