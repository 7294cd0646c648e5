// Package results flattens a dataset into table rows and applies the
// table's filter, sort, and pass/fail classification.
package results

import (
	"fmt"

	"github.com/leapstack-labs/benchboard/internal/dataset"
)

// All disables a filter predicate.
const All = "all"

// Row is one result of one model, flattened for tabular display.
type Row struct {
	TestID string       `json:"test_id"`
	Kind   dataset.Kind `json:"type"`
	Model  string       `json:"model"`
	Score  float64      `json:"score"`
}

// Project flattens every model's results into rows, models in dataset order
// and results in stored order.
func Project(ds *dataset.Dataset) []Row {
	rows := make([]Row, 0, ds.ResultCount())
	for _, m := range ds.Models {
		for _, r := range m.Results {
			rows = append(rows, Row{
				TestID: r.TestID(),
				Kind:   r.Kind(),
				Model:  m.Name,
				Score:  ScoreOf(r),
			})
		}
	}
	return rows
}

// ScoreOf returns the score a result contributes to the table:
// the knowledge score or the execution correctness.
func ScoreOf(r dataset.Result) float64 {
	switch v := r.(type) {
	case dataset.KnowledgeResult:
		return v.Score
	case dataset.ExecutionResult:
		return v.Correctness
	default:
		panic(fmt.Sprintf("results: unhandled result variant %T", r))
	}
}
