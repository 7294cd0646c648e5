// Package dashboard serves the benchmark dashboard page and its SSE
// interactions: live reload, table filtering and sorting, theme toggle.
package dashboard

import (
	"github.com/leapstack-labs/benchboard/internal/results"
)

// Signals is the client state datastar sends with every request.
type Signals struct {
	TypeFilter  string `json:"typeFilter"`
	ModelFilter string `json:"modelFilter"`
	Sort        string `json:"sort"`
}

// Query converts the signals to a table query. An unparseable sort falls
// back to the unsorted order.
func (s Signals) Query() results.Query {
	order, err := results.ParseSortOrder(s.Sort)
	if err != nil {
		order = results.SortNone
	}
	return results.Query{
		Filter: results.Filter{Kind: s.TypeFilter, Model: s.ModelFilter},
		Sort:   order,
	}
}

// sortSignal is patched back after the sort order advances.
type sortSignal struct {
	Sort string `json:"sort"`
}
