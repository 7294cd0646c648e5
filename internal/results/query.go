package results

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/benchboard/internal/dataset"
)

// Filter selects rows by result kind and model. An empty value or All
// disables the predicate. Values that match nothing select nothing.
type Filter struct {
	Kind  string `json:"type"`
	Model string `json:"model"`
}

// Match reports whether row passes both predicates.
func (f Filter) Match(row Row) bool {
	return matches(f.Kind, string(row.Kind)) && matches(f.Model, row.Model)
}

func matches(want, got string) bool {
	return want == "" || want == All || want == got
}

// Apply returns the rows that match f, in input order.
func (f Filter) Apply(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// UnknownModel reports whether the model filter names a model the dataset
// does not contain. Such a filter is legal and yields no rows.
func (f Filter) UnknownModel(ds *dataset.Dataset) bool {
	return f.Model != "" && f.Model != All && !ds.HasModel(f.Model)
}

// SortOrder is the score column's sort state.
type SortOrder string

// Sort orders, in toggle order.
const (
	SortNone SortOrder = "none"
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ErrUnknownSortOrder is returned by ParseSortOrder.
var ErrUnknownSortOrder = errors.New("unknown sort order")

// ParseSortOrder parses "", "none", "asc" or "desc" (case-insensitive).
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SortNone):
		return SortNone, nil
	case string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	default:
		return SortNone, fmt.Errorf("%w %q (want none, asc or desc)", ErrUnknownSortOrder, s)
	}
}

// Next returns the order after one more click on the score header:
// none, asc, desc, then back to none.
func (o SortOrder) Next() SortOrder {
	switch o {
	case SortAsc:
		return SortDesc
	case SortDesc:
		return SortNone
	default:
		return SortAsc
	}
}

// Glyph is the header indicator for the order.
func (o SortOrder) Glyph() string {
	switch o {
	case SortAsc:
		return "↑"
	case SortDesc:
		return "↓"
	default:
		return "↕"
	}
}

// Sort returns a copy of rows ordered by score. Equal scores keep their
// relative order; SortNone returns the input order.
func Sort(rows []Row, o SortOrder) []Row {
	out := slices.Clone(rows)
	switch o {
	case SortAsc:
		slices.SortStableFunc(out, func(a, b Row) int { return cmp.Compare(a.Score, b.Score) })
	case SortDesc:
		slices.SortStableFunc(out, func(a, b Row) int { return cmp.Compare(b.Score, a.Score) })
	}
	return out
}

// Query is the table's complete view state.
type Query struct {
	Filter Filter
	Sort   SortOrder
}

// Apply filters then sorts rows. The input is never modified.
func (q Query) Apply(rows []Row) []Row {
	return Sort(q.Filter.Apply(rows), q.Sort)
}
