package present

// CardColumns returns the maximum number of summary cards per row for n
// models. An empty dataset renders as a single column.
func CardColumns(n int) int {
	switch {
	case n >= 3:
		return 3
	case n == 2:
		return 2
	default:
		return 1
	}
}

// CardGridClass is the stylesheet class for the card grid.
func CardGridClass(n int) string {
	switch CardColumns(n) {
	case 3:
		return "card-grid cols-3"
	case 2:
		return "card-grid cols-2"
	default:
		return "card-grid cols-1"
	}
}
