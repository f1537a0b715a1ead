package sheet

// Grid is a rectangular-ish block of cells as returned by the values API.
// Rows may be ragged; trailing empty cells are usually omitted by the API.
type Grid [][]string

// Header returns the first row, or nil when the grid is empty.
func (g Grid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

// Rows returns every row after the header.
func (g Grid) Rows() [][]string {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// HasData reports whether the grid holds at least one row beyond the header.
func (g Grid) HasData() bool {
	return len(g) >= 2
}

// Cell returns the cell at col in row, or "" when absent.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
