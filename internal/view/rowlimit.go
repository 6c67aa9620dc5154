// Package view holds the UI-local state logic for the dashboard pages: how
// many rows of a section are visible, which tab is active, and what the
// breadcrumb header shows. Everything here is pure computation over the
// already-reshaped view models.
package view

const (
	// DefaultCollapsedRows is the visible prefix for detail-page sections.
	DefaultCollapsedRows = 5
	// ListCollapsedRows is the visible prefix for the top-level patient list.
	ListCollapsedRows = 10
)

// RowLimit models a section's expand/collapse state. A collapsed section
// shows a fixed prefix of its rows; expanding shows them all.
type RowLimit struct {
	Collapsed int  `json:"collapsed"`
	Expanded  bool `json:"expanded"`
}

// NewRowLimit returns a collapsed section limit. A non-positive prefix falls
// back to DefaultCollapsedRows.
func NewRowLimit(collapsed int) RowLimit {
	if collapsed <= 0 {
		collapsed = DefaultCollapsedRows
	}
	return RowLimit{Collapsed: collapsed}
}

// Visible returns how many of n rows are currently shown.
func (r RowLimit) Visible(n int) int {
	if r.Expanded || n <= r.Collapsed {
		return n
	}
	return r.Collapsed
}

// Toggle flips between expanded and collapsed. Toggling twice always returns
// to the starting state.
func (r RowLimit) Toggle() RowLimit {
	r.Expanded = !r.Expanded
	return r
}
