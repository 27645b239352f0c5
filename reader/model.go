// Package reader is the terminal front-end: browse stored articles by date
// and source, toggle between list and card views, page through results, and
// bookmark stories locally.
package reader

import (
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/storage"
	"newsdeck/types"
)

// ViewMode selects how articles render.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewCard ViewMode = "card"
)

// PageSize is how many articles one page shows.
const PageSize = 10

// Model holds the reader state.
type Model struct {
	Store     *storage.FileStore
	Bookmarks *Bookmarks

	// Browsing position
	Dates     []string
	DateIdx   int
	SourceIdx int // index into sourceFilters; 0 means all sources
	PageNum   int
	Selected  int

	// Current page of results
	Result types.SearchResult

	Mode    ViewMode
	Loading bool
	Err     error

	sourceFilters []string
}

// NewModel creates a reader over the given store. sourceKeys is the
// configured source list used for the source filter cycle.
func NewModel(store *storage.FileStore, sourceKeys []string, bookmarks *Bookmarks) Model {
	return Model{
		Store:         store,
		Bookmarks:     bookmarks,
		Mode:          ViewList,
		PageNum:       1,
		Loading:       true,
		sourceFilters: append([]string{""}, sourceKeys...),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return loadDates(m.Store)
}

// currentDate returns the selected date key, or empty when none loaded.
func (m Model) currentDate() string {
	if len(m.Dates) == 0 {
		return ""
	}
	return m.Dates[m.DateIdx]
}

// currentSource returns the active source filter ("" means all).
func (m Model) currentSource() string {
	return m.sourceFilters[m.SourceIdx]
}
