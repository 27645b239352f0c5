package reader

import (
	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/config"
	"newsdeck/storage"
)

// loadDates reads the dates index, rebuilding it from the containers when
// the cached artifact is missing.
func loadDates(store *storage.FileStore) tea.Cmd {
	return func() tea.Msg {
		idx, err := store.ReadDatesIndex()
		if err != nil {
			idx = store.BuildDatesIndex(config.SourceNames(), storage.DatesUnion)
		}
		return DatesLoadedMsg{Dates: idx.Dates}
	}
}

// loadPage fetches one page of the date-filtered article collection.
func loadPage(store *storage.FileStore, date string, page int, source string) tea.Cmd {
	return func() tea.Msg {
		return PageLoadedMsg{Result: store.Page(date, page, PageSize, source)}
	}
}
