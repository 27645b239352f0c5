package reader

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case DatesLoadedMsg:
		return m.handleDatesLoaded(msg)
	case PageLoadedMsg:
		return m.handlePageLoaded(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "left", "h":
		// Older date
		if m.DateIdx < len(m.Dates)-1 {
			m.DateIdx++
			return m.reload()
		}
	case "right", "l":
		// Newer date
		if m.DateIdx > 0 {
			m.DateIdx--
			return m.reload()
		}

	case "n":
		if m.Result.HasMore {
			m.PageNum++
			return m.fetchPage()
		}
	case "p":
		if m.PageNum > 1 {
			m.PageNum--
			return m.fetchPage()
		}

	case "s":
		m.SourceIdx = (m.SourceIdx + 1) % len(m.sourceFilters)
		return m.reload()

	case "v":
		if m.Mode == ViewList {
			m.Mode = ViewCard
		} else {
			m.Mode = ViewList
		}

	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Result.Articles)-1 {
			m.Selected++
		}

	case "b", " ":
		if m.Selected < len(m.Result.Articles) {
			if err := m.Bookmarks.Toggle(m.Result.Articles[m.Selected]); err != nil {
				m.Err = err
			}
		}
	}
	return m, nil
}

// handleDatesLoaded stores the date list and loads the first page.
func (m Model) handleDatesLoaded(msg DatesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Loading = false
		m.Err = msg.Err
		return m, nil
	}
	m.Dates = msg.Dates
	m.DateIdx = 0
	if len(m.Dates) == 0 {
		m.Loading = false
		return m, nil
	}
	return m.reload()
}

// handlePageLoaded stores the fetched page.
func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	m.Loading = false
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Result = msg.Result
	if m.Selected >= len(m.Result.Articles) {
		m.Selected = 0
	}
	return m, nil
}

// reload resets pagination and selection, then fetches the first page.
func (m Model) reload() (tea.Model, tea.Cmd) {
	m.PageNum = 1
	m.Selected = 0
	return m.fetchPage()
}

func (m Model) fetchPage() (tea.Model, tea.Cmd) {
	m.Loading = true
	return m, loadPage(m.Store, m.currentDate(), m.PageNum, m.currentSource())
}
