package reader

import (
	"fmt"
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📰 newsdeck reader"))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n")
	}

	if len(m.Dates) == 0 && !m.Loading {
		b.WriteString(helpStyle.Render("No stored articles yet. Run a crawl first."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("Press 'q' to quit"))
		return b.String()
	}

	// Header: date, source filter, pagination position
	source := m.currentSource()
	if source == "" {
		source = "all sources"
	}
	header := fmt.Sprintf("%s | %s | page %d (%d articles)",
		m.currentDate(), source, m.Result.Page, m.Result.Total)
	b.WriteString(statusStyle.Render(header))
	b.WriteString("\n\n")

	if m.Loading {
		b.WriteString(helpStyle.Render("Loading..."))
		b.WriteString("\n")
	} else if len(m.Result.Articles) == 0 {
		b.WriteString(helpStyle.Render("No articles for this date."))
		b.WriteString("\n")
	} else if m.Mode == ViewCard {
		b.WriteString(m.renderCards())
	} else {
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		"←/→ date | n/p page | s source | v view | ↑/↓ select | b bookmark | q quit"))
	return b.String()
}

// renderList shows one line per article.
func (m Model) renderList() string {
	var b strings.Builder
	for i, a := range m.Result.Articles {
		marker := " "
		if m.Bookmarks.Has(a.ID) {
			marker = "★"
		}
		line := fmt.Sprintf("%s %s  %-12s %s",
			marker, a.PublishedAt.Local().Format("15:04"), a.Source, a.Title)
		if i == m.Selected {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderCards shows a gutter-barred card per article with summary and byline.
func (m Model) renderCards() string {
	var b strings.Builder
	for i, a := range m.Result.Articles {
		var card strings.Builder
		title := a.Title
		if m.Bookmarks.Has(a.ID) {
			title = "★ " + title
		}
		if i == m.Selected {
			card.WriteString(selectedStyle.Render(title))
		} else {
			card.WriteString(title)
		}
		card.WriteString("\n")
		if a.Description != "" {
			card.WriteString(metaStyle.Render(a.Description))
			card.WriteString("\n")
		}
		card.WriteString(statusStyle.Render(fmt.Sprintf("%s · %s · %s",
			a.SourceName, a.Author, a.PublishedAt.Local().Format("Jan 2 15:04"))))
		card.WriteString("\n")
		card.WriteString(metaStyle.Render(a.URL))

		b.WriteString(cardStyle.Render(card.String()))
		b.WriteString("\n")
	}
	return b.String()
}
