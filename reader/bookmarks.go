package reader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"newsdeck/types"
)

// BookmarkData is one saved story, with just enough to revisit it.
type BookmarkData struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Source     string    `json:"source"`
	SourceName string    `json:"sourceName"`
	AddedAt    time.Time `json:"addedAt"`
}

// Bookmarks is a local, file-backed bookmark set.
type Bookmarks struct {
	path  string
	items map[string]BookmarkData
}

// LoadBookmarks reads the bookmark file at path, creating an empty set when
// the file is missing or unreadable.
func LoadBookmarks(path string) *Bookmarks {
	b := &Bookmarks{path: path, items: make(map[string]BookmarkData)}

	data, err := os.ReadFile(path)
	if err != nil {
		return b
	}
	var list []BookmarkData
	if err := json.Unmarshal(data, &list); err != nil {
		return b
	}
	for _, item := range list {
		b.items[item.ID] = item
	}
	return b
}

// DefaultBookmarksPath returns ~/.newsdeck/bookmarks.json, falling back to
// the working directory when the home directory is unknown.
func DefaultBookmarksPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookmarks.json"
	}
	return filepath.Join(home, ".newsdeck", "bookmarks.json")
}

// Has reports whether the article ID is bookmarked.
func (b *Bookmarks) Has(id string) bool {
	_, ok := b.items[id]
	return ok
}

// Toggle adds the article to the set, or removes it when already present,
// and persists the result.
func (b *Bookmarks) Toggle(a types.NewsItem) error {
	if b.Has(a.ID) {
		delete(b.items, a.ID)
	} else {
		b.items[a.ID] = BookmarkData{
			ID:         a.ID,
			Title:      a.Title,
			URL:        a.URL,
			Source:     a.Source,
			SourceName: a.SourceName,
			AddedAt:    time.Now(),
		}
	}
	return b.save()
}

// All returns the bookmarks, unordered.
func (b *Bookmarks) All() []BookmarkData {
	out := make([]BookmarkData, 0, len(b.items))
	for _, item := range b.items {
		out = append(out, item)
	}
	return out
}

func (b *Bookmarks) save() error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("failed to create bookmark dir: %w", err)
	}
	data, err := json.MarshalIndent(b.All(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(b.path, data, 0o644)
}
