// Command reader opens the terminal article browser over a local data
// directory.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"newsdeck/config"
	"newsdeck/reader"
	"newsdeck/storage"
)

func main() {
	_ = godotenv.Load()

	dataDir := flag.String("data", config.GetEnvOrDefault("DATA_DIR", config.DefaultDataDir), "storage root directory")
	bookmarksPath := flag.String("bookmarks", reader.DefaultBookmarksPath(), "bookmark file path")
	flag.Parse()

	store := storage.NewFileStore(*dataDir)
	bookmarks := reader.LoadBookmarks(*bookmarksPath)

	m := reader.NewModel(store, config.SourceNames(), bookmarks)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "reader error: %v\n", err)
		os.Exit(1)
	}
}
