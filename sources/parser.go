// Package sources converts source-specific payloads (Atom XML, RSS XML,
// rendered HTML) into the canonical NewsItem shape. Each source registers a
// Parser; the crawler looks parsers up by source key instead of branching on
// names.
package sources

import (
	"fmt"

	"newsdeck/types"
)

// Parser turns one source's payloads into canonical articles. ParseFeed is
// the preferred entry point; ParseHTML is the fallback for sources without a
// feed or when scraping listing pages directly.
type Parser interface {
	Source() string
	ParseFeed(payload []byte, baseURL string) ([]types.NewsItem, error)
	ParseHTML(html string, baseURL string) ([]types.NewsItem, error)
}

var registry = map[string]Parser{}

// Register adds a parser under its source key. Called from package init;
// duplicate registration is a programming error.
func Register(p Parser) {
	if _, exists := registry[p.Source()]; exists {
		panic(fmt.Sprintf("sources: duplicate parser for %q", p.Source()))
	}
	registry[p.Source()] = p
}

// Lookup returns the parser registered for the source key.
func Lookup(source string) (Parser, bool) {
	p, ok := registry[source]
	return p, ok
}

func init() {
	Register(&TheVergeParser{})
	Register(&TechCrunchParser{})
	Register(&BlognoneParser{})
	Register(&HackerNewsParser{})
}
