package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"newsdeck/types"
)

// DatesPolicy selects how per-source date lists combine into the index.
type DatesPolicy string

const (
	// DatesUnion includes a date when any source has a container for it.
	// Maximizes visible history at the cost of empty per-source slices.
	DatesUnion DatesPolicy = "union"

	// DatesIntersection includes a date only when every configured source
	// has a container for it.
	DatesIntersection DatesPolicy = "intersection"
)

// datesIndexFile is the index artifact name, stored alongside the source dirs.
const datesIndexFile = "dates.json"

// BuildDatesIndex computes the browsable-dates index for the configured
// sources. The index is a pure cache: deleting it and rebuilding always
// reproduces an equivalent result from the containers themselves.
func (s *FileStore) BuildDatesIndex(sources []string, policy DatesPolicy) types.DatesIndex {
	sourceDates := make(map[string][]string, len(sources))
	availability := make(map[string]int, len(sources))
	for _, source := range sources {
		dates := s.AvailableDates(source)
		sourceDates[source] = dates
		availability[source] = len(dates)
	}

	counts := make(map[string]int)
	for _, dates := range sourceDates {
		for _, d := range dates {
			counts[d]++
		}
	}

	var combined []string
	for d, n := range counts {
		if policy == DatesIntersection && n < len(sources) {
			continue
		}
		combined = append(combined, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(combined)))
	if combined == nil {
		combined = []string{}
	}

	return types.DatesIndex{
		Dates:            combined,
		LastUpdated:      time.Now().UTC(),
		TotalSources:     len(sources),
		Sources:          sources,
		DateAvailability: availability,
	}
}

// WriteDatesIndex persists the index to <dataDir>/dates.json.
func (s *FileStore) WriteDatesIndex(idx types.DatesIndex) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	b, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dates index: %w", err)
	}
	path := filepath.Join(s.dataDir, datesIndexFile)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadDatesIndex loads the persisted index. Callers should fall back to
// BuildDatesIndex when it is missing.
func (s *FileStore) ReadDatesIndex() (types.DatesIndex, error) {
	b, err := os.ReadFile(filepath.Join(s.dataDir, datesIndexFile))
	if err != nil {
		return types.DatesIndex{}, err
	}
	var idx types.DatesIndex
	if err := json.Unmarshal(b, &idx); err != nil {
		return types.DatesIndex{}, fmt.Errorf("corrupt dates index: %w", err)
	}
	return idx, nil
}
