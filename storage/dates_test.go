package storage

import (
	"testing"
	"time"

	"newsdeck/types"
)

func seedDatesFixture(t *testing.T, s *FileStore) {
	t.Helper()
	now := time.Now().UTC()
	containers := map[string][]string{
		"theverge":   {"2025-07-13", "2025-07-14"},
		"hackernews": {"2025-07-14"},
	}
	for source, dates := range containers {
		for _, d := range dates {
			if err := s.Save(source, d, []types.NewsItem{{ID: source + d, Title: d, PublishedAt: now}}); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestBuildDatesIndexUnion(t *testing.T) {
	s := NewFileStore(t.TempDir())
	seedDatesFixture(t, s)

	idx := s.BuildDatesIndex([]string{"theverge", "hackernews"}, DatesUnion)

	want := []string{"2025-07-14", "2025-07-13"}
	if len(idx.Dates) != len(want) {
		t.Fatalf("dates = %v; want %v", idx.Dates, want)
	}
	for i := range want {
		if idx.Dates[i] != want[i] {
			t.Errorf("dates[%d] = %q; want %q", i, idx.Dates[i], want[i])
		}
	}
	if idx.TotalSources != 2 {
		t.Errorf("totalSources = %d; want 2", idx.TotalSources)
	}
	if idx.DateAvailability["theverge"] != 2 || idx.DateAvailability["hackernews"] != 1 {
		t.Errorf("dateAvailability = %v", idx.DateAvailability)
	}
}

func TestBuildDatesIndexIntersection(t *testing.T) {
	s := NewFileStore(t.TempDir())
	seedDatesFixture(t, s)

	idx := s.BuildDatesIndex([]string{"theverge", "hackernews"}, DatesIntersection)

	if len(idx.Dates) != 1 || idx.Dates[0] != "2025-07-14" {
		t.Fatalf("dates = %v; want [2025-07-14]", idx.Dates)
	}
}

func TestBuildDatesIndexEmptyStore(t *testing.T) {
	s := NewFileStore(t.TempDir())
	idx := s.BuildDatesIndex([]string{"theverge"}, DatesUnion)
	if idx.Dates == nil {
		t.Fatal("dates is nil; want empty slice")
	}
	if len(idx.Dates) != 0 {
		t.Fatalf("dates = %v; want empty", idx.Dates)
	}
}

func TestWriteAndReadDatesIndex(t *testing.T) {
	s := NewFileStore(t.TempDir())
	seedDatesFixture(t, s)

	built := s.BuildDatesIndex([]string{"theverge", "hackernews"}, DatesUnion)
	if err := s.WriteDatesIndex(built); err != nil {
		t.Fatalf("WriteDatesIndex: %v", err)
	}

	read, err := s.ReadDatesIndex()
	if err != nil {
		t.Fatalf("ReadDatesIndex: %v", err)
	}
	if len(read.Dates) != len(built.Dates) {
		t.Fatalf("round-tripped dates = %v; want %v", read.Dates, built.Dates)
	}
	if read.TotalSources != built.TotalSources {
		t.Errorf("totalSources = %d; want %d", read.TotalSources, built.TotalSources)
	}
}

func TestReadDatesIndexMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())
	if _, err := s.ReadDatesIndex(); err == nil {
		t.Fatal("expected error for missing index")
	}
}
