package hnapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestServer serves a fixed top-stories list and a small item table the
// way the real API does, including literal null for unknown IDs.
func newTestServer(t *testing.T, items map[int]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		ids := "["
		first := true
		for id := range items {
			if !first {
				ids += ","
			}
			ids += fmt.Sprint(id)
			first = false
		}
		fmt.Fprint(w, ids+"]")
	})
	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		var id int
		fmt.Sscanf(r.URL.Path, "/item/%d.json", &id)
		body, ok := items[id]
		if !ok {
			fmt.Fprint(w, "null")
			return
		}
		fmt.Fprint(w, body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestTopStoriesFilters(t *testing.T) {
	items := map[int]string{
		1: `{"id":1,"type":"story","by":"alice","time":1752480000,"url":"https://example.com/1","score":100,"title":"Story one","descendants":42}`,
		2: `{"id":2,"type":"comment","by":"bob","time":1752480000,"text":"not a story"}`,
		3: `{"id":3,"type":"story","by":"carol","time":1752480000,"title":"Ask HN: no url","score":10}`,
		4: `{"id":4,"type":"story","by":"dave","time":1752480000,"url":"https://example.com/4","title":"Dead story","dead":true}`,
	}
	srv := newTestServer(t, items)

	c := NewClient(srv.URL)
	articles, err := c.TopStories(context.Background(), 10)
	if err != nil {
		t.Fatalf("TopStories: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles; want 1 (comment, urlless, dead filtered)", len(articles))
	}

	a := articles[0]
	if a.Title != "Story one" {
		t.Errorf("title = %q", a.Title)
	}
	if a.Author != "alice" {
		t.Errorf("author = %q", a.Author)
	}
	if a.Description != "Score: 100 | Comments: 42 | Posted by alice" {
		t.Errorf("description = %q", a.Description)
	}
	if a.Source != "hackernews" || a.SourceName != "Hacker News" {
		t.Errorf("source = %q / %q", a.Source, a.SourceName)
	}
	if !a.PublishedAt.Equal(time.Unix(1752480000, 0)) {
		t.Errorf("publishedAt = %v", a.PublishedAt)
	}
}

func TestTopStoriesLimit(t *testing.T) {
	items := make(map[int]string, 5)
	for id := 1; id <= 5; id++ {
		items[id] = fmt.Sprintf(`{"id":%d,"type":"story","by":"u","time":1752480000,"url":"https://example.com/%d","title":"S%d"}`, id, id, id)
	}
	srv := newTestServer(t, items)

	c := NewClient(srv.URL)
	articles, err := c.TopStories(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopStories: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles; want 2", len(articles))
	}
}

func TestItemNull(t *testing.T) {
	srv := newTestServer(t, nil)

	c := NewClient(srv.URL)
	item, err := c.Item(context.Background(), 99)
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if item != nil {
		t.Fatalf("item = %+v; want nil for API null", item)
	}
}

func TestTopStoriesWithRetryExhausted(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.baseDelay = time.Millisecond

	_, err := c.TopStoriesWithRetry(context.Background(), 5, 3)
	if !errors.Is(err, ErrRetryExhausted) {
		t.Fatalf("err = %v; want ErrRetryExhausted", err)
	}
	if calls != 3 {
		t.Fatalf("server saw %d attempts; want 3", calls)
	}
}

func TestTopStoriesWithRetryRecovers(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "[1]")
	})
	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1,"type":"story","by":"u","time":1752480000,"url":"https://example.com/1","title":"S1"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL)
	c.baseDelay = time.Millisecond

	articles, err := c.TopStoriesWithRetry(context.Background(), 5, 3)
	if err != nil {
		t.Fatalf("TopStoriesWithRetry: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles; want 1", len(articles))
	}
}
