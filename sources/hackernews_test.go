package sources

import (
	"errors"
	"testing"
	"time"
)

const hnFrontPageFixture = `<html><body><table>
<tr class="athing" id="44111111">
  <td class="title"><a href="https://example.com/big-launch">Big launch announced</a></td>
</tr>
<tr>
  <td class="subtext">
    <span class="score">245 points</span> by <a class="hnuser">pg</a>
    <span class="age">3 hours ago</span> | <a>hide</a> | <a>132 comments</a>
  </td>
</tr>
<tr class="athing" id="44111112">
  <td class="title"><a href="item?id=44111112">Ask HN: Self post</a></td>
</tr>
<tr>
  <td class="subtext">
    <span class="age">25 minutes ago</span> | <a>discuss</a>
  </td>
</tr>
<tr class="athing" id="44111113">
  <td class="title"><a href="">missing link</a></td>
</tr>
<tr><td class="subtext"></td></tr>
</table></body></html>`

func TestHackerNewsParseFeed(t *testing.T) {
	p := &HackerNewsParser{}
	if _, err := p.ParseFeed(nil, "https://news.ycombinator.com/"); !errors.Is(err, ErrNoFeed) {
		t.Fatalf("ParseFeed err = %v; want ErrNoFeed", err)
	}
}

func TestHackerNewsParseHTML(t *testing.T) {
	p := &HackerNewsParser{}
	articles, err := p.ParseHTML(hnFrontPageFixture, "https://news.ycombinator.com/")
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles; want 2 (linkless row dropped)", len(articles))
	}

	a := articles[0]
	if a.Title != "Big launch announced" {
		t.Errorf("title = %q", a.Title)
	}
	if a.URL != "https://example.com/big-launch" {
		t.Errorf("url = %q", a.URL)
	}
	if a.Author != "pg" {
		t.Errorf("author = %q", a.Author)
	}
	if a.Description != "Score: 245 | Comments: 132 | Posted by pg" {
		t.Errorf("description = %q", a.Description)
	}

	// Self posts resolve relative to the site and have no byline in the fixture
	b := articles[1]
	if b.URL != "https://news.ycombinator.com/item?id=44111112" {
		t.Errorf("self post url = %q", b.URL)
	}
	if b.Author != "Anonymous" {
		t.Errorf("self post author = %q", b.Author)
	}
}

func TestParseRelativeTime(t *testing.T) {
	now := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		text string
		want time.Time
	}{
		{"hours", "3 hours ago", now.Add(-3 * time.Hour)},
		{"one hour", "1 hour ago", now.Add(-time.Hour)},
		{"minutes", "25 minutes ago", now.Add(-25 * time.Minute)},
		{"days", "2 days ago", now.Add(-48 * time.Hour)},
		{"unrecognized", "yesterday", now},
		{"empty", "", now},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ParseRelativeTime(c.text, now); !got.Equal(c.want) {
				t.Fatalf("ParseRelativeTime(%q) = %v; want %v", c.text, got, c.want)
			}
		})
	}
}

func TestExtractStoryIDs(t *testing.T) {
	ids := ExtractStoryIDs(hnFrontPageFixture)
	want := []int{44111111, 44111112, 44111113}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids; want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d; want %d", i, ids[i], want[i])
		}
	}
}
