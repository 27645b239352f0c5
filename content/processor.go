// Package content holds the pure text-normalization helpers shared by every
// source parser: stable IDs, URL resolution, entity decoding, and summary
// extraction.
package content

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSummaryLength bounds generated descriptions.
	DefaultSummaryLength = 150

	// fallbackParagraphLength is used when content has no paragraph breaks.
	fallbackParagraphLength = 200
)

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	paragraphRe  = regexp.MustCompile(`(?i)\n\n|<p>|</p>`)
	imgSrcRe     = regexp.MustCompile(`<img[^>]+src="([^"]+)"`)
	entityRe     = regexp.MustCompile(`&[^;\s]+;`)
)

var htmlEntities = map[string]string{
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&quot;":   `"`,
	"&#39;":    "'",
	"&#8217;":  "'",
	"&#8216;":  "'",
	"&#8220;":  `"`,
	"&#8221;":  `"`,
	"&nbsp;":   " ",
	"&hellip;": "...",
	"&mdash;":  "—",
	"&ndash;":  "–",
}

// GenerateID derives a stable identifier from an article URL. The same URL
// always produces the same ID, which is what the dedup merge relies on.
func GenerateID(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:16]
}

// NormalizeURL resolves href against baseURL. Absolute URLs pass through
// unchanged; relative and leading-slash paths resolve with standard rules.
// If either URL fails to parse, href is returned as-is.
func NormalizeURL(href, baseURL string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// DecodeHTMLEntities replaces a fixed table of named and numeric entities
// with their literal characters. Unknown entities pass through unchanged.
func DecodeHTMLEntities(text string) string {
	if text == "" {
		return ""
	}
	return entityRe.ReplaceAllStringFunc(text, func(entity string) string {
		if decoded, ok := htmlEntities[entity]; ok {
			return decoded
		}
		return entity
	})
}

// SanitizeText strips HTML tags, collapses whitespace runs, and trims.
func SanitizeText(text string) string {
	text = tagRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ExtractFirstParagraph returns the first non-empty paragraph of content with
// tags stripped. When no paragraph boundary exists it falls back to the first
// couple hundred characters.
func ExtractFirstParagraph(content string) string {
	if content == "" {
		return ""
	}
	clean := tagRe.ReplaceAllString(content, "")
	for _, p := range paragraphRe.Split(clean, -1) {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	if len(clean) > fallbackParagraphLength {
		return clean[:fallbackParagraphLength]
	}
	return clean
}

// TruncateAtWordBoundary cuts text to at most maxLength bytes without
// splitting a word or a rune. Scriptless-space text (Thai headlines) never
// finds a space to back up to, so the cut must land on a rune boundary.
// If no space precedes the cut the rune-truncated text is returned.
func TruncateAtWordBoundary(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	truncated := text[:cut]
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		return truncated[:lastSpace]
	}
	return truncated
}

// GenerateSummary produces a bounded plain-text summary from raw content.
func GenerateSummary(content string, maxLength int) string {
	if content == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}
	return TruncateAtWordBoundary(ExtractFirstParagraph(content), maxLength)
}

// ExtractImage pulls the first <img src="..."> out of raw description HTML.
// Returns the empty string when none is present.
func ExtractImage(html string) string {
	m := imgSrcRe.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return m[1]
}
