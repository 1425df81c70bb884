package source

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/corteo/pkg/domain"
)

var (
	blockBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|h[1-6]|blockquote|tr)>`)
	blankLinesRe = regexp.MustCompile(`\n\s*\n+`)
	stripPolicy  = bluemonday.StrictPolicy()
)

// FeedParams for NewFeedSource
type FeedParams struct {
	HTTPParams
	Name  string
	URL   string   // site url, used as source url when a feed has no link
	Feeds []string // feed urls
}

// FeedSource reads RSS and Atom feeds, one raw item per feed entry
type FeedSource struct {
	base
	client    *http.Client
	userAgent string
}

// NewFeedSource makes a feed source
func NewFeedSource(p FeedParams) *FeedSource {
	return &FeedSource{
		base:      base{meta: domain.SourceMeta{Name: p.Name, URL: p.URL}, targets: p.Feeds},
		client:    p.client(),
		userAgent: p.userAgent(),
	}
}

// Fetch gets and parses a feed
func (f *FeedSource) Fetch(ctx context.Context, feedURL string) ([]domain.RawItem, error) {
	body, err := get(ctx, f.client, feedURL, func(r *http.Request) { addFeedHeaders(r, f.userAgent) })
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	sourceURL := feed.Link
	if sourceURL == "" {
		sourceURL = feedURL
	}

	items := make([]domain.RawItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		title := cleanSpaces(html.UnescapeString(stripPolicy.Sanitize(entry.Title)))
		content := entry.Content
		if strings.TrimSpace(content) == "" {
			content = entry.Description
		}
		text := htmlToText(content)
		if title != "" {
			text = strings.TrimSpace(title + "\n" + text)
		}
		if text == "" {
			continue
		}

		item := domain.RawItem{
			Text:         text,
			Title:        title,
			SourceHandle: feed.Title,
			SourceURL:    sourceURL,
			PostURL:      entry.Link,
			ImageURL:     entryImage(entry),
		}
		items = append(items, item)
	}
	return items, nil
}

// htmlToText strips markup keeping paragraph breaks as new lines
func htmlToText(s string) string {
	s = blockBreakRe.ReplaceAllString(s, "\n")
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = cleanSpaces(l)
	}
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n"))
}

func entryImage(entry *gofeed.Item) string {
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}
	for _, enc := range entry.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}
