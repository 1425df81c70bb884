package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"

	"github.com/umputun/corteo/pkg/domain"
)

// DefaultSelectors match event blocks on activism sites
var DefaultSelectors = []string{"article", ".event", ".evento", ".post"}

// elements whose text is taken line by line inside a block
const textElements = "h1, h2, h3, h4, h5, h6, p, li, time, address, dt, dd, blockquote"

// WebParams for NewWebSource
type WebParams struct {
	HTTPParams
	Name      string
	URL       string   // site url, used as source url
	Pages     []string // pages to fetch
	Selectors []string // css selectors of event blocks, DefaultSelectors if empty
}

// WebSource splits web pages into event blocks
type WebSource struct {
	base
	selector  string
	client    *http.Client
	userAgent string
}

// NewWebSource makes a web page source
func NewWebSource(p WebParams) *WebSource {
	selectors := p.Selectors
	if len(selectors) == 0 {
		selectors = DefaultSelectors
	}
	return &WebSource{
		base:      base{meta: domain.SourceMeta{Name: p.Name, URL: p.URL}, targets: p.Pages},
		selector:  strings.Join(selectors, ", "),
		client:    p.client(),
		userAgent: p.userAgent(),
	}
}

// Fetch gets a page and returns one raw item per event block. A page without blocks
// gives a single item from its main content.
func (w *WebSource) Fetch(ctx context.Context, page string) ([]domain.RawItem, error) {
	body, err := get(ctx, w.client, page, func(r *http.Request) { addPageHeaders(r, w.userAgent) })
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html of %s: %w", page, err)
	}
	pageTitle := cleanSpaces(doc.Find("title").First().Text())

	var items []domain.RawItem
	doc.Find(w.selector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(w.selector).Length() > 0 {
			return // nested block, its text is in the parent
		}
		text := blockText(s)
		if text == "" {
			return
		}
		item := domain.RawItem{Text: text, Title: pageTitle, SourceURL: page, PostURL: page}
		if href, ok := s.Find("a[href]").First().Attr("href"); ok {
			if link := resolveURL(page, href); link != "" {
				item.PostURL = link
			}
		}
		if src, ok := s.Find("img[src]").First().Attr("src"); ok {
			item.ImageURL = resolveURL(page, src)
		}
		items = append(items, item)
	})
	if len(items) > 0 {
		lgr.Printf("[DEBUG] %d blocks found on %s", len(items), page)
		return items, nil
	}

	item, err := mainContent(body, page, pageTitle)
	if err != nil {
		return nil, err
	}
	lgr.Printf("[DEBUG] no blocks on %s, main content used", page)
	return []domain.RawItem{item}, nil
}

// mainContent extracts the main text of a page with trafilatura
func mainContent(body []byte, page, pageTitle string) (domain.RawItem, error) {
	pageURL, err := url.Parse(page)
	if err != nil {
		return domain.RawItem{}, fmt.Errorf("parse URL: %w", err)
	}
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}
	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil {
		return domain.RawItem{}, fmt.Errorf("extract content from %s: %w", page, err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return domain.RawItem{}, fmt.Errorf("no text content extracted from %s", page)
	}

	title := cleanSpaces(result.Metadata.Title)
	if title == "" {
		title = pageTitle
	}
	text := strings.TrimSpace(result.ContentText)
	if title != "" && !strings.HasPrefix(text, title) {
		text = title + "\n" + text
	}
	return domain.RawItem{Text: text, Title: title, SourceURL: page, PostURL: page,
		ImageURL: resolveURL(page, result.Metadata.Image)}, nil
}

// blockText returns the text of a block, one line per text element
func blockText(s *goquery.Selection) string {
	var lines []string
	s.Find(textElements).Each(func(_ int, el *goquery.Selection) {
		if el.ParentsFiltered(textElements).Length() > 0 {
			return
		}
		if line := cleanSpaces(el.Text()); line != "" {
			lines = append(lines, line)
		}
	})
	if len(lines) == 0 {
		return cleanSpaces(s.Text())
	}
	return strings.Join(lines, "\n")
}

func cleanSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
