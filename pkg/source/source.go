// Package source provides raw items from web pages, RSS/Atom feeds and social post exports.
// Every source has a list of targets, and each target is fetched as one batch.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/corteo/pkg/domain"
)

const (
	// DefaultUserAgent is sent when no user agent is configured
	DefaultUserAgent = "Mozilla/5.0 (compatible; Corteo/1.0)"

	maxBodySize = 8 << 20
)

// HTTPParams are shared by sources fetching over http
type HTTPParams struct {
	Timeout   time.Duration // 30s if zero
	UserAgent string        // DefaultUserAgent if empty
}

func (p HTTPParams) client() *http.Client {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func (p HTTPParams) userAgent() string {
	if p.UserAgent == "" {
		return DefaultUserAgent
	}
	return p.UserAgent
}

// base keeps the provenance and targets common to all sources
type base struct {
	meta    domain.SourceMeta
	targets []string
}

// Meta returns source provenance
func (b base) Meta() domain.SourceMeta { return b.meta }

// Targets returns the list of pages, feeds or files to fetch
func (b base) Targets() []string { return b.targets }

// get fetches a url and returns the body, limited to maxBodySize
func get(ctx context.Context, client *http.Client, target string, addHeaders func(*http.Request)) ([]byte, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addHeaders(req)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", target, err)
	}
	return body, nil
}

// resolveURL makes href absolute against the page url, returns empty string for unusable links
func resolveURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	page, err := url.Parse(pageURL)
	if err != nil {
		return ref.String()
	}
	return page.ResolveReference(ref).String()
}
