package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/umputun/corteo/pkg/domain"
)

// SocialPost is a post as exported by the social media scraper
type SocialPost struct {
	Caption         string `json:"caption"`
	OwnerHandle     string `json:"ownerHandle"`
	DisplayImageURL string `json:"displayImageUrl"`
	PostURL         string `json:"postUrl"`
	AccountURL      string `json:"accountUrl"`
}

// RawItem maps the post to a raw item
func (p SocialPost) RawItem() domain.RawItem {
	return domain.RawItem{
		Text:         p.Caption,
		SourceHandle: strings.TrimPrefix(strings.TrimSpace(p.OwnerHandle), "@"),
		SourceURL:    p.AccountURL,
		PostURL:      p.PostURL,
		ImageURL:     p.DisplayImageURL,
	}
}

// RawItems maps posts to raw items, skipping posts without caption
func RawItems(posts []SocialPost) []domain.RawItem {
	res := make([]domain.RawItem, 0, len(posts))
	for _, p := range posts {
		if strings.TrimSpace(p.Caption) == "" {
			continue
		}
		res = append(res, p.RawItem())
	}
	return res
}

// ParsePosts decodes a json array of posts
func ParsePosts(r io.Reader) ([]SocialPost, error) {
	var posts []SocialPost
	if err := json.NewDecoder(r).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// SocialParams for NewSocialSource
type SocialParams struct {
	Name  string
	URL   string
	Files []string // json exports of posts
}

// SocialSource reads exported social post batches from files
type SocialSource struct {
	base
}

// NewSocialSource makes a social export source
func NewSocialSource(p SocialParams) *SocialSource {
	return &SocialSource{base: base{meta: domain.SourceMeta{Name: p.Name, URL: p.URL}, targets: p.Files}}
}

// Fetch reads a json export file
func (s *SocialSource) Fetch(ctx context.Context, file string) ([]domain.RawItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(file) //nolint:gosec // file path comes from config
	if err != nil {
		return nil, fmt.Errorf("open posts file: %w", err)
	}
	defer fh.Close()

	posts, err := ParsePosts(fh)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return RawItems(posts), nil
}
