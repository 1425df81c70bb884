package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/corteo/pkg/domain"
)

func TestSocialPost_RawItem(t *testing.T) {
	p := SocialPost{Caption: "Presidio", OwnerHandle: " @fff_italia ", DisplayImageURL: "https://cdn/x.jpg",
		PostURL: "https://ig/p/1", AccountURL: "https://ig/fff_italia"}
	assert.Equal(t, domain.RawItem{Text: "Presidio", SourceHandle: "fff_italia", SourceURL: "https://ig/fff_italia",
		PostURL: "https://ig/p/1", ImageURL: "https://cdn/x.jpg"}, p.RawItem())
}

func TestParsePosts(t *testing.T) {
	posts, err := ParsePosts(strings.NewReader(`[{"caption":"a","ownerHandle":"b","postUrl":"c"}]`))
	require.NoError(t, err)
	assert.Equal(t, []SocialPost{{Caption: "a", OwnerHandle: "b", PostURL: "c"}}, posts)

	_, err = ParsePosts(strings.NewReader(`{"caption":`))
	require.Error(t, err)
}

func TestSocialSource_Fetch(t *testing.T) {
	src := NewSocialSource(SocialParams{Name: "instagram", URL: "https://instagram.com", Files: []string{"testdata/posts.json"}})
	assert.Equal(t, domain.SourceMeta{Name: "instagram", URL: "https://instagram.com"}, src.Meta())

	items, err := src.Fetch(context.Background(), "testdata/posts.json")
	require.NoError(t, err)
	require.Len(t, items, 2, "post without caption skipped")
	assert.Equal(t, "CORTEO SABATO 28 GIUGNO, ORE 17 STAZIONE VENEZIA S.LUCIA", items[0].Text)
	assert.Equal(t, "nograndinavi", items[0].SourceHandle)
	assert.Equal(t, "https://cdn.example.com/p1.jpg", items[0].ImageURL)
	assert.Equal(t, "milanopride", items[1].SourceHandle)
}

func TestSocialSource_FetchErrors(t *testing.T) {
	src := NewSocialSource(SocialParams{Name: "instagram"})

	_, err := src.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o600))
	_, err = src.Fetch(context.Background(), bad)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Fetch(ctx, "testdata/posts.json")
	require.ErrorIs(t, err, context.Canceled)
}
