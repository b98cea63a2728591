package content

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo serves listings without bodies and lookups with them.
type memRepo struct {
	articles []Article
	works    []Work
	missing  map[string]bool
	getErr   error
}

func (m *memRepo) ListArticles(ctx context.Context) ([]Article, error) {
	out := make([]Article, len(m.articles))
	for i, a := range m.articles {
		a.Content = nil
		out[i] = a
	}
	return out, nil
}

func (m *memRepo) ListWorks(ctx context.Context) ([]Work, error) {
	out := make([]Work, len(m.works))
	for i, w := range m.works {
		w.Content = nil
		out[i] = w
	}
	return out, nil
}

func (m *memRepo) GetArticleBySlug(ctx context.Context, slug string) (Article, bool, error) {
	if m.getErr != nil {
		return Article{}, false, m.getErr
	}
	for _, a := range m.articles {
		if a.Slug == slug && !m.missing[slug] {
			return a, true, nil
		}
	}
	return Article{}, false, nil
}

func (m *memRepo) GetWorkBySlug(ctx context.Context, slug string) (Work, bool, error) {
	for _, w := range m.works {
		if w.Slug == slug && !m.missing[slug] {
			return w, true, nil
		}
	}
	return Work{}, false, nil
}

func TestSnapshotCopiesBodies(t *testing.T) {
	src := &memRepo{
		articles: []Article{
			{ID: "a1", Slug: "one", Title: "One", PublishedAt: "2024-02-01", Content: json.RawMessage(`[1]`)},
			{ID: "a2", Slug: "two", Title: "Two", PublishedAt: "2024-01-01", Content: json.RawMessage(`[2]`)},
			{ID: "a3", Slug: "gone", Title: "Gone", PublishedAt: "2023-01-01"},
		},
		works: []Work{
			{ID: "w1", Slug: "site", Title: "Site", Content: json.RawMessage(`[3]`), CreatedAt: "2024-01-01T00:00:00Z"},
		},
		missing: map[string]bool{"gone": true},
	}
	dst := setupTestStore(t)
	ctx := context.Background()

	res, err := Snapshot(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, SnapshotResult{Articles: 2, Works: 1}, res)

	a, ok, err := dst.GetArticleBySlug(ctx, "two")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[2]`, string(a.Content))

	_, ok, err = dst.GetArticleBySlug(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, ok)

	w, ok, err := dst.GetWorkBySlug(ctx, "site")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[3]`, string(w.Content))
}

func TestSnapshotStopsOnSourceError(t *testing.T) {
	boom := &RepositoryError{Op: "get article", Err: errors.New("boom")}
	src := &memRepo{
		articles: []Article{{ID: "a1", Slug: "one", Title: "One"}},
		getErr:   boom,
	}
	dst := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, dst.ReplaceArticles(ctx, []Article{{ID: "old", Slug: "old", Title: "Old"}}))

	_, err := Snapshot(ctx, src, dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	got, err := dst.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "old", got[0].Slug)
}
