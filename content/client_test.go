package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*ClientConfig)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{
		ProjectID: "abc123",
		Dataset:   "portfolio",
		BaseURL:   srv.URL,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func writeResult(w http.ResponseWriter, result string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ms":3,"query":"…","result":` + result + `}`))
}

func TestNewClientEndpoint(t *testing.T) {
	c, err := NewClient(ClientConfig{ProjectID: "ru03qs5h", Dataset: "portfolio"})
	require.NoError(t, err)
	assert.Equal(t, "https://ru03qs5h.api.sanity.io/v2023-05-03/data/query/portfolio", c.endpoint)

	c, err = NewClient(ClientConfig{ProjectID: "ru03qs5h", Dataset: "portfolio", UseCDN: true, APIVersion: "v2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "https://ru03qs5h.apicdn.sanity.io/v2024-01-01/data/query/portfolio", c.endpoint)

	_, err = NewClient(ClientConfig{Dataset: "portfolio"})
	assert.Error(t, err)
	_, err = NewClient(ClientConfig{ProjectID: "x"})
	assert.Error(t, err)
}

func TestClientListArticles(t *testing.T) {
	var gotQuery, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		writeResult(w, `[
			{"_id":"a1","title":"Newest","slug":"newest","publishedAt":"2024-03-01","mainCategory":"backend","tags":["go","sql"],"readingTime":7},
			{"_id":"a2","title":"Older","slug":"older","publishedAt":"2023-01-01","tags":null}
		]`)
	})

	articles, err := c.ListArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "/v2023-05-03/data/query/portfolio", gotPath)
	assert.Contains(t, gotQuery, `*[_type == "blog"]`)
	assert.Contains(t, gotQuery, "order(publishedAt desc)")
	assert.NotContains(t, gotQuery, "content")

	assert.Equal(t, "newest", articles[0].Slug)
	assert.Equal(t, []string{"go", "sql"}, articles[0].Tags)
	assert.Equal(t, 7, articles[0].ReadingTime)
	assert.Equal(t, "older", articles[1].Slug)
	assert.Empty(t, articles[1].Tags)
}

func TestClientListWorksOrderedByCreation(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		writeResult(w, `[{"_id":"w1","title":"Site","slug":"site","technologies":["go","htmx"],"_createdAt":"2024-01-02T10:00:00Z"}]`)
	})

	works, err := c.ListWorks(context.Background())
	require.NoError(t, err)
	require.Len(t, works, 1)
	assert.Contains(t, gotQuery, `*[_type == "project"]`)
	assert.Contains(t, gotQuery, "order(_createdAt desc)")
	assert.Equal(t, []string{"go", "htmx"}, works[0].Technologies)
	assert.Equal(t, "2024-01-02T10:00:00Z", works[0].Date())
}

func TestClientListNullResultIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, `null`)
	})
	articles, err := c.ListArticles(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestClientGetArticleBySlug(t *testing.T) {
	var gotSlug, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSlug = r.URL.Query().Get("$slug")
		gotQuery = r.URL.Query().Get("query")
		writeResult(w, `{"_id":"a1","title":"Hello","slug":"hello-world","content":[{"_type":"block","children":[]}]}`)
	})

	a, ok, err := c.GetArticleBySlug(context.Background(), "hello-world")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"hello-world"`, gotSlug)
	assert.Contains(t, gotQuery, "slug.current == $slug][0]")
	assert.Contains(t, gotQuery, "content")
	assert.Equal(t, "Hello", a.Title)
	assert.JSONEq(t, `[{"_type":"block","children":[]}]`, string(a.Content))
}

func TestClientGetNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, `null`)
	})

	_, ok, err := c.GetArticleBySlug(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.GetWorkBySlug(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientSendsToken(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeResult(w, `[]`)
	}, func(cfg *ClientConfig) { cfg.Token = "sk-test" })

	_, err := c.ListWorks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-test", auth)
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"description":"boom","type":"internal"}}`, false},
		{"bad query", http.StatusBadRequest, `{"error":{"description":"expected '}'","type":"queryParseError"}}`, false},
		{"invalid json", http.StatusOK, `{"result": [`, true},
		{"missing required field", http.StatusOK, `{"result":[{"_id":"a1","slug":"no-title"}]}`, true},
		{"unknown category", http.StatusOK, `{"result":[{"_id":"a1","slug":"s","title":"t","mainCategory":"gardening"}]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.ListArticles(context.Background())
			require.Error(t, err)

			var repoErr *RepositoryError
			require.True(t, errors.As(err, &repoErr))
			assert.Equal(t, "list articles", repoErr.Op)
			assert.Equal(t, tt.malformed, errors.Is(err, ErrMalformed))
		})
	}
}

func TestClientErrorIncludesStoreDescription(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"description":"Unauthorized - Session not found","type":"httpError"}}`))
	})
	_, _, err := c.GetWorkBySlug(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "401"))
	assert.True(t, strings.Contains(err.Error(), "Session not found"))
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(ClientConfig{Dataset: "portfolio", BaseURL: url})
	require.NoError(t, err)

	_, err = c.ListArticles(context.Background())
	var repoErr *RepositoryError
	require.True(t, errors.As(err, &repoErr))
}

func TestClientBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, func(cfg *ClientConfig) { cfg.BreakerThreshold = 2 })

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := c.ListWorks(ctx)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnavailable))
	}

	_, err := c.ListWorks(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	var repoErr *RepositoryError
	assert.True(t, errors.As(err, &repoErr))
	assert.Equal(t, int32(2), hits.Load())
}

func TestClientCanceledContextDoesNotTripBreaker(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeResult(w, `[]`)
	}, func(cfg *ClientConfig) { cfg.BreakerThreshold = 1 })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListArticles(ctx)
	require.Error(t, err)

	_, err = c.ListArticles(context.Background())
	require.NoError(t, err)
}

func TestClientRejectedQueriesDoNotTripBreaker(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 3 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"description":"expected '}'","type":"queryParseError"}}`))
			return
		}
		writeResult(w, `[]`)
	}, func(cfg *ClientConfig) { cfg.BreakerThreshold = 1 })

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.ListArticles(ctx)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnavailable), "call %d rejected by open breaker", i)
	}
	_, err := c.ListArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(4), hits.Load())
}

func TestTripsBreaker(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"bad request", &statusError{code: http.StatusBadRequest}, false},
		{"unauthorized", &statusError{code: http.StatusUnauthorized}, false},
		{"malformed", ErrMalformed, false},
		{"server error", &statusError{code: http.StatusInternalServerError}, true},
		{"bad gateway", &statusError{code: http.StatusBadGateway}, true},
		{"transport", errors.New("dial tcp: connection refused"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tripsBreaker(tt.err))
		})
	}
}
