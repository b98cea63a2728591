package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	backendSanity     = "sanity"
	defaultAPIVersion = "2023-05-03"
	maxResponseSize   = 16 << 20
)

// ClientConfig holds the connection parameters of a Sanity dataset.
type ClientConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string // default "2023-05-03"
	UseCDN     bool
	Token      string // optional, for private datasets

	// BaseURL replaces the host derived from ProjectID and UseCDN.
	BaseURL string

	Timeout          time.Duration // default 10s
	BreakerThreshold uint32        // consecutive failures that open the breaker (default 5)
	BreakerCooldown  time.Duration // open duration before a trial request (default 30s)
}

func (c *ClientConfig) setDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = defaultAPIVersion
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.BreakerThreshold == 0 {
		c.BreakerThreshold = 5
	}
	if c.BreakerCooldown == 0 {
		c.BreakerCooldown = 30 * time.Second
	}
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client used for queries.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for query and breaker events.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// Client is the Repository backed by the Sanity HTTP query API.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[json.RawMessage]
	log      zerolog.Logger
}

// NewClient creates a Client for the dataset described by cfg.
func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	cfg.setDefaults()
	if cfg.Dataset == "" {
		return nil, errors.New("content: dataset is required")
	}
	base := cfg.BaseURL
	if base == "" {
		if cfg.ProjectID == "" {
			return nil, errors.New("content: project id is required")
		}
		host := "api.sanity.io"
		if cfg.UseCDN {
			host = "apicdn.sanity.io"
		}
		base = "https://" + cfg.ProjectID + "." + host
	}
	endpoint, err := url.JoinPath(base, "v"+strings.TrimPrefix(cfg.APIVersion, "v"), "data", "query", cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("content: build endpoint: %w", err)
	}

	c := &Client{
		endpoint: endpoint,
		token:    cfg.Token,
		http:     &http.Client{Timeout: cfg.Timeout},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = c.newBreaker(cfg)
	return c, nil
}

func (c *Client) newBreaker(cfg ClientConfig) *gobreaker.CircuitBreaker[json.RawMessage] {
	name := "content-store"
	breakerState.WithLabelValues(name).Set(0)
	return gobreaker.NewCircuitBreaker[json.RawMessage](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("content store breaker state change")
			breakerState.WithLabelValues(name).Set(float64(to))
		},
		IsSuccessful: func(err error) bool {
			return !tripsBreaker(err)
		},
	})
}

// ListArticles implements Repository.
func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	const op = "list articles"
	raw, err := c.query(ctx, op, listArticlesQuery, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Article](op, raw)
}

// ListWorks implements Repository.
func (c *Client) ListWorks(ctx context.Context) ([]Work, error) {
	const op = "list works"
	raw, err := c.query(ctx, op, listWorksQuery, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Work](op, raw)
}

// GetArticleBySlug implements Repository.
func (c *Client) GetArticleBySlug(ctx context.Context, slug string) (Article, bool, error) {
	const op = "get article"
	raw, err := c.query(ctx, op, articleBySlugQuery, map[string]string{"slug": slug})
	if err != nil {
		return Article{}, false, err
	}
	return decodeOne[Article](op, raw)
}

// GetWorkBySlug implements Repository.
func (c *Client) GetWorkBySlug(ctx context.Context, slug string) (Work, bool, error) {
	const op = "get work"
	raw, err := c.query(ctx, op, workBySlugQuery, map[string]string{"slug": slug})
	if err != nil {
		return Work{}, false, err
	}
	return decodeOne[Work](op, raw)
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
	Message string `json:"message"`
}

func (c *Client) query(ctx context.Context, op, groq string, params map[string]string) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.breaker.Execute(func() (json.RawMessage, error) {
		return c.do(ctx, groq, params)
	})
	observeQuery(backendSanity, op, start, err)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		c.log.Debug().Str("op", op).Err(err).Dur("took", time.Since(start)).Msg("content query failed")
		return nil, repoErr(op, err)
	}
	c.log.Debug().Str("op", op).Dur("took", time.Since(start)).Msg("content query")
	return raw, nil
}

func (c *Client) do(ctx context.Context, groq string, params map[string]string) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("query", groq)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, desc: describeError(body)}
	}

	var envelope queryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrMalformed, err)
	}
	return envelope.Result, nil
}

// statusError is a non-200 answer from the store.
type statusError struct {
	code int
	desc string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("store returned %d: %s", e.code, e.desc)
}

// tripsBreaker reports whether err says the store itself is unhealthy.
// Canceled callers, rejected queries (4xx) and undecodable payloads do not.
func tripsBreaker(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrMalformed) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	return true
}

func describeError(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if er.Error.Description != "" {
			return er.Error.Description
		}
		if er.Message != "" {
			return er.Message
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeList[T any](op string, raw json.RawMessage) ([]T, error) {
	items := []T{}
	if isNull(raw) {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, repoErr(op, fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	for i := range items {
		if err := Validate(items[i]); err != nil {
			return nil, repoErr(op, fmt.Errorf("%w: item %d: %w", ErrMalformed, i, err))
		}
	}
	return items, nil
}

func decodeOne[T any](op string, raw json.RawMessage) (T, bool, error) {
	var item T
	if isNull(raw) {
		return item, false, nil
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, false, repoErr(op, fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	if err := Validate(item); err != nil {
		var zero T
		return zero, false, repoErr(op, fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	return item, true, nil
}
