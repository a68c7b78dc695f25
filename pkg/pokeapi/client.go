package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/notjagan/pokeguide/pkg/model"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	DefaultTimeout = 10 * time.Second

	maxBodySize = 16 << 20
)

type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
}

// Client talks to the read-only upstream API. Every request waits on a
// shared token bucket.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *slog.Logger
}

func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("error while parsing upstream base url: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: opts.Timeout},
		limiter:   rate.NewLimiter(limit, burst),
		userAgent: opts.UserAgent,
		logger:    logger,
	}, nil
}

// ResourcePath joins a namespace and its parameters into an API path,
// e.g. ("pokemon", 25) -> "pokemon/25".
func ResourcePath(namespace string, params ...any) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, namespace)
	for _, p := range params {
		parts = append(parts, url.PathEscape(fmt.Sprint(p)))
	}
	return strings.Join(parts, "/")
}

func (c *Client) endpoint(path, rawQuery string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	u.RawQuery = rawQuery
	return u.String()
}

func (c *Client) do(ctx context.Context, path, rawQuery string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("error while waiting for upstream rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, rawQuery), nil)
	if err != nil {
		return nil, fmt.Errorf("error while creating upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetRaw fetches one resource and returns its JSON body. A 404 is terminal
// (model.ErrNotFound); transport failures and other non-2xx answers are
// model.ErrUpstreamUnavailable.
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	resp, err := c.do(ctx, path, "")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %w", model.ErrUpstreamUnavailable, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("upstream request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s: status %d", model.ErrUpstreamUnavailable, path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: error while reading body: %w", model.ErrUpstreamUnavailable, path, err)
	}
	return body, nil
}

// Response is an upstream answer passed through unchanged.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Forward performs a GET on behalf of the reverse proxy. Any status is
// returned as-is; only transport failures are errors.
func (c *Client) Forward(ctx context.Context, path, rawQuery string) (*Response, error) {
	resp, err := c.do(ctx, path, rawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrUpstreamUnavailable, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: error while reading body: %w", model.ErrUpstreamUnavailable, path, err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header.Clone(), Body: body}, nil
}

// Decode unmarshals a raw payload. A body that does not parse counts as an
// upstream failure.
func Decode[T any](raw []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: error while decoding payload: %w", model.ErrUpstreamUnavailable, err)
	}
	return &v, nil
}
