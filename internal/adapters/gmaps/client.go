package gmaps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"gmaps_reviews/internal/adapters/observability"
)

// DefaultBaseURL is the provider host; tests point it at a local server.
const DefaultBaseURL = "https://www.google.com"

// guard is the anti-hijacking prefix the provider emits before the JSON
// payload. Everything up to and including its first occurrence is discarded.
const guard = ")]}'"

// RequestConfig carries the ambient constants baked into every request.
// The reference traffic hardcodes these; they are kept overridable because
// the session token in particular may need to vary per deployment.
type RequestConfig struct {
	Language     string
	Region       string
	PageSize     int
	SessionToken string
}

func DefaultRequestConfig() RequestConfig {
	return RequestConfig{
		Language:     "en",
		Region:       "in",
		PageSize:     10,
		SessionToken: "BnOwZvzePPfF4-EPy7LK0Ak",
	}
}

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
	cfg  RequestConfig
}

func NewClient(base string, cfg RequestConfig, rps int) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	def := DefaultRequestConfig()
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.Region == "" {
		cfg.Region = def.Region
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.SessionToken == "" {
		cfg.SessionToken = def.SessionToken
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
		cfg:  cfg,
	}
}

// FetchPage performs one GET against the review-listing RPC and returns the
// untyped top-level array. Index 1 holds the next-page cursor and index 2
// the raw review entries; both may be absent. Numbers are decoded with
// UseNumber so raw passthrough keeps timestamps exact.
func (c *Client) FetchPage(ctx context.Context, placeID string, sort Sort, cursor, query string) ([]any, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL(placeID, sort, cursor, query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "gmaps-reviews/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("gmaps", "listugcposts", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	i := bytes.Index(body, []byte(guard))
	if i < 0 {
		return nil, fmt.Errorf("%w: guard prefix missing", ErrMalformedResponse)
	}

	dec := json.NewDecoder(bytes.NewReader(body[i+len(guard):]))
	dec.UseNumber()
	var page []any
	if err := dec.Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return page, nil
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
