package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// ScrapeOptions mirrors the caller surface: sort-order name
// (case-insensitive), optional free-text search filter, page budget
// ("max", "" or a positive integer) and the output mode. When Clean is
// false only the raw entries are populated on the result.
type ScrapeOptions struct {
	Sort  string
	Query string
	Pages string
	Clean bool
}

// ScrapeResult is the outcome of one scrape call. Entries holds the raw
// positional arrays exactly as served; Reviews is populated in clean mode.
// Pages counts the pages actually fetched with review data.
type ScrapeResult struct {
	PlaceID string
	Pages   int
	Entries []any
	Reviews []Review
}

type ReviewScraper interface {
	Scrape(ctx context.Context, locationURL string, opts ScrapeOptions) (*ScrapeResult, error)
}

type ReviewRepository interface {
	// Write paths
	UpsertReviews(ctx context.Context, placeID string, rs []Review) error
	LogRun(ctx context.Context, placeID string, pages, count int, runErr string) error

	// Read paths
	ListReviews(ctx context.Context, placeID string, pg PageQuery) (ReviewsPage, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type PageQuery struct {
	Limit int
	Sort  string
}

type ReviewsPage struct {
	Items []Review `json:"items"`
}
