package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"gmaps_reviews/internal/adapters/observability"
	"gmaps_reviews/internal/domain"
)

// IngestionService scrapes a place's reviews and persists the normalized
// records, keeping the read-side cache coherent.
type IngestionService struct {
	scraper domain.ReviewScraper
	repo    domain.ReviewRepository
	cache   domain.Cache
}

func NewIngestionService(s domain.ReviewScraper, r domain.ReviewRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{scraper: s, repo: r, cache: cache}
}

// IngestPlace runs one scrape in clean mode and upserts the result. Every
// run, failed or not, lands in the scrape_runs log; validation and
// first-page failures bubble up after being recorded.
func (s *IngestionService) IngestPlace(ctx context.Context, locationURL string, opts domain.ScrapeOptions) (int, error) {
	opts.Clean = true

	res, err := s.scraper.Scrape(ctx, locationURL, opts)
	if err != nil {
		// Place id may be unknown when URL validation failed; log the run
		// against the raw URL so the failure is still visible.
		_ = s.repo.LogRun(ctx, locationURL, 0, 0, err.Error())
		return 0, err
	}

	if len(res.Reviews) > 0 {
		if err := s.repo.UpsertReviews(ctx, res.PlaceID, res.Reviews); err != nil {
			return 0, fmt.Errorf("upsert reviews for %s: %w", res.PlaceID, err)
		}
	}
	if err := s.repo.LogRun(ctx, res.PlaceID, res.Pages, len(res.Reviews), ""); err != nil {
		log.Warn().Err(err).Str("place", res.PlaceID).Msg("scrape run log failed")
	}
	observability.ObserveScrape(res.Pages, len(res.Entries))

	if s.cache != nil {
		s.invalidateReviews(ctx, res.PlaceID)
	}
	return len(res.Reviews), nil
}

// invalidate the most common review cache variants
func (s *IngestionService) invalidateReviews(ctx context.Context, placeID string) {
	for _, lim := range []int{50, 100, 200} {
		_ = s.cache.Del(ctx, fmt.Sprintf("reviews:%s:%d:%s", placeID, lim, "-published"))
	}
}
