package gmaps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"gmaps_reviews/internal/domain"
)

// pageDelay is the fixed pacing between successive page requests. It is
// backpressure against provider throttling, not a correctness mechanism.
const pageDelay = time.Second

// pagesUnbounded is the parsed form of the "max" page budget.
const pagesUnbounded = 0

// Scraper drives the full scrape flow: input validation, place-id
// extraction, the initial fetch and cursor-chained pagination. It is
// stateless across calls; each call owns its own accumulator and cursor,
// so concurrent scrapes need no coordination.
type Scraper struct {
	client *Client
	delay  time.Duration
}

func NewScraper(client *Client) *Scraper {
	return &Scraper{client: client, delay: pageDelay}
}

// SetPageDelay overrides inter-page pacing; tests set it to zero.
func (s *Scraper) SetPageDelay(d time.Duration) { s.delay = d }

// parsePages interprets a page budget: "max" or "" means unbounded,
// anything else must be a positive integer.
func parsePages(v string) (int, error) {
	if v == "" || v == "max" {
		return pagesUnbounded, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageBudget, v)
	}
	return n, nil
}

// Scrape validates the caller input, fetches the first page and paginates
// as far as the budget and the provider's cursors allow. A failure on the
// first page fails the call; a failure on a later page returns whatever
// accumulated so far.
func (s *Scraper) Scrape(ctx context.Context, locationURL string, opts domain.ScrapeOptions) (*domain.ScrapeResult, error) {
	if err := ValidateLocationURL(locationURL); err != nil {
		return nil, err
	}
	sort, err := ParseSort(opts.Sort)
	if err != nil {
		return nil, err
	}
	budget, err := parsePages(opts.Pages)
	if err != nil {
		return nil, err
	}
	placeID, err := ExtractPlaceID(locationURL)
	if err != nil {
		return nil, err
	}

	first, err := s.client.FetchPage(ctx, placeID, sort, "", opts.Query)
	if err != nil {
		log.Error().Err(err).Str("place", placeID).Msg("initial review page fetch failed")
		return nil, err
	}

	res := &domain.ScrapeResult{PlaceID: placeID, Pages: 1}
	entries, _ := at(first, 2).([]any)
	if len(entries) == 0 {
		// zero reviews, not an error
		return res, nil
	}
	res.Entries = entries

	if cursor := pageCursor(first); cursor != "" && budget != 1 {
		s.paginate(ctx, placeID, sort, opts.Query, budget, cursor, res)
	}

	if opts.Clean {
		res.Reviews = DecodeReviews(res.Entries)
	}
	log.Info().
		Str("place", placeID).
		Int("pages", res.Pages).
		Int("entries", len(res.Entries)).
		Msg("scrape finished")
	return res, nil
}

// paginate loops the cursor chain starting at page 2. Termination: cursor
// absent, budget exhausted, or a request failure — the last converts into a
// partial-success return rather than discarding accumulated pages.
func (s *Scraper) paginate(ctx context.Context, placeID string, sort Sort, query string, budget int, cursor string, res *domain.ScrapeResult) {
	page := 2
	for cursor != "" && (budget == pagesUnbounded || page <= budget) {
		log.Debug().Str("place", placeID).Int("page", page).Msg("fetching review page")
		data, err := s.client.FetchPage(ctx, placeID, sort, cursor, query)
		if err != nil {
			log.Warn().Err(err).Str("place", placeID).Int("page", page).
				Msg("pagination stopped early, returning accumulated pages")
			return
		}
		if more, ok := at(data, 2).([]any); ok {
			res.Entries = append(res.Entries, more...)
		}
		res.Pages = page

		cursor = pageCursor(data)
		if cursor == "" {
			return
		}
		if !sleepCtx(ctx, s.delay) {
			return
		}
		page++
	}
}

// pageCursor pulls the continuation token out of a raw page, stripping the
// quote characters the provider embeds around it.
func pageCursor(page []any) string {
	c, ok := at(page, 1).(string)
	if !ok {
		return ""
	}
	return strings.ReplaceAll(c, `"`, "")
}
