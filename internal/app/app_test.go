package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gmaps_reviews/internal/app"
	"gmaps_reviews/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	rp       domain.ReviewsPage
	upserted map[string][]domain.Review
	runs     []string
}

func (f *fakeRepo) UpsertReviews(ctx context.Context, placeID string, rs []domain.Review) error {
	if f.upserted == nil {
		f.upserted = map[string][]domain.Review{}
	}
	f.upserted[placeID] = append(f.upserted[placeID], rs...)
	return nil
}
func (f *fakeRepo) LogRun(ctx context.Context, placeID string, pages, count int, runErr string) error {
	f.runs = append(f.runs, placeID)
	return nil
}
func (f *fakeRepo) ListReviews(ctx context.Context, placeID string, pg domain.PageQuery) (domain.ReviewsPage, error) {
	return f.rp, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok2 := dst.(*domain.ReviewsPage); ok2 {
		*d = v.(domain.ReviewsPage)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	return nil
}

type fakeScraper struct {
	res *domain.ScrapeResult
	err error
}

func (f *fakeScraper) Scrape(ctx context.Context, locationURL string, opts domain.ScrapeOptions) (*domain.ScrapeResult, error) {
	return f.res, f.err
}

// ---- tests ----

func TestIngestPlace_UpsertsAndInvalidates(t *testing.T) {
	sc := &fakeScraper{res: &domain.ScrapeResult{
		PlaceID: "0x1:0x2",
		Pages:   2,
		Entries: []any{"e1", "e2"},
		Reviews: []domain.Review{{ID: ptr("r-1")}, {ID: ptr("r-2")}},
	}}
	repo := &fakeRepo{}
	cache := &fakeCache{}
	ing := app.NewIngestionService(sc, repo, cache)

	n, err := ing.IngestPlace(context.Background(), "https://www.google.com/maps/place/x", domain.ScrapeOptions{Sort: "newest"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 ingested reviews, got %d", n)
	}
	if len(repo.upserted["0x1:0x2"]) != 2 {
		t.Fatalf("expected upsert for place, got %+v", repo.upserted)
	}
	if len(repo.runs) != 1 || repo.runs[0] != "0x1:0x2" {
		t.Fatalf("expected one run log, got %+v", repo.runs)
	}
	if len(cache.dels) == 0 {
		t.Fatalf("expected review cache invalidation")
	}
}

func TestIngestPlace_ScrapeFailureLogged(t *testing.T) {
	boom := errors.New("boom")
	sc := &fakeScraper{err: boom}
	repo := &fakeRepo{}
	ing := app.NewIngestionService(sc, repo, nil)

	_, err := ing.IngestPlace(context.Background(), "https://www.google.com/maps/place/x", domain.ScrapeOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected scrape error, got %v", err)
	}
	if len(repo.runs) != 1 {
		t.Fatalf("expected failed run to be logged, got %+v", repo.runs)
	}
}

func TestListReviews_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{
		rp: domain.ReviewsPage{Items: []domain.Review{
			{ID: ptr("r-1"), Author: domain.Author{Name: ptr("Ana")}},
		}},
	}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	out, err := q.ListReviews(context.Background(), "p1", domain.PageQuery{Limit: 10, Sort: "-published"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out.Items) != 1 || deref(out.Items[0].Author.Name) != "Ana" {
		t.Fatalf("unexpected reviews: %+v", out.Items)
	}

	// Change repo, call again -> should come from cache
	repo.rp.Items[0].Author.Name = ptr("Changed")
	out2, _ := q.ListReviews(context.Background(), "p1", domain.PageQuery{Limit: 10, Sort: "-published"})
	if deref(out2.Items[0].Author.Name) != "Ana" {
		t.Fatalf("expected cached author Ana, got %s", deref(out2.Items[0].Author.Name))
	}
}

func ptr[T any](v T) *T { return &v }
func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
