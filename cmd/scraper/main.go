package main

import (
	"context"
	"database/sql"
	"flag"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"gmaps_reviews/internal/adapters/gmaps"
	"gmaps_reviews/internal/adapters/observability"
	redisad "gmaps_reviews/internal/adapters/redis"
	"gmaps_reviews/internal/app"
	"gmaps_reviews/internal/domain"
	"gmaps_reviews/internal/shared"
	mysqlrepo "gmaps_reviews/internal/storage/mysql"
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "scraper")

	// place URLs come from the command line, else PLACE_URLS
	urls := flag.Args()
	if len(urls) == 0 {
		urls = cfg.PlaceURLs
	}
	if len(urls) == 0 {
		log.Fatal().Msg("no place URLs given (args or PLACE_URLS)")
	}

	log.Info().
		Str("base", cfg.GmapsBase).
		Int("workers", cfg.Workers).
		Int("places", len(urls)).
		Str("sort", cfg.ScrapeSort).
		Str("pages", cfg.ScrapePage).
		Msg("scraper starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	client := gmaps.NewClient(cfg.GmapsBase, gmaps.RequestConfig{
		Language:     cfg.GmapsLang,
		Region:       cfg.GmapsRegion,
		PageSize:     cfg.PageSize,
		SessionToken: cfg.SessionToken,
	}, 5)
	scraper := gmaps.NewScraper(client)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ing := app.NewIngestionService(scraper, repo, cache)

	opts := domain.ScrapeOptions{Sort: cfg.ScrapeSort, Pages: cfg.ScrapePage}
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, u := range urls {
		u := u

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(locationURL string) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := ing.IngestPlace(ctx, locationURL, opts)
			if err != nil {
				log.Warn().Str("url", locationURL).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Str("url", locationURL).Int("reviews", n).Msg("ingest ok")
		}(u)
	}

	wg.Wait()
	log.Info().Msg("scraping completed")
}
