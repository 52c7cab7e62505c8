package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// provider request constants, overridable per deployment
	GmapsBase    string
	GmapsLang    string
	GmapsRegion  string
	PageSize     int
	SessionToken string

	// batch scraper knobs
	Workers    int
	PlaceURLs  []string
	ScrapeSort string
	ScrapePage string // "max" or a positive integer

	CacheTTL time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/gmaps?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisDB:      atoi("REDIS_DB", 0),
		RedisPass:    env("REDIS_PASSWORD", ""),
		GmapsBase:    env("GMAPS_BASE_URL", "https://www.google.com"),
		GmapsLang:    env("GMAPS_HL", "en"),
		GmapsRegion:  env("GMAPS_GL", "in"),
		PageSize:     atoi("GMAPS_PAGE_SIZE", 10),
		SessionToken: env("GMAPS_SESSION_TOKEN", "BnOwZvzePPfF4-EPy7LK0Ak"),
		Workers:      atoi("SCRAPE_WORKERS", 4),
		PlaceURLs:    splitList(os.Getenv("PLACE_URLS")),
		ScrapeSort:   env("SCRAPE_SORT", "newest"),
		ScrapePage:   env("SCRAPE_PAGES", "max"),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if len(c.PlaceURLs) == 0 {
		log.Warn().Msg("PLACE_URLS is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated env value, dropping empty items.
func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
