package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"gmaps_reviews/internal/adapters/gmaps"
	"gmaps_reviews/internal/app"
	"gmaps_reviews/internal/domain"
)

type Handlers struct {
	S domain.ReviewScraper
	Q *app.QueryService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reviews", h.scrapeReviews)
	s.mux.Get("/v1/places/{place}/reviews", h.listStoredReviews)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// scrapeEnvelope is the live-scrape response. Exactly one of Reviews and
// Entries is set depending on the requested output mode.
type scrapeEnvelope struct {
	PlaceID string          `json:"place_id"`
	Pages   int             `json:"pages"`
	Count   int             `json:"count"`
	Reviews []domain.Review `json:"reviews,omitempty"`
	Entries []any           `json:"entries,omitempty"`
}

func (h *Handlers) scrapeReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	locationURL := q.Get("url")
	if locationURL == "" {
		writeProblem(w, http.StatusBadRequest, "Missing URL", "url query parameter is required")
		return
	}
	clean, err := gmaps.ParseOutputMode(q.Get("clean"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid output mode", err.Error())
		return
	}

	res, err := h.S.Scrape(r.Context(), locationURL, domain.ScrapeOptions{
		Sort:  q.Get("sort"),
		Query: q.Get("q"),
		Pages: q.Get("pages"),
		Clean: clean,
	})
	if err != nil {
		switch {
		case errors.Is(err, gmaps.ErrInvalidURL),
			errors.Is(err, gmaps.ErrInvalidSortOrder),
			errors.Is(err, gmaps.ErrInvalidPageBudget):
			writeProblem(w, http.StatusBadRequest, "Invalid request", err.Error())
		case errors.Is(err, gmaps.ErrMalformedResponse), isStatusErr(err):
			writeProblem(w, http.StatusBadGateway, "Provider error", err.Error())
		default:
			writeProblem(w, http.StatusInternalServerError, "Scrape failed", "unexpected error")
		}
		return
	}

	env := scrapeEnvelope{PlaceID: res.PlaceID, Pages: res.Pages, Count: len(res.Entries)}
	if clean {
		env.Reviews = res.Reviews
		if env.Reviews == nil {
			env.Reviews = []domain.Review{}
		}
	} else {
		env.Entries = res.Entries
		if env.Entries == nil {
			env.Entries = []any{}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("failed to write scrape response")
	}
}

func isStatusErr(err error) bool {
	var se *gmaps.StatusError
	return errors.As(err, &se)
}

func (h *Handlers) listStoredReviews(w http.ResponseWriter, r *http.Request) {
	place := chi.URLParam(r, "place")
	if place == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid place", "place id is required")
		return
	}

	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	// Newest first; aligns with DB index on (place_id, published_at)
	out, err := h.Q.ListReviews(r.Context(), place, domain.PageQuery{Limit: limit, Sort: "-published"})
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "reviews not found")
		return
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listStoredReviews body")
	}
}
