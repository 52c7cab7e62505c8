package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"gmaps_reviews/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertReviews flattens the queryable fields into columns and keeps the
// full normalized record as a JSON doc. Records without an identifier
// cannot be keyed and are skipped.
func (r *Repo) UpsertReviews(ctx context.Context, placeID string, rs []domain.Review) error {
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*11)
	for _, rv := range rs {
		if rv.ID == nil || *rv.ID == "" {
			log.Warn().Str("place", placeID).Msg("review without identifier skipped")
			continue
		}
		doc, err := json.Marshal(rv)
		if err != nil {
			log.Error().Err(err).Str("place", placeID).Str("review", *rv.ID).Msg("marshal review failed")
			continue
		}
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			placeID,
			*rv.ID,
			valStr(rv.Author.Name),
			valF64(rv.Content.Rating),
			valStr(rv.Content.Language),
			valStr(rv.Content.Text),
			valStr(rv.Source),
			valInt64(rv.Time.Published),
			valInt64(rv.Time.LastEdited),
			rv.Response != nil,
			string(doc),
		)
	}
	if len(values) == 0 {
		return nil
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) LogRun(ctx context.Context, placeID string, pages, count int, runErr string) error {
	var errCol any
	if runErr != "" {
		errCol = runErr
	}
	_, err := r.db.ExecContext(ctx, insertRunSQL, placeID, pages, count, errCol)
	return err
}

func (r *Repo) ListReviews(ctx context.Context, placeID string, pg domain.PageQuery) (domain.ReviewsPage, error) {
	limit := pg.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, placeID, limit)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return domain.ReviewsPage{}, err
		}
		var rv domain.Review
		if err := json.Unmarshal(doc, &rv); err != nil {
			log.Warn().Err(err).Str("place", placeID).Msg("stored review doc unreadable, skipped")
			continue
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return domain.ReviewsPage{}, err
	}
	return domain.ReviewsPage{Items: out}, nil
}
