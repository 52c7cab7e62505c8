package mysql

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewsPrefix = "INSERT INTO reviews\n  (place_id, review_id, author, rating, lang, `text`, source, published_at, edited_at, has_response, doc)\nVALUES "

// COALESCE keeps the old value when a rescrape serves a sparser entry.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  author       = COALESCE(VALUES(author), reviews.author),\n" +
	"  rating       = COALESCE(VALUES(rating), reviews.rating),\n" +
	"  lang         = COALESCE(VALUES(lang), reviews.lang),\n" +
	"  `text`       = COALESCE(VALUES(`text`), reviews.`text`),\n" +
	"  source       = COALESCE(VALUES(source), reviews.source),\n" +
	"  published_at = COALESCE(VALUES(published_at), reviews.published_at),\n" +
	"  edited_at    = COALESCE(VALUES(edited_at), reviews.edited_at),\n" +
	"  has_response = VALUES(has_response),\n" +
	"  doc          = VALUES(doc),\n" +
	"  updated_at   = CURRENT_TIMESTAMP\n"

const insertRunSQL = `
INSERT INTO scrape_runs (place_id, pages, review_count, error)
VALUES (?, ?, ?, ?)
`

const listReviewsSQL = `
SELECT doc
FROM reviews
WHERE place_id = ?
ORDER BY published_at DESC, review_id DESC
LIMIT ?
`
