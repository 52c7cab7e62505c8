package gmaps

import (
	"encoding/json"

	"gmaps_reviews/internal/domain"
)

// The provider's payload has no declared schema: fields live at fixed array
// positions and any branch may be missing. at follows an index path and
// returns nil at the first broken link; the typed getters below build on it
// so a single malformed field can never abort a record.

func at(v any, path ...int) any {
	for _, i := range path {
		arr, ok := v.([]any)
		if !ok || i < 0 || i >= len(arr) {
			return nil
		}
		v = arr[i]
	}
	return v
}

func atStr(v any, path ...int) *string {
	s, ok := at(v, path...).(string)
	if !ok {
		return nil
	}
	return &s
}

// atText is atStr with empty strings collapsed to nil, for fields where the
// provider serves "" to mean absent.
func atText(v any, path ...int) *string {
	s, ok := at(v, path...).(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func atF64(v any, path ...int) *float64 {
	switch n := at(v, path...).(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
	case float64:
		f := n
		return &f
	}
	return nil
}

func atI64(v any, path ...int) *int64 {
	switch n := at(v, path...).(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return &i
		}
	case float64:
		i := int64(n)
		return &i
	}
	return nil
}

// nonZero drops zero timestamps, which the provider serves as placeholders.
func nonZero(p *int64) *int64 {
	if p == nil || *p == 0 {
		return nil
	}
	return p
}

// DecodeReviews normalizes raw review entries in order. Entries whose review
// branch is missing or empty are skipped; inside a record every lookup is
// tolerant, so partial entries still yield a record with nil gaps.
func DecodeReviews(entries []any) []domain.Review {
	out := make([]domain.Review, 0, len(entries))
	for _, container := range entries {
		review := at(container, 0)
		if emptyBranch(review) {
			continue
		}
		out = append(out, decodeReview(review))
	}
	return out
}

// emptyBranch reports whether a review branch carries no data. The provider
// encodes absence as null, an empty array or an empty string depending on
// the entry.
func emptyBranch(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	}
	return false
}

func decodeReview(review any) domain.Review {
	r := domain.Review{
		ID: atStr(review, 0),
		Time: domain.Timestamps{
			Published:  atI64(review, 1, 2),
			LastEdited: atI64(review, 1, 3),
		},
		Author: domain.Author{
			Name:       atStr(review, 1, 4, 5, 0),
			ProfileURL: atStr(review, 1, 4, 5, 1),
			URL:        atStr(review, 1, 4, 5, 2, 0),
			ID:         atStr(review, 1, 4, 5, 3),
		},
		Content: domain.Content{
			Rating:   atF64(review, 2, 0, 0),
			Text:     atText(review, 2, 15, 0, 0),
			Language: atText(review, 2, 14, 0),
		},
		Source: atStr(review, 1, 13, 0),
	}

	if imgs, ok := at(review, 2, 2).([]any); ok {
		r.Images = make([]domain.Image, 0, len(imgs))
		for _, img := range imgs {
			r.Images = append(r.Images, decodeImage(img))
		}
	}

	// Presence of an owner response is judged on the response-text branch
	// alone; content extraction is a separate lookup so an empty text still
	// produces a non-nil response.
	if at(review, 3, 14, 0, 0) != nil {
		r.Response = &domain.Response{
			Text: atText(review, 3, 14, 0, 0),
			Time: domain.Timestamps{
				Published:  nonZero(atI64(review, 3, 1)),
				LastEdited: nonZero(atI64(review, 3, 2)),
			},
		}
	}
	return r
}

func decodeImage(img any) domain.Image {
	return domain.Image{
		ID:  atStr(img, 0),
		URL: atStr(img, 1, 6, 0),
		Size: domain.ImageSize{
			Width:  atI64(img, 1, 6, 2, 0),
			Height: atI64(img, 1, 6, 2, 1),
		},
		Location: domain.ImageLocation{
			Friendly: atStr(img, 1, 21, 3, 7, 0),
			Lat:      atF64(img, 1, 8, 0, 2),
			Long:     atF64(img, 1, 8, 0, 1),
		},
		Caption: atText(img, 1, 21, 3, 5, 0),
	}
}
