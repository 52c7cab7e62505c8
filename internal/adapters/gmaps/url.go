package gmaps

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Sort maps a sort-order name to the fixed integer the provider expects.
type Sort int

const (
	SortRelevant Sort = iota + 1
	SortNewest
	SortHighestRating
	SortLowestRating
)

// ParseSort resolves a sort-order name case-insensitively. The empty string
// and the historical "relevent" misspelling both resolve to SortRelevant.
func ParseSort(name string) (Sort, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "relevant", "relevent":
		return SortRelevant, nil
	case "newest":
		return SortNewest, nil
	case "highest_rating":
		return SortHighestRating, nil
	case "lowest_rating":
		return SortLowestRating, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSortOrder, name)
}

// placeIDPattern marks an encoded place identifier inside a shareable maps
// URL. A URL can embed more than one occurrence.
var placeIDPattern = regexp.MustCompile(`!1s([a-zA-Z0-9_:]+)!`)

// ExtractPlaceID recovers the provider-internal place identifier from a
// shareable location URL. When the URL carries a second occurrence with
// non-empty content that one wins; this mirrors the observed URL format,
// where the second marker is the canonical hex pair.
func ExtractPlaceID(locationURL string) (string, error) {
	m := placeIDPattern.FindAllStringSubmatch(locationURL, -1)
	if len(m) == 0 {
		return "", fmt.Errorf("%w: place id not found", ErrInvalidURL)
	}
	if len(m) > 1 && m[1][1] != "" {
		return m[1][1], nil
	}
	return m[0][1], nil
}

// ValidateLocationURL accepts only URLs for the provider's place pages.
func ValidateLocationURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host != "www.google.com" || !strings.HasPrefix(u.Path, "/maps/place/") {
		return fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return nil
}

// listURL assembles the listugcposts RPC URL. The pb blob is positional:
// place id, search filter, page size, page cursor, session token and sort
// code all ride in fixed segments; empty cursor/filter stay as empty
// segments rather than being omitted.
func (c *Client) listURL(placeID string, sort Sort, cursor, query string) string {
	return fmt.Sprintf(
		"%s/maps/rpc/listugcposts?authuser=0&hl=%s&gl=%s&pb="+
			"!1m7!1s%s!3s%s!6m4!4m1!1e1!4m1!1e3!2m2!1i%d!2s%s"+
			"!5m2!1s%s!7e81!8m5!1b1!2b1!3b1!5b1!7b1"+
			"!11m6!1e3!2e1!3sen!4slk!6m1!1i2!13m1!1e%d",
		c.base, c.cfg.Language, c.cfg.Region,
		placeID, query, c.cfg.PageSize, cursor,
		c.cfg.SessionToken, sort,
	)
}
