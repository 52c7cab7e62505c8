package gmaps

import (
	"errors"
	"fmt"
	"strconv"
)

// Validation errors are reported before any network I/O is attempted.
var (
	ErrInvalidURL        = errors.New("gmaps: invalid location URL")
	ErrInvalidSortOrder  = errors.New("gmaps: invalid sort order")
	ErrInvalidPageBudget = errors.New("gmaps: invalid page budget")
	ErrInvalidOutputMode = errors.New("gmaps: invalid output mode")

	// ErrMalformedResponse covers a missing anti-hijacking guard prefix as
	// well as a JSON payload that fails to parse.
	ErrMalformedResponse = errors.New("gmaps: malformed response")
)

// StatusError is a non-success HTTP status from the provider. The transport
// never retries; pagination decides what to do with it.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gmaps: unexpected status %d", e.Code)
}

// ParseOutputMode interprets a textual clean/raw flag as used by the HTTP
// and CLI surfaces. Empty input means raw output.
func ParseOutputMode(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidOutputMode, v)
	}
	return b, nil
}
