package gmaps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
)

func testClient(base string) *Client {
	return NewClient(base, DefaultRequestConfig(), 100) // high RPS for tests
}

func TestFetchPage_StripsGuardAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(")]}'\n[null,\"\\\"CURSOR\\\"\",[[[\"rev-1\"]]]]"))
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	page, err := testClient(ts.URL).FetchPage(ctx, "0x1:0x2", SortNewest, "", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := pageCursor(page); got != "CURSOR" {
		t.Fatalf("cursor = %q, want CURSOR (quotes stripped)", got)
	}
	entries, ok := at(page, 2).([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("unexpected entries: %+v", at(page, 2))
	}
}

func TestFetchPage_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).FetchPage(context.Background(), "0x1:0x2", SortRelevant, "", "")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusTooManyRequests {
		t.Fatalf("expected StatusError 429, got %v", err)
	}
}

func TestFetchPage_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"guard missing", `[null,null,[]]`},
		{"bad JSON after guard", ")]}'\n[truncated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := testClient(ts.URL).FetchPage(context.Background(), "0x1:0x2", SortRelevant, "", "")
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestFetchPage_DefaultBase(t *testing.T) {
	c := testClient("")
	httpmock.ActivateNonDefault(c.hc)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet,
		`=~^https://www\.google\.com/maps/rpc/listugcposts\?authuser=0&hl=en&gl=in&pb=`,
		httpmock.NewStringResponder(200, ")]}'\n[null,null,[]]"))

	page, err := c.FetchPage(context.Background(), "0x1:0x2", SortHighestRating, "", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if entries, ok := at(page, 2).([]any); !ok || len(entries) != 0 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if httpmock.GetTotalCallCount() != 1 {
		t.Fatalf("expected exactly one provider call, got %d", httpmock.GetTotalCallCount())
	}
}
