package gmaps

import (
	"errors"
	"strings"
	"testing"
)

// observed in real shared links; the place id is the second !1s segment form
const baysideURL = "https://www.google.com/maps/place/Bayside+Village/@37.7867949,-122.3949672,15.11z/data=!4m10!1m2!2m1!1sbay+side+apartments!3m6!1s0x8085807757501497:0x25374fff35068ae6!8m2!3d37.785173!4d-122.3900101!15sChNiYXkgc2lkZSBhcGFydG1lbnRzWhUiE2JheSBzaWRlIGFwYXJ0bWVudHOSARdhcGFydG1lbnRfcmVudGFsX2FnZW5jeaoBRgoJL20vMDFuYmx0EAEyHhABIhp30pRDFlEi-t0bMoa9IccZcKYz7uZKr-gvCzIXEAIiE2JheSBzaWRlIGFwYXJ0bWVudHPgAQA!16s%2Fg%2F1thl1232?entry=ttu"

func TestExtractPlaceID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "single occurrence",
			url:  baysideURL,
			want: "0x8085807757501497:0x25374fff35068ae6",
		},
		{
			name: "second occurrence preferred",
			url:  "https://www.google.com/maps/place/X/data=!1s0x1111:0x2222!8m2!1s0x3333:0x4444!16s",
			want: "0x3333:0x4444",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPlaceID(tt.url)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tt.want {
				t.Fatalf("place id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractPlaceID_NoMarker(t *testing.T) {
	_, err := ExtractPlaceID("https://www.google.com/maps/place/NoData")
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestValidateLocationURL(t *testing.T) {
	if err := ValidateLocationURL(baysideURL); err != nil {
		t.Fatalf("valid URL rejected: %v", err)
	}
	bad := []string{
		"https://maps.example.com/maps/place/X",
		"https://www.google.com/search?q=x",
		"://not-a-url",
	}
	for _, u := range bad {
		if err := ValidateLocationURL(u); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL for %q, got %v", u, err)
		}
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in   string
		want Sort
	}{
		{"relevant", SortRelevant},
		{"RELEVANT", SortRelevant},
		{"relevent", SortRelevant}, // historical misspelling
		{"", SortRelevant},
		{"newest", SortNewest},
		{"Newest", SortNewest},
		{"highest_rating", SortHighestRating},
		{"HIGHEST_RATING", SortHighestRating},
		{"lowest_rating", SortLowestRating},
	}
	for _, tt := range tests {
		got, err := ParseSort(tt.in)
		if err != nil {
			t.Fatalf("ParseSort(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSort(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"best", "oldest", "rating", "relevantest"} {
		if _, err := ParseSort(bad); !errors.Is(err, ErrInvalidSortOrder) {
			t.Fatalf("expected ErrInvalidSortOrder for %q, got %v", bad, err)
		}
	}
}

func TestParsePages(t *testing.T) {
	for in, want := range map[string]int{"max": pagesUnbounded, "": pagesUnbounded, "1": 1, "7": 7} {
		got, err := parsePages(in)
		if err != nil {
			t.Fatalf("parsePages(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("parsePages(%q) = %d, want %d", in, got, want)
		}
	}
	for _, bad := range []string{"0", "-3", "many", "1.5"} {
		if _, err := parsePages(bad); !errors.Is(err, ErrInvalidPageBudget) {
			t.Fatalf("expected ErrInvalidPageBudget for %q, got %v", bad, err)
		}
	}
}

func TestParseOutputMode(t *testing.T) {
	for in, want := range map[string]bool{"": false, "true": true, "false": false, "1": true, "0": false} {
		got, err := ParseOutputMode(in)
		if err != nil {
			t.Fatalf("ParseOutputMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseOutputMode(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseOutputMode("yes please"); !errors.Is(err, ErrInvalidOutputMode) {
		t.Fatalf("expected ErrInvalidOutputMode, got %v", err)
	}
}

func TestListURL_Pinned(t *testing.T) {
	c := NewClient("", DefaultRequestConfig(), 5)
	got := c.listURL("0x8085807757501497:0x25374fff35068ae6", SortNewest, "", "")
	want := "https://www.google.com/maps/rpc/listugcposts?authuser=0&hl=en&gl=in&pb=" +
		"!1m7!1s0x8085807757501497:0x25374fff35068ae6!3s!6m4!4m1!1e1!4m1!1e3!2m2!1i10!2s" +
		"!5m2!1sBnOwZvzePPfF4-EPy7LK0Ak!7e81!8m5!1b1!2b1!3b1!5b1!7b1" +
		"!11m6!1e3!2e1!3sen!4slk!6m1!1i2!13m1!1e2"
	if got != want {
		t.Fatalf("request URL mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestListURL_CursorAndFilter(t *testing.T) {
	c := NewClient("", DefaultRequestConfig(), 5)
	got := c.listURL("0x1:0x2", SortRelevant, "CAESY0NBRVE", "coffee")
	for _, frag := range []string{"!3scoffee!", "!2sCAESY0NBRVE!5m2", "!13m1!1e1"} {
		if !strings.Contains(got, frag) {
			t.Fatalf("URL %s missing fragment %q", got, frag)
		}
	}
}
