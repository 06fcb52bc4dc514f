package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestParseViewerCoords(t *testing.T) {
	c := newTestContext(t, "/api/attractions?lat=35.5&lng=-97.25")

	lat, lng, err := parseViewerCoords(c)
	if err != nil {
		t.Fatalf("parseViewerCoords returned error: %v", err)
	}
	if lat == nil || *lat != 35.5 {
		t.Fatalf("expected lat 35.5, got %v", lat)
	}
	if lng == nil || *lng != -97.25 {
		t.Fatalf("expected lng -97.25, got %v", lng)
	}
}

func TestParseViewerCoordsAbsent(t *testing.T) {
	c := newTestContext(t, "/api/attractions")

	lat, lng, err := parseViewerCoords(c)
	if err != nil {
		t.Fatalf("parseViewerCoords returned error: %v", err)
	}
	if lat != nil || lng != nil {
		t.Fatalf("expected nil coords, got lat=%v lng=%v", lat, lng)
	}
}

func TestParseViewerCoordsInvalid(t *testing.T) {
	c := newTestContext(t, "/api/attractions?lat=abc&lng=-97.25")

	if _, _, err := parseViewerCoords(c); err == nil {
		t.Fatal("expected error for non-numeric lat, got nil")
	}
}

func TestParsePagination(t *testing.T) {
	c := newTestContext(t, "/api/users/1/followers?limit=5&offset=10")

	limit, offset := parsePagination(c, 20, 0)
	if limit != 5 {
		t.Fatalf("expected limit 5, got %d", limit)
	}
	if offset != 10 {
		t.Fatalf("expected offset 10, got %d", offset)
	}
}

func TestParsePaginationDefaults(t *testing.T) {
	c := newTestContext(t, "/api/users/1/followers?limit=-3&offset=junk")

	limit, offset := parsePagination(c, 20, 0)
	if limit != 20 {
		t.Fatalf("expected default limit 20, got %d", limit)
	}
	if offset != 0 {
		t.Fatalf("expected default offset 0, got %d", offset)
	}
}

func TestQueryStringPtr(t *testing.T) {
	c := newTestContext(t, "/api/attractions?state=OK&city=%20%20")

	if got := queryStringPtr(c, "state"); got == nil || *got != "OK" {
		t.Fatalf("expected state OK, got %v", got)
	}
	if got := queryStringPtr(c, "city"); got != nil {
		t.Fatalf("expected nil for blank city, got %q", *got)
	}
	if got := queryStringPtr(c, "search"); got != nil {
		t.Fatalf("expected nil for absent search, got %q", *got)
	}
}
