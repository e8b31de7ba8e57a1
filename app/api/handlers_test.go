package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/whitakerexclusives/listingd/app/journal"
	"github.com/whitakerexclusives/listingd/app/listing"
)

type fakeStore struct {
	listings []listing.Listing
	loadErr  error
}

func (s *fakeStore) Load() ([]listing.Listing, error) { return s.listings, s.loadErr }
func (s *fakeStore) Save([]listing.Listing) error     { return nil }

type fakeRecorder struct {
	counts map[string]int
}

func (r *fakeRecorder) Seen(string) (bool, error)  { return false, nil }
func (r *fakeRecorder) Record(journal.Entry) error { return nil }

func (r *fakeRecorder) OutcomeCounts() (map[string]int, error) {
	return r.counts, nil
}

func newTestServer(st *fakeStore, rec *fakeRecorder) http.Handler {
	return NewServer(NewHandler(st, rec, "test"))
}

func TestGetListings(t *testing.T) {
	st := &fakeStore{listings: []listing.Listing{
		{ID: "42-palm-ave", Address: "42 Palm Ave", Photos: []string{}, Status: listing.StatusActive, AddedDate: "2026-01-01"},
		{ID: "1-main-st", Address: "1 Main St", Photos: []string{}, Status: "sold", AddedDate: "2026-01-02"},
	}}
	server := newTestServer(st, &fakeRecorder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/listings.json", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Listing-Count"); got != "2" {
		t.Errorf("Expected X-Listing-Count 2, got '%s'", got)
	}

	var listings []listing.Listing
	if err := json.Unmarshal(w.Body.Bytes(), &listings); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if len(listings) != 2 || listings[0].ID != "42-palm-ave" {
		t.Errorf("Unexpected payload: %+v", listings)
	}
}

func TestGetListingsStoreError(t *testing.T) {
	server := newTestServer(&fakeStore{loadErr: fmt.Errorf("corrupt store")}, &fakeRecorder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/listings.json", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
}

func TestGetHealth(t *testing.T) {
	st := &fakeStore{listings: []listing.Listing{
		{ID: "42-palm-ave", Address: "42 Palm Ave", Photos: []string{}, Status: listing.StatusActive, AddedDate: "2026-01-01"},
	}}
	server := newTestServer(st, &fakeRecorder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if health["listings"] != float64(1) {
		t.Errorf("Expected 1 listing, got %v", health["listings"])
	}
}

func TestGetStats(t *testing.T) {
	st := &fakeStore{listings: []listing.Listing{
		{ID: "42-palm-ave", Address: "42 Palm Ave", Photos: []string{"a.jpg", "b.jpg"}, Status: listing.StatusActive, AddedDate: "2026-01-01"},
		{ID: "1-main-st", Address: "1 Main St", Photos: []string{}, Status: "sold", AddedDate: "2026-01-02"},
	}}
	rec := &fakeRecorder{counts: map[string]int{"added": 3, "listing_not_found": 1}}
	server := newTestServer(st, rec)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats", nil)
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}

	listings, ok := stats["listings"].(map[string]interface{})
	if !ok {
		t.Fatalf("Missing listings section: %v", stats)
	}
	if listings["total"] != float64(2) || listings["active"] != float64(1) || listings["photos"] != float64(2) {
		t.Errorf("Unexpected listing stats: %v", listings)
	}

	processed, ok := stats["processed"].(map[string]interface{})
	if !ok {
		t.Fatalf("Missing processed section: %v", stats)
	}
	if processed["total"] != float64(4) {
		t.Errorf("Expected 4 processed, got %v", processed["total"])
	}
}

func TestCORSHeaders(t *testing.T) {
	server := newTestServer(&fakeStore{}, &fakeRecorder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/listings.json", nil)
	server.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected CORS wildcard, got '%s'", got)
	}
}

func TestFavicon(t *testing.T) {
	server := newTestServer(&fakeStore{}, &fakeRecorder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/favicon.ico", nil)
	server.ServeHTTP(w, req)

	if w.Code != 204 {
		t.Errorf("Expected 204, got %d", w.Code)
	}
}
