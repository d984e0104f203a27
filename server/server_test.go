package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vrm-crawler/config"
	"vrm-crawler/utils"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{OutputDir: dir, MaxPages: 10}
	srv := New(cfg, utils.NewLogger(false), func([]string, int) error { return nil })
	return srv, dir
}

func TestDownloadRejectsBadFilenames(t *testing.T) {
	srv, _ := testServer(t)

	bad := []string{
		"notes.txt",
		"vrm_listings_2026-08-28.csv",
		"..%2Fvrm_listings_2026-08-28.xlsx",
		"vrm_listings_..%2F..%2Fetc.xlsx",
	}
	for _, name := range bad {
		req := httptest.NewRequest(http.MethodGet, "/download/"+name, nil)
		rec := httptest.NewRecorder()
		srv.handleDownload(rec, req)
		if rec.Code == http.StatusOK {
			t.Errorf("%s: expected rejection, got 200", name)
		}
	}
}

func TestDownloadServesReport(t *testing.T) {
	srv, dir := testServer(t)

	name := "vrm_listings_2026-08-28.xlsx"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0644); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/download/"+name, nil)
	rec := httptest.NewRecorder()
	srv.handleDownload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, name) {
		t.Errorf("content disposition: %q", got)
	}
}

func TestScrapeRejectsUnknownStates(t *testing.T) {
	srv, _ := testServer(t)

	form := url.Values{"states": {"XX", "YY"}}
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.handleScrape(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "msg=") {
		t.Errorf("expected warning message in redirect, got %q", loc)
	}
}

func TestScrapeRejectsBadPageLimit(t *testing.T) {
	srv, _ := testServer(t)

	form := url.Values{"states": {"VA"}, "page_limit": {"5000"}}
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.handleScrape(rec, req)

	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "Invalid%20page%20limit") {
		t.Errorf("expected page limit warning, got %q", loc)
	}
}

func TestStatusListsReports(t *testing.T) {
	srv, dir := testServer(t)

	name := "vrm_listings_2026-08-28.xlsx"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0644); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	srv.handleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, name) {
		t.Errorf("status body missing report: %s", body)
	}
}
