package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"vrm-crawler/utils"
)

func testRetry(attempts int) *utils.RetryConfig {
	return &utils.RetryConfig{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		Logger:      utils.NewLogger(false),
	}
}

func TestHTTPClientFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>listings</body></html>"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, testRetry(1))
	markup, err := client.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	if !strings.Contains(markup, "listings") {
		t.Errorf("unexpected markup: %q", markup)
	}
}

func TestHTTPClientRejectsErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, testRetry(2))
	_, err := client.Fetch(context.Background(), ts.URL)
	if err == nil {
		t.Fatal("expected error for 500 status")
	}
}

func TestHTTPClientRetriesTransientFailure(t *testing.T) {
	var calls int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, testRetry(3))
	markup, err := client.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	if !strings.Contains(markup, "ok") {
		t.Errorf("unexpected markup: %q", markup)
	}
	if got := atomic.LoadInt64(&calls); got != 2 {
		t.Errorf("server calls: got %d, want 2", got)
	}
}

func TestHTTPClientRejectsInvalidURL(t *testing.T) {
	client := NewHTTPClient(time.Second, testRetry(1))
	if _, err := client.Fetch(context.Background(), "not-a-url"); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
