package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vrm-crawler/utils"
)

const userAgent = "vrm-crawler/1.0"

// maxBodyBytes caps how much of a listing page is read.
const maxBodyBytes = 4 << 20

// HTTPClient fetches pages over plain HTTP with timeouts and retry. It is
// the default transport; listing pages embed their model in the served
// markup, so no rendering is required.
type HTTPClient struct {
	client *http.Client
	retry  *utils.RetryConfig
}

// NewHTTPClient creates an HTTPClient with the given per-request timeout.
func NewHTTPClient(timeout time.Duration, retry *utils.RetryConfig) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPClient{
		client: &http.Client{Transport: transport, Timeout: timeout},
		retry:  retry,
	}
}

// Fetch retrieves pageURL, retrying transient failures with backoff.
func (h *HTTPClient) Fetch(ctx context.Context, pageURL string) (string, error) {
	var markup string
	err := h.retry.Do(ctx, "fetch "+pageURL, func() error {
		body, err := h.fetchOnce(ctx, pageURL)
		if err != nil {
			return err
		}
		markup = body
		return nil
	})
	return markup, err
}

func (h *HTTPClient) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid url %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("http status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
