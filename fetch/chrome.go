package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"vrm-crawler/utils"
)

// ChromeFetcher renders pages in headless Chrome before handing back the
// markup. Used when the listing pages build their inline model with
// client-side script (RENDER_JS=true).
type ChromeFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	retry    *utils.RetryConfig
	timeout  time.Duration
	logger   *utils.Logger
}

// NewChromeFetcher starts a headless Chrome allocator. Close must be
// called to shut the browser down.
func NewChromeFetcher(chromeBin string, timeout time.Duration, retry *utils.RetryConfig, logger *utils.Logger) *ChromeFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[fetch] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &ChromeFetcher{
		allocCtx: silentCtx,
		cancel: func() {
			cancelSilent()
			cancelAlloc()
		},
		retry:   retry,
		timeout: timeout,
		logger:  logger,
	}
}

// Fetch navigates a fresh tab to pageURL and returns the rendered markup.
func (c *ChromeFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	var markup string
	err := c.retry.Do(ctx, "render "+pageURL, func() error {
		tabCtx, cancelTab := chromedp.NewContext(c.allocCtx)
		defer cancelTab()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, c.timeout)
		defer cancelTimeout()

		var html string
		err := chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &html),
		)
		if err != nil {
			return fmt.Errorf("chromedp render: %w", err)
		}

		markup = html
		return nil
	})
	return markup, err
}

// Close shuts down the browser allocator.
func (c *ChromeFetcher) Close() {
	c.cancel()
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
