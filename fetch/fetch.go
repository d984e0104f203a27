package fetch

import "context"

// Fetcher retrieves the markup of a single listing page. Implementations
// own their retry and politeness policy; the scheduler only sees the final
// outcome for a page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}
