package models

// StopReason records why a state stream terminated. Both the page cap and
// natural exhaustion are normal termination; downstream consumers may care
// whether harvesting was complete or truncated.
type StopReason int

const (
	// StopExhausted means the last page carried no next-page link.
	StopExhausted StopReason = iota
	// StopCapReached means the per-state page cap cut the stream short.
	StopCapReached
	// StopFetchFailed means a page fetch failed after retries.
	StopFetchFailed
	// StopSinkError means a report write failed; the whole run aborts.
	StopSinkError
)

func (r StopReason) String() string {
	switch r {
	case StopExhausted:
		return "exhausted"
	case StopCapReached:
		return "cap reached"
	case StopFetchFailed:
		return "fetch failed"
	case StopSinkError:
		return "sink error"
	}
	return "unknown"
}

// StateSummary is the outcome of one state stream.
type StateSummary struct {
	State   string
	Pages   int
	Records int
	Reason  StopReason
}

// CrawlReport holds the aggregate statistics printed after a run.
type CrawlReport struct {
	TotalRecords   int
	TotalPages     int
	RecordsByState map[string]int
	RecordsByCity  map[string]int
	WithSlug       int
	Truncated      []string // states whose streams hit the page cap
}
