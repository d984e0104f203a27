package vrm

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"vrm-crawler/config"
	"vrm-crawler/fetch"
	"vrm-crawler/models"
	"vrm-crawler/storage"
	"vrm-crawler/utils"
)

const baseURL = "https://www.vacationrentalmanagers.com"

// Scraper drives one paginated stream per requested state. Streams run
// concurrently and interleave freely; within a stream the order is strict:
// a page's records reach the sink before the next page is fetched.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	fetcher fetch.Fetcher
	sink    storage.RecordWriter
	pool    *utils.WorkerPool
	visited *utils.URLSet

	mu        sync.Mutex
	summaries []*models.StateSummary

	errOnce  sync.Once
	fatalErr error
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger, fetcher fetch.Fetcher, sink storage.RecordWriter) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		sink:    sink,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewURLSet(),
	}
}

// Scrape runs every configured state stream to completion and returns one
// summary per state, sorted by state code. The error is non-nil only when
// a sink write failed; that aborts the whole run.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.StateSummary, error) {
	s.logger.Info("[vrm] Starting crawl — states: %s | page cap: %d",
		strings.Join(s.cfg.States, ","), s.cfg.MaxPages)

	for _, state := range s.cfg.States {
		target := &models.CrawlTarget{State: state, MaxPages: s.cfg.MaxPages}
		s.pool.Submit(func() {
			summary := s.crawlState(ctx, target)
			s.mu.Lock()
			s.summaries = append(s.summaries, summary)
			s.mu.Unlock()
		})
	}
	s.pool.Wait()

	sort.Slice(s.summaries, func(i, j int) bool {
		return s.summaries[i].State < s.summaries[j].State
	})
	return s.summaries, s.fatalErr
}

// crawlState is one state stream. The CrawlTarget is owned by this
// goroutine alone; nothing else reads or mutates it.
func (s *Scraper) crawlState(ctx context.Context, target *models.CrawlTarget) *models.StateSummary {
	summary := &models.StateSummary{State: target.State}
	pageURL := StartURL(target.State)

	for {
		markup, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			s.logger.Error("[vrm] %s page %d fetch failed: %v",
				target.State, target.PageCount+1, err)
			summary.Reason = models.StopFetchFailed
			return summary
		}

		target.PageCount++
		summary.Pages = target.PageCount
		s.logger.Info("[vrm] Parsing %s page %d: %s", target.State, target.PageCount, pageURL)

		emitted, err := s.emitRecords(target.State, markup)
		summary.Records += emitted
		if err != nil {
			s.setFatal(err)
			summary.Reason = models.StopSinkError
			return summary
		}

		if target.PageCount >= target.MaxPages {
			s.logger.Warn("[vrm] Reached max pages (%d) for state %s", target.MaxPages, target.State)
			summary.Reason = models.StopCapReached
			return summary
		}

		next := NextPageURL(markup, pageURL)
		if next == "" {
			summary.Reason = models.StopExhausted
			return summary
		}
		if !s.visited.Add(next) {
			s.logger.Warn("[vrm] %s pagination loops back to %s — stopping", target.State, next)
			summary.Reason = models.StopExhausted
			return summary
		}
		pageURL = next
	}
}

// emitRecords extracts the inline model from markup and writes one record
// per property to the sink. A missing or malformed model yields zero
// records for the page and is not an error; only sink failures are.
func (s *Scraper) emitRecords(state, markup string) (int, error) {
	model, ok := ExtractInlineModel(markup)
	if !ok {
		s.logger.Debug("[vrm] %s: no inline model on page", state)
		return 0, nil
	}

	props, _ := model["properties"].([]any)
	written := 0
	for _, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		rec := buildRecord(state, prop)
		if err := s.sink.Write(rec); err != nil {
			s.logger.Error("[vrm] %s: report write failed: %v", state, err)
			return written, fmt.Errorf("write record: %w", err)
		}
		written++
	}
	return written, nil
}

func (s *Scraper) setFatal(err error) {
	s.errOnce.Do(func() { s.fatalErr = err })
}

// buildRecord maps one entry of the model's properties sequence onto a
// PropertyRecord. The slug is set only when both name and city survive.
func buildRecord(state string, prop map[string]any) *models.PropertyRecord {
	rec := &models.PropertyRecord{
		State:     state,
		Name:      stringify(prop["name"]),
		City:      stringify(prop["city"]),
		Address:   stringify(prop["address"]),
		Price:     stringify(prop["price"]),
		Bedrooms:  stringify(prop["bedrooms"]),
		Bathrooms: stringify(prop["bathrooms"]),
		URL:       stringify(prop["url"]),
	}
	if rec.Name != "" && rec.City != "" {
		rec.Slug = Slug(rec.Name, rec.City, state)
	}
	return rec
}

// stringify renders a decoded JSON value the way it appeared in the
// source: strings verbatim, numbers without a forced decimal point.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// StartURL is the first listing page of a state stream.
func StartURL(state string) string {
	return fmt.Sprintf("%s/%s", baseURL, strings.ToLower(state))
}

// NextPageURL returns the absolute URL of the page's next-page link, or ""
// when the page has none.
func NextPageURL(markup, pageURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	href := strings.TrimSpace(doc.Find("a.next-page").First().AttrOr("href", ""))
	if href == "" {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
