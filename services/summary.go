package services

import (
	"fmt"
	"sort"
	"strings"

	"vrm-crawler/models"
	"vrm-crawler/utils"
)

// SummaryService aggregates a finished run into a printable report.
type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate computes run statistics from the per-state summaries and the
// records that reached the sink.
func (s *SummaryService) Generate(summaries []*models.StateSummary, records []*models.PropertyRecord) *models.CrawlReport {
	report := &models.CrawlReport{
		RecordsByState: make(map[string]int),
		RecordsByCity:  make(map[string]int),
	}

	for _, st := range summaries {
		report.TotalPages += st.Pages
		if st.Reason == models.StopCapReached {
			report.Truncated = append(report.Truncated, st.State)
		}
	}
	sort.Strings(report.Truncated)

	for _, r := range records {
		report.TotalRecords++
		report.RecordsByState[r.State]++
		if r.City != "" {
			report.RecordsByCity[r.City]++
		}
		if r.Slug != "" {
			report.WithSlug++
		}
	}

	return report
}

// Print renders the report to the console.
func (s *SummaryService) Print(r *models.CrawlReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 VRM CRAWL SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Pages fetched       : \033[1m%d\033[0m\n", r.TotalPages)
	fmt.Printf("  Records harvested   : \033[1m%d\033[0m\n", r.TotalRecords)
	if r.TotalRecords > 0 {
		pct := float64(r.WithSlug) / float64(r.TotalRecords) * 100
		fmt.Printf("  Records with slug   : \033[1m%d (%.0f%%)\033[0m\n", r.WithSlug, pct)
	}
	fmt.Println()

	// Per-state counts
	fmt.Printf("\033[1;33m  Records by State\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.RecordsByState) == 0 {
		fmt.Printf("  No records harvested\n")
	} else {
		states := make([]string, 0, len(r.RecordsByState))
		for state := range r.RecordsByState {
			states = append(states, state)
		}
		sort.Strings(states)
		for _, state := range states {
			count := r.RecordsByState[state]
			bar := strings.Repeat("█", min(count, 40))
			fmt.Printf("  %-4s %s (%d)\n", state, bar, count)
		}
	}
	fmt.Println()

	// Top cities
	fmt.Printf("\033[1;33m  Top Cities\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.RecordsByCity) == 0 {
		fmt.Printf("  No city data\n")
	} else {
		type cityCount struct {
			city  string
			count int
		}
		var cities []cityCount
		for city, cnt := range r.RecordsByCity {
			cities = append(cities, cityCount{city, cnt})
		}
		sort.Slice(cities, func(i, j int) bool {
			if cities[i].count != cities[j].count {
				return cities[i].count > cities[j].count
			}
			return cities[i].city < cities[j].city
		})
		if len(cities) > 5 {
			cities = cities[:5]
		}
		for i, cc := range cities {
			fmt.Printf("  \033[1m%d.\033[0m %-30s %d\n", i+1, truncate(cc.city, 28), cc.count)
		}
	}
	fmt.Println()

	// Truncated streams
	if len(r.Truncated) > 0 {
		fmt.Printf("\033[1;33m  Truncated by Page Cap\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s — harvest may be incomplete for these states\n",
			strings.Join(r.Truncated, ", "))
		fmt.Println()
	}

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
