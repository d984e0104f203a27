package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"vrm-crawler/config"
	"vrm-crawler/fetch"
	"vrm-crawler/scraper/vrm"
	"vrm-crawler/server"
	"vrm-crawler/services"
	"vrm-crawler/storage"
	"vrm-crawler/utils"
)

func main() {
	var (
		statesFlag   = flag.String("states", "", "comma-separated state codes to crawl (overrides VRM_STATES)")
		maxPagesFlag = flag.Int("max-pages", 0, "per-state page cap (overrides VRM_MAX_PAGES)")
		outputFlag   = flag.String("output", "", "report output directory (overrides OUTPUT_DIR)")
		serveFlag    = flag.Bool("serve", false, "run the web UI instead of a one-shot crawl")
		growthFlag   = flag.String("growth", "", "print growth areas for a state and exit")
		listGrowth   = flag.Bool("list-growth", false, "list states with growth area data and exit")
		verboseFlag  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *listGrowth {
		fmt.Println("\nSupported states with growth area data:")
		fmt.Println(strings.Join(services.SupportedStates(), ", "))
		return
	}
	if *growthFlag != "" {
		fmt.Println(services.FormatGrowthAreas(*growthFlag))
		return
	}

	logger := utils.NewLogger(*verboseFlag)
	cfg := config.Load()
	if *statesFlag != "" {
		cfg.States = config.ParseStates(*statesFlag)
	}
	if *maxPagesFlag > 0 {
		cfg.MaxPages = *maxPagesFlag
	}
	if *outputFlag != "" {
		cfg.OutputDir = *outputFlag
	}

	if *serveFlag {
		srv := server.New(cfg, logger, func(states []string, maxPages int) error {
			runCfg := *cfg
			runCfg.States = states
			runCfg.MaxPages = maxPages
			return runCrawl(&runCfg, logger)
		})
		if err := srv.Run(); err != nil {
			logger.Error("Server failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := runCrawl(cfg, logger); err != nil {
		logger.Error("Crawl failed: %v", err)
		os.Exit(1)
	}
}

// runCrawl wires the fetcher, sinks, and scheduler for one run.
func runCrawl(cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== VRM Crawler starting ===")
	logger.Info("Config — states: %s | page cap: %d | concurrency: %d | rate: %dms",
		strings.Join(cfg.States, ","), cfg.MaxPages, cfg.MaxConcurrency, cfg.RateLimitMs)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	excel, err := storage.NewExcelWriter(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}

	collector := storage.NewCollector()
	sink := storage.NewMultiWriter(excel, collector)

	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
	timeout := time.Duration(cfg.RequestTimeoutMs) * time.Millisecond

	var fetcher fetch.Fetcher
	if cfg.RenderJS {
		chrome := fetch.NewChromeFetcher(cfg.ChromeBin, timeout, retry, logger)
		defer chrome.Close()
		fetcher = chrome
	} else {
		fetcher = fetch.NewHTTPClient(timeout, retry)
	}

	scraper := vrm.New(cfg, logger, fetcher, sink)
	summaries, crawlErr := scraper.Scrape(context.Background())

	closeErr := sink.Close()
	if crawlErr != nil {
		return crawlErr
	}
	if closeErr != nil {
		return fmt.Errorf("save report: %w", closeErr)
	}

	records, _ := collector.FetchAll()

	if cfg.PostgresEnabled {
		pg, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("PostgreSQL unavailable, skipping secondary store: %v", err)
		} else {
			defer pg.Close()
			if err := pg.WriteAll(records); err != nil {
				logger.Error("PostgreSQL write failed: %v", err)
			} else {
				logger.Info("Records stored in PostgreSQL (table: properties)")
			}
		}
	}

	for _, st := range summaries {
		logger.Info("State %s: %d pages, %d records (%s)",
			st.State, st.Pages, st.Records, st.Reason)
	}

	svc := services.NewSummaryService(logger)
	svc.Print(svc.Generate(summaries, records))

	logger.Info("Report saved to %s", excel.Path())
	return nil
}
