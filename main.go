package main

import (
	"fmt"
	"os"

	"google-ads-scraper/config"
	"google-ads-scraper/scraper/googleads"
	"google-ads-scraper/services"
	"google-ads-scraper/storage"
	"google-ads-scraper/utils"

	"github.com/google/uuid"
)

func main() {
	// ================== Bootstrap ====================
	logger := utils.NewLogger()
	defer logger.Sync()
	cfg := config.Load()

	logger.Info("Google Ads Scraping System")

	targets, err := config.LoadTargets(cfg.TargetsFile)
	if err != nil {
		logger.Error("Cannot load targets: %v", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	logger.Info("Run %s: %d keywords x %d locations", runID, len(targets.Keywords), len(targets.Locations))
	logger.Info("Rate delay: %dms (+%dms jitter) | Retries: %d | Timeout: %ds",
		cfg.RateLimitDelay, cfg.DelayJitter, cfg.MaxRetries, cfg.PageTimeout)

	// =================== PostgreSQL Setup ========================================
	pgWriter, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Cannot connect to PostgreSQL: %v", err)
		os.Exit(1)
	}
	defer pgWriter.Close()

	if err := pgWriter.CreateTable(); err != nil {
		logger.Error("Failed to create DB table: %v", err)
		os.Exit(1)
	}

	// =============== Scraping ===================================
	scraper := googleads.NewGoogleAdsScraper(cfg, logger)
	rawAds, err := scraper.Scrape(targets)
	if err != nil {
		logger.Error("Scraping failed: %v", err)
		os.Exit(1)
	}

	if len(rawAds) == 0 {
		logger.Warn("No ads scraped — check your network connection or the results page structure")
		os.Exit(0)
	}

	// =========== Validation ======================
	builder := services.NewAdBuilder(logger)
	ads := builder.Build(rawAds)

	// ========= CSV ===========================
	csvWriter := storage.NewCSVWriter(cfg.CSVFilePath, logger)
	if err := csvWriter.SaveAds(runID, ads); err != nil {
		logger.Error("Failed to write CSV: %v", err)
		// Non-fatal: continue to DB storage
	}

	// ========= PostgreSQL ============
	if err := pgWriter.SaveAds(runID, ads); err != nil {
		logger.Error("Failed to insert into PostgreSQL: %v", err)
		os.Exit(1)
	}

	// ==== Insights ============================
	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(ads)
	services.PrintInsightReport(report, scraper.Stats())

	fmt.Println(" Done! Ads written to", cfg.CSVFilePath)
	fmt.Println(" Stored in PostgreSQL table: ads (run", runID+")")
}
