package storage

import "google-ads-scraper/models"

// AdWriter defines the interface for persisting validated ads
type AdWriter interface {
	SaveAds(runID string, ads []*models.Ad) error
	Close() error
}

var (
	_ AdWriter = (*CSVWriter)(nil)
	_ AdWriter = (*PostgresWriter)(nil)
)
