package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"google-ads-scraper/models"
	"google-ads-scraper/utils"
)

// adColumns fixes the CSV column order for the flat ad representation
var adColumns = []string{
	"keyword", "location", "website_url", "title", "description",
	"phone_number", "price", "email", "social_links", "meta_tags",
	"ad_position", "timestamp", "product_categories", "brand",
	"model", "part_condition",
}

// CSVWriter handles writing validated ads to a CSV file
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// SaveAds writes the ads to the CSV file, one flat row per record
func (w *CSVWriter) SaveAds(runID string, ads []*models.Ad) error {
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append([]string{"run_id"}, adColumns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, ad := range ads {
		row := make([]string, 0, len(header))
		row = append(row, runID)
		fields := ad.ToMap()
		for _, col := range adColumns {
			row = append(row, flatten(fields[col]))
		}
		if err := writer.Write(row); err != nil {
			w.logger.Error("Failed to write CSV row for '%s': %v", ad.Title, err)
		}
	}

	w.logger.Info("Ads written to: %s (%d rows)", w.filePath, len(ads))
	return nil
}

// Close is a no-op; the file is closed per write
func (w *CSVWriter) Close() error { return nil }

// flatten renders one interchange value as a single CSV cell. Maps become
// "k=v" pairs joined with ";" in key order, slices are joined with "|".
func flatten(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+val[k])
		}
		return strings.Join(pairs, ";")
	case []string:
		return strings.Join(val, "|")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
