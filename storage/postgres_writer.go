package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"google-ads-scraper/models"
	"google-ads-scraper/utils"

	_ "github.com/lib/pq"
)

// PostgresWriter handles storing validated ads in PostgreSQL
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// CreateTable creates the ads table if it doesn't exist, with indexes
func (w *PostgresWriter) CreateTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS ads (
		id                 SERIAL PRIMARY KEY,
		run_id             UUID         NOT NULL,
		keyword            TEXT         NOT NULL,
		location           TEXT         NOT NULL,
		website_url        TEXT         NOT NULL,
		title              TEXT         NOT NULL,
		description        TEXT,
		phone_number       VARCHAR(50),
		price              VARCHAR(100),
		email              TEXT,
		social_links       TEXT,
		meta_tags          TEXT,
		ad_position        VARCHAR(10)  NOT NULL DEFAULT 'UNKNOWN',
		scraped_at         TIMESTAMPTZ  NOT NULL,
		product_categories TEXT,
		brand              VARCHAR(100),
		model              VARCHAR(100),
		part_condition     VARCHAR(50),
		UNIQUE (keyword, location, website_url)
	);

	CREATE INDEX IF NOT EXISTS idx_ads_run_id      ON ads (run_id);
	CREATE INDEX IF NOT EXISTS idx_ads_keyword     ON ads (keyword);
	CREATE INDEX IF NOT EXISTS idx_ads_location    ON ads (location);
	CREATE INDEX IF NOT EXISTS idx_ads_ad_position ON ads (ad_position);
	`
	_, err := w.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	w.logger.Info("Table 'ads' is ready")
	return nil
}

// SaveAds inserts ads in a single transaction, skipping duplicates
func (w *PostgresWriter) SaveAds(runID string, ads []*models.Ad) error {
	if len(ads) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO ads (
			run_id, keyword, location, website_url, title, description,
			phone_number, price, email, social_links, meta_tags,
			ad_position, scraped_at, product_categories, brand, model, part_condition
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (keyword, location, website_url) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, ad := range ads {
		scrapedAt, parseErr := time.Parse(time.RFC3339, ad.Timestamp)
		if parseErr != nil {
			scrapedAt = time.Now()
		}

		_, err = stmt.Exec(
			runID,
			ad.Keyword,
			ad.Location,
			ad.WebsiteURL,
			ad.Title,
			ad.Description,
			ad.PhoneNumber,
			ad.Price,
			ad.Email,
			flatten(ad.SocialLinks),
			flatten(ad.MetaTags),
			ad.Position.Name(),
			scrapedAt,
			strings.Join(ad.ProductCategories, "|"),
			ad.Brand,
			ad.Model,
			ad.PartCondition,
		)
		if err != nil {
			w.logger.Warn("Skipping insert for '%s': %v", ad.Title, err)
			continue
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.logger.Info("Inserted %d/%d ads into PostgreSQL", inserted, len(ads))
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}
