package services

import (
	"time"

	"google-ads-scraper/models"
	"google-ads-scraper/utils"
)

// AdBuilder turns raw extractions into validated Ad records. A raw ad that
// fails validation is logged and skipped; one bad record never aborts the
// batch.
type AdBuilder struct {
	logger *utils.Logger
}

// NewAdBuilder creates a new AdBuilder
func NewAdBuilder(logger *utils.Logger) *AdBuilder {
	return &AdBuilder{logger: logger}
}

// Build converts a slice of RawAds to validated Ads
func (b *AdBuilder) Build(raw []*models.RawAd) []*models.Ad {
	var ads []*models.Ad
	skipped := 0

	for _, r := range raw {
		scrapedAt := r.ScrapedAt
		if scrapedAt.IsZero() {
			scrapedAt = time.Now()
		}

		ad, err := models.NewAd(models.Ad{
			Keyword:           r.Keyword,
			Location:          r.Location,
			WebsiteURL:        r.WebsiteURL,
			Title:             r.Title,
			Description:       r.Description,
			PhoneNumber:       r.PhoneNumber,
			Price:             r.Price,
			Email:             r.Email,
			SocialLinks:       r.SocialLinks,
			MetaTags:          r.MetaTags,
			Position:          r.Position,
			Timestamp:         scrapedAt.Format(time.RFC3339),
			ProductCategories: r.ProductCategories,
			Brand:             r.Brand,
			Model:             r.Model,
			PartCondition:     r.PartCondition,
		})
		if err != nil {
			b.logger.Warn("Skipping ad '%s' (%s): %v", r.Title, r.WebsiteURL, err)
			skipped++
			continue
		}
		ads = append(ads, ad)
	}

	b.logger.Info("Validated %d ads from %d raw records (%d skipped)", len(ads), len(raw), skipped)
	return ads
}
