package models

import "time"

// RawAd represents one unvalidated ad extraction straight from the results
// page plus whatever the landing-page enrichment found. It becomes an Ad
// only after passing through NewAd.
type RawAd struct {
	Keyword           string
	Location          string
	Title             string
	WebsiteURL        string
	Description       string
	PhoneNumber       string
	Price             string
	Email             string
	SocialLinks       map[string]string
	MetaTags          map[string]string
	Position          AdPosition
	ProductCategories []string
	Brand             string
	Model             string
	PartCondition     string
	ScrapedAt         time.Time
}

// InsightReport holds computed analytics over one scrape run
type InsightReport struct {
	TotalAds        int
	AdsByPosition   map[string]int
	AdsByLocation   map[string]int
	AdsByKeyword    map[string]int
	WithPhone       int
	WithEmail       int
	WithPrice       int
	WithSocialLinks int
	TopDomains      []DomainCount
}

// DomainCount pairs an advertiser domain with how many ads pointed at it
type DomainCount struct {
	Domain string
	Count  int
}
