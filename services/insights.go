package services

import (
	"net/url"
	"sort"
	"strings"

	"google-ads-scraper/models"
	"google-ads-scraper/utils"
)

// InsightService computes analytics over a run's validated ads
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes ad distribution and contact coverage for the run
func (s *InsightService) Generate(ads []*models.Ad) *models.InsightReport {
	report := &models.InsightReport{
		AdsByPosition: make(map[string]int),
		AdsByLocation: make(map[string]int),
		AdsByKeyword:  make(map[string]int),
	}

	if len(ads) == 0 {
		s.logger.Warn("No ads to generate insights from")
		return report
	}

	domains := make(map[string]int)
	for _, ad := range ads {
		report.TotalAds++
		report.AdsByPosition[ad.Position.Name()]++
		report.AdsByLocation[ad.Location]++
		report.AdsByKeyword[ad.Keyword]++

		if ad.PhoneNumber != "" {
			report.WithPhone++
		}
		if ad.Email != "" {
			report.WithEmail++
		}
		if ad.Price != "" {
			report.WithPrice++
		}
		if len(ad.SocialLinks) > 0 {
			report.WithSocialLinks++
		}

		if domain := advertiserDomain(ad.WebsiteURL); domain != "" {
			domains[domain]++
		}
	}

	for domain, count := range domains {
		report.TopDomains = append(report.TopDomains, models.DomainCount{Domain: domain, Count: count})
	}
	sort.Slice(report.TopDomains, func(i, j int) bool {
		if report.TopDomains[i].Count != report.TopDomains[j].Count {
			return report.TopDomains[i].Count > report.TopDomains[j].Count
		}
		return report.TopDomains[i].Domain < report.TopDomains[j].Domain
	})
	if len(report.TopDomains) > 10 {
		report.TopDomains = report.TopDomains[:10]
	}

	return report
}

// advertiserDomain extracts the registrable-ish host from a landing URL
func advertiserDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
}
