package googleads

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"google-ads-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

var (
	priceRegex = regexp.MustCompile(`(?:€|\$|£)\s?[\d.,]+|[\d.,]+\s?(?:EUR|USD|GBP)`)

	// host fragment -> platform name used as the social_links key
	socialPlatforms = map[string]string{
		"facebook.com":  "facebook",
		"instagram.com": "instagram",
		"twitter.com":   "twitter",
		"x.com":         "twitter",
		"linkedin.com":  "linkedin",
		"youtube.com":   "youtube",
	}

	knownBrands = []string{
		"Mercedes", "BMW", "Audi", "Volkswagen", "Porsche",
		"Opel", "Ford", "Renault", "Peugeot", "Volvo", "Toyota",
	}

	partConditions = []string{"new", "used", "refurbished", "reconditioned", "oem", "aftermarket"}

	partCategories = []string{
		"brakes", "brake pads", "filters", "oil filter", "suspension",
		"exhaust", "clutch", "battery", "alternator", "radiator",
		"spark plugs", "timing belt", "headlights", "tyres", "tires",
	}
)

// EnrichFromHTML parses an ad's landing page and fills in meta tags, contact
// details, social links, and the auto-parts classification fields. Fields
// already extracted from the results page are never overwritten.
func EnrichFromHTML(ad *models.RawAd, rawHTML, sourceURL string) error {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return fmt.Errorf("bad source URL: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return fmt.Errorf("landing page parse failed: %w", err)
	}

	extractMetaTags(ad, doc)
	extractContacts(ad, doc)
	extractSocialLinks(ad, doc, base)

	bodyText := doc.Find("body").Text()
	if ad.Price == "" {
		if m := priceRegex.FindString(bodyText); m != "" {
			ad.Price = strings.TrimSpace(m)
		}
	}
	classifyParts(ad, bodyText)

	return nil
}

func extractMetaTags(ad *models.RawAd, doc *goquery.Document) {
	if ad.MetaTags == nil {
		ad.MetaTags = map[string]string{}
	}
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok {
			name, ok = s.Attr("property")
		}
		if !ok || name == "" {
			return
		}
		content, ok := s.Attr("content")
		if !ok || strings.TrimSpace(content) == "" {
			return
		}
		if _, exists := ad.MetaTags[name]; !exists {
			ad.MetaTags[name] = strings.TrimSpace(content)
		}
	})

	if ad.Description == "" {
		if desc, ok := ad.MetaTags["description"]; ok {
			ad.Description = desc
		} else if desc, ok := ad.MetaTags["og:description"]; ok {
			ad.Description = desc
		}
	}
}

func extractContacts(ad *models.RawAd, doc *goquery.Document) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case strings.HasPrefix(href, "mailto:"):
			if ad.Email == "" {
				addr := strings.TrimPrefix(href, "mailto:")
				if i := strings.IndexByte(addr, '?'); i >= 0 {
					addr = addr[:i]
				}
				ad.Email = strings.TrimSpace(addr)
			}
		case strings.HasPrefix(href, "tel:"):
			if ad.PhoneNumber == "" {
				ad.PhoneNumber = strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
			}
		}
	})
}

func extractSocialLinks(ad *models.RawAd, doc *goquery.Document, base *url.URL) {
	if ad.SocialLinks == nil {
		ad.SocialLinks = map[string]string{}
	}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		host := strings.TrimPrefix(strings.ToLower(resolved.Host), "www.")
		for fragment, platform := range socialPlatforms {
			if host == fragment || strings.HasSuffix(host, "."+fragment) {
				if _, exists := ad.SocialLinks[platform]; !exists {
					ad.SocialLinks[platform] = resolved.String()
				}
				return
			}
		}
	})
}

// classifyParts fills brand, part condition, and product categories from the
// keyword and page text
func classifyParts(ad *models.RawAd, bodyText string) {
	haystack := strings.ToLower(ad.Keyword + " " + ad.Title + " " + bodyText)

	if ad.Brand == "" {
		for _, brand := range knownBrands {
			if strings.Contains(haystack, strings.ToLower(brand)) {
				ad.Brand = brand
				break
			}
		}
	}

	if ad.PartCondition == "" {
		for _, cond := range partConditions {
			if strings.Contains(haystack, cond) {
				ad.PartCondition = cond
				break
			}
		}
	}

	seen := make(map[string]struct{}, len(ad.ProductCategories))
	for _, c := range ad.ProductCategories {
		seen[c] = struct{}{}
	}
	for _, category := range partCategories {
		if _, ok := seen[category]; ok {
			continue
		}
		if strings.Contains(haystack, category) {
			ad.ProductCategories = append(ad.ProductCategories, category)
			seen[category] = struct{}{}
		}
	}
}
