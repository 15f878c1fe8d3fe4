package googleads

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"google-ads-scraper/config"
	"google-ads-scraper/models"
	"google-ads-scraper/utils"

	"github.com/chromedp/chromedp"
)

// GoogleAdsScraper drives a headless browser over search results pages and
// extracts the sponsored listings for each keyword/location pair
type GoogleAdsScraper struct {
	cfg         *config.Config
	logger      *utils.Logger
	rateLimiter *utils.RateLimiter
	tracker     *utils.URLTracker
	monitor     *utils.PerfMonitor
}

// NewGoogleAdsScraper creates a new GoogleAdsScraper
func NewGoogleAdsScraper(cfg *config.Config, logger *utils.Logger) *GoogleAdsScraper {
	return &GoogleAdsScraper{
		cfg:         cfg,
		logger:      logger,
		rateLimiter: utils.NewRateLimiter(cfg.RateLimitDelay, cfg.DelayJitter),
		tracker:     utils.NewURLTracker(),
		monitor:     utils.NewPerfMonitor(100),
	}
}

// newContext creates a fresh chromedp context (one browser, one tab at a time)
func (s *GoogleAdsScraper) newContext() (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// Stats returns the run's performance snapshot
func (s *GoogleAdsScraper) Stats() utils.PerfStats {
	return s.monitor.Stats()
}

// Scrape runs every keyword/location pair and returns the raw ads found
func (s *GoogleAdsScraper) Scrape(targets *config.Targets) ([]*models.RawAd, error) {
	pairs := targets.Pairs()
	s.logger.Info("Starting Google Ads scraper: %d keyword/location pairs", len(pairs))

	ctx, cancel := s.newContext()
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 45*time.Minute)
	defer cancelTimeout()

	var allAds []*models.RawAd
	for _, pair := range pairs {
		keyword, location := pair[0], pair[1]
		s.rateLimiter.Wait()

		start := time.Now()
		ads, err := s.scrapeSearch(ctx, keyword, location)
		s.monitor.Record(time.Since(start), err == nil)
		if err != nil {
			s.logger.Error("Search '%s' in '%s' failed: %v", keyword, location, err)
			continue
		}

		kept := 0
		for _, ad := range ads {
			// One record per landing URL across the whole run.
			if ad.WebsiteURL != "" && !s.tracker.Add(ad.WebsiteURL) {
				continue
			}
			s.rateLimiter.Wait()
			s.enrichLandingPage(ctx, ad)
			allAds = append(allAds, ad)
			kept++
		}

		s.logger.Info("'%s' in '%s': %d ads extracted, %d kept (total so far: %d)",
			keyword, location, len(ads), kept, len(allAds))
	}

	s.logger.Info("Scraping complete. Total raw ads: %d", len(allAds))
	return allAds, nil
}

// searchURL builds the results URL for one keyword/location query
func (s *GoogleAdsScraper) searchURL(keyword, location string) string {
	q := url.QueryEscape(keyword + " " + location)
	return fmt.Sprintf("%s/search?q=%s&num=20&hl=en", s.cfg.BaseURL, q)
}

// scrapeSearch navigates to a results page and extracts every sponsored block
func (s *GoogleAdsScraper) scrapeSearch(ctx context.Context, keyword, location string) ([]*models.RawAd, error) {
	pageURL := s.searchURL(keyword, location)
	s.logger.Debug("Loading %s", pageURL)

	var ads []*models.RawAd
	err := utils.RetryWithBackoff(ctx, s.cfg.MaxRetries, func() error {
		navCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.PageTimeout)*time.Second)
		defer cancel()

		err := chromedp.Run(navCtx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(4*time.Second), // give JS time to render
		)
		if err != nil {
			return fmt.Errorf("navigate failed: %w", err)
		}

		// Sponsored containers come and go as Google reshuffles markup;
		// probe the known ids and a data-attribute fallback, tagging each
		// hit with its region ordinal (1=top, 2=sidebar, 3=bottom).
		type adBlock struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			Price       string `json:"price"`
			Phone       string `json:"phone"`
			Position    int    `json:"position"`
		}
		var blocks []adBlock

		jsErr := chromedp.Run(navCtx, chromedp.Evaluate(`
			(function() {
				var results = [];
				var seen = {};

				function collect(container, position) {
					if (!container) return;
					var cards = container.querySelectorAll('[data-text-ad], [data-dtld], .uEierd');
					if (cards.length === 0) {
						cards = container.querySelectorAll('div[data-hveid]');
					}
					cards.forEach(function(card) {
						var titleEl = card.querySelector('div[role="heading"]') ||
						              card.querySelector('h3') ||
						              card.querySelector('span.CCgQ5');
						var linkEl = card.querySelector('a[data-rw]') ||
						             card.querySelector('a[href]');
						var descEl = card.querySelector('.MUxGbd:not([role="heading"])') ||
						             card.querySelector('.Va3FIb') ||
						             card.querySelector('div[data-snf]');
						if (!titleEl || !linkEl) return;

						var href = linkEl.getAttribute('data-rw') || linkEl.href || '';
						if (!href || seen[href]) return;
						seen[href] = true;

						var text = card.innerText || '';
						var priceMatch = text.match(/(?:€|\$|£)\s?[\d.,]+|[\d.,]+\s?(?:EUR|USD|GBP)/);
						var phoneMatch = text.match(/\+?[\d][\d\s().\/-]{6,}[\d]/);

						results.push({
							title: titleEl.innerText.trim(),
							url: href,
							description: descEl ? descEl.innerText.trim() : '',
							price: priceMatch ? priceMatch[0].trim() : '',
							phone: phoneMatch ? phoneMatch[0].trim() : '',
							position: position
						});
					});
				}

				collect(document.querySelector('#tads'), 1);
				collect(document.querySelector('#rhs'), 2);
				collect(document.querySelector('#bottomads') ||
				        document.querySelector('#tadsb'), 3);

				return results;
			})()
		`, &blocks))
		if jsErr != nil {
			return fmt.Errorf("ad extraction JS failed: %w", jsErr)
		}

		ads = nil
		now := time.Now()
		for _, b := range blocks {
			ads = append(ads, &models.RawAd{
				Keyword:     keyword,
				Location:    location,
				Title:       b.Title,
				WebsiteURL:  b.URL,
				Description: b.Description,
				Price:       b.Price,
				PhoneNumber: b.Phone,
				Position:    models.PositionFromInt(b.Position),
				ScrapedAt:   now,
			})
		}
		return nil
	}, s.logger)

	return ads, err
}

// enrichLandingPage visits the ad's landing page and fills in contact and
// descriptive fields the results page doesn't carry
func (s *GoogleAdsScraper) enrichLandingPage(ctx context.Context, ad *models.RawAd) {
	if ad.WebsiteURL == "" {
		return
	}
	s.logger.Debug("Enriching: %s", ad.Title)

	navCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.PageTimeout)*time.Second)
	defer cancel()

	var pageHTML string
	err := chromedp.Run(navCtx,
		chromedp.Navigate(ad.WebsiteURL),
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &pageHTML),
	)
	if err != nil {
		s.logger.Warn("Enrich failed for '%s': %v", ad.Title, err)
		return
	}

	if err := EnrichFromHTML(ad, pageHTML, ad.WebsiteURL); err != nil {
		s.logger.Warn("Landing page parse failed for '%s': %v", ad.Title, err)
	}
}
