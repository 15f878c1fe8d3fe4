package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"google-ads-scraper/models"
	"google-ads-scraper/utils"
)

// PrintInsightReport formats and prints the run report to the terminal
func PrintInsightReport(report *models.InsightReport, stats utils.PerfStats) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Printf("\n╔%s╗\n", border)
	fmt.Printf("║%s║\n", center("ADVERTISEMENT SCRAPE REPORT", 55))
	fmt.Printf("╚%s╝\n", border)

	fmt.Printf("\n OVERVIEW\n%s\n", thin)
	fmt.Printf("  Total Ads Collected     : %d\n", report.TotalAds)
	fmt.Printf("  With Phone Number       : %d\n", report.WithPhone)
	fmt.Printf("  With Email              : %d\n", report.WithEmail)
	fmt.Printf("  With Price              : %d\n", report.WithPrice)
	fmt.Printf("  With Social Links       : %d\n", report.WithSocialLinks)

	if len(report.AdsByPosition) > 0 {
		fmt.Printf("\n ADS BY POSITION\n%s\n", thin)
		printCountMap(report.AdsByPosition)
	}

	if len(report.AdsByLocation) > 0 {
		fmt.Printf("\n ADS BY LOCATION\n%s\n", thin)
		printCountMap(report.AdsByLocation)
	}

	if len(report.AdsByKeyword) > 0 {
		fmt.Printf("\n ADS BY KEYWORD\n%s\n", thin)
		printCountMap(report.AdsByKeyword)
	}

	if len(report.TopDomains) > 0 {
		fmt.Printf("\n TOP ADVERTISER DOMAINS\n%s\n", thin)
		for i, dc := range report.TopDomains {
			fmt.Printf("  %d. %-35s %3d\n", i+1, truncate(dc.Domain, 35), dc.Count)
		}
	}

	if stats.TotalRequests > 0 {
		fmt.Printf("\n SCRAPER PERFORMANCE\n%s\n", thin)
		fmt.Printf("  Pages Loaded            : %d\n", stats.TotalRequests)
		fmt.Printf("  Success Rate            : %.1f%%\n", stats.SuccessRate*100)
		fmt.Printf("  Avg Page Time           : %v\n", stats.AvgTime.Round(10*time.Millisecond))
		fmt.Printf("  Pages/Minute            : %.2f\n", stats.RequestsPerMinute)
	}

	fmt.Printf("\n%s\n\n", border)
}

func printCountMap(counts map[string]int) {
	type entry struct {
		key   string
		count int
	}
	var entries []entry
	for k, c := range counts {
		entries = append(entries, entry{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	for _, e := range entries {
		bar := strings.Repeat("▓", e.count)
		fmt.Printf("  %-25s %3d  %s\n", e.key+":", e.count, bar)
	}
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
