package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// AdPosition identifies where an ad appeared on the results page
type AdPosition int

const (
	PositionUnknown AdPosition = iota
	PositionTop
	PositionSidebar
	PositionBottom
)

var positionNames = map[AdPosition]string{
	PositionUnknown: "UNKNOWN",
	PositionTop:     "TOP",
	PositionSidebar: "SIDEBAR",
	PositionBottom:  "BOTTOM",
}

// Name returns the symbolic name used in the interchange format
func (p AdPosition) Name() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// PositionFromInt maps an integer ordinal to a position.
// 1=TOP, 2=SIDEBAR, 3=BOTTOM; anything else is UNKNOWN.
func PositionFromInt(v int) AdPosition {
	switch v {
	case 1:
		return PositionTop
	case 2:
		return PositionSidebar
	case 3:
		return PositionBottom
	default:
		return PositionUnknown
	}
}

// PositionFromName maps a symbolic name back to a position, defaulting to UNKNOWN
func PositionFromName(name string) AdPosition {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TOP":
		return PositionTop
	case "SIDEBAR":
		return PositionSidebar
	case "BOTTOM":
		return PositionBottom
	default:
		return PositionUnknown
	}
}

// ValidationError reports a required ad field that is empty or whitespace-only
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid ad: %s %s", e.Field, e.Reason)
}

// URLValidationError reports a structurally invalid website URL. It carries
// the offending value and unwraps to a *ValidationError, so callers checking
// for the general kind via errors.As match both.
type URLValidationError struct {
	ValidationError
	URL string
}

func (e *URLValidationError) Error() string {
	return fmt.Sprintf("invalid ad URL %q: %s", e.URL, e.Reason)
}

func (e *URLValidationError) Unwrap() error {
	return &e.ValidationError
}

// Ad represents one validated scraped advertisement.
//
// Construct through NewAd (or AdFromMap); a constructed record must not be
// mutated. Any change goes through building a new record.
type Ad struct {
	Keyword           string
	Location          string
	WebsiteURL        string
	Title             string
	Description       string
	PhoneNumber       string
	Price             string
	Email             string
	SocialLinks       map[string]string
	MetaTags          map[string]string
	Position          AdPosition
	Timestamp         string
	ProductCategories []string
	Brand             string
	Model             string
	PartCondition     string
}

// NewAd validates and normalizes a candidate record. The pipeline, in order:
// reject empty mandatory fields, trim them, validate the website URL
// structurally, reduce the phone number to its digits, lower-case the email.
// It fails fast with *ValidationError or *URLValidationError.
func NewAd(raw Ad) (*Ad, error) {
	ad := raw

	if strings.TrimSpace(ad.WebsiteURL) == "" {
		return nil, &URLValidationError{
			ValidationError: ValidationError{Field: "website_url", Reason: "cannot be empty"},
			URL:             ad.WebsiteURL,
		}
	}
	if strings.TrimSpace(ad.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(ad.Keyword) == "" {
		return nil, &ValidationError{Field: "keyword", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(ad.Location) == "" {
		return nil, &ValidationError{Field: "location", Reason: "cannot be empty"}
	}

	ad.Keyword = strings.TrimSpace(ad.Keyword)
	ad.Location = strings.TrimSpace(ad.Location)
	ad.Title = strings.TrimSpace(ad.Title)
	ad.WebsiteURL = strings.TrimSpace(ad.WebsiteURL)

	if err := validateURL(ad.WebsiteURL); err != nil {
		return nil, err
	}

	ad.Description = strings.TrimSpace(ad.Description)
	if ad.PhoneNumber != "" {
		ad.PhoneNumber = CleanPhoneNumber(ad.PhoneNumber)
	}
	if ad.Email != "" {
		ad.Email = strings.ToLower(strings.TrimSpace(ad.Email))
	}

	if ad.SocialLinks == nil {
		ad.SocialLinks = map[string]string{}
	}
	if ad.MetaTags == nil {
		ad.MetaTags = map[string]string{}
	}
	if ad.ProductCategories == nil {
		ad.ProductCategories = []string{}
	}
	if ad.Timestamp == "" {
		ad.Timestamp = time.Now().Format(time.RFC3339)
	}

	return &ad, nil
}

// validateURL checks that the URL parses with a scheme and host, and that
// the scheme is http or https
func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &URLValidationError{
			ValidationError: ValidationError{Field: "website_url", Reason: err.Error()},
			URL:             rawURL,
		}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return &URLValidationError{
			ValidationError: ValidationError{Field: "website_url", Reason: "missing scheme or domain"},
			URL:             rawURL,
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &URLValidationError{
			ValidationError: ValidationError{Field: "website_url", Reason: fmt.Sprintf("disallowed scheme %q", parsed.Scheme)},
			URL:             rawURL,
		}
	}
	return nil
}

// CleanPhoneNumber strips a phone number down to its digit characters.
// If no digits remain, the original value is returned unchanged rather than
// emptied; digit-stripping never discards data entirely.
func CleanPhoneNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return phone
	}
	return b.String()
}

// IsValid rechecks the minimum validity requirements. Always true for a
// record built through NewAd; kept for callers holding a relaxed copy.
func (a *Ad) IsValid() bool {
	return a.WebsiteURL != "" && a.Title != "" && a.Keyword != "" && a.Location != ""
}

// ToMap converts the record to its flat interchange representation.
// Position is emitted as its symbolic name.
func (a *Ad) ToMap() map[string]any {
	return map[string]any{
		"keyword":            a.Keyword,
		"location":           a.Location,
		"website_url":        a.WebsiteURL,
		"title":              a.Title,
		"description":        a.Description,
		"phone_number":       a.PhoneNumber,
		"price":              a.Price,
		"email":              a.Email,
		"social_links":       a.SocialLinks,
		"meta_tags":          a.MetaTags,
		"ad_position":        a.Position.Name(),
		"timestamp":          a.Timestamp,
		"product_categories": a.ProductCategories,
		"brand":              a.Brand,
		"model":              a.Model,
		"part_condition":     a.PartCondition,
	}
}

// AdFromMap is the inverse of ToMap. ad_position is accepted as an integer
// ordinal or a symbolic name; the coercion lives here, at the
// deserialization boundary. The result goes through full NewAd validation.
func AdFromMap(data map[string]any) (*Ad, error) {
	raw := Ad{
		Keyword:           mapString(data, "keyword"),
		Location:          mapString(data, "location"),
		WebsiteURL:        mapString(data, "website_url"),
		Title:             mapString(data, "title"),
		Description:       mapString(data, "description"),
		PhoneNumber:       mapString(data, "phone_number"),
		Price:             mapString(data, "price"),
		Email:             mapString(data, "email"),
		SocialLinks:       mapStringMap(data, "social_links"),
		MetaTags:          mapStringMap(data, "meta_tags"),
		Position:          parsePosition(data["ad_position"]),
		Timestamp:         mapString(data, "timestamp"),
		ProductCategories: mapStringSlice(data, "product_categories"),
		Brand:             mapString(data, "brand"),
		Model:             mapString(data, "model"),
		PartCondition:     mapString(data, "part_condition"),
	}
	return NewAd(raw)
}

// parsePosition tries integer-ordinal interpretation first, then falls back
// to symbolic-name lookup, and otherwise defaults to UNKNOWN
func parsePosition(v any) AdPosition {
	switch p := v.(type) {
	case AdPosition:
		return p
	case int:
		return PositionFromInt(p)
	case int64:
		return PositionFromInt(int(p))
	case float64: // JSON numbers decode as float64
		return PositionFromInt(int(p))
	case string:
		return PositionFromName(p)
	default:
		return PositionUnknown
	}
}

func mapString(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func mapStringMap(data map[string]any, key string) map[string]string {
	switch m := data[key].(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
		return out
	default:
		return map[string]string{}
	}
}

func mapStringSlice(data map[string]any, key string) []string {
	switch s := data[key].(type) {
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out
	case []any:
		out := make([]string, 0, len(s))
		for _, v := range s {
			if str, ok := v.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return []string{}
	}
}

// String renders the ad as "{title} - {url} (POSITION)"
func (a *Ad) String() string {
	return fmt.Sprintf("%s - %s (%s)", a.Title, a.WebsiteURL, a.Position.Name())
}
