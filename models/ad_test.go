package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAd() Ad {
	return Ad{
		Keyword:    "brake pads",
		Location:   "Berlin",
		WebsiteURL: "https://example.com/parts",
		Title:      "OEM Brake Pads",
	}
}

func TestNewAd_MinimalValid(t *testing.T) {
	ad, err := NewAd(validAd())
	require.NoError(t, err)

	assert.True(t, ad.IsValid())
	assert.Equal(t, PositionUnknown, ad.Position)
	assert.Equal(t, []string{}, ad.ProductCategories)
	assert.NotEmpty(t, ad.Timestamp, "timestamp should default to construction time")
}

func TestNewAd_TrimsMandatoryFields(t *testing.T) {
	raw := validAd()
	raw.Keyword = "  brake pads  "
	raw.Location = "\tBerlin\n"
	raw.Title = " OEM Brake Pads "
	raw.WebsiteURL = " https://example.com/parts "

	ad, err := NewAd(raw)
	require.NoError(t, err)

	assert.Equal(t, "brake pads", ad.Keyword)
	assert.Equal(t, "Berlin", ad.Location)
	assert.Equal(t, "OEM Brake Pads", ad.Title)
	assert.Equal(t, "https://example.com/parts", ad.WebsiteURL)
}

func TestNewAd_EmptyMandatoryFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Ad)
	}{
		{"empty keyword", func(a *Ad) { a.Keyword = "" }},
		{"whitespace keyword", func(a *Ad) { a.Keyword = "   " }},
		{"empty location", func(a *Ad) { a.Location = "" }},
		{"whitespace location", func(a *Ad) { a.Location = "\t\n" }},
		{"empty title", func(a *Ad) { a.Title = "" }},
		{"whitespace title", func(a *Ad) { a.Title = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validAd()
			tt.mutate(&raw)

			_, err := NewAd(raw)
			require.Error(t, err)

			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr), "expected *ValidationError, got %T", err)
		})
	}
}

func TestNewAd_InvalidURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no scheme", "example.com/parts"},
		{"no host", "https://"},
		{"ftp scheme", "ftp://example.com/parts"},
		{"relative path", "/parts/brakes"},
		{"unparseable", "http://exa mple.com/%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validAd()
			raw.WebsiteURL = tt.url

			_, err := NewAd(raw)
			require.Error(t, err)

			var urlErr *URLValidationError
			require.True(t, errors.As(err, &urlErr), "expected *URLValidationError, got %T", err)

			// The URL failure is still the general validation kind.
			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr))
		})
	}
}

func TestURLValidationError_CarriesOffendingValue(t *testing.T) {
	raw := validAd()
	raw.WebsiteURL = "ftp://example.com"

	_, err := NewAd(raw)
	require.Error(t, err)

	var urlErr *URLValidationError
	require.True(t, errors.As(err, &urlErr))
	assert.Equal(t, "ftp://example.com", urlErr.URL)
	assert.Contains(t, err.Error(), "ftp://example.com")
}

func TestCleanPhoneNumber(t *testing.T) {
	assert.Equal(t, "15551234567", CleanPhoneNumber("+1 (555) 123-4567"))
	assert.Equal(t, "493012345", CleanPhoneNumber("+49 30 12345"))

	// Idempotent on an already-digits-only string.
	assert.Equal(t, "15551234567", CleanPhoneNumber("15551234567"))

	// No digits at all: the original value is kept, never emptied.
	assert.Equal(t, "call us", CleanPhoneNumber("call us"))
}

func TestNewAd_PhoneNormalization(t *testing.T) {
	raw := validAd()
	raw.PhoneNumber = "+49 (30) 555-0199"

	ad, err := NewAd(raw)
	require.NoError(t, err)
	assert.Equal(t, "49305550199", ad.PhoneNumber)
}

func TestNewAd_EmailLowercased(t *testing.T) {
	raw := validAd()
	raw.Email = "Foo@BAR.com"

	ad, err := NewAd(raw)
	require.NoError(t, err)
	assert.Equal(t, "foo@bar.com", ad.Email)
}

func TestPositionFromInt(t *testing.T) {
	assert.Equal(t, PositionTop, PositionFromInt(1))
	assert.Equal(t, PositionSidebar, PositionFromInt(2))
	assert.Equal(t, PositionBottom, PositionFromInt(3))
	assert.Equal(t, PositionUnknown, PositionFromInt(0))
	assert.Equal(t, PositionUnknown, PositionFromInt(99))
	assert.Equal(t, PositionUnknown, PositionFromInt(-1))
}

func TestPositionNames(t *testing.T) {
	assert.Equal(t, "TOP", PositionTop.Name())
	assert.Equal(t, "SIDEBAR", PositionSidebar.Name())
	assert.Equal(t, "BOTTOM", PositionBottom.Name())
	assert.Equal(t, "UNKNOWN", PositionUnknown.Name())

	assert.Equal(t, PositionTop, PositionFromName("TOP"))
	assert.Equal(t, PositionBottom, PositionFromName("bottom"))
	assert.Equal(t, PositionUnknown, PositionFromName("banner"))
}

func TestMapRoundTrip(t *testing.T) {
	raw := validAd()
	raw.Description = "Genuine pads for E-Class"
	raw.PhoneNumber = "+49 30 555 0199"
	raw.Price = "EUR 49.90"
	raw.Email = "Sales@Example.COM"
	raw.SocialLinks = map[string]string{"facebook": "https://facebook.com/exampleparts"}
	raw.MetaTags = map[string]string{"og:site_name": "Example Parts"}
	raw.Position = PositionTop
	raw.ProductCategories = []string{"brakes", "pads"}
	raw.Brand = "Mercedes"
	raw.Model = "W213"
	raw.PartCondition = "new"

	ad, err := NewAd(raw)
	require.NoError(t, err)

	back, err := AdFromMap(ad.ToMap())
	require.NoError(t, err)
	assert.Equal(t, ad, back, "round trip must preserve every field, timestamp included")
}

func TestAdFromMap_PositionOrdinal(t *testing.T) {
	base := map[string]any{
		"keyword":     "brake pads",
		"location":    "Berlin",
		"website_url": "https://example.com/parts",
		"title":       "OEM Brake Pads",
	}

	tests := []struct {
		name     string
		position any
		want     AdPosition
	}{
		{"ordinal 1", 1, PositionTop},
		{"ordinal 2", 2, PositionSidebar},
		{"ordinal 3", 3, PositionBottom},
		{"ordinal 99", 99, PositionUnknown},
		{"json float ordinal", float64(1), PositionTop},
		{"symbolic name", "SIDEBAR", PositionSidebar},
		{"missing", nil, PositionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make(map[string]any, len(base)+1)
			for k, v := range base {
				data[k] = v
			}
			if tt.position != nil {
				data["ad_position"] = tt.position
			}

			ad, err := AdFromMap(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ad.Position)
		})
	}
}

func TestAdFromMap_RunsFullValidation(t *testing.T) {
	_, err := AdFromMap(map[string]any{
		"keyword":     "brake pads",
		"location":    "Berlin",
		"website_url": "not-a-url",
		"title":       "OEM Brake Pads",
	})
	require.Error(t, err)

	var urlErr *URLValidationError
	assert.True(t, errors.As(err, &urlErr))
}

func TestAd_String(t *testing.T) {
	raw := validAd()
	raw.Position = PositionTop

	ad, err := NewAd(raw)
	require.NoError(t, err)
	assert.Equal(t, "OEM Brake Pads - https://example.com/parts (TOP)", ad.String())
}

func TestToMap_EmitsSymbolicPosition(t *testing.T) {
	raw := validAd()
	raw.Position = PositionBottom

	ad, err := NewAd(raw)
	require.NoError(t, err)

	m := ad.ToMap()
	assert.Equal(t, "BOTTOM", m["ad_position"])
	assert.Equal(t, "brake pads", m["keyword"])
	assert.Len(t, m, 16)
}
