package googleads

import (
	"testing"

	"google-ads-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const landingPage = `<!DOCTYPE html>
<html>
<head>
	<meta name="description" content="OEM brake pads for Mercedes, new and used.">
	<meta property="og:site_name" content="Example Parts">
	<meta name="keywords" content="brakes, pads, mercedes">
</head>
<body>
	<h1>Brake pads from €49,90</h1>
	<a href="mailto:Sales@Example.com?subject=parts">Email us</a>
	<a href="tel:+49 30 555 0199">Call us</a>
	<a href="https://www.facebook.com/exampleparts">Facebook</a>
	<a href="https://x.com/exampleparts">X</a>
	<a href="/contact">Contact</a>
	<p>We stock new and used suspension and exhaust parts.</p>
</body>
</html>`

func TestEnrichFromHTML(t *testing.T) {
	ad := &models.RawAd{
		Keyword:    "brake pads",
		Location:   "Berlin",
		Title:      "OEM Brake Pads",
		WebsiteURL: "https://example.com/parts",
	}

	require.NoError(t, EnrichFromHTML(ad, landingPage, ad.WebsiteURL))

	assert.Equal(t, "Sales@Example.com", ad.Email)
	assert.Equal(t, "+49 30 555 0199", ad.PhoneNumber)
	assert.Equal(t, "€49,90", ad.Price)
	assert.Equal(t, "OEM brake pads for Mercedes, new and used.", ad.Description)

	assert.Equal(t, "Example Parts", ad.MetaTags["og:site_name"])
	assert.Equal(t, "https://www.facebook.com/exampleparts", ad.SocialLinks["facebook"])
	assert.Equal(t, "https://x.com/exampleparts", ad.SocialLinks["twitter"])
	assert.NotContains(t, ad.SocialLinks, "instagram")

	assert.Equal(t, "Mercedes", ad.Brand)
	assert.Equal(t, "new", ad.PartCondition)
	assert.Contains(t, ad.ProductCategories, "brake pads")
	assert.Contains(t, ad.ProductCategories, "suspension")
	assert.Contains(t, ad.ProductCategories, "exhaust")
}

func TestEnrichFromHTML_DoesNotOverwrite(t *testing.T) {
	ad := &models.RawAd{
		Keyword:     "brake pads",
		Location:    "Berlin",
		Title:       "OEM Brake Pads",
		WebsiteURL:  "https://example.com/parts",
		Description: "From the results page",
		PhoneNumber: "+1 555 000 1111",
		Price:       "$10",
		Email:       "first@example.com",
		Brand:       "BMW",
	}

	require.NoError(t, EnrichFromHTML(ad, landingPage, ad.WebsiteURL))

	assert.Equal(t, "From the results page", ad.Description)
	assert.Equal(t, "+1 555 000 1111", ad.PhoneNumber)
	assert.Equal(t, "$10", ad.Price)
	assert.Equal(t, "first@example.com", ad.Email)
	assert.Equal(t, "BMW", ad.Brand)
}

func TestEnrichFromHTML_EmptyPage(t *testing.T) {
	ad := &models.RawAd{
		Keyword:    "oil filter",
		Location:   "Munich",
		Title:      "Filters",
		WebsiteURL: "https://example.com",
	}

	require.NoError(t, EnrichFromHTML(ad, "<html><body></body></html>", ad.WebsiteURL))

	assert.Empty(t, ad.Email)
	assert.Empty(t, ad.PhoneNumber)
	assert.Contains(t, ad.ProductCategories, "oil filter")
}
