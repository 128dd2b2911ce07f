package footes

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy-locator/config"
	"pharmacy-locator/models"
	"pharmacy-locator/scraper/scrapertest"
)

const sitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://footespharmacies.com/stores/</loc></url>
  <url><loc>https://footespharmacies.com/stores/kew-east/</loc></url>
  <url><loc>https://footespharmacies.com/stores/balwyn/</loc></url>
  <url><loc>https://footespharmacies.com/stores/gone/</loc></url>
</urlset>`

// kew@footes.com.au under key 0x42
const cfKew = "4229273502242d2d3627316c212d2f6c2337"

const kewPage = `<html><body>
<div class="elementor-element-d9bbb9b"><h2 class="elementor-heading-title">1 High St, Kew East VIC 3102</h2></div>
<div class="store-phone"><a href="tel:0398171234">(03) 9817 1234</a></div>
<div class="elementor-element-2008741">Fx: (03) 9817 5678</div>
<div class="store-email"><a href="/cdn-cgi/l/email-protection#` + cfKew + `"><span class="__cf_email__" data-cfemail="` + cfKew + `">[email protected]</span></a></div>
<div class="elementor-element-fb1522c">
  <div class="elementor-widget-text-editor">Monday - Friday</div>
  <div class="elementor-widget-text-editor">Saturday</div>
  <div class="elementor-widget-text-editor">Sunday</div>
</div>
<div class="elementor-element-b96bcb7">
  <div class="elementor-widget-text-editor">8:30am - 6pm</div>
  <div class="elementor-widget-text-editor">9am - 1pm</div>
  <div class="elementor-widget-text-editor">Closed</div>
</div>
</body></html>`

const balwynPage = `<html><body>
<h1 class="elementor-heading-title">Balwyn</h1>
<h3 class="elementor-heading-title">200 Whitehorse Rd, Balwyn VIC 3103</h3>
<p><a href="tel:0398361111">(03) 9836 1111</a></p>
<div class="elementor-text-editor">Fx: (03) 9836 2222</div>
<p><span class="__cf_email__" data-cfemail="` + cfKew + `">[email protected]</span></p>
</body></html>`

func TestFetchAll(t *testing.T) {
	c := scrapertest.New(map[string]string{
		config.DefaultEndpoints().FootesSitemap:          sitemap,
		"https://footespharmacies.com/stores/kew-east/": kewPage,
		"https://footespharmacies.com/stores/balwyn/":   balwynPage,
	})

	got, err := New(c.Deps()).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2, "the store whose page 404s is skipped")

	week := models.DayHours{Open: "8:30 AM", Closed: "6:00 PM"}
	want := models.Pharmacy{
		Name:          "Footes Pharmacy Kew East",
		Address:       "1 High St, Kew East VIC 3102",
		Email:         "kew@footes.com.au",
		Fax:           "(03) 9817 5678",
		Phone:         "(03) 9817 1234",
		Postcode:      "3102",
		State:         "VIC",
		StreetAddress: "1 High St, Kew East VIC 3102",
		Suburb:        "Kew East",
		TradingHours: models.TradingHours{
			"Monday": week, "Tuesday": week, "Wednesday": week, "Thursday": week, "Friday": week,
			"Saturday": {Open: "9:00 AM", Closed: "1:00 PM"},
			"Sunday":   models.ClosedDay(),
		},
		Website: website,
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("kew mismatch (-want +got):\n%s", diff)
	}

	b := got[1]
	assert.Equal(t, "Footes Pharmacy Balwyn", b.Name)
	assert.Equal(t, "200 Whitehorse Rd, Balwyn VIC 3103", b.Address)
	assert.Equal(t, "(03) 9836 1111", b.Phone)
	assert.Equal(t, "(03) 9836 2222", b.Fax)
	assert.Equal(t, "kew@footes.com.au", b.Email)
	assert.Equal(t, "Balwyn", b.Suburb)
	assert.Nil(t, b.TradingHours)
}

func TestFetchLocationsIDs(t *testing.T) {
	c := scrapertest.New(map[string]string{config.DefaultEndpoints().FootesSitemap: sitemap})
	locs, err := New(c.Deps()).FetchLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, "footes_kew_east", locs[0].ID)
	assert.Equal(t, "https://footespharmacies.com/stores/kew-east/", locs[0].URL)
}

func TestEmptySitemap(t *testing.T) {
	c := scrapertest.New(map[string]string{config.DefaultEndpoints().FootesSitemap: `<urlset></urlset>`})
	got, err := New(c.Deps()).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}
