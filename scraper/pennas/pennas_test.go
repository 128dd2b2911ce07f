package pennas

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy-locator/models"
	"pharmacy-locator/scraper/scrapertest"
)

const prestonsURL = "https://www.pennaspharmacy.com.au/locations/pennas-discount-pharmacy-prestons"

const prestonsPage = `<html><body>
<div class="richTextWithImage"><div class="richText">
  <p class="large"><strong>Shop 3, 1975 Camden Valley Way<br>Prestons NSW 2170</strong></p>
  <p>Phone:&nbsp;02 9607 1234<br>Fax: 02 9607 5678<br>Email: <a href="mailto:prestons@pennas.com.au">prestons@pennas.com.au</a></p>
  <p>Monday - Friday 8am - 8pm<br>Saturday 8:30am - 5pm<br>Sunday &amp; Public Holidays 9am - 5pm</p>
</div></div>
</body></html>`

func TestFetchAll(t *testing.T) {
	c := scrapertest.New(map[string]string{prestonsURL: prestonsPage})
	deps := c.Deps()
	deps.Endpoints.Pennas = []string{prestonsURL}

	got, err := New(deps).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	week := models.DayHours{Open: "8:00 AM", Closed: "8:00 PM"}
	sunday := models.DayHours{Open: "9:00 AM", Closed: "5:00 PM"}
	want := models.Pharmacy{
		Name:          "Penna's Discount Pharmacy Prestons",
		Address:       "Shop 3, 1975 Camden Valley Way, Prestons NSW 2170",
		Email:         "prestons@pennas.com.au",
		Fax:           "02 9607 5678",
		Phone:         "02 9607 1234",
		Postcode:      "2170",
		State:         "NSW",
		StreetAddress: "Shop 3 1975 Camden Valley Way",
		Suburb:        "Prestons",
		TradingHours: models.TradingHours{
			"Monday": week, "Tuesday": week, "Wednesday": week, "Thursday": week, "Friday": week,
			"Saturday":       {Open: "8:30 AM", Closed: "5:00 PM"},
			"Sunday":         sunday,
			"Public Holiday": sunday,
		},
		Website: prestonsURL,
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractWithoutRichText(t *testing.T) {
	h := New(scrapertest.New(nil).Deps())
	p := h.Extract(&models.RawRecord{
		Location: models.Location{Name: "Penna's Discount Pharmacy Cecil Hills", URL: "https://example.test/cecil-hills"},
		HTML:     `<html><body><h1>Under maintenance</h1></body></html>`,
	})
	assert.Equal(t, models.Pharmacy{Name: "Penna's Discount Pharmacy Cecil Hills", Website: "https://example.test/cecil-hills"}, p)
}

func TestFetchLocationsNames(t *testing.T) {
	locs, err := New(scrapertest.New(nil).Deps()).FetchLocations(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, locs)
	assert.Equal(t, "Penna's Discount Pharmacy Edensor Park", locs[0].Name)
	assert.Equal(t, "pennas-discount-pharmacy-edensor-park", locs[0].ID)
}
