package wpsl

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy-locator/config"
	"pharmacy-locator/models"
	"pharmacy-locator/scraper"
	"pharmacy-locator/scraper/scrapertest"
)

const search = `[{
  "id": "812",
  "store": "Choice Pharmacy Mount Barker",
  "address": "6 Hutchinson St",
  "address2": "",
  "city": "Mount Barker",
  "state": "SA",
  "zip": "5251",
  "lat": "-35.0663",
  "lng": "138.8586",
  "phone": "08 8391 1234",
  "fax": "08 8391 5678",
  "email": "",
  "url": "",
  "permalink": "https://www.choicepharmacy.com.au/stores/mount-barker/",
  "hours": "<table role=\"presentation\" class=\"wpsl-opening-hours\"><tr><td>Monday</td><td><time>8:30 AM - 5:30 PM</time></td></tr><tr><td>Saturday</td><td><time>9:00 AM - 12:00 PM</time></td></tr><tr><td>Sunday</td><td>Closed</td></tr></table>"
}]`

func TestFetchAll(t *testing.T) {
	c := scrapertest.New(map[string]string{config.DefaultEndpoints().WPSL["choice"]: search})
	h, err := New(scraper.BrandChoice, c.Deps())
	require.NoError(t, err)

	got, err := h.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := models.Pharmacy{
		Name:          "Choice Pharmacy Mount Barker",
		Address:       "6 Hutchinson St, Mount Barker, SA, 5251",
		Fax:           "08 8391 5678",
		Latitude:      "-35.0663",
		Longitude:     "138.8586",
		Phone:         "08 8391 1234",
		Postcode:      "5251",
		State:         "SA",
		StreetAddress: "6 Hutchinson St",
		Suburb:        "Mount Barker",
		TradingHours: models.TradingHours{
			"Monday":   {Open: "8:30 AM", Closed: "5:30 PM"},
			"Saturday": {Open: "9:00 AM", Closed: "12:00 PM"},
			"Sunday":   models.ClosedDay(),
		},
		Website: "https://www.choicepharmacy.com.au/stores/mount-barker/",
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestBrandsShareGrammar(t *testing.T) {
	for _, b := range []scraper.Brand{scraper.BrandPharmasave, scraper.BrandNova, scraper.BrandChoice} {
		t.Run(string(b), func(t *testing.T) {
			c := scrapertest.New(map[string]string{config.DefaultEndpoints().WPSL[string(b)]: `[]`})
			h, err := New(b, c.Deps())
			require.NoError(t, err)
			assert.Equal(t, b, h.Brand())
			got, err := h.FetchAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
	_, err := New(scraper.BrandWizard, scrapertest.New(nil).Deps())
	assert.Error(t, err)
}
