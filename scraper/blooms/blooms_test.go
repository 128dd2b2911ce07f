package blooms

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

const record = `{
  "id": 77,
  "name": "Blooms The Chemist Mudgee",
  "streetaddress": "Shop 1, 20 Church St, Mudgee, NSW 2850, Australia",
  "phone": "02 6372 1234",
  "email": "mudgee@blooms.net.au",
  "website": "https://www.bloomsthechemist.com.au/mudgee",
  "loc_lat": -32.5943,
  "loc_long": 149.5871,
  "monday": "8:30am-6pm",
  "saturday": "9am - 1pm",
  "sunday": "CLOSED"
}`

func TestResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		n    int
	}{
		{"results", `{"results":{"locations":[` + record + `]}}`, 1},
		{"collection", `{"collection":{"locations":[` + record + `,` + record + `]}}`, 2},
		{"direct", `{"locations":[` + record + `]}`, 1},
		{"unknown", `{"success":true,"message":"ok"}`, 0},
		{"empty", `{"results":{"locations":[]}}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := scrapertest.New(map[string]string{config.DefaultEndpoints().Blooms: tt.body})
			got, err := New(c.Deps()).FetchAll(context.Background())
			require.NoError(t, err)
			assert.Len(t, got, tt.n)
		})
	}
}

func TestExtract(t *testing.T) {
	c := scrapertest.New(map[string]string{config.DefaultEndpoints().Blooms: `{"results":{"locations":[` + record + `]}}`})
	got, err := New(c.Deps()).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := models.Pharmacy{
		Name:          "Blooms The Chemist Mudgee",
		Address:       "Shop 1, 20 Church St, Mudgee, NSW 2850, Australia",
		Email:         "mudgee@blooms.net.au",
		Latitude:      "-32.5943",
		Longitude:     "149.5871",
		Phone:         "02 6372 1234",
		Postcode:      "2850",
		State:         "NSW",
		StreetAddress: "Shop 1, 20 Church St, Mudgee, NSW 2850, Australia",
		Suburb:        "Mudgee",
		TradingHours: models.TradingHours{
			"Monday":   {Open: "8:30 AM", Closed: "6:00 PM"},
			"Saturday": {Open: "9:00 AM", Closed: "1:00 PM"},
			"Sunday":   models.ClosedDay(),
		},
		Website: "https://www.bloomsthechemist.com.au/mudgee",
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractMissingFields(t *testing.T) {
	h := New(scrapertest.New(nil).Deps())
	p := h.Extract(&models.RawRecord{Data: map[string]any{"name": "Only A Name"}})
	assert.Equal(t, models.Pharmacy{Name: "Only A Name"}, p)
}

func TestFetchFailure(t *testing.T) {
	_, err := New(scrapertest.New(nil).Deps()).FetchAll(context.Background())
	assert.Error(t, err)
}
