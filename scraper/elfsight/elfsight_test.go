package elfsight

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

const location = `{
  "id": "loc-1",
  "name": "Optimal Pharmacy Plus Gungahlin",
  "address": "Shop 5, 33 Hibberson St, Gungahlin ACT 2912",
  "phone": "02 6242 1234",
  "email": "gungahlin@optimalpharmacyplus.com.au",
  "website": "https://optimalpharmacyplus.com.au/gungahlin",
  "place": {"coordinates": {"lat": -35.1832, "lng": 149.1334}},
  "dayMondayOpen": true,
  "dayMondayHours": [{"timeRange": ["08:00", "19:30"]}],
  "daySaturdayOpen": true,
  "daySaturdayHours": [{"timeRange": ["09:00", "17:00"]}],
  "daySundayOpen": false
}`

func TestFetchAll(t *testing.T) {
	ep := config.DefaultEndpoints()
	body := `{"status":1,"data":{"widgets":{"w1":{"data":{"settings":{"locations":[` + location + `]}}}}}}`
	c := scrapertest.New(map[string]string{ep.ElfsightBoot["optimal"]: body})

	h, err := New(scraper.BrandOptimal, c.Deps())
	require.NoError(t, err)
	got, err := h.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	th := models.TradingHours{}
	for _, d := range models.Weekdays {
		th[d] = models.ClosedDay()
	}
	th["Monday"] = models.DayHours{Open: "8:00 AM", Closed: "7:30 PM"}
	th["Saturday"] = models.DayHours{Open: "9:00 AM", Closed: "5:00 PM"}

	want := models.Pharmacy{
		Name:          "Optimal Pharmacy Plus Gungahlin",
		Address:       "Shop 5, 33 Hibberson St, Gungahlin ACT 2912",
		Email:         "gungahlin@optimalpharmacyplus.com.au",
		Latitude:      "-35.1832",
		Longitude:     "149.1334",
		Phone:         "02 6242 1234",
		Postcode:      "2912",
		State:         "ACT",
		StreetAddress: "Shop 5, 33 Hibberson St, Gungahlin ACT 2912",
		Suburb:        "Gungahlin",
		TradingHours:  th,
		Website:       "https://optimalpharmacyplus.com.au/gungahlin",
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "https://optimalpharmacyplus.com.au", c.Requests()[0].Headers["Origin"])
}

func TestWidgetShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		n    int
	}{
		{"settings fallback", `{"status":1,"data":{"widgets":{"w":{"settings":{"locations":[` + location + `,` + location + `]}}}}}`, 2},
		{"bad status", `{"status":0,"data":{}}`, 0},
		{"no widgets", `{"status":1,"data":{"widgets":{}}}`, 0},
		{"first listed widget", `{"status":1,"data":{"widgets":{"zz":{"settings":{"locations":[` + location + `]}},"aa":{"settings":{"locations":[` + location + `,` + location + `]}}}}}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := scrapertest.New(map[string]string{config.DefaultEndpoints().ElfsightBoot["revive"]: tt.body})
			h, err := New(scraper.BrandRevive, c.Deps())
			require.NoError(t, err)
			got, err := h.FetchAll(context.Background())
			require.NoError(t, err)
			assert.Len(t, got, tt.n)
		})
	}
}

func TestFirstWidgetID(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"data":{"widgets":{"b-2":{},"a-1":{}}}}`, "b-2"},
		{`{"data":{"widgets":{"only":{"settings":{}}}}}`, "only"},
		{`{"data":{"widgets":{}}}`, ""},
		{`{"data":{"widgets":[]}}`, ""},
		{`{"data":{}}`, ""},
		{`not json`, ""},
	}
	for _, tt := range tests {
		if got := firstWidgetID([]byte(tt.body)); got != tt.want {
			t.Errorf("firstWidgetID(%q) = %q; want %q", tt.body, got, tt.want)
		}
	}
}

func TestUnknownBrand(t *testing.T) {
	_, err := New(scraper.BrandBlooms, scrapertest.New(nil).Deps())
	assert.Error(t, err)
}
