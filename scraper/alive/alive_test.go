package alive

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

func TestParseOpeningHours(t *testing.T) {
	week := models.DayHours{Open: "8:00 AM", Closed: "6:00 PM"}
	tests := []struct {
		name string
		in   string
		want models.TradingHours
	}{
		{
			name: "time first",
			in:   "8am - 6pm Monday to Friday 8:30am - 6pm Saturday 10am - 4pm Sunday",
			want: models.TradingHours{
				"Monday": week, "Tuesday": week, "Wednesday": week, "Thursday": week, "Friday": week,
				"Saturday": {Open: "8:30 AM", Closed: "6:00 PM"},
				"Sunday":   {Open: "10:00 AM", Closed: "4:00 PM"},
			},
		},
		{
			name: "day first",
			in:   "Mon-Fri 8am-6pm, Sat & Sun 9am-1pm",
			want: models.TradingHours{
				"Monday": week, "Tuesday": week, "Wednesday": week, "Thursday": week, "Friday": week,
				"Saturday": {Open: "9:00 AM", Closed: "1:00 PM"},
				"Sunday":   {Open: "9:00 AM", Closed: "1:00 PM"},
			},
		},
		{name: "no times", in: "Call the store", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseOpeningHours(tt.in)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchAll(t *testing.T) {
	body := `[{
	  "id": 5501,
	  "name": "Alive Pharmacy Warehouse Midland",
	  "address_line_1": "Shop 2, 1 Clayton St",
	  "city": "Midland",
	  "state": "Western Australia",
	  "postal_code": "6056",
	  "phone": "(08) 9250 1234",
	  "email": "midland@alivepharmacy.com.au",
	  "latitude": "-31.8893",
	  "longitude": "116.0108",
	  "custom_fields": [{"name": "Opening Hours", "value": "9am - 5pm Monday to Friday"}]
	}]`
	c := scrapertest.New(map[string]string{config.DefaultEndpoints().Alive: body})

	got, err := New(c.Deps()).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "Shop 2, 1 Clayton St, Midland, Western Australia, 6056", p.Address)
	assert.Equal(t, "WA", p.State)
	assert.Equal(t, "Midland", p.Suburb)
	assert.Equal(t, "Shop 2, 1 Clayton St", p.StreetAddress)
	assert.Equal(t, "-31.8893", p.Latitude)
	assert.Len(t, p.TradingHours, 5)
	assert.Equal(t, models.DayHours{Open: "9:00 AM", Closed: "5:00 PM"}, p.TradingHours["Wednesday"])
}
