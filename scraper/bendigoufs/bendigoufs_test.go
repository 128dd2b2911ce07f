package bendigoufs

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

func TestParseHours(t *testing.T) {
	week := func(open, closed string) models.TradingHours {
		th := models.TradingHours{}
		th.SetDays(models.Weekdays[:5], models.DayHours{Open: open, Closed: closed})
		return th
	}
	tests := []struct {
		name string
		in   string
		want models.TradingHours
	}{
		{
			name: "bare weekday close is pm",
			in:   "Monday – Friday 8.30 to 6.00",
			want: week("8:30 AM", "6:00 PM"),
		},
		{
			name: "open follows explicit pm close",
			in:   "Monday - Friday 9.00 to 5.30pm",
			want: week("9:00 AM", "5:30 PM"),
		},
		{
			name: "saturday bare noon close reads as am",
			in:   "Saturday - 9.00 to 12.00",
			want: models.TradingHours{"Saturday": {Open: "9:00 AM", Closed: "12:00 AM"}},
		},
		{
			name: "saturday afternoon",
			in:   "Saturday - 9.00am to 1.00",
			want: models.TradingHours{"Saturday": {Open: "9:00 AM", Closed: "1:00 PM"}},
		},
		{
			name: "sunday and public holidays closed",
			in:   "Sunday & Public Holidays Closed",
			want: models.TradingHours{"Sunday": models.ClosedDay(), "Public Holiday": models.ClosedDay()},
		},
		{
			name: "sunday open",
			in:   "Sunday 10.00am to 4.00pm",
			want: models.TradingHours{"Sunday": {Open: "10:00 AM", Closed: "4:00 PM"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseHours(tt.in)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

const page = `<html><head><title>Locate Us - Eaglehawk Pharmacy | Bendigo UFS</title></head><body>
<div class="elementor-widget-container">
  <h3>Address</h3>
  <p>12 High St, Eaglehawk VIC 3556</p>
</div>
<div class="elementor-widget-container">
  <h3>Contact</h3>
  <p>Tel: (03) 5446 1234<br>Fax: (03) 5446 5678<br><a href="mailto:eaglehawk@bendigoufs.com.au">eaglehawk@bendigoufs.com.au</a></p>
</div>
<div class="elementor-widget-container">
  <h3>Trading Hours</h3>
  <p>Monday – Friday 9.00 to 5.30<br>Saturday – 9.00 to 12.00 noon<br>Sunday Closed</p>
</div>
</body></html>`

func TestFetchAll(t *testing.T) {
	ep := config.DefaultEndpoints()
	c := scrapertest.New(map[string]string{
		ep.BendigoSitemap: `<urlset>
  <url><loc>https://www.bendigoufs.com.au/about/</loc></url>
  <url><loc>https://www.bendigoufs.com.au/locate-us-eaglehawk/</loc></url>
</urlset>`,
		"https://www.bendigoufs.com.au/locate-us-eaglehawk/": page,
	})

	got, err := New(c.Deps()).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "Eaglehawk Pharmacy", p.Name)
	assert.Equal(t, "12 High St, Eaglehawk VIC 3556", p.Address)
	assert.Equal(t, "VIC", p.State)
	assert.Equal(t, "3556", p.Postcode)
	assert.Equal(t, "Eaglehawk", p.Suburb)
	assert.Equal(t, "(03) 5446 1234", p.Phone)
	assert.Equal(t, "(03) 5446 5678", p.Fax)
	assert.Equal(t, "eaglehawk@bendigoufs.com.au", p.Email)
	assert.Equal(t, models.DayHours{Open: "9:00 AM", Closed: "5:30 PM"}, p.TradingHours["Monday"])
	assert.Equal(t, models.ClosedDay(), p.TradingHours["Sunday"])
	assert.Equal(t, website, p.Website)
}

func TestNameFromSlug(t *testing.T) {
	doc := `<html><head><title>Bendigo UFS</title></head></html>`
	h := New(scrapertest.New(nil).Deps())
	p := h.Extract(&models.RawRecord{
		Location: models.Location{URL: "https://www.bendigoufs.com.au/locate-us-kangaroo-flat/"},
		HTML:     doc,
	})
	assert.Equal(t, "Kangaroo Flat", p.Name)
}
