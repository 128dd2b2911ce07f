package community

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

const card = `<article class="stores">
  <h2 class="elementor-heading-title">Community Care Chemist Noosa</h2>
  <div class="elementor-element-5eec216"><div class="dynamic-content-for-elementor-acf">12 Sunshine Beach Rd, Noosa Heads QLD 4567</div></div>
  <div class="elementor-element-ba94b59"><div class="dynamic-content-for-elementor-acf">PH: 07 5447 1234</div></div>
  <div class="elementor-element-0b379dd"><div class="dynamic-content-for-elementor-acf">FAX: 07 5447 5678</div></div>
  <div class="dce-tokens"><a href="mailto:noosa@communitycarechemist.com.au">Email us</a></div>
  <div class="elementor-element-2a0c443"><div class="dynamic-content-for-elementor-acf">Mon - Fri: 8:00am - 6:00pm</div></div>
  <div class="elementor-element-81cd6c4"><div class="dynamic-content-for-elementor-acf">Sat: 8:30am - 12:30pm</div></div>
  <div class="elementor-element-a58e969"><div class="dynamic-content-for-elementor-acf">Sun: Closed</div></div>
</article>`

func TestFetchAll(t *testing.T) {
	c := scrapertest.New(map[string]string{
		config.DefaultEndpoints().Community: `<html><body>` + card + `</body></html>`,
	})
	got, err := New(c.Deps()).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	week := models.DayHours{Open: "8:00 AM", Closed: "6:00 PM"}
	want := models.Pharmacy{
		Name:          "Community Care Chemist Noosa",
		Address:       "12 Sunshine Beach Rd, Noosa Heads QLD 4567",
		Email:         "noosa@communitycarechemist.com.au",
		Fax:           "07 5447 5678",
		Phone:         "07 5447 1234",
		Postcode:      "4567",
		State:         "QLD",
		StreetAddress: "12 Sunshine Beach Rd, Noosa Heads QLD 4567",
		Suburb:        "Noosa Heads",
		TradingHours: models.TradingHours{
			"Monday": week, "Tuesday": week, "Wednesday": week, "Thursday": week, "Friday": week,
			"Saturday": {Open: "8:30 AM", Closed: "12:30 PM"},
			"Sunday":   models.ClosedDay(),
		},
		Website: website,
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestAlternateContainer(t *testing.T) {
	page := `<div class="dce-posts-wrapper"><article class="dce-post"><h3 class="elementor-heading-title">A</h3></article>` +
		`<article class="dce-post"><h3 class="elementor-heading-title">B</h3></article></div>`
	c := scrapertest.New(map[string]string{config.DefaultEndpoints().Community: page})

	locs, err := New(c.Deps()).FetchLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "community_a", locs[0].ID)
}

func TestNoCards(t *testing.T) {
	c := scrapertest.New(map[string]string{config.DefaultEndpoints().Community: `<article class="news"></article>`})
	got, err := New(c.Deps()).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}
