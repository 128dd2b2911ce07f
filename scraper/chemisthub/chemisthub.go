// Package chemisthub scrapes the curated Chemist Hub store pages.
package chemisthub

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

var statePCRegexp = regexp.MustCompile(`^(.+?)\s+(\d{4})`)

// Handler is the Chemist Hub handler.
type Handler struct {
	scraper.Base
}

// New returns a Chemist Hub handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandChemistHub, deps)}
}

// FetchLocations returns one stub per configured store page.
func (h *Handler) FetchLocations(_ context.Context) ([]models.Location, error) {
	locs := scraper.URLStubs(h.Endpoints.ChemistHub)
	for i := range locs {
		locs[i].Name = normalize.TitleSlug(locs[i].ID)
		locs[i].ID = fmt.Sprintf("chemist-hub-%d", i+1)
		locs[i].StoreID = locs[i].ID
	}
	return locs, nil
}

// FetchDetails loads the store page.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	return h.FetchPage(ctx, loc)
}

// Extract reads the postal address block, contact links and opening hours
// list.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	doc := scraper.MustDoc(raw.HTML)
	p := models.Pharmacy{Name: raw.Location.Name, Website: raw.Location.URL}
	if t := scraper.Text(doc.Find("h1#pageTitleText").First()); t != "" {
		p.Name = t
	}

	lines := doc.Find("div.address-item.postal div")
	p.StreetAddress = scraper.Text(lines.Eq(0))
	p.Suburb = scraper.Text(lines.Eq(1))
	if m := statePCRegexp.FindStringSubmatch(scraper.Text(lines.Eq(2))); m != nil {
		p.State, p.Postcode = strings.TrimSpace(m[1]), m[2]
	}
	var stpc string
	if p.State != "" || p.Postcode != "" {
		stpc = strings.TrimSpace(p.State + " " + p.Postcode)
	}
	p.Address = normalize.JoinAddress(p.StreetAddress, p.Suburb, stpc)
	p.State = normalize.StateAbbr(p.State)

	p.Email = scraper.Text(doc.Find("div.address-item.email a").First())
	if ph := scraper.Text(doc.Find("div.address-item.phone a").First()); ph != "" {
		p.Phone = normalize.CompactPhone(ph)
	}
	p.TradingHours = openingHours(doc).OrNil()
	return p
}

// openingHours reads openingHoursListItem rows. Open days carry two session
// spans, closed days a "closed" element.
func openingHours(doc *goquery.Document) models.TradingHours {
	th := models.TradingHours{}
	doc.Find("div.openingHoursList div.openingHoursListItem").Each(func(_ int, item *goquery.Selection) {
		day := normalize.MatchDay(scraper.Text(item.Find("div.openingHoursLabel")))
		value := item.Find("div.openingHoursValue").First()
		if day == "" || value.Length() == 0 {
			return
		}
		if value.Find("div.closed").Length() > 0 {
			th[day] = models.ClosedDay()
			return
		}
		spans := value.Find("div.sessions span")
		if spans.Length() < 2 {
			return
		}
		th.Set(day, models.DayHours{
			Open:   normalize.FormatTime(scraper.Text(spans.Eq(0)), nil),
			Closed: normalize.FormatTime(scraper.Text(spans.Eq(1)), nil),
		})
	})
	return th
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.HeavyBatch)
}
