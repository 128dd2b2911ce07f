// Package friendlycare scrapes the curated FriendlyCare Pharmacy store pages.
package friendlycare

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

const (
	site         = "https://www.friendlycare.com.au"
	defaultState = "QLD"
	areaCode     = "07"
)

var hoursRegexp = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:am|pm))\s*-\s*(\d{1,2}:\d{2}\s*(?:am|pm))`)

var headers = map[string]string{
	"Accept":  "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Referer": site + "/",
	"Origin":  site,
}

// Handler is the FriendlyCare handler.
type Handler struct {
	scraper.Base
}

// New returns a FriendlyCare handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandFriendlyCare, deps)}
}

// FetchLocations returns one stub per configured store page.
func (h *Handler) FetchLocations(_ context.Context) ([]models.Location, error) {
	locs := scraper.URLStubs(h.Endpoints.FriendlyCare)
	for i := range locs {
		locs[i].StoreID = locs[i].ID
		locs[i].Name = "FriendlyCare Pharmacy " + normalize.TitleSlug(locs[i].ID)
	}
	h.Log().Info("[friendly_care] Using %d configured store pages", len(locs))
	return locs, nil
}

// FetchDetails loads the store page with the site's referer.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	resp, err := h.Get(ctx, loc.URL, headers)
	if err != nil {
		return nil, fmt.Errorf("friendly_care: fetch %s: %w", loc.URL, err)
	}
	return &models.RawRecord{Location: loc, HTML: resp.Text()}, nil
}

// Extract reads the store details table. Rows are keyed by their th label.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	doc := scraper.MustDoc(raw.HTML)
	p := models.Pharmacy{Name: "FriendlyCare Pharmacy", Website: raw.Location.URL}
	if heading := scraper.Text(doc.Find("form#aspnetForm h2").First()); heading != "" {
		p.Name += " " + heading
	}

	if td := cell(doc, "Address:"); td.Length() > 0 {
		p.Address = strings.Join(scraper.Lines(td), ", ")
	}
	if td := cell(doc, "Phone:"); td.Length() > 0 {
		phone := scraper.Text(td.Find("a").First())
		if phone == "" {
			phone = scraper.Text(td)
		}
		p.Phone = normalize.FormatPhoneArea(phone, areaCode)
	}
	if td := cell(doc, "Fax:"); td.Length() > 0 {
		p.Fax = normalize.FormatPhoneArea(scraper.Text(td), areaCode)
	}
	if td := cell(doc, "Email:"); td.Length() > 0 {
		p.Email = strings.ToLower(scraper.Text(td))
	}
	if td := cell(doc, "Opening Hours:"); td.Length() > 0 {
		if table := td.Find("table.opening-hours").First(); table.Length() > 0 {
			p.TradingHours = ParseHoursTable(table)
		}
	}

	p.StreetAddress, p.Suburb, p.State, p.Postcode = normalize.SplitRegional(p.Address, defaultState)
	return p
}

// cell returns the td following the th labelled label.
func cell(doc *goquery.Document, label string) *goquery.Selection {
	th := doc.Find(fmt.Sprintf("th:contains(%q)", label)).First()
	return th.NextAllFiltered("td").First()
}

// ParseHoursTable reads a table.opening-hours. Every day starts closed and
// rows with a time range reopen the days they name.
func ParseHoursTable(table *goquery.Selection) models.TradingHours {
	th := models.ClosedWeek()
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		dayCell, hoursCell := row.Find("th").First(), row.Find("td").First()
		if dayCell.Length() == 0 || hoursCell.Length() == 0 {
			return
		}
		m := hoursRegexp.FindStringSubmatch(scraper.Text(hoursCell))
		if m == nil {
			return
		}
		th.SetDays(normalize.DaysIn(scraper.Text(dayCell)), models.DayHours{
			Open:   normalize.FormatTime(m[1], nil),
			Closed: normalize.FormatTime(m[2], nil),
		})
	})
	return th
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.HeavyBatch)
}
