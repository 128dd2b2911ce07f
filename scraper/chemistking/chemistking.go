// Package chemistking scrapes the Chemist King store pages. The site is a
// Wix build without a store API, so the store list is curated.
package chemistking

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

// Every store is in South Australia.
const (
	defaultState = "SA"
	areaCode     = "08"
)

var (
	addrLikeRegexp  = regexp.MustCompile(`\b[A-Z]{2}\s+\d{4}\b`)
	faxRegexp       = regexp.MustCompile(`Fax:\s*(\(?\d+\)?\s*\d+\s*\d+)`)
	dayLabelRegexp  = regexp.MustCompile(`(Mon|Tues|Wed|Thurs|Fri|Sat|Sun):`)
	dayTimeRegexp   = regexp.MustCompile(`(?i)(Mon|Tues|Wed|Thurs|Fri|Sat|Sun):\s*([\d.:]+\s*(?:am|pm))\s*[–-]\s*([\d.:]+\s*(?:am|pm))`)
	dayClosedRegexp = regexp.MustCompile(`(?i)(Mon|Tues|Wed|Thurs|Fri|Sat|Sun):\s*closed`)
)

// Handler is the Chemist King handler.
type Handler struct {
	scraper.Base
}

// New returns a Chemist King handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandChemistKing, deps)}
}

// FetchLocations returns the curated store pages.
func (h *Handler) FetchLocations(_ context.Context) ([]models.Location, error) {
	locs := scraper.URLStubs(h.Endpoints.ChemistKing)
	for i := range locs {
		locs[i].StoreID = locs[i].ID
		locs[i].Name = "Chemist King " + normalize.TitleSlug(locs[i].ID)
	}
	h.Log().Info("[chemist_king] Using %d provided store links", len(locs))
	return locs, nil
}

// FetchDetails loads the store page.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	return h.FetchPage(ctx, loc)
}

// Extract reads a store page.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	doc := scraper.MustDoc(raw.HTML)

	name := scraper.Text(doc.Find(`h1[style*="font-size:56px"]`).First())
	if name == "" {
		name = raw.Location.Name
	}
	address := findAddress(doc)
	street, suburb, state, postcode := ParseAddress(address)

	p := models.Pharmacy{
		Name:          name,
		Address:       address,
		Email:         strings.ToLower(scraper.Mailto(doc.Selection)),
		Fax:           findFax(doc),
		Phone:         scraper.Tel(doc.Selection),
		Postcode:      postcode,
		State:         state,
		StreetAddress: street,
		Suburb:        suburb,
		TradingHours:  hours(doc),
		Website:       raw.Location.URL,
	}
	if p.Phone != "" {
		p.Phone = normalize.FormatPhoneArea(p.Phone, areaCode)
	}
	if p.Fax != "" {
		p.Fax = normalize.FormatPhoneArea(p.Fax, areaCode)
	}
	return p
}

func findAddress(doc *goquery.Document) string {
	if t := scraper.Text(doc.Find(`div[class*="icon-location"] p`).First()); t != "" {
		return t
	}
	var out string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t := scraper.Text(s); addrLikeRegexp.MatchString(t) {
			out = t
			return false
		}
		return true
	})
	return out
}

// findFax looks for "Fax:" in text first and then in button labels.
func findFax(doc *goquery.Document) string {
	if m := faxRegexp.FindStringSubmatch(doc.Text()); m != nil {
		return strings.TrimSpace(m[1])
	}
	var out string
	doc.Find("button[aria-label]").EachWithBreak(func(_ int, b *goquery.Selection) bool {
		if m := faxRegexp.FindStringSubmatch(scraper.Attr(b, "aria-label")); m != nil {
			out = strings.TrimSpace(m[1])
			return false
		}
		return true
	})
	return out
}

// hours parses the element with the most "Day:" labels. The store is
// Closed on every day the block does not list.
func hours(doc *goquery.Document) models.TradingHours {
	var best *goquery.Selection
	most := 0
	doc.Find("p, div").Each(func(_ int, s *goquery.Selection) {
		if n := len(dayLabelRegexp.FindAllString(s.Text(), -1)); n > most {
			best, most = s, n
		}
	})
	if best == nil {
		return nil
	}

	text := best.Text()
	th := models.ClosedWeek()
	for _, m := range dayTimeRegexp.FindAllStringSubmatch(text, -1) {
		th.Set(normalize.MatchDay(m[1]), models.DayHours{
			Open:   normalize.FormatTime(m[2], nil),
			Closed: normalize.FormatTime(m[3], nil),
		})
	}
	for _, m := range dayClosedRegexp.FindAllStringSubmatch(text, -1) {
		th[normalize.MatchDay(m[1])] = models.ClosedDay()
	}
	return th
}

// ParseAddress splits a Chemist King address into street, suburb, state and
// postcode. A missing state defaults to SA.
func ParseAddress(address string) (street, suburb, state, postcode string) {
	return normalize.SplitRegional(address, defaultState)
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.HeavyBatch)
}
