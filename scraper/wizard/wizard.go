// Package wizard scrapes Wizard Pharmacy. Store tiles on the store finder
// link to one detail page per store.
package wizard

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

var (
	// contactRegexp matches the "T", "E" and "F" rows of the address block
	contactRegexp = regexp.MustCompile(`^([TEF])\s+(.+)$`)
	hoursRegexp   = regexp.MustCompile(`(?i)([\d:]+\s*(?:AM|PM))\s*to\s*([\d:]+\s*(?:AM|PM))`)
)

// Handler is the Wizard Pharmacy handler.
type Handler struct {
	scraper.Base
}

// New returns a Wizard handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandWizard, deps)}
}

// FetchLocations reads the store finder tiles.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.Get(ctx, h.Endpoints.WizardFinder, nil)
	if err != nil {
		return nil, fmt.Errorf("wizard: fetch locations: %w", err)
	}
	doc, err := scraper.ParseHTML(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("wizard: fetch locations: %w", err)
	}

	var locs []models.Location
	doc.Find("div.store-tiles").Each(func(i int, tile *goquery.Selection) {
		title := scraper.Text(tile.Find("div.store-title").First())
		href := scraper.Attr(tile.Find(`a[href^="/store-location/"]`).First(), "href")
		if title == "" || href == "" {
			return
		}
		id := fmt.Sprintf("wizard-%d", i+1)
		locs = append(locs, models.Location{
			ID:      id,
			StoreID: id,
			Name:    "Wizard Pharmacy " + title,
			URL:     h.Endpoints.WizardBase + href,
		})
	})
	h.Log().Info("[wizard] Found %d store tiles", len(locs))
	return locs, nil
}

// FetchDetails loads the store page.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	return h.FetchPage(ctx, loc)
}

// Extract reads the Contact and Trading Hours sections of a store page.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	doc := scraper.MustDoc(raw.HTML)

	p := models.Pharmacy{Name: raw.Location.Name, Website: raw.Location.URL}
	if doc.Find("div.store-name").Length() > 0 {
		if loc := scraper.Text(doc.Find("div.store-location").First()); loc != "" {
			p.Name = "Wizard Pharmacy " + loc
		}
	}

	if addr := section(doc, "Contact").Find("address.address").First(); addr.Length() > 0 {
		readAddress(addr, &p)
		readContact(addr, &p)
	}
	p.TradingHours = tradingHours(section(doc, "Trading Hours")).OrNil()
	return p
}

// section returns the section-container whose title contains heading.
func section(doc *goquery.Document, heading string) *goquery.Selection {
	return doc.Find("div.section-container").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Find("h3.section-title").Text(), heading)
	}).First()
}

// readAddress takes the street from the first text node and suburb, state
// and postcode from the text nodes after the <br>.
func readAddress(addr *goquery.Selection, p *models.Pharmacy) {
	var after []string
	seenBR := false
	addr.Contents().Each(func(_ int, n *goquery.Selection) {
		switch goquery.NodeName(n) {
		case "br":
			seenBR = true
		case "#text":
			t := normalize.CleanText(n.Text())
			if t == "" {
				return
			}
			if !seenBR {
				if p.StreetAddress == "" {
					p.StreetAddress = t
				}
				return
			}
			after = append(after, t)
		}
	})
	if len(after) >= 3 {
		p.Suburb, p.State, p.Postcode = after[0], normalize.StateAbbr(after[1]), after[2]
	}
	var parts []string
	for _, s := range []string{p.StreetAddress, p.Suburb, p.State, p.Postcode} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	p.Address = strings.Join(parts, ", ")
}

func readContact(addr *goquery.Selection, p *models.Pharmacy) {
	addr.Find("div").Each(func(_ int, d *goquery.Selection) {
		m := contactRegexp.FindStringSubmatch(scraper.Text(d))
		if m == nil {
			return
		}
		switch m[1] {
		case "T":
			p.Phone = normalize.CompactPhone(m[2])
		case "F":
			p.Fax = normalize.CompactPhone(m[2])
		case "E":
			if t := scraper.Text(d.Find("a").First()); t != "" {
				p.Email = t
			}
		}
	})
}

// tradingHours reads dt/dd pairs such as "Monday" / "8:30 AM to 5:30 PM".
func tradingHours(sec *goquery.Selection) models.TradingHours {
	th := models.TradingHours{}
	sec.Find("div.trading-row").Each(func(_ int, row *goquery.Selection) {
		day := normalize.MatchDay(scraper.Text(row.Find("dt").First()))
		text := scraper.Text(row.Find("dd").First())
		if day == "" {
			return
		}
		if strings.EqualFold(text, "closed") {
			th[day] = models.ClosedDay()
			return
		}
		if m := hoursRegexp.FindStringSubmatch(text); m != nil {
			th.Set(day, models.DayHours{Open: normalize.FormatTime(m[1], nil), Closed: normalize.FormatTime(m[2], nil)})
		}
	})
	return th
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.HeavyBatch)
}
