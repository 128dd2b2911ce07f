// Package completecare scrapes the curated Complete Care Pharmacies store
// pages, built with Elementor icon lists.
package completecare

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

const (
	dayGroup  = `(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)`
	timeGroup = `([\d:.]+\s*(?:am|pm))`
	timeSep   = `\s*(?:[-–]|[\s\-–]+to[\s\-–]+)\s*`
)

var (
	rangeRegexp  = regexp.MustCompile(`(?i)` + dayGroup + `\s+to\s+` + dayGroup + `\s*:\s*` + timeGroup + timeSep + timeGroup)
	singleRegexp = regexp.MustCompile(`(?i)` + dayGroup + `[^:]*:\s*` + timeGroup + timeSep + timeGroup)
	closedRegexp = regexp.MustCompile(`(?i)` + dayGroup + `\s*:\s*Closed`)
	anyDayRegexp = regexp.MustCompile(`(?i)` + dayGroup)
	anyTimes     = regexp.MustCompile(`(?i)` + timeGroup + `\s*[-–]\s*` + timeGroup)
)

// hoursSelectors are tried in order until one matches.
var hoursSelectors = []string{
	`.elementor-text-editor h3:contains("Opening Hours") + p`,
	`.elementor-widget-text-editor:contains("Opening Hours")`,
	`.elementor-widget-container h3:contains("Opening Hours") + p`,
	`.elementor-widget-container p:contains("Monday to Friday")`,
	`.elementor-element-933c733 .elementor-widget-container`,
	`.elementor-widget-text-editor .elementor-widget-container`,
}

// Handler is the Complete Care handler.
type Handler struct {
	scraper.Base
}

// New returns a Complete Care handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandCompleteCare, deps)}
}

// FetchLocations returns one stub per configured store page.
func (h *Handler) FetchLocations(_ context.Context) ([]models.Location, error) {
	locs := scraper.URLStubs(h.Endpoints.CompleteCare)
	for i := range locs {
		locs[i].StoreID = locs[i].ID
		locs[i].Name = "Complete Care Pharmacy " + normalize.TitleSlug(locs[i].ID)
	}
	return locs, nil
}

// FetchDetails loads the store page.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	return h.FetchPage(ctx, loc)
}

// Extract reads the icon list contact items and the opening hours block.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	doc := scraper.MustDoc(raw.HTML)
	p := models.Pharmacy{Name: raw.Location.Name, Website: raw.Location.URL}
	if n := scraper.Text(doc.Find("h1.elementor-heading-title").First()); n != "" {
		p.Name = n
	}

	doc.Find("ul.elementor-icon-list-items li.elementor-icon-list-item").Each(func(_ int, item *goquery.Selection) {
		text := scraper.Text(item.Find(".elementor-icon-list-text").First())
		icon := scraper.Attr(item.Find(".elementor-icon-list-icon i").First(), "class")
		switch {
		case strings.Contains(icon, "map-marker"):
			p.Address = text
			p.StreetAddress, p.Suburb, p.State, p.Postcode = ParseAddress(text)
		case strings.Contains(icon, "phone"):
			if p.Phone = scraper.Tel(item); p.Phone == "" {
				p.Phone = text
			}
		case strings.Contains(icon, "fax"):
			p.Fax = normalize.StripPrefix(text, "Fax:")
		case strings.Contains(icon, "envelope"):
			if p.Email = scraper.Mailto(item); p.Email == "" {
				p.Email = text
			}
		}
	})

	for _, sel := range hoursSelectors {
		if el := doc.Find(sel).First(); el.Length() > 0 {
			p.TradingHours = ParseHours(strings.Join(scraper.Lines(el), "\n")).OrNil()
			break
		}
	}
	return p
}

// ParseHours reads "Monday to Friday: 8:30am – 6pm" style text. When no
// labelled day matches, days and time ranges are paired in order.
func ParseHours(text string) models.TradingHours {
	th := models.TradingHours{}
	for _, m := range singleRegexp.FindAllStringSubmatch(text, -1) {
		th.Set(normalize.MatchDay(m[1]), pair(m[2], m[3]))
	}
	for _, m := range rangeRegexp.FindAllStringSubmatch(text, -1) {
		th.SetDays(normalize.ExpandDays(m[1], m[2]), pair(m[3], m[4]))
	}
	for _, m := range closedRegexp.FindAllStringSubmatch(text, -1) {
		th[normalize.MatchDay(m[1])] = models.ClosedDay()
	}
	if len(th) > 0 {
		return th
	}

	days := anyDayRegexp.FindAllString(text, -1)
	times := anyTimes.FindAllStringSubmatch(text, -1)
	for i, d := range days {
		if i >= len(times) {
			break
		}
		th.Set(normalize.MatchDay(d), pair(times[i][1], times[i][2]))
	}
	return th
}

func pair(open, closed string) models.DayHours {
	return models.DayHours{Open: normalize.FormatTime(open, nil), Closed: normalize.FormatTime(closed, nil)}
}

// ParseAddress reads "street suburb STATE 1234". The suburb is the part after
// the last comma, or the last word when there is no comma.
func ParseAddress(address string) (street, suburb, state, postcode string) {
	rest, state, postcode := normalize.SplitStatePostcode(address)
	if state == "" {
		return rest, "", "", ""
	}
	if i := strings.LastIndex(rest, ","); i >= 0 {
		return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i+1:]), state, postcode
	}
	words := strings.Fields(rest)
	if len(words) < 2 {
		return "", rest, state, postcode
	}
	return strings.Join(words[:len(words)-1], " "), words[len(words)-1], state, postcode
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.HeavyBatch)
}
