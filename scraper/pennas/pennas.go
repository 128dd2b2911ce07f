// Package pennas scrapes the curated Penna's Discount Pharmacy store pages.
package pennas

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

const slugPrefix = "pennas-discount-pharmacy-"

var timesRegexp = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm))\s*[-–]\s*(\d{1,2}(?::\d{2})?\s*(?:am|pm))`)

// Handler is the Penna's handler.
type Handler struct {
	scraper.Base
}

// New returns a Penna's handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandPennas, deps)}
}

// FetchLocations returns one stub per configured store page.
func (h *Handler) FetchLocations(_ context.Context) ([]models.Location, error) {
	locs := scraper.URLStubs(h.Endpoints.Pennas)
	for i := range locs {
		locs[i].StoreID = locs[i].ID
		locs[i].Name = "Penna's Discount Pharmacy " + normalize.TitleSlug(strings.TrimPrefix(locs[i].ID, slugPrefix))
	}
	return locs, nil
}

// FetchDetails loads the store page.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	return h.FetchPage(ctx, loc)
}

// Extract reads the rich text block holding address, contact lines and
// hours. A page without it still yields the name and website.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	doc := scraper.MustDoc(raw.HTML)
	p := models.Pharmacy{Name: raw.Location.Name, Website: raw.Location.URL}

	rich := doc.Find("div.richTextWithImage div.richText").First()
	if rich.Length() == 0 {
		h.Log().Debug("[pennas] No rich text block on %s", raw.Location.URL)
		return p
	}

	p.Address = strings.Join(scraper.Lines(rich.Find("p.large strong").First()), ", ")
	p.StreetAddress, p.Suburb, p.State, p.Postcode = ParseAddress(p.Address)

	var hoursLines []string
	rich.Find("p").Each(func(_ int, para *goquery.Selection) {
		lines := scraper.Lines(para)
		text := strings.Join(lines, " ")
		if e := scraper.Text(para.Find(`a[href*="mailto:"]`).First()); e != "" {
			p.Email = e
		}
		if strings.Contains(text, "Phone:") || strings.Contains(text, "Fax:") || strings.Contains(text, "Email:") {
			for _, l := range lines {
				if v := labelled(l, "Phone:", "Fax:", "Email:"); v != "" && p.Phone == "" {
					p.Phone = v
				}
				if v := labelled(l, "Fax:", "Email:", "Phone:"); v != "" && p.Fax == "" {
					p.Fax = v
				}
			}
			return
		}
		if strings.Contains(text, "Monday") && strings.Contains(text, "Friday") && timesRegexp.MatchString(text) {
			hoursLines = append(hoursLines, lines...)
		}
	})
	if len(hoursLines) > 0 {
		p.TradingHours = ParseHours(hoursLines)
	}
	return p
}

// labelled returns the text after label up to the first of the stop labels.
func labelled(line, label string, stops ...string) string {
	_, rest, ok := strings.Cut(line, label)
	if !ok {
		return ""
	}
	for _, s := range stops {
		if i := strings.Index(rest, s); i >= 0 {
			rest = rest[:i]
		}
	}
	return strings.TrimSpace(rest)
}

// ParseHours reads lines such as "Monday - Friday 8am - 8pm" and
// "Sunday & Public Holidays 9am - 5pm". Days not listed are Closed.
func ParseHours(lines []string) models.TradingHours {
	th := models.ClosedWeek()
	for _, l := range lines {
		var days []string
		switch {
		case strings.Contains(l, "Monday") && strings.Contains(l, "Friday") && strings.Contains(l, "-"):
			days = models.Weekdays[:5]
		case strings.Contains(l, "Saturday"):
			days = []string{"Saturday"}
		case strings.Contains(l, "Sunday") && (strings.Contains(l, "Public") || strings.Contains(l, "&")):
			days = []string{"Sunday", "Public Holiday"}
		case strings.Contains(l, "Sunday"):
			days = []string{"Sunday"}
		case strings.Contains(l, "Public Holiday"):
			days = []string{"Public Holiday"}
		default:
			continue
		}
		if m := timesRegexp.FindStringSubmatch(l); m != nil {
			th.SetDays(days, models.DayHours{
				Open:   normalize.FormatTime(m[1], nil),
				Closed: normalize.FormatTime(m[2], nil),
			})
		}
	}
	return th
}

// ParseAddress reads "street, suburb STATE 1234". The street joins every part
// before the last.
func ParseAddress(address string) (street, suburb, state, postcode string) {
	if strings.TrimSpace(address) == "" {
		return "", "", "", ""
	}
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	last := parts[len(parts)-1]
	if rest, st, pc := normalize.SplitStatePostcode(last); st != "" {
		suburb, state, postcode = rest, st, pc
	}
	if len(parts) > 1 {
		street = strings.Join(parts[:len(parts)-1], " ")
	}
	return street, suburb, state, postcode
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.HeavyBatch)
}
