// Package fullife reads the Fullife Pharmacy locations page, a Wix repeater
// where every store is one list item of rich-text paragraphs.
package fullife

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

const dayNames = `(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)`

var (
	phoneRegexp    = regexp.MustCompile(`Phone:\s*(.+)`)
	faxRegexp      = regexp.MustCompile(`Fax:\s*(.+)`)
	dayRangeRegexp = regexp.MustCompile(dayNames + `\s*-\s*` + dayNames + `:\s*(.+)`)
	singleDayRegex = regexp.MustCompile(dayNames + `:\s*(.+)`)
	timesRegexp    = regexp.MustCompile(`(?i)(\d+:\d+\s*(?:am|pm))\s*-\s*(\d+:\d+\s*(?:am|pm))`)
	statePCRegexp  = regexp.MustCompile(`\b([A-Z]{2,3})\s+(\d{4})\b`)
	meridiemRegexp = regexp.MustCompile(`(?i)\d\s*(?:am|pm)\b`)
)

var (
	emailLabels = []string{"Email:", "Enquiries:", "Prescriptions:", "Email/scripts:"}
	// paragraphs carrying these are neither address nor hours
	skipLabels = []string{"Instagram:", "Script", "Compounding:"}
)

// Handler is the Fullife handler.
type Handler struct {
	scraper.Base
}

// New returns a Fullife handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandFullife, deps)}
}

// FetchLocations fetches the locations page and returns a stub per list item
// that links to a store page.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.Get(ctx, h.Endpoints.Fullife, map[string]string{"Referer": "https://www.fullife.com.au/"})
	if err != nil {
		return nil, fmt.Errorf("fullife: fetch locations: %w", err)
	}
	doc, err := scraper.ParseHTML(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("fullife: fetch locations: %w", err)
	}

	items := doc.Find(`div[role="listitem"].T7n0L6`)
	if items.Length() == 0 {
		items = doc.Find("div.cGWabE")
	}
	var locs []models.Location
	items.Each(func(_ int, item *goquery.Selection) {
		if inner := item.Find(`div[role="listitem"]`).First(); inner.Length() > 0 {
			item = inner
		}
		href := learnMore(item)
		if href == "" {
			return
		}
		markup, err := goquery.OuterHtml(item)
		if err != nil {
			return
		}
		id := scraper.Slug(href)
		locs = append(locs, models.Location{
			ID:      id,
			StoreID: id,
			Name:    storeName(item, id),
			URL:     href,
			Data:    map[string]any{"html": markup},
		})
	})
	h.Log().Info("[fullife] Found %d store items", len(locs))
	return locs, nil
}

func learnMore(item *goquery.Selection) string {
	if href := scraper.Attr(item.Find(`a[aria-label="Learn More"]`).First(), "href"); href != "" {
		return href
	}
	return scraper.Attr(item.Find("div.comp-klrg2zs3 a").First(), "href")
}

func storeName(item *goquery.Selection, id string) string {
	if n := scraper.Text(item.Find("div.comp-klrg2zrz1 h4.font_4").First()); n != "" {
		return n
	}
	btn := item.Find("a[aria-label]").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return scraper.Attr(a, "aria-label") != "Learn More"
	}).First()
	if n := scraper.Text(btn.Find("span").First()); n != "" {
		return "Fullife " + n
	}
	return "Fullife Pharmacy " + normalize.TitleSlug(id)
}

// FetchDetails is a passthrough.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract classifies the item's paragraphs into contact, hours and address
// lines.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	item := scraper.MustDoc(scraper.Str(raw.Data["html"])).Selection
	p := models.Pharmacy{Name: raw.Location.Name, Website: raw.Location.URL}

	var addr []string
	hours := models.TradingHours{}
	for _, para := range paragraphs(item) {
		text := strings.Trim(scraper.Text(para), "\u200b")
		switch {
		case text == "":
		case strings.Contains(text, "Phone:"):
			p.Phone = normalize.FormatPhone(match(phoneRegexp, text))
		case strings.Contains(text, "Fax:"):
			p.Fax = normalize.FormatPhone(match(faxRegexp, text))
		case containsAny(text, emailLabels):
			if p.Email == "" {
				p.Email = scraper.Mailto(para)
			}
		case containsAny(text, models.Weekdays):
			dayLine(hours, text)
		case strings.Contains(text, "7 days a week"):
			// the times sit on the line before
			if n := len(addr); n > 0 {
				if m := timesRegexp.FindStringSubmatch(addr[n-1]); m != nil {
					hours.SetDays(models.Weekdays, pair(m))
					addr = addr[:n-1]
				}
			}
		case containsAny(text, skipLabels):
		default:
			addr = append(addr, text)
		}
	}

	// Time lines left over are not address, except rostered-hours notes.
	kept := addr[:0]
	for _, line := range addr {
		if !meridiemRegexp.MatchString(line) || strings.Contains(strings.ToLower(line), "roster") {
			kept = append(kept, line)
		}
	}
	p.Address = strings.Join(kept, ", ")
	p.StreetAddress, p.Suburb, p.State, p.Postcode = ParseAddress(p.Address)

	if len(hours) > 0 {
		th := models.ClosedWeek()
		th.Merge(hours)
		p.TradingHours = th
	}
	return p
}

func paragraphs(item *goquery.Selection) []*goquery.Selection {
	details := item.Find("div.comp-klrg2zrn").First()
	if details.Length() == 0 {
		details = item.Find(`div[class*="richText"], div[class*="wixui-rich-text"]`).FilterFunction(func(_ int, d *goquery.Selection) bool {
			return d.Find("p").Length() > 0
		}).First()
	}
	ps := details.Find("p.font_4")
	if ps.Length() == 0 {
		ps = details.Find("p")
	}
	out := make([]*goquery.Selection, 0, ps.Length())
	ps.Each(func(_ int, s *goquery.Selection) { out = append(out, s) })
	return out
}

// dayLine reads "Monday - Friday: 8:30am - 6:00pm" or "Saturday: 9:00am - 1:00pm".
func dayLine(th models.TradingHours, text string) {
	if m := dayRangeRegexp.FindStringSubmatch(text); m != nil {
		if t := timesRegexp.FindStringSubmatch(m[3]); t != nil {
			th.SetDays(normalize.ExpandDays(m[1], m[2]), pair(t))
		}
		return
	}
	if m := singleDayRegex.FindStringSubmatch(text); m != nil {
		if t := timesRegexp.FindStringSubmatch(m[2]); t != nil {
			th.Set(m[1], pair(t))
		}
	}
}

func pair(m []string) models.DayHours {
	return models.DayHours{Open: normalize.FormatTime(m[1], nil), Closed: normalize.FormatTime(m[2], nil)}
}

func match(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ParseAddress splits "street, suburb STATE 1234". Without a state and
// postcode pair the last comma part is the suburb.
func ParseAddress(address string) (street, suburb, state, postcode string) {
	a := normalize.CleanText(address)
	if a == "" {
		return "", "", "", ""
	}
	if m := statePCRegexp.FindStringSubmatchIndex(a); m != nil {
		state, postcode = a[m[2]:m[3]], a[m[4]:m[5]]
		rest := strings.TrimSpace(strings.Trim(a[:m[0]]+a[m[1]:], " ,"))
		if parts := strings.Split(rest, ","); len(parts) >= 2 {
			return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[len(parts)-1]), state, postcode
		}
		words := strings.Fields(rest)
		if len(words) > 2 {
			return strings.Join(words[:len(words)-1], " "), words[len(words)-1], state, postcode
		}
		return rest, "", state, postcode
	}

	parts := strings.Split(a, ",")
	if len(parts) < 2 {
		return a, "", "", ""
	}
	last, st, pc := normalize.SplitStatePostcode(parts[len(parts)-1])
	return strings.TrimSpace(parts[0]), last, st, pc
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}
