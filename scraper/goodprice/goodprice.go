// Package goodprice reads the Amasty store locator of Good Price Pharmacy.
// The ajax endpoint answers with JSON whose block field is the rendered
// store list.
package goodprice

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

var headers = map[string]string{
	"Accept":           "application/json, text/javascript, */*; q=0.01",
	"X-Requested-With": "XMLHttpRequest",
	"Referer":          "https://www.goodpricepharmacy.com.au/find-a-store",
}

// One page of 100 covers every store.
var form = map[string]string{"filter": "", "p": "1", "limit": "100"}

var (
	// "street, suburb, 1234, State"
	addrRegexp     = regexp.MustCompile(`^(.*?),\s*([^,]+?),\s*(\d{4})[,\s]+([^,]+)$`)
	postcodeRegexp = regexp.MustCompile(`\b(\d{4})\b`)
)

const placeholderPhone = "Click here"

// Handler is the Good Price Pharmacy handler.
type Handler struct {
	scraper.Base
}

// New returns a Good Price handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandGoodPrice, deps)}
}

// FetchLocations posts the locator form once and returns a stub per store
// block carrying its markup.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.PostForm(ctx, h.Endpoints.GoodPrice, headers, form)
	if err != nil {
		return nil, fmt.Errorf("good_price: fetch locations: %w", err)
	}
	tree, err := resp.Any()
	if err != nil {
		return nil, fmt.Errorf("good_price: fetch locations: %w", err)
	}
	block := scraper.Str(scraper.AsMap(tree)["block"])
	if block == "" {
		h.Log().Warn("[good_price] No block in response, keys: %v", scraper.Keys(tree))
		return nil, nil
	}
	doc, err := scraper.ParseHTML(block)
	if err != nil {
		return nil, fmt.Errorf("good_price: parse block: %w", err)
	}

	items := doc.Find("div.amlocator-store-desc")
	h.Log().Info("[good_price] Found %d stores", items.Length())
	locs := make([]models.Location, 0, items.Length())
	items.Each(func(i int, item *goquery.Selection) {
		markup, err := goquery.OuterHtml(item)
		if err != nil {
			return
		}
		id := strings.TrimPrefix(scraper.Attr(item, "id"), "am-loc-")
		name := scraper.Text(item.Find("a.amlocator-link").First())
		if name == "" {
			name = fmt.Sprintf("Good Price Pharmacy %d", i+1)
		}
		locs = append(locs, models.Location{ID: id, StoreID: id, Name: name, Data: map[string]any{"html": markup}})
	})
	return locs, nil
}

// FetchDetails is a passthrough.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract reads one amlocator store block.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	item := scraper.MustDoc(scraper.Str(raw.Data["html"])).Selection
	info := item.Find("div.amlocator-store-information").First()
	link := item.Find("a.amlocator-link").First()

	address := addressAfterTitle(info)
	street, suburb, state, postcode := ParseAddress(address)
	p := models.Pharmacy{
		Name:          scraper.Text(link),
		Address:       address,
		Phone:         phone(scraper.Text(info.Find("a.phone span.phone-content").First())),
		Postcode:      postcode,
		State:         state,
		StreetAddress: street,
		Suburb:        suburb,
		TradingHours:  schedule(item.Find("div.amlocator-schedule-container")).OrNil(),
		Website:       scraper.Attr(link, "href"),
	}
	if p.Name == "" {
		p.Name = raw.Location.Name
	}

	// The fax and email rows share the "fax" anchor class.
	info.Find("a.fax").Each(func(_ int, a *goquery.Selection) {
		label := scraper.Text(a.Find("span.phone-label"))
		switch {
		case strings.Contains(label, "Fax:"):
			p.Fax = phone(scraper.Text(a.Find("span.phone-content").First()))
		case strings.Contains(label, "Email:"):
			if href := scraper.Attr(a, "href"); strings.HasPrefix(href, "mailto:") {
				p.Email = strings.TrimPrefix(href, "mailto:")
			}
		}
	})
	return p
}

// addressAfterTitle returns the first non-blank text node following the
// amlocator-title element.
func addressAfterTitle(info *goquery.Selection) string {
	seen := false
	var out string
	info.Contents().EachWithBreak(func(_ int, n *goquery.Selection) bool {
		if n.HasClass("amlocator-title") {
			seen = true
			return true
		}
		if !seen {
			return true
		}
		if goquery.NodeName(n) == "#text" {
			if t := normalize.CleanText(n.Text()); t != "" {
				out = t
				return false
			}
		}
		return true
	})
	return out
}

func phone(s string) string {
	if s == "" || s == placeholderPhone {
		return ""
	}
	return normalize.FormatPhone(s)
}

// schedule reads amlocator rows, including the extra_schedule holiday rows.
// A bare "-" means closed.
func schedule(container *goquery.Selection) models.TradingHours {
	th := models.TradingHours{}
	container.Find("div.amlocator-row").Each(func(_ int, row *goquery.Selection) {
		day := normalize.MatchDay(scraper.Text(row.Find(`span[class~="-day"]`)))
		text := scraper.Text(row.Find(`span[class~="-time"]`))
		if day == "" || text == "" {
			return
		}
		if text == "-" || normalize.IsClosedText(text) {
			th[day] = models.ClosedDay()
			return
		}
		if dh, ok := normalize.ParseTimeRange(text, nil); ok {
			th.Set(day, dh)
		}
	})
	return th
}

// ParseAddress splits the locator's "street, suburb, postcode, State" layout.
func ParseAddress(address string) (street, suburb, state, postcode string) {
	a := normalize.CleanText(address)
	if a == "" {
		return "", "", "", ""
	}
	if m := addrRegexp.FindStringSubmatch(a); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), normalize.StateAbbr(m[4]), m[3]
	}

	state = normalize.FindStateName(a)
	if state == "" {
		state, _ = normalize.ExtractStatePostcode(a)
	}
	loc := postcodeRegexp.FindStringSubmatchIndex(a)
	if loc == nil {
		return a, "", state, ""
	}
	postcode = a[loc[2]:loc[3]]
	before := strings.TrimSuffix(strings.TrimSpace(a[:loc[0]]), ",")
	if i := strings.LastIndex(before, ","); i >= 0 {
		street, suburb = strings.TrimSpace(before[:i]), strings.TrimSpace(before[i+1:])
	} else {
		street = before
	}
	if state == "" {
		state = normalize.StateFromPostcode(postcode)
	}
	return street, suburb, state, postcode
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}
