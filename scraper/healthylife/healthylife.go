// Package healthylife scrapes the Healthy Pharmacy store pages listed in the
// healthylife.com.au stores sitemap.
package healthylife

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

const (
	cardSelector   = "div.border.border-blue-greyscale-200"
	headerSelector = `div[class*="rich-text_richText"].mb-2`
	bodySelector   = `div[class*="rich-text_richText"].text-small`
)

var (
	// full "street, suburb, state, 1234"
	fullAddrRegexp = regexp.MustCompile(`^(.*?),\s*([^,]+?),\s*([^,]+?),\s*(\d{4})$`)
	// no state: "street, suburb, 1234"
	noStateRegexp = regexp.MustCompile(`^(.*?),\s*([^,]+?),\s*(\d{4})$`)
	// "street, suburb NSW, 1234"
	inlineStateRegexp = regexp.MustCompile(`^(.*?),\s*([^,]+?)\s+([A-Za-z]{2,3}),\s*(\d{4})$`)
	trailingPCRegexp  = regexp.MustCompile(`(\d{4})$`)

	addrHintRegexp  = regexp.MustCompile(`[A-Z]{2,3},?\s+\d{4}|\b(NSW|VIC|QLD|SA|WA|TAS|NT|ACT)\b`)
	phoneHintRegexp = regexp.MustCompile(`\(\d{2}\)\s*\d{4}\s*\d{4}|\d{8,10}`)
	hoursLineRegexp = regexp.MustCompile(`^([^:]+):\s*(.*)$`)

	coordRegexps = []*regexp.Regexp{
		regexp.MustCompile(`!3d(-?\d+\.\d+)!2d(-?\d+\.\d+)`),
		regexp.MustCompile(`ll=(-?\d+\.\d+),(-?\d+\.\d+)`),
		regexp.MustCompile(`q=(-?\d+\.\d+),(-?\d+\.\d+)`),
	}
)

// Handler is the Healthy Pharmacy handler.
type Handler struct {
	scraper.Base
}

// New returns a Healthy Pharmacy handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandHealthyPharmacy, deps)}
}

// FetchLocations reads the stores sitemap. The bare /stores index is not a
// store.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	locs, err := scraper.DiscoverSitemap(ctx, h.Client, h.Endpoints.HealthyLifeSitemap, scraper.SitemapFilter{
		Exclude: []string{h.Endpoints.HealthyLifeIndex},
	})
	if err != nil {
		return nil, fmt.Errorf("healthy_pharmacy: fetch sitemap: %w", err)
	}
	for i := range locs {
		locs[i].StoreID = strconv.Itoa(i + 1)
		locs[i].Name = normalize.TitleSlug(locs[i].ID)
	}
	h.Log().Info("[healthy_pharmacy] Found %d store URLs in sitemap", len(locs))
	return locs, nil
}

// FetchDetails loads the store page.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	return h.FetchPage(ctx, loc)
}

type contact struct {
	address, phone, email string
}

// Extract reads the "Where to find us" and "Opening Hours" cards.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	doc := scraper.MustDoc(raw.HTML)

	var c contact
	th := models.TradingHours{}
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		header := card.Find(headerSelector).First()
		if header.Find("h3").Length() == 0 {
			return
		}
		items := card.Find(bodySelector).First().Find("ul li")
		switch title := header.Text(); {
		case strings.Contains(title, "Where to find us"):
			c = contactFromItems(items)
		case strings.Contains(title, "Opening Hours"):
			th.Merge(hoursFromItems(items))
		}
	})
	if c == (contact{}) {
		c = classifyItems(doc.Find(`div[class*="rich-text_richText"] ul li`))
	}

	street, suburb, state, postcode := ParseAddress(c.address)
	lat, lng := coordinates(doc)
	p := models.Pharmacy{
		Name:          raw.Location.Name,
		Address:       c.address,
		Email:         c.email,
		Latitude:      lat,
		Longitude:     lng,
		Phone:         c.phone,
		Postcode:      postcode,
		State:         state,
		StreetAddress: street,
		Suburb:        suburb,
		TradingHours:  th.OrNil(),
		Website:       raw.Location.URL,
	}
	if p.Phone != "" {
		p.Phone = normalize.FormatPhone(p.Phone)
	}
	return p
}

// contactFromItems reads address, phone and email in list order.
func contactFromItems(items *goquery.Selection) contact {
	var c contact
	fields := []*string{&c.address, &c.phone, &c.email}
	items.Each(func(i int, li *goquery.Selection) {
		if i < len(fields) {
			*fields[i] = scraper.Text(li)
		}
	})
	return c
}

// classifyItems guesses which list items hold the contact fields when the
// page does not use the card layout.
func classifyItems(items *goquery.Selection) contact {
	var c contact
	items.Each(func(_ int, li *goquery.Selection) {
		t := scraper.Text(li)
		switch {
		case addrHintRegexp.MatchString(t):
			c.address = t
		case phoneHintRegexp.MatchString(t):
			c.phone = t
		case isEmail(t):
			c.email = t
		}
	})
	return c
}

func isEmail(s string) bool {
	_, domain, ok := strings.Cut(s, "@")
	return ok && strings.Contains(domain, ".")
}

// hoursFromItems reads "Monday: 8:00am to 6:00pm" list items.
func hoursFromItems(items *goquery.Selection) models.TradingHours {
	th := models.TradingHours{}
	items.Each(func(_ int, li *goquery.Selection) {
		m := hoursLineRegexp.FindStringSubmatch(scraper.Text(li))
		if m == nil {
			return
		}
		day := normalize.MatchDay(m[1])
		if day == "" {
			return
		}
		if normalize.IsClosedText(m[2]) {
			th[day] = models.ClosedDay()
			return
		}
		if dh, ok := normalize.ParseTimeRange(m[2], nil); ok {
			th.Set(day, dh)
		}
	})
	return th
}

func coordinates(doc *goquery.Document) (lat, lng string) {
	src := scraper.Attr(doc.Find(`iframe[src*="google.com/maps"]`).First(), "src")
	if src == "" {
		return "", ""
	}
	for _, re := range coordRegexps {
		if m := re.FindStringSubmatch(src); m != nil {
			return m[1], m[2]
		}
	}
	return "", ""
}

// ParseAddress splits a comma separated store address. The state is taken
// from the address when present and otherwise inferred from the postcode.
func ParseAddress(address string) (street, suburb, state, postcode string) {
	a := normalize.CleanText(address)
	if a == "" {
		return "", "", "", ""
	}
	street, suburb, state, postcode = splitAddress(a)
	if state == "" {
		state = normalize.ResolveState(a, postcode)
	}
	return strings.TrimSpace(street), strings.TrimSpace(suburb), state, postcode
}

func splitAddress(a string) (street, suburb, state, postcode string) {
	if m := fullAddrRegexp.FindStringSubmatch(a); m != nil {
		if st := normalize.StandardizeState(m[3]); normalize.IsState(st) {
			return m[1], m[2], st, m[4]
		}
		return m[1] + ", " + m[2], m[3], "", m[4]
	}
	if m := inlineStateRegexp.FindStringSubmatch(a); m != nil {
		if st := strings.ToUpper(m[3]); normalize.IsState(st) {
			return m[1], m[2], st, m[4]
		}
	}
	if m := noStateRegexp.FindStringSubmatch(a); m != nil {
		return m[1], m[2], "", m[3]
	}
	street, suburb, postcode = splitLoose(a)
	return street, suburb, "", postcode
}

// splitLoose handles addresses none of the patterns recognise.
func splitLoose(a string) (street, suburb, postcode string) {
	rest := a
	if loc := trailingPCRegexp.FindStringIndex(a); loc != nil {
		postcode = a[loc[0]:]
		rest = strings.TrimSuffix(strings.TrimSpace(a[:loc[0]]), ",")
	}
	i := strings.LastIndex(rest, ",")
	if i < 0 {
		return rest, "", postcode
	}
	return rest[:i], rest[i+1:], postcode
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.HeavyBatch)
}
