// Package community scrapes the Community Care Chemist store directory, a
// single Elementor page listing every store as an article card.
package community

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

const website = "https://www.communitycarechemist.com.au/"

var headers = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Upgrade-Insecure-Requests": "1",
}

// Field containers are fixed Elementor element ids on the card template.
const (
	selName    = ".elementor-heading-title"
	selAddress = ".elementor-element-5eec216 .dynamic-content-for-elementor-acf"
	selPhone   = ".elementor-element-ba94b59 .dynamic-content-for-elementor-acf"
	selFax     = ".elementor-element-0b379dd .dynamic-content-for-elementor-acf"
	selEmail   = ".dce-tokens a"
	selWeek    = ".elementor-element-2a0c443 .dynamic-content-for-elementor-acf"
	selSat     = ".elementor-element-81cd6c4 .dynamic-content-for-elementor-acf"
	selSun     = ".elementor-element-a58e969 .dynamic-content-for-elementor-acf"
)

var (
	weekRegexp = regexp.MustCompile(`Mon - Fri:\s*(.*)`)
	satRegexp  = regexp.MustCompile(`Sat:\s*(.*)`)
	sunRegexp  = regexp.MustCompile(`Sun:\s*(.*)`)
)

// Handler is the Community Care Chemist handler.
type Handler struct {
	scraper.Base
}

// New returns a Community Care Chemist handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandCommunity, deps)}
}

// FetchLocations fetches the directory page and returns one stub per store
// card, carrying the card markup.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.Get(ctx, h.Endpoints.Community, headers)
	if err != nil {
		return nil, fmt.Errorf("community: fetch locations: %w", err)
	}
	doc, err := scraper.ParseHTML(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("community: fetch locations: %w", err)
	}

	cards := doc.Find("article.stores")
	if cards.Length() == 0 {
		cards = doc.Find(".dce-posts-wrapper article.dce-post")
	}
	if cards.Length() == 0 {
		h.Log().Warn("[community] No store cards found, page has %d article elements", doc.Find("article").Length())
		return nil, nil
	}
	h.Log().Info("[community] Found %d store cards", cards.Length())

	locs := make([]models.Location, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		markup, err := goquery.OuterHtml(card)
		if err != nil {
			return
		}
		name := scraper.Text(card.Find(selName).First())
		if name == "" {
			h.Log().Warn("[community] Store card without a name, template may have changed")
		}
		locs = append(locs, models.Location{
			ID:   "community_" + strings.ReplaceAll(strings.ToLower(name), " ", "_"),
			Name: name,
			Data: map[string]any{"html": markup},
		})
	})
	return locs, nil
}

// FetchDetails is a passthrough.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract reads one store card.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	card := scraper.MustDoc(scraper.Str(raw.Data["html"])).Selection
	address := scraper.Text(card.Find(selAddress).First())
	state, postcode := normalize.ExtractStatePostcode(address)

	p := models.Pharmacy{
		Name:          scraper.Text(card.Find(selName).First()),
		Address:       address,
		Email:         scraper.Mailto(card.Find(".dce-tokens")),
		Fax:           normalize.StripPrefix(scraper.Text(card.Find(selFax).First()), "FAX:"),
		Phone:         normalize.StripPrefix(scraper.Text(card.Find(selPhone).First()), "PH:"),
		Postcode:      postcode,
		State:         state,
		StreetAddress: address,
		TradingHours:  hours(card).OrNil(),
		Website:       website,
	}
	if p.Email == "" {
		p.Email = strings.TrimPrefix(scraper.Attr(card.Find(selEmail).First(), "href"), "mailto:")
	}
	if state != "" {
		p.Suburb = normalize.SuburbFromCommaAddress(address)
	}
	return p
}

func hours(card *goquery.Selection) models.TradingHours {
	th := models.TradingHours{}
	if v, ok := labelled(card, selWeek, weekRegexp); ok {
		if h, ok := normalize.ParseTimeRange(v, nil); ok && !h.IsClosed() {
			th.SetDays(models.Weekdays[:5], h)
		}
	}
	for _, w := range []struct {
		day string
		sel string
		re  *regexp.Regexp
	}{
		{"Saturday", selSat, satRegexp},
		{"Sunday", selSun, sunRegexp},
	} {
		day, sel, re := w.day, w.sel, w.re
		v, ok := labelled(card, sel, re)
		if !ok {
			continue
		}
		if strings.EqualFold(v, models.Closed) {
			th[day] = models.ClosedDay()
			continue
		}
		if h, ok := normalize.ParseTimeRange(v, nil); ok {
			th.Set(day, h)
		}
	}
	return th
}

// labelled returns the value after a "Label:" prefix inside sel.
func labelled(card *goquery.Selection, sel string, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(scraper.Text(card.Find(sel).First()))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}
