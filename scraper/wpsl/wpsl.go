// Package wpsl reads WordPress sites running the WP Store Locator plugin.
// The store_search ajax action returns every store with an HTML hours table.
package wpsl

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

var headers = map[string]string{
	"Accept":           "*/*",
	"X-Requested-With": "XMLHttpRequest",
}

type store struct {
	ID        string `json:"id"`
	Store     string `json:"store"`
	Address   string `json:"address"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Fax       string `json:"fax"`
	Lat       string `json:"lat"`
	Lng       string `json:"lng"`
	URL       string `json:"url"`
	Permalink string `json:"permalink"`
	Hours     string `json:"hours"`
}

// Handler serves one WPSL-backed brand.
type Handler struct {
	scraper.Base
	searchURL string
}

// New returns the handler for brand.
func New(brand scraper.Brand, deps scraper.Deps) (*Handler, error) {
	u, ok := deps.Endpoints.WPSL[string(brand)]
	if !ok {
		return nil, fmt.Errorf("wpsl: no store search configured for %q", brand)
	}
	return &Handler{Base: scraper.NewBase(brand, deps), searchURL: u}, nil
}

// FetchLocations runs the store search.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.Get(ctx, h.searchURL, headers)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch locations: %w", h.Brand(), err)
	}
	tree, err := resp.Any()
	if err != nil {
		return nil, fmt.Errorf("%s: fetch locations: %w", h.Brand(), err)
	}
	list, _, ok := scraper.FirstMatch(tree, scraper.DirectList)
	if !ok {
		h.Log().Warn("[%s] Store search did not return an array, keys: %v", h.Brand(), scraper.Keys(tree))
		return nil, nil
	}
	h.Log().Info("[%s] Found %d stores", h.Brand(), len(list))

	locs := make([]models.Location, 0, len(list))
	for _, m := range scraper.Maps(list) {
		locs = append(locs, models.Location{ID: scraper.Str(m["id"]), Name: scraper.Str(m["store"]), Data: m})
	}
	return locs, nil
}

// FetchDetails is a passthrough.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract maps a store search entry.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	var s store
	if err := scraper.Decode(raw.Data, &s); err != nil {
		h.Log().Debug("[%s] Partial decode of %s: %v", h.Brand(), raw.Location.ID, err)
	}
	website := s.URL
	if website == "" {
		website = s.Permalink
	}
	return models.Pharmacy{
		Name:          normalize.StripTags(s.Store),
		Address:       normalize.JoinAddress(s.Address, s.Address2, s.City, s.State, s.Zip),
		Email:         s.Email,
		Fax:           s.Fax,
		Latitude:      s.Lat,
		Longitude:     s.Lng,
		Phone:         s.Phone,
		Postcode:      s.Zip,
		State:         normalize.StateAbbr(s.State),
		StreetAddress: s.Address,
		Suburb:        s.City,
		TradingHours:  tableHours(s.Hours).OrNil(),
		Website:       website,
	}
}

// tableHours reads the wpsl-opening-hours table: one row per day with the
// day name and its time range.
func tableHours(markup string) models.TradingHours {
	th := models.TradingHours{}
	if markup == "" {
		return th
	}
	scraper.MustDoc(markup).Find("table.wpsl-opening-hours tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != 2 {
			return
		}
		day := normalize.MatchDay(scraper.Text(cells.Eq(0)))
		if day == "" {
			return
		}
		text := scraper.Text(cells.Eq(1))
		if normalize.IsClosedText(text) {
			th[day] = models.ClosedDay()
			return
		}
		if dh, ok := normalize.FindTimeRange(text, nil); ok {
			th.Set(day, dh)
		}
	})
	return th
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}
