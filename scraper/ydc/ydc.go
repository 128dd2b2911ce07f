// Package ydc reads the Your Discount Chemist store integrator feed.
package ydc

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

type location struct {
	ID       string `json:"id"`
	Name     string `json:"location_name"`
	Address  string `json:"address"`
	Street   string `json:"address_street"`
	City     string `json:"address_city"`
	State    string `json:"address_state"`
	Postcode string `json:"address_postcode"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Lat      string `json:"lat"`
	Lng      string `json:"lng"`
	Channels string `json:"channels"`
	Notes    string `json:"notes"`
}

// channel is one entry of the JSON array embedded as a string in channels.
type channel struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Handler is the Your Discount Chemist handler.
type Handler struct {
	scraper.Base
}

// New returns a YDC handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandYDC, deps)}
}

// FetchLocations fetches the integrator feed.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.Get(ctx, h.Endpoints.YDC, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("ydc: fetch locations: %w", err)
	}
	tree, err := resp.Any()
	if err != nil {
		return nil, fmt.Errorf("ydc: fetch locations: %w", err)
	}
	list, _, ok := scraper.FirstMatch(tree, scraper.ListAt("data"))
	if !ok {
		h.Log().Warn("[ydc] No data array in response, keys: %v", scraper.Keys(tree))
		return nil, nil
	}
	h.Log().Info("[ydc] Found %d locations", len(list))

	locs := make([]models.Location, 0, len(list))
	for _, m := range scraper.Maps(list) {
		locs = append(locs, models.Location{ID: scraper.Str(m["id"]), Name: scraper.Str(m["location_name"]), Data: m})
	}
	return locs, nil
}

// FetchDetails is a passthrough.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract maps one feed entry. Only the first of a comma separated email
// list is kept.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	var l location
	if err := scraper.Decode(raw.Data, &l); err != nil {
		h.Log().Debug("[ydc] Partial decode of %s: %v", raw.Location.ID, err)
	}

	email, _, _ := strings.Cut(l.Email, ",")
	p := models.Pharmacy{
		Address:       l.Address,
		Email:         strings.TrimSpace(email),
		Latitude:      l.Lat,
		Longitude:     l.Lng,
		Phone:         l.Phone,
		Postcode:      l.Postcode,
		State:         normalize.StateAbbr(l.State),
		StreetAddress: l.Street,
		Suburb:        l.City,
		TradingHours:  notesHours(l.Notes).OrNil(),
		Website:       h.website(raw.Location.ID, l.Channels),
	}
	if l.Name != "" {
		p.Name = "Your Discount Chemist " + l.Name
	}
	return p
}

func (h *Handler) website(id, channels string) string {
	if strings.TrimSpace(channels) == "" {
		return ""
	}
	var cs []channel
	if err := scraper.DecodeLoose(channels, &cs); err != nil {
		h.Log().Debug("[ydc] Unreadable channels for %s: %v", id, err)
		return ""
	}
	if len(cs) == 0 {
		return ""
	}
	return strings.TrimSpace(cs[0].Value)
}

// notesHours reads the mil-store-hours table; the first row is a header.
func notesHours(notes string) models.TradingHours {
	th := models.TradingHours{}
	if strings.TrimSpace(notes) == "" {
		return th
	}
	doc := scraper.MustDoc(notes)
	doc.Find("table.mil-store-hours tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		day := normalize.MatchDay(scraper.Text(cells.Eq(0)))
		text := scraper.Text(cells.Eq(1))
		if day == "" || text == "" {
			return
		}
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
