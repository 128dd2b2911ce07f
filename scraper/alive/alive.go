// Package alive reads the Stockist locator of Alive Pharmacy Warehouse.
package alive

import (
	"context"
	"fmt"
	"strings"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

const hoursField = "Opening Hours"

type customField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type location struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	AddressLine1 string        `json:"address_line_1"`
	AddressLine2 string        `json:"address_line_2"`
	City         string        `json:"city"`
	State        string        `json:"state"`
	PostalCode   string        `json:"postal_code"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Website      string        `json:"website"`
	Lat          string        `json:"latitude"`
	Lng          string        `json:"longitude"`
	CustomFields []customField `json:"custom_fields"`
}

// Handler is the Alive Pharmacy Warehouse handler.
type Handler struct {
	scraper.Base
}

// New returns an Alive handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandAlive, deps)}
}

// FetchLocations fetches every stockist location in one call.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.Get(ctx, h.Endpoints.Alive, map[string]string{"Accept": "*/*"})
	if err != nil {
		return nil, fmt.Errorf("alive: fetch locations: %w", err)
	}
	tree, err := resp.Any()
	if err != nil {
		return nil, fmt.Errorf("alive: fetch locations: %w", err)
	}
	list, _, ok := scraper.FirstMatch(tree, scraper.DirectList, scraper.ListAt("locations"))
	if !ok {
		h.Log().Warn("[alive] Unexpected response, keys: %v", scraper.Keys(tree))
		return nil, nil
	}
	h.Log().Info("[alive] Found %d locations", len(list))

	locs := make([]models.Location, 0, len(list))
	for _, m := range scraper.Maps(list) {
		locs = append(locs, models.Location{ID: scraper.Str(m["id"]), Name: scraper.Str(m["name"]), Data: m})
	}
	return locs, nil
}

// FetchDetails is a passthrough.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract maps a stockist record.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	var l location
	if err := scraper.Decode(raw.Data, &l); err != nil {
		h.Log().Debug("[alive] Partial decode of %s: %v", raw.Location.ID, err)
	}

	var th models.TradingHours
	for _, f := range l.CustomFields {
		if f.Name == hoursField {
			th = ParseOpeningHours(f.Value)
		}
	}

	return models.Pharmacy{
		Name:          l.Name,
		Address:       normalize.JoinAddress(l.AddressLine1, l.AddressLine2, l.City, l.State, l.PostalCode),
		Email:         l.Email,
		Latitude:      l.Lat,
		Longitude:     l.Lng,
		Phone:         l.Phone,
		Postcode:      l.PostalCode,
		State:         normalize.StateAbbr(l.State),
		StreetAddress: l.AddressLine1,
		Suburb:        l.City,
		TradingHours:  th.OrNil(),
		Website:       l.Website,
	}
}

// ParseOpeningHours reads free text such as
// "8am - 6pm Monday to Friday 8:30am - 6pm Saturday 10am - 4pm Sunday".
// When the text starts with a time range every range applies to the day
// phrase after it, otherwise to the phrase before it.
func ParseOpeningHours(text string) models.TradingHours {
	low := strings.ToLower(strings.ReplaceAll(text, ",", " "))
	idx := normalize.TimeRangeRegexp.FindAllStringSubmatchIndex(low, -1)
	if len(idx) == 0 {
		return nil
	}
	timeFirst := strings.TrimSpace(low[:idx[0][0]]) == ""

	th := models.TradingHours{}
	for i, m := range idx {
		var phrase string
		if timeFirst {
			end := len(low)
			if i+1 < len(idx) {
				end = idx[i+1][0]
			}
			phrase = low[m[1]:end]
		} else {
			start := 0
			if i > 0 {
				start = idx[i-1][1]
			}
			phrase = low[start:m[0]]
		}
		th.SetDays(normalize.DaysIn(phrase), models.DayHours{
			Open:   normalize.FormatTime(low[m[2]:m[3]], nil),
			Closed: normalize.FormatTime(low[m[4]:m[5]], nil),
		})
	}
	return th
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}
