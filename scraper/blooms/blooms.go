// Package blooms reads the Storepoint locator behind bloomsthechemist.com.au.
package blooms

import (
	"context"
	"fmt"
	"strings"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

var headers = map[string]string{
	"Accept":  "application/json, text/plain, */*",
	"Origin":  "https://www.bloomsthechemist.com.au",
	"Referer": "https://www.bloomsthechemist.com.au/",
}

// shapes are the response layouts the API has used, newest first.
var shapes = []scraper.Shape{
	scraper.ListAt("results", "locations"),
	scraper.ListAt("collection", "locations"),
	scraper.ListAt("locations"),
}

type location struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StreetAddress string `json:"streetaddress"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	Lat           string `json:"loc_lat"`
	Lng           string `json:"loc_long"`
	Monday        string `json:"monday"`
	Tuesday       string `json:"tuesday"`
	Wednesday     string `json:"wednesday"`
	Thursday      string `json:"thursday"`
	Friday        string `json:"friday"`
	Saturday      string `json:"saturday"`
	Sunday        string `json:"sunday"`
}

// Handler is the Blooms The Chemist handler.
type Handler struct {
	scraper.Base
}

// New returns a Blooms handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandBlooms, deps)}
}

// FetchLocations fetches the complete store list.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.Get(ctx, h.Endpoints.Blooms, headers)
	if err != nil {
		return nil, fmt.Errorf("blooms: fetch locations: %w", err)
	}
	tree, err := resp.Any()
	if err != nil {
		return nil, fmt.Errorf("blooms: fetch locations: %w", err)
	}

	list, shape, ok := scraper.FirstMatch(tree, shapes...)
	if !ok {
		h.Log().Warn("[blooms] No locations found in API response, keys: %v", scraper.Keys(tree))
		return nil, nil
	}
	h.Log().Info("[blooms] Found %d locations at %s", len(list), shape)

	locs := make([]models.Location, 0, len(list))
	for _, m := range scraper.Maps(list) {
		locs = append(locs, models.Location{ID: scraper.Str(m["id"]), Name: scraper.Str(m["name"]), Data: m})
	}
	return locs, nil
}

// FetchDetails is a passthrough; the list is complete.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract maps one Storepoint record.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	var l location
	if err := scraper.Decode(raw.Data, &l); err != nil {
		h.Log().Debug("[blooms] Partial decode of %s: %v", raw.Location.ID, err)
	}

	state, postcode, suburb := splitAddress(l.StreetAddress)
	return models.Pharmacy{
		Name:          strings.TrimSpace(l.Name),
		Address:       strings.TrimSpace(l.StreetAddress),
		Email:         strings.TrimSpace(l.Email),
		Latitude:      l.Lat,
		Longitude:     l.Lng,
		Phone:         strings.TrimSpace(l.Phone),
		Postcode:      postcode,
		State:         state,
		StreetAddress: strings.TrimSpace(l.StreetAddress),
		Suburb:        suburb,
		TradingHours:  l.hours(),
		Website:       strings.TrimSpace(l.Website),
	}
}

func (l location) hours() models.TradingHours {
	th := models.TradingHours{}
	for i, text := range []string{l.Monday, l.Tuesday, l.Wednesday, l.Thursday, l.Friday, l.Saturday, l.Sunday} {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if h, ok := normalize.ParseTimeRange(text, nil); ok {
			th.Set(models.Weekdays[i], h)
		}
	}
	return th.OrNil()
}

// splitAddress reads "Street, Suburb, STATE 1234, Australia": the state and
// postcode from the second-to-last part and the suburb from the part before.
func splitAddress(address string) (state, postcode, suburb string) {
	parts := strings.Split(address, ",")
	if len(parts) < 3 {
		return "", "", ""
	}
	if fields := strings.Fields(parts[len(parts)-2]); len(fields) >= 2 {
		state = normalize.StateAbbr(fields[0])
		postcode = fields[1]
	}
	if len(parts) > 3 {
		suburb = strings.TrimSpace(parts[len(parts)-3])
	}
	return state, postcode, suburb
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}
