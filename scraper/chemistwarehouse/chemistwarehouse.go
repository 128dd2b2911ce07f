// Package chemistwarehouse reads the Chemist Warehouse store-locator API.
package chemistwarehouse

import (
	"context"
	"fmt"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

var headers = map[string]string{
	"Accept":           "application/json, text/javascript, */*; q=0.01",
	"Cache-Control":    "no-cache",
	"Pragma":           "no-cache",
	"Referer":          "https://www.chemistwarehouse.com.au/aboutus/store-locator",
	"X-Requested-With": "XMLHttpRequest",
}

type openHours struct {
	WeekDay   string `json:"WeekDay"`
	OpenTime  string `json:"OpenTime"`
	CloseTime string `json:"CloseTime"`
}

type geoPoint struct {
	Lat string `json:"Latitude"`
	Lng string `json:"Longitude"`
}

type store struct {
	ID        string      `json:"Id"`
	Name      string      `json:"Name"`
	Address   string      `json:"Address"`
	Suburb    string      `json:"Suburb"`
	State     string      `json:"State"`
	Postcode  string      `json:"Postcode"`
	Email     string      `json:"Email"`
	Phone     string      `json:"Phone"`
	Fax       string      `json:"Fax"`
	GeoPoint  geoPoint    `json:"GeoPoint"`
	OpenHours []openHours `json:"OpenHours"`
}

// Handler is the Chemist Warehouse handler.
type Handler struct {
	scraper.Base
}

// New returns a Chemist Warehouse handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandChemistWarehouse, deps)}
}

// FetchLocations fetches the full store array.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.Get(ctx, h.Endpoints.ChemistWarehouse, headers)
	if err != nil {
		return nil, fmt.Errorf("chemist_warehouse: fetch locations: %w", err)
	}
	tree, err := resp.Any()
	if err != nil {
		return nil, fmt.Errorf("chemist_warehouse: fetch locations: %w", err)
	}
	list, _, ok := scraper.FirstMatch(tree, scraper.DirectList)
	if !ok {
		h.Log().Warn("[chemist_warehouse] Expected a store array, keys: %v", scraper.Keys(tree))
		return nil, nil
	}
	h.Log().Info("[chemist_warehouse] Found %d stores", len(list))

	locs := make([]models.Location, 0, len(list))
	for _, m := range scraper.Maps(list) {
		locs = append(locs, models.Location{ID: scraper.Str(m["Id"]), Name: scraper.Str(m["Name"]), Data: m})
	}
	return locs, nil
}

// FetchDetails is a passthrough.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract maps a store. OpenHours carry 24 hour "HH:MM:SS" times.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	var s store
	if err := scraper.Decode(raw.Data, &s); err != nil {
		h.Log().Debug("[chemist_warehouse] Partial decode of %s: %v", raw.Location.ID, err)
	}

	th := models.TradingHours{}
	for _, oh := range s.OpenHours {
		day := normalize.MatchDay(oh.WeekDay)
		if day == "" {
			continue
		}
		th.Set(day, models.DayHours{
			Open:   normalize.Convert24(oh.OpenTime),
			Closed: normalize.Convert24(oh.CloseTime),
		})
	}

	return models.Pharmacy{
		Name:          s.Name,
		Address:       s.Address,
		Email:         s.Email,
		Fax:           s.Fax,
		Latitude:      s.GeoPoint.Lat,
		Longitude:     s.GeoPoint.Lng,
		Phone:         s.Phone,
		Postcode:      s.Postcode,
		State:         normalize.StateAbbr(s.State),
		StreetAddress: s.Address,
		Suburb:        s.Suburb,
		TradingHours:  th.OrNil(),
	}
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}
