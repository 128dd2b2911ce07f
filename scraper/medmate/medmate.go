// Package medmate handles the brands served by the MedMate multi-tenant
// locator API. Tenants differ only by their businessid and source fields.
package medmate

import (
	"context"
	"fmt"

	"pharmacy-locator/config"
	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

var headers = map[string]string{
	"Accept":           "application/json, text/plain, */*",
	"Cache-Control":    "no-cache",
	"Host":             "app.medmate.com.au",
	"X-Requested-With": "XMLHttpRequest",
}

// Handler fetches one MedMate tenant.
type Handler struct {
	scraper.Base
	tenant config.Tenant
}

// New returns the handler for brand. It fails for brands MedMate does not host.
func New(brand scraper.Brand, deps scraper.Deps) (*Handler, error) {
	tenant, ok := deps.Endpoints.MedmateTenants[string(brand)]
	if !ok {
		return nil, fmt.Errorf("medmate: no tenant configured for %q", brand)
	}
	return &Handler{Base: scraper.NewBase(brand, deps), tenant: tenant}, nil
}

// FetchLocations posts the tenant payload and returns one stub per location id.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.PostJSON(ctx, h.Endpoints.MedmateLocations, headers, map[string]any{
		"businessid": h.tenant.BusinessID,
		"session_id": h.tenant.SessionID,
		"source":     h.tenant.Source,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: fetch locations: %w", h.Brand(), err)
	}
	tree, err := resp.Any()
	if err != nil {
		return nil, fmt.Errorf("%s: fetch locations: %w", h.Brand(), err)
	}

	var locs []models.Location
	for _, m := range scraper.Maps(tree) {
		id := scraper.Str(m["locationid"])
		if id == "" {
			continue
		}
		locs = append(locs, models.Location{ID: id, Name: scraper.Str(m["locationname"]), Data: m})
	}
	h.Log().Info("[%s] Found %d locations", h.Brand(), len(locs))
	return locs, nil
}

// FetchDetails posts the per-location detail request.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	resp, err := h.PostJSON(ctx, h.Endpoints.MedmateDetail, headers, map[string]any{
		"session_id":       h.tenant.SessionID,
		"businessid":       h.tenant.BusinessID,
		"locationid":       loc.ID,
		"include_services": true,
		"source":           h.tenant.Source,
	})
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := resp.JSON(&data); err != nil {
		return nil, err
	}
	return &models.RawRecord{Location: loc, Data: data}, nil
}

// Extract maps location_details and the top-level trading_hours.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	d := scraper.AsMap(raw.Data["location_details"])
	get := func(k string) string { return scraper.Str(d[k]) }

	return models.Pharmacy{
		Name:          get("locationname"),
		Address:       get("address"),
		Email:         get("email"),
		Fax:           get("fax_number"),
		Latitude:      get("latitude"),
		Longitude:     get("longitude"),
		Phone:         get("phone"),
		Postcode:      get("postcode"),
		State:         normalize.StateAbbr(get("state")),
		StreetAddress: get("streetaddress"),
		Suburb:        get("suburb"),
		TradingHours:  tradingHours(raw.Data["trading_hours"]),
		Website:       get("website"),
	}
}

// tradingHours accepts either a day-keyed object or a list of day rows.
func tradingHours(v any) models.TradingHours {
	th := models.TradingHours{}
	add := func(day string, entry map[string]any) {
		day = normalize.MatchDay(day)
		if day == "" {
			return
		}
		if scraper.Truthy(entry["closed"]) && scraper.Str(entry["open"]) == "" {
			th[day] = models.ClosedDay()
			return
		}
		open := scraper.Str(entry["open"])
		closing := scraper.Str(entry["close"])
		if closing == "" {
			closing = scraper.Str(entry["closed"])
		}
		if normalize.IsClosedText(open) || normalize.IsClosedText(closing) {
			th[day] = models.ClosedDay()
			return
		}
		th.Set(day, models.DayHours{
			Open:   normalize.FormatTime(open, normalize.AlwaysAM),
			Closed: normalize.FormatTime(closing, nil),
		})
	}

	switch t := v.(type) {
	case map[string]any:
		for day, entry := range t {
			if m := scraper.AsMap(entry); m != nil {
				add(day, m)
			}
		}
	case []any:
		for _, m := range scraper.Maps(t) {
			add(scraper.Str(m["day"]), m)
		}
	}
	return th.OrNil()
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.LightBatch)
}
