// Package ramsay reads the Ramsay Pharmacy portal API. The API only answers
// with the session id embedded in the public Store-Finder page, so discovery
// is a two-step fetch.
package ramsay

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

// sessionRegexp captures the id passed to the locator widget on page load
var sessionRegexp = regexp.MustCompile(`StoreLocator\.LoadInitialData\('([^']+)', ''\);`)

var apiHeaders = map[string]string{
	"Accept":       "application/json, text/javascript, */*; q=0.01",
	"Content-Type": "application/json; charset=UTF-8",
	"Origin":       "https://www.ramsaypharmacy.com.au",
	"Referer":      "https://www.ramsaypharmacy.com.au/",
}

var shapes = []scraper.Shape{
	scraper.DirectList,
	scraper.ListAt("Data", "Results"),
}

func searchPayload() map[string]any {
	return map[string]any{
		"Services":       nil,
		"PharmacyName":   "ramsay",
		"WeekDayId":      nil,
		"TodayId":        3,
		"TodayTime":      "15:51:37",
		"IsOpenNow":      false,
		"IsClickCollect": false,
		"Is24Hours":      false,
		"IsOpenWeekend":  false,
		"Region":         nil,
		"Distance":       0,
		"Latitude":       0,
		"Longitude":      0,
		"PageIndex":      1,
		"PageSize":       100,
		"OrderBy":        "",
	}
}

type pharmacy struct {
	ID          string `json:"PharmacyId"`
	Name        string `json:"PharmacyName"`
	Address     string `json:"Address"`
	Phone       string `json:"PhoneNumber"`
	Fax         string `json:"FaxNumber"`
	Lat         string `json:"Latitude"`
	Lng         string `json:"Longitude"`
	HoursRemark string `json:"OpereatingHourDescription"`
}

// Handler is the Ramsay Pharmacy handler.
type Handler struct {
	scraper.Base
}

// New returns a Ramsay handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandRamsay, deps)}
}

// sessionID scrapes the widget session id. A missing id is not fatal; the
// API is then tried without it.
func (h *Handler) sessionID(ctx context.Context) string {
	resp, err := h.Get(ctx, h.Endpoints.RamsayStoreFinder, map[string]string{
		"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		h.Log().Warn("[ramsay] Failed to fetch Store Finder page: %v", err)
		return ""
	}
	m := sessionRegexp.FindStringSubmatch(resp.Text())
	if m == nil {
		h.Log().Warn("[ramsay] Could not find session ID in Store Finder page")
		return ""
	}
	return m[1]
}

// FetchLocations posts the search with the scraped session id.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	hdrs := make(map[string]string, len(apiHeaders)+1)
	for k, v := range apiHeaders {
		hdrs[k] = v
	}
	if sid := h.sessionID(ctx); sid != "" {
		hdrs["SessionId"] = sid
	}

	resp, err := h.PostJSON(ctx, h.Endpoints.RamsayAPI, hdrs, searchPayload())
	if err != nil {
		return nil, fmt.Errorf("ramsay: fetch locations: %w", err)
	}
	tree, err := resp.Any()
	if err != nil {
		return nil, fmt.Errorf("ramsay: fetch locations: %w", err)
	}
	list, shape, ok := scraper.FirstMatch(tree, shapes...)
	if !ok {
		h.Log().Warn("[ramsay] No locations found in API response, keys: %v", scraper.Keys(tree))
		return nil, nil
	}
	h.Log().Info("[ramsay] Found %d locations at %s", len(list), shape)

	locs := make([]models.Location, 0, len(list))
	for _, m := range scraper.Maps(list) {
		locs = append(locs, models.Location{ID: scraper.Str(m["PharmacyId"]), Data: m})
	}
	return locs, nil
}

// FetchDetails is a passthrough.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract maps a portal record. Addresses arrive as <br> separated lines.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	var p pharmacy
	if err := scraper.Decode(raw.Data, &p); err != nil {
		h.Log().Debug("[ramsay] Partial decode of %s: %v", raw.Location.ID, err)
	}

	address := normalize.JoinAddress(normalize.SplitBR(p.Address)...)
	state, postcode, suburb := splitAddress(address)

	return models.Pharmacy{
		Name:          strings.TrimSpace(p.Name),
		Address:       address,
		Fax:           strings.TrimSpace(p.Fax),
		Latitude:      p.Lat,
		Longitude:     p.Lng,
		Phone:         strings.TrimSpace(p.Phone),
		Postcode:      postcode,
		State:         state,
		StreetAddress: address,
		Suburb:        suburb,
		TradingHours:  normalize.ParseSchedule(hourLines(p.HoursRemark), nil).OrNil(),
	}
}

// splitAddress finds the last comma part holding a state token, reads
// "STATE 1234" from it and takes the part before it as the suburb.
func splitAddress(address string) (state, postcode, suburb string) {
	parts := strings.Split(address, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		fields := strings.Fields(parts[i])
		if len(fields) < 2 || !normalize.IsState(fields[0]) {
			continue
		}
		state, postcode = fields[0], fields[1]
		if i > 0 {
			suburb = strings.TrimSpace(parts[i-1])
		}
		return state, postcode, suburb
	}
	// "Suburb STATE 1234" in one part
	if len(parts) > 0 {
		rest, st, pc := normalize.SplitStatePostcode(parts[len(parts)-1])
		if st != "" {
			return st, pc, rest
		}
	}
	return "", "", ""
}

func hourLines(desc string) []string {
	return normalize.SplitBR(strings.ReplaceAll(desc, "\n", "<br>"))
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}
