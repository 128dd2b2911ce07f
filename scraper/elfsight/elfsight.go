// Package elfsight reads store lists embedded in Elfsight store-locator
// widgets. The boot endpoint returns the full widget configuration, which
// carries every location with its hours.
package elfsight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"pharmacy-locator/models"
	"pharmacy-locator/normalize"
	"pharmacy-locator/scraper"
)

var origins = map[scraper.Brand]string{
	scraper.BrandRevive:  "https://revivepharmacy.com.au",
	scraper.BrandOptimal: "https://optimalpharmacyplus.com.au",
}

// firstWidgetID returns the key of the first entry of data.widgets in
// document order, or "" when there is none.
func firstWidgetID(body []byte) string {
	var boot struct {
		Data struct {
			Widgets json.RawMessage `json:"widgets"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &boot); err != nil || len(boot.Data.Widgets) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(boot.Data.Widgets))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return ""
	}
	if !dec.More() {
		return ""
	}
	key, err := dec.Token()
	if err != nil {
		return ""
	}
	id, _ := key.(string)
	return id
}

// firstWidget returns the widget the boot payload lists first.
func firstWidget(body []byte, tree any) map[string]any {
	id := firstWidgetID(body)
	if id == "" {
		return nil
	}
	return scraper.AsMap(scraper.AsMap(scraper.Dig(tree, "data", "widgets"))[id])
}

var shapes = []scraper.Shape{
	{Name: "widget.data.settings.locations", Find: func(widget any) ([]any, bool) {
		l, ok := scraper.Dig(widget, "data", "settings", "locations").([]any)
		return l, ok
	}},
	{Name: "widget.settings.locations", Find: func(widget any) ([]any, bool) {
		l, ok := scraper.Dig(widget, "settings", "locations").([]any)
		return l, ok
	}},
}

// Handler serves one Elfsight-backed brand.
type Handler struct {
	scraper.Base
	bootURL string
}

// New returns the handler for brand.
func New(brand scraper.Brand, deps scraper.Deps) (*Handler, error) {
	u, ok := deps.Endpoints.ElfsightBoot[string(brand)]
	if !ok {
		return nil, fmt.Errorf("elfsight: no widget configured for %q", brand)
	}
	return &Handler{Base: scraper.NewBase(brand, deps), bootURL: u}, nil
}

// FetchLocations loads the widget boot payload.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	hdrs := map[string]string{"Accept": "*/*"}
	if o := origins[h.Brand()]; o != "" {
		hdrs["Origin"] = o
		hdrs["Referer"] = o + "/"
	}
	resp, err := h.Get(ctx, h.bootURL, hdrs)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch locations: %w", h.Brand(), err)
	}
	tree, err := resp.Any()
	if err != nil {
		return nil, fmt.Errorf("%s: fetch locations: %w", h.Brand(), err)
	}

	if scraper.DigStr(tree, "status") != "1" {
		h.Log().Warn("[%s] Widget boot returned status %q, keys: %v", h.Brand(), scraper.DigStr(tree, "status"), scraper.Keys(tree))
		return nil, nil
	}
	widget := firstWidget(resp.Body, tree)
	list, shape, ok := scraper.FirstMatch(widget, shapes...)
	if !ok {
		h.Log().Warn("[%s] No locations in widget, widget keys: %v", h.Brand(), scraper.Keys(widget))
		return nil, nil
	}
	h.Log().Info("[%s] Found %d locations at %s", h.Brand(), len(list), shape)

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

// Extract maps a widget location. Hours come as dayXOpen flags with a 24 hour
// dayXHours[0].timeRange pair; a day without the flag is Closed.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	d := raw.Data
	address := scraper.Str(d["address"])
	state, postcode := normalize.ExtractStatePostcode(address)

	return models.Pharmacy{
		Name:          scraper.Str(d["name"]),
		Address:       address,
		Email:         scraper.Str(d["email"]),
		Latitude:      scraper.DigStr(d, "place", "coordinates", "lat"),
		Longitude:     scraper.DigStr(d, "place", "coordinates", "lng"),
		Phone:         scraper.Str(d["phone"]),
		Postcode:      postcode,
		State:         state,
		StreetAddress: address,
		Suburb:        normalize.SuburbBeforeState(address),
		TradingHours:  hours(d),
		Website:       scraper.Str(d["website"]),
	}
}

func hours(d map[string]any) models.TradingHours {
	th := models.TradingHours{}
	for _, day := range models.Weekdays {
		if !scraper.Truthy(d["day"+day+"Open"]) {
			th[day] = models.ClosedDay()
			continue
		}
		r := scraper.AsList(scraper.Dig(d, "day"+day+"Hours", "0", "timeRange"))
		if len(r) != 2 {
			continue
		}
		th.Set(day, models.DayHours{
			Open:   normalize.Convert24(scraper.Str(r[0])),
			Closed: normalize.Convert24(scraper.Str(r[1])),
		})
	}
	return th
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}

