// Package healthyworld reads the single Healthy World Pharmacy locations
// page. Stores are grouped under blue region headings; each store is a red
// bold name followed by address and contact divs.
package healthyworld

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

const (
	defaultState = "QLD"
	areaCode     = "07"
	storeMarker  = "Healthyworld Pharmacy"

	regionSel = `span[style*="#2b00ff"]`
	storeSel  = `span[style*="#ff2a00"]`
)

var phoneRegexps = []*regexp.Regexp{
	regexp.MustCompile(`\(0\d\)\s*\d{4}\s*\d{4}`),
	regexp.MustCompile(`0\d{3}\s*\d{3}\s*\d{3}`),
	regexp.MustCompile(`Phone[^\d]*(\d[\d\s]+)`),
}

// Handler is the Healthy World handler.
type Handler struct {
	scraper.Base
}

// New returns a Healthy World handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandHealthyWorld, deps)}
}

// block is one store: its name and the divs that follow it.
type block struct {
	name    string
	region  string
	details []string
}

// FetchLocations fetches the locations page and splits it into store
// blocks. Each stub carries the block's detail divs as HTML.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	resp, err := h.Get(ctx, h.Endpoints.HealthyWorld, map[string]string{
		"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		return nil, fmt.Errorf("healthy_world: fetch locations: %w", err)
	}
	doc, err := scraper.ParseHTML(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("healthy_world: parse locations: %w", err)
	}
	content := doc.Find("div.page__content.rte").First()
	if content.Length() == 0 {
		h.Log().Warn("[healthy_world] No content block on %s", h.Endpoints.HealthyWorld)
		return nil, nil
	}

	blocks := splitBlocks(content)
	h.Log().Info("[healthy_world] Found %d locations", len(blocks))
	locs := make([]models.Location, 0, len(blocks))
	for i, b := range blocks {
		locs = append(locs, models.Location{
			ID:   fmt.Sprintf("hw-%d", i+1),
			Name: b.name,
			URL:  h.Endpoints.HealthyWorld,
			Data: map[string]any{"html": strings.Join(b.details, "\n"), "region": b.region},
		})
	}
	return locs, nil
}

// splitBlocks walks the centred divs in document order.
func splitBlocks(content *goquery.Selection) []block {
	var (
		out    []block
		region string
		cur    *block
	)
	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}
	content.Find(`div[style*="text-align: center"]`).Each(func(_ int, div *goquery.Selection) {
		if r := scraper.Text(div.Find(regionSel).Find("b").First()); r != "" {
			flush()
			region = r
			return
		}
		if span := div.Find(storeSel).First(); span.Length() > 0 {
			flush()
			name := storeName(span)
			if strings.Contains(name, storeMarker) {
				cur = &block{name: name, region: region}
			}
			return
		}
		if cur != nil {
			if html, err := goquery.OuterHtml(div); err == nil {
				cur.details = append(cur.details, html)
			}
		}
	})
	flush()
	return out
}

// storeName joins the bold pieces a name is sometimes split across.
func storeName(span *goquery.Selection) string {
	var parts []string
	span.Find("b").Each(func(_ int, b *goquery.Selection) {
		parts = append(parts, scraper.Text(b))
	})
	return normalize.CleanText(strings.Join(parts, " "))
}

// FetchDetails is a passthrough.
func (h *Handler) FetchDetails(_ context.Context, loc models.Location) (*models.RawRecord, error) {
	return scraper.Passthrough(loc), nil
}

// Extract reads a store block. Divs mentioning neither email nor phone are
// address lines.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	p := models.Pharmacy{Name: raw.Location.Name, Website: raw.Location.URL}
	doc := scraper.MustDoc(scraper.Str(raw.Data["html"]))

	var address []string
	doc.Find("body").Children().Each(func(_ int, div *goquery.Selection) {
		text := scraper.Text(div)
		if text == "" {
			return
		}
		if a := div.Find(`a[href*="mailto:"]`).First(); a.Length() > 0 {
			p.Email = scraper.Text(a)
		}
		switch {
		case strings.Contains(text, "Phone"):
			if phone := findPhone(text); phone != "" {
				p.Phone = normalize.FormatPhoneArea(phone, areaCode)
			}
		case strings.Contains(text, "Email:"):
		default:
			address = append(address, text)
		}
	})

	p.Address = strings.Join(address, ", ")
	p.StreetAddress, p.Suburb, p.State, p.Postcode = normalize.SplitRegional(p.Address, defaultState)
	return p
}

func findPhone(text string) string {
	for _, re := range phoneRegexps {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return strings.TrimSpace(m[len(m)-1])
	}
	return ""
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunListed(ctx, h)
}
