// Package footes scrapes Footes Pharmacies store pages listed in the stores
// sitemap.
package footes

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
	website   = "https://footespharmacies.com/"
	storesURL = "https://footespharmacies.com/stores/"

	emailAnchors = `.store-email a, a.store-email, a[href^="/cdn-cgi/l/email-protection"]`
)

var fourDigits = regexp.MustCompile(`\b\d{4}\b`)

// Handler is the Footes Pharmacies handler.
type Handler struct {
	scraper.Base
}

// New returns a Footes handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandFootes, deps)}
}

// FetchLocations reads the stores sitemap.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	locs, err := scraper.DiscoverSitemap(ctx, h.Client, h.Endpoints.FootesSitemap, scraper.SitemapFilter{
		Contains: "/stores/",
		Exclude:  []string{storesURL},
	})
	if err != nil {
		return nil, fmt.Errorf("footes: fetch sitemap: %w", err)
	}
	if len(locs) == 0 {
		h.Log().Warn("[footes] No store links found in sitemap")
		return nil, nil
	}
	for i := range locs {
		title := normalize.TitleSlug(locs[i].ID)
		locs[i].Name = "Footes Pharmacy " + title
		locs[i].ID = "footes_" + strings.ReplaceAll(strings.ToLower(title), " ", "_")
	}
	h.Log().Info("[footes] Found %d store URLs", len(locs))
	return locs, nil
}

// FetchDetails loads the store page.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	return h.FetchPage(ctx, loc)
}

// Extract reads a store page. Each field has a template selector and a
// looser fallback for pages built from an older template.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	doc := scraper.MustDoc(raw.HTML)

	p := models.Pharmacy{
		Name:    raw.Location.Name,
		Address: scraper.FirstText(doc.Selection, `.elementor-element-d9bbb9b .elementor-heading-title`, `[data-id="d9bbb9b"] .elementor-heading-title`),
		Phone:   scraper.Text(doc.Find(".store-phone a").First()),
		Fax:     fax(doc),
		Email:   email(doc),
		Website: website,
	}

	if p.Phone == "" {
		p.Phone = scraper.Text(doc.Find(`a[href^="tel:"]`).First())
	}
	if p.Address == "" {
		doc.Find(".elementor-heading-title").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if t := scraper.Text(s); fourDigits.MatchString(t) {
				p.Address = t
				return false
			}
			return true
		})
	}

	p.State, p.Postcode = normalize.ExtractStatePostcode(p.Address)
	p.StreetAddress = p.Address
	p.Suburb = suburb(p.Address)
	p.TradingHours = hours(doc).OrNil()
	return p
}

func fax(doc *goquery.Document) string {
	if sel := doc.Find(`.elementor-element-2008741, [data-id="2008741"]`).First(); sel.Length() > 0 {
		return strings.TrimSpace(strings.ReplaceAll(scraper.Text(sel), "Fx:", ""))
	}
	var out string
	doc.Find(".elementor-text-editor").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t := scraper.Text(s); strings.Contains(t, "Fx:") {
			out = strings.TrimSpace(strings.ReplaceAll(t, "Fx:", ""))
			return false
		}
		return true
	})
	return out
}

func email(doc *goquery.Document) string {
	if a := doc.Find(emailAnchors).First(); a.Length() > 0 {
		if a.Find("span.__cf_email__[data-cfemail]").Length() > 0 {
			if e := scraper.ProtectedEmail(a); e != "" {
				return e
			}
		} else if t := scraper.Text(a); strings.Contains(t, "@") {
			return t
		}
	}
	return scraper.ProtectedEmail(doc.Selection)
}

// suburb is the last comma part once state and postcode are removed.
func suburb(address string) string {
	if address == "" {
		return ""
	}
	stripped := normalize.StripStatePostcode(address)
	parts := strings.Split(stripped, ",")
	if len(parts) < 2 {
		return ""
	}
	return normalize.CleanText(parts[len(parts)-1])
}

// hours pairs the day column with the hours column row by row.
func hours(doc *goquery.Document) models.TradingHours {
	days := doc.Find(".elementor-element-fb1522c .elementor-widget-text-editor")
	times := doc.Find(".elementor-element-b96bcb7 .elementor-widget-text-editor")
	n := days.Length()
	if times.Length() < n {
		n = times.Length()
	}
	th := models.TradingHours{}
	for i := 0; i < n; i++ {
		line := scraper.Text(days.Eq(i)) + ": " + scraper.Text(times.Eq(i))
		th.Merge(normalize.ParseDayRange(line, nil))
	}
	return th
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.HeavyBatch)
}
