// Package bendigoufs scrapes the Bendigo UFS "Locate Us" pages found in the
// site's page sitemap.
package bendigoufs

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

const website = "https://www.bendigoufs.com.au/"

var (
	titleRegexp = regexp.MustCompile(`Locate Us - (.+?) \|`)

	weekRegexp = regexp.MustCompile(`(?i)Monday\s*[–-]\s*Friday\s*(\d+[:.]\d+\s*(?:am|pm)?)\s*to\s*(\d+[:.]\d+\s*(?:am|pm)?)`)
	satRegexp  = regexp.MustCompile(`(?i)Saturday\s*[–-]\s*(\d+[:.]\d+\s*(?:am|pm)?)\s*to\s*(\d+[:.]\d+\s*(?:am|pm)?)`)
	sunRegexp  = regexp.MustCompile(`(?i)Sunday\s*(?:and)?\s*(?:Public)?\s*(?:Holidays?)?\s*[–-]?\s*(\d+[:.]\d+\s*(?:am|pm))\s*to\s*(\d+[:.]\d+\s*(?:am|pm))`)
)

// Handler is the Bendigo UFS handler.
type Handler struct {
	scraper.Base
}

// New returns a Bendigo UFS handler.
func New(deps scraper.Deps) *Handler {
	return &Handler{Base: scraper.NewBase(scraper.BrandBendigoUFS, deps)}
}

// FetchLocations keeps the locate-us pages of the page sitemap.
func (h *Handler) FetchLocations(ctx context.Context) ([]models.Location, error) {
	locs, err := scraper.DiscoverSitemap(ctx, h.Client, h.Endpoints.BendigoSitemap, scraper.SitemapFilter{Contains: "locate-us-"})
	if err != nil {
		return nil, fmt.Errorf("bendigo_ufs: fetch sitemap: %w", err)
	}
	h.Log().Info("[bendigo_ufs] Found %d pharmacy URLs", len(locs))
	return locs, nil
}

// FetchDetails loads the locate-us page.
func (h *Handler) FetchDetails(ctx context.Context, loc models.Location) (*models.RawRecord, error) {
	return h.FetchPage(ctx, loc)
}

// Extract reads the Address, Contact and Trading Hours blocks, each an h3
// heading followed by a paragraph.
func (h *Handler) Extract(raw *models.RawRecord) models.Pharmacy {
	doc := scraper.MustDoc(raw.HTML)

	p := models.Pharmacy{
		Name:    name(doc, raw.Location.URL),
		Website: website,
	}
	if para := section(doc, "address"); para != nil {
		p.Address = scraper.Text(para)
	}
	if para := section(doc, "contact"); para != nil {
		for _, line := range scraper.Lines(para) {
			switch {
			case strings.HasPrefix(strings.ToLower(line), "tel"):
				p.Phone = normalize.StripPrefix(line, "Tel:", "Tel")
			case strings.HasPrefix(strings.ToLower(line), "fax"):
				p.Fax = normalize.StripPrefix(line, "Fax:", "Fax")
			}
		}
		p.Email = scraper.Text(para.Find(`a[href^="mailto:"]`).First())
	}
	if para := section(doc, "trading hours"); para != nil {
		p.TradingHours = ParseHours(strings.Join(scraper.Lines(para), " ")).OrNil()
	}

	p.State, p.Postcode = normalize.ExtractStatePostcode(p.Address)
	p.StreetAddress = p.Address
	if p.State != "" {
		p.Suburb = normalize.SuburbFromCommaAddress(p.Address)
	}
	return p
}

// name prefers the page title and falls back to the URL slug.
func name(doc *goquery.Document, pageURL string) string {
	if m := titleRegexp.FindStringSubmatch(scraper.Text(doc.Find("title").First())); m != nil {
		return strings.TrimSpace(m[1])
	}
	if _, slug, ok := strings.Cut(pageURL, "locate-us-"); ok {
		return normalize.TitleSlug(strings.ReplaceAll(slug, "/", ""))
	}
	return ""
}

// section returns the first paragraph after the h3 whose text contains
// heading, or nil.
func section(doc *goquery.Document, heading string) *goquery.Selection {
	var para *goquery.Selection
	doc.Find("div.elementor-widget-container h3").EachWithBreak(func(_ int, h3 *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(h3.Text()), heading) {
			return true
		}
		if next := h3.NextAllFiltered("p").First(); next.Length() > 0 {
			para = next
			return false
		}
		return true
	})
	return para
}

// ParseHours reads the Bendigo trading hours paragraph. Weekday closing
// times without a marker of 12 or less are PM and the opening time follows
// the closing marker. Saturday opens AM and a bare close before 6 is PM.
// A closed Sunday also closes public holidays when the text mentions them.
func ParseHours(text string) models.TradingHours {
	th := models.TradingHours{}
	low := strings.ToLower(text)

	if m := weekRegexp.FindStringSubmatch(text); m != nil {
		th.SetDays(models.Weekdays[:5], models.DayHours{
			Open:   normalize.FormatTime(m[1], normalize.OpenFromClose(m[2])),
			Closed: normalize.FormatTime(m[2], normalize.NoonBiasClose),
		})
	}

	if m := satRegexp.FindStringSubmatch(text); m != nil {
		th.Set("Saturday", models.DayHours{
			Open:   normalize.FormatTime(m[1], normalize.AlwaysAM),
			Closed: normalize.FormatTime(m[2], normalize.SaturdayClose),
		})
	} else if strings.Contains(text, "Saturday") && strings.Contains(low, "closed") {
		th["Saturday"] = models.ClosedDay()
	}

	holiday := strings.Contains(low, "public holiday")
	if i := strings.Index(text, "Sunday"); i >= 0 && strings.Contains(low[i:], "closed") {
		th["Sunday"] = models.ClosedDay()
		if holiday {
			th["Public Holiday"] = models.ClosedDay()
		}
	} else if m := sunRegexp.FindStringSubmatch(text); m != nil {
		dh := models.DayHours{Open: normalize.FormatTime(m[1], nil), Closed: normalize.FormatTime(m[2], nil)}
		th.Set("Sunday", dh)
		if holiday {
			th.Set("Public Holiday", dh)
		}
	}
	return th
}

// FetchAll implements scraper.Handler.
func (h *Handler) FetchAll(ctx context.Context) ([]models.Pharmacy, error) {
	return h.RunDetailed(ctx, h, h.HeavyBatch)
}
