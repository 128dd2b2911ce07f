package scraper

import (
	"context"
	"encoding/xml"
	"net/url"
	"path"
	"regexp"
	"strings"

	"pharmacy-locator/models"
	"pharmacy-locator/utils"
)

// xmlURLSet is the root element of a standard sitemap XML file.
type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []xmlURL `xml:"url"`
}

// xmlURL is a single <url> entry inside a <urlset>.
type xmlURL struct {
	Loc string `xml:"loc"`
}

// locRegexp is the fallback for sitemaps that are not well-formed XML
var locRegexp = regexp.MustCompile(`(?s)<loc>\s*(.*?)\s*</loc>`)

// ParseSitemap returns every <loc> in body in document order. Bodies that do
// not parse as a urlset are scanned with a regular expression instead.
func ParseSitemap(body string) []string {
	var urlset xmlURLSet
	if err := xml.Unmarshal([]byte(body), &urlset); err == nil && len(urlset.URLs) > 0 {
		locs := make([]string, 0, len(urlset.URLs))
		for _, u := range urlset.URLs {
			if loc := strings.TrimSpace(u.Loc); loc != "" {
				locs = append(locs, loc)
			}
		}
		return locs
	}

	var locs []string
	for _, m := range locRegexp.FindAllStringSubmatch(body, -1) {
		if loc := strings.TrimSpace(m[1]); loc != "" {
			locs = append(locs, loc)
		}
	}
	return locs
}

// SitemapFilter selects the store pages of a sitemap.
type SitemapFilter struct {
	// Contains must appear in the URL.
	Contains string
	// Exclude lists exact URLs to drop, compared without a trailing slash.
	Exclude []string
}

func (f SitemapFilter) keep(loc string) bool {
	if f.Contains != "" && !strings.Contains(loc, f.Contains) {
		return false
	}
	trimmed := strings.TrimRight(loc, "/")
	for _, ex := range f.Exclude {
		if trimmed == strings.TrimRight(ex, "/") {
			return false
		}
	}
	return true
}

// FilterLocs applies f and drops duplicates, keeping first-seen order.
func FilterLocs(locs []string, f SitemapFilter) []string {
	seen := utils.NewURLSet()
	out := make([]string, 0, len(locs))
	for _, loc := range locs {
		if !f.keep(loc) {
			continue
		}
		if seen.Add(strings.TrimRight(loc, "/")) {
			out = append(out, loc)
		}
	}
	return out
}

// URLStubs turns detail-page URLs into location stubs keyed by their slug.
func URLStubs(urls []string) []models.Location {
	locs := make([]models.Location, 0, len(urls))
	for _, u := range urls {
		slug := Slug(u)
		locs = append(locs, models.Location{ID: slug, Name: slug, URL: u})
	}
	return locs
}

// Slug returns the last non-empty path segment of a URL.
func Slug(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	return path.Base("/" + strings.Trim(p, "/"))
}

// DiscoverSitemap fetches a sitemap and returns one stub per matching URL.
func DiscoverSitemap(ctx context.Context, c Client, sitemapURL string, f SitemapFilter) ([]models.Location, error) {
	resp, err := Fetch(ctx, c, Request{URL: sitemapURL, Headers: map[string]string{
		"Accept": "application/xml,text/xml;q=0.9,*/*;q=0.8",
	}})
	if err != nil {
		return nil, err
	}
	urls := FilterLocs(ParseSitemap(resp.Text()), f)
	if len(urls) == 0 {
		return nil, nil
	}
	return URLStubs(urls), nil
}
