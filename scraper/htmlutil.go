package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pharmacy-locator/normalize"
)

// ParseHTML builds a goquery document from a page body.
func ParseHTML(body string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("scraper: parse html: %w", err)
	}
	return doc, nil
}

// MustDoc parses body and falls back to an empty document. Extractors use it
// because they never fail.
func MustDoc(body string) *goquery.Document {
	doc, err := ParseHTML(body)
	if err != nil {
		doc, _ = ParseHTML("<html></html>")
	}
	return doc
}

// Text returns the selection's text with whitespace collapsed.
func Text(sel *goquery.Selection) string {
	return normalize.CleanText(sel.Text())
}

// Attr returns a trimmed attribute of the first node, or "".
func Attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return strings.TrimSpace(v)
}

// Lines splits a node's inner HTML on <br> and returns the non-empty text lines.
func Lines(sel *goquery.Selection) []string {
	h, err := sel.Html()
	if err != nil {
		return nil
	}
	return normalize.SplitBR(h)
}

// Mailto returns the first mailto address under sel.
func Mailto(sel *goquery.Selection) string {
	href := Attr(sel.Find(`a[href^="mailto:"]`).First(), "href")
	return cleanMailto(href)
}

func cleanMailto(href string) string {
	addr := strings.TrimPrefix(href, "mailto:")
	addr = strings.TrimPrefix(addr, "%20")
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	return strings.TrimSpace(addr)
}

// Tel returns the number of the first tel: link under sel.
func Tel(sel *goquery.Selection) string {
	href := Attr(sel.Find(`a[href^="tel:"]`).First(), "href")
	return strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
}

// ProtectedEmail finds a Cloudflare-obfuscated address under sel, either as a
// data-cfemail attribute or an email-protection link, and decodes it.
func ProtectedEmail(sel *goquery.Selection) string {
	if enc := Attr(sel.Find("[data-cfemail]").First(), "data-cfemail"); enc != "" {
		if email, err := normalize.DecodeCloudflareEmail(enc); err == nil {
			return email
		}
	}
	var email string
	sel.Find(`a[href*="email-protection#"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		enc := normalize.CFEmailFromHref(Attr(a, "href"))
		if decoded, err := normalize.DecodeCloudflareEmail(enc); err == nil {
			email = decoded
			return false
		}
		return true
	})
	return email
}

// FirstText returns the text of the first selector that matches something
// non-empty under sel.
func FirstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if t := Text(sel.Find(s).First()); t != "" {
			return t
		}
	}
	return ""
}
