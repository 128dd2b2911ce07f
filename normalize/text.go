package normalize

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	// tagRegexp matches a single HTML tag
	tagRegexp = regexp.MustCompile(`<[^<>]+>`)
	// brRegexp matches <br>, <br/> and <br /> in any case
	brRegexp = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// CleanText strips leading/trailing whitespace and collapses internal
// whitespace, including non-breaking spaces.
func CleanText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// StripTags removes HTML tags and unescapes entities.
func StripTags(s string) string {
	return CleanText(html.UnescapeString(tagRegexp.ReplaceAllString(s, " ")))
}

// SplitBR splits an HTML fragment on <br> variants and returns the cleaned,
// non-empty text lines.
func SplitBR(s string) []string {
	var out []string
	for _, part := range brRegexp.Split(s, -1) {
		if t := StripTags(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TitleSlug turns "south-hobart" into "South Hobart".
func TitleSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' || unicode.IsSpace(r) })
	for i, w := range words {
		rs := []rune(strings.ToLower(w))
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}

// StripPrefix removes a leading label such as "PH:" or "Fax:" case-insensitively.
func StripPrefix(s string, labels ...string) string {
	t := strings.TrimSpace(s)
	for _, l := range labels {
		if len(t) >= len(l) && strings.EqualFold(t[:len(l)], l) {
			return strings.TrimSpace(t[len(l):])
		}
	}
	return t
}
