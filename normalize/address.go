// Package normalize holds the pure text utilities shared by brand handlers:
// address decomposition, trading-hours parsing, AM/PM inference, phone
// formatting and Cloudflare email de-obfuscation. Nothing here does I/O.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// States are the Australian state and territory abbreviations.
var States = []string{"NSW", "VIC", "QLD", "SA", "WA", "TAS", "NT", "ACT"}

var (
	// stateRegexp matches the first standalone state abbreviation
	stateRegexp = regexp.MustCompile(`\b(NSW|VIC|QLD|SA|WA|TAS|NT|ACT)\b`)
	// postcodeRegexp matches the first standalone 4-digit run
	postcodeRegexp = regexp.MustCompile(`\b(\d{4})\b`)
	// stateSuffixRegexp matches a trailing "STATE 1234" pair
	stateSuffixRegexp = regexp.MustCompile(`(?i)\b(NSW|VIC|QLD|SA|WA|TAS|NT|ACT)\.?,?\s+(\d{4})\s*$`)
	// regionalRegexp splits "street, suburb STATE 1234" with an optional state
	regionalRegexp = regexp.MustCompile(`^(.*?)(?:,\s*|\s+)([^,]+?)(?:\s+([A-Z]{2,3}))?\s+(\d{4})$`)
)

var stateNames = map[string]string{
	"NEW SOUTH WALES":              "NSW",
	"VICTORIA":                     "VIC",
	"QUEENSLAND":                   "QLD",
	"SOUTH AUSTRALIA":              "SA",
	"WESTERN AUSTRALIA":            "WA",
	"TASMANIA":                     "TAS",
	"NORTHERN TERRITORY":           "NT",
	"AUSTRALIAN CAPITAL TERRITORY": "ACT",
}

// StreetIndicators are the street-type tokens the suburb heuristic skips past.
var StreetIndicators = []string{"St", "Rd", "Dr", "Ave", "Ln", "Cres", "Pl", "Ct", "Way", "Blvd"}

// ExtractStatePostcode returns the first state abbreviation and the first
// 4-digit run in s. The two matches are independent of each other, so a unit
// number appearing before the real postcode wins. Empty strings mean not found.
func ExtractStatePostcode(s string) (state, postcode string) {
	if m := stateRegexp.FindStringSubmatch(s); m != nil {
		state = m[1]
	}
	if m := postcodeRegexp.FindStringSubmatch(s); m != nil {
		postcode = m[1]
	}
	return state, postcode
}

// StripStatePostcode removes every state abbreviation and 4-digit run from s.
func StripStatePostcode(s string) string {
	return postcodeRegexp.ReplaceAllString(stateRegexp.ReplaceAllString(s, ""), "")
}

// IsState reports whether s is one of the eight abbreviations.
func IsState(s string) bool {
	for _, st := range States {
		if s == st {
			return true
		}
	}
	return false
}

// StandardizeState maps full state names (any case) and abbreviations to the
// upper-case abbreviation. Anything else is returned trimmed but unchanged.
func StandardizeState(s string) string {
	t := strings.TrimSpace(s)
	up := strings.ToUpper(t)
	if abbr, ok := stateNames[up]; ok {
		return abbr
	}
	if IsState(up) {
		return up
	}
	return t
}

// StateAbbr is the strict form of StandardizeState: dotted abbreviations
// ("N.S.W.", "Vic.") are accepted and anything that is not an Australian
// state or territory gives "".
func StateAbbr(s string) string {
	up := strings.ToUpper(CleanText(strings.ReplaceAll(s, ".", "")))
	if abbr, ok := stateNames[up]; ok {
		return abbr
	}
	if IsState(up) {
		return up
	}
	return ""
}

// FindStateName returns the abbreviation of the first full state name
// contained in s.
func FindStateName(s string) string {
	up := strings.ToUpper(s)
	for _, name := range []string{
		"AUSTRALIAN CAPITAL TERRITORY", "NORTHERN TERRITORY", "NEW SOUTH WALES",
		"WESTERN AUSTRALIA", "SOUTH AUSTRALIA", "QUEENSLAND", "VICTORIA", "TASMANIA",
	} {
		if strings.Contains(up, name) {
			return stateNames[name]
		}
	}
	return ""
}

// StateFromPostcode infers the state from the numeric postcode range.
func StateFromPostcode(pc string) string {
	n, err := strconv.Atoi(strings.TrimSpace(pc))
	if err != nil {
		return ""
	}
	switch {
	case n >= 2600 && n <= 2618, n >= 2900 && n <= 2920:
		return "ACT"
	case n >= 1000 && n <= 2999:
		return "NSW"
	case n >= 3000 && n <= 3999:
		return "VIC"
	case n >= 4000 && n <= 4999:
		return "QLD"
	case n >= 5000 && n <= 5999:
		return "SA"
	case n >= 6000 && n <= 6999:
		return "WA"
	case n >= 7000 && n <= 7999:
		return "TAS"
	case n >= 800 && n <= 999:
		return "NT"
	}
	return ""
}

// ResolveState tries the abbreviation, then a full state name, then the
// postcode range.
func ResolveState(address, postcode string) string {
	if st, _ := ExtractStatePostcode(address); st != "" {
		return st
	}
	if st := FindStateName(address); st != "" {
		return st
	}
	return StateFromPostcode(postcode)
}

// SuburbBeforeState splits the address on whitespace, finds the first state
// token that is not the last token, skips past the first street indicator
// before it and joins the tokens in between. Returns "" when there is no
// street indicator or nothing sits between it and the state.
func SuburbBeforeState(address string) string {
	parts := strings.Fields(address)
	for i, p := range parts {
		if !IsState(p) || i >= len(parts)-1 {
			continue
		}
		if i == 0 {
			return ""
		}
		streetEnd := -1
		for j, q := range parts[:i] {
			if isStreetIndicator(q) {
				streetEnd = j
				break
			}
		}
		if streetEnd < 0 || streetEnd+1 >= i {
			return ""
		}
		return strings.Trim(strings.Join(parts[streetEnd+1:i], " "), " ,")
	}
	return ""
}

func isStreetIndicator(tok string) bool {
	tok = strings.TrimRight(tok, ",.")
	for _, s := range StreetIndicators {
		if tok == s {
			return true
		}
	}
	return false
}

// SuburbFromCommaAddress reads the suburb from a comma separated address:
// the last part when there are two, otherwise the second to last, with state
// and postcode tokens removed.
func SuburbFromCommaAddress(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return ""
	}
	part := parts[len(parts)-2]
	if len(parts) == 2 {
		part = parts[1]
	}
	part = stateRegexp.ReplaceAllString(part, "")
	part = postcodeRegexp.ReplaceAllString(part, "")
	return CleanText(part)
}

// SplitStatePostcode splits a trailing "STATE 1234" off s, returning the
// remainder, the standardized state and the postcode.
func SplitStatePostcode(s string) (rest, state, postcode string) {
	m := stateSuffixRegexp.FindStringSubmatchIndex(s)
	if m == nil {
		return strings.TrimSpace(s), "", ""
	}
	rest = strings.TrimRight(strings.TrimSpace(s[:m[0]]), ", ")
	return rest, StandardizeState(s[m[2]:m[3]]), s[m[4]:m[5]]
}

// SplitRegional splits an address of a brand that trades in one state.
// A missing state is filled with defaultState. Without a postcode the first
// comma part is the street and the last the suburb.
func SplitRegional(address, defaultState string) (street, suburb, state, postcode string) {
	state = defaultState
	a := CleanText(address)
	if a == "" {
		return "", "", state, ""
	}
	if m := regionalRegexp.FindStringSubmatch(a); m != nil {
		street, suburb, postcode = strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), m[4]
		if m[3] != "" {
			state = StandardizeState(m[3])
		}
		return street, suburb, state, postcode
	}
	parts := strings.Split(a, ",")
	if len(parts) < 2 {
		return a, "", state, ""
	}
	rest, st, pc := SplitStatePostcode(parts[len(parts)-1])
	if st != "" {
		state = st
	}
	return strings.TrimSpace(parts[0]), rest, state, pc
}

// JoinAddress joins the non-empty parts with ", ".
func JoinAddress(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = CleanText(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
