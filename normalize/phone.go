package normalize

import (
	"regexp"
	"strings"
)

var (
	nonDigitRegexp   = regexp.MustCompile(`\D`)
	phoneCharsRegexp = regexp.MustCompile(`[^\d()+]`)
)

// Digits returns only the decimal digits of s.
func Digits(s string) string {
	return nonDigitRegexp.ReplaceAllString(s, "")
}

// FormatPhone renders a 10 digit number starting with 0 as "0X XXXX XXXX".
// Anything else is returned trimmed.
func FormatPhone(s string) string {
	d := Digits(s)
	if len(d) == 10 && d[0] == '0' {
		return d[0:2] + " " + d[2:6] + " " + d[6:10]
	}
	return strings.TrimSpace(s)
}

// FormatPhoneArea behaves like FormatPhone but prefixes an 8 digit local
// number with the given area code first.
func FormatPhoneArea(s, area string) string {
	d := Digits(s)
	if len(d) == 8 {
		return FormatPhone(area + d)
	}
	return FormatPhone(s)
}

// CompactPhone keeps digits, parentheses and a leading plus.
func CompactPhone(s string) string {
	return phoneCharsRegexp.ReplaceAllString(s, "")
}
