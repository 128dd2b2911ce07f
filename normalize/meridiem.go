package normalize

import "strings"

// Meridiem picks "AM" or "PM" for an hour written without a marker.
// Brands disagree on the threshold, so each rule is its own function.
type Meridiem func(hour int) string

// EveningBias assumes hours before 8 are PM. Used where a bare small number
// is almost always a closing time ("9 - 5").
func EveningBias(hour int) string {
	if hour < 8 {
		return "PM"
	}
	return "AM"
}

// AlwaysAM marks any bare hour as AM.
func AlwaysAM(int) string {
	return "AM"
}

// NoonBiasClose treats a bare closing hour of 12 or less as PM.
func NoonBiasClose(hour int) string {
	if hour <= 12 {
		return "PM"
	}
	return "AM"
}

// SaturdayClose treats a bare closing hour before 6 as PM and anything later
// as AM.
func SaturdayClose(hour int) string {
	if hour < 6 {
		return "PM"
	}
	return "AM"
}

// OpenFromClose returns the rule for a bare opening hour based on how the
// closing time was written: an "am" close makes the open AM as well, a "pm"
// close makes it AM below 12 and PM otherwise. A bare close falls back to
// EveningBias.
func OpenFromClose(closeText string) Meridiem {
	switch Marker(closeText) {
	case "AM":
		return AlwaysAM
	case "PM":
		return func(hour int) string {
			if hour < 12 {
				return "AM"
			}
			return "PM"
		}
	}
	return EveningBias
}

// Marker returns "AM" or "PM" when s carries an explicit marker, else "".
func Marker(s string) string {
	m := timeRegexp.FindStringSubmatch(strings.ToLower(s))
	if m == nil || m[4] == "" {
		return ""
	}
	return strings.ToUpper(m[4]) + "M"
}
