package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pharmacy-locator/models"
)

var (
	// timeRegexp matches "8", "8am", "8.30am", "08:00", "08:00:00", "8:30 p.m."
	timeRegexp = regexp.MustCompile(`(\d{1,2})(?:[:.](\d{2}))?(?::(\d{2}))?\s*(?:([ap])\.?\s?m\b\.?)?`)
	// rangeSepRegexp splits an open/close pair on dashes or "to"
	rangeSepRegexp = regexp.MustCompile(`(?i)\s*(?:-|–|—|\bto\b)\s*`)
	// TimeRangeRegexp finds an "open - close" pair anywhere in free text
	TimeRangeRegexp = regexp.MustCompile(`(?i)(\d{1,2}(?:[:.]\d{2})?\s*(?:[ap]\.?m\.?)?)\s*(?:-|–|—|\bto\b)\s*(\d{1,2}(?:[:.]\d{2})?\s*(?:[ap]\.?m\.?)?)`)
	// closedRegexp matches the word closed in any case
	closedRegexp = regexp.MustCompile(`(?i)closed`)
	// dashRegexp splits a day range on either dash
	dashRegexp = regexp.MustCompile(`–|-`)
	// dayListSepRegexp splits "Saturday & Sunday" style lists
	dayListSepRegexp = regexp.MustCompile(`\s*(?:&|,|\band\b|/)\s*`)
)

var dayAliases = []struct {
	prefix string
	day    string
}{
	{"mon", "Monday"}, {"tue", "Tuesday"}, {"wed", "Wednesday"}, {"thu", "Thursday"},
	{"fri", "Friday"}, {"sat", "Saturday"}, {"sun", "Sunday"},
}

// IsClosedText reports whether s says closed anywhere, in any case.
func IsClosedText(s string) bool {
	return closedRegexp.MatchString(s)
}

// FormatTime renders a time of day as "H:MM AM". Times with seconds, a
// leading zero or an hour above 12 are read as 24 hour clock. A bare hour
// without a marker is resolved by infer (EveningBias when nil). Text that
// holds no time is returned cleaned but otherwise unchanged.
func FormatTime(text string, infer Meridiem) string {
	t := strings.ToLower(CleanText(text))
	switch {
	case t == "":
		return ""
	case IsClosedText(t):
		return models.Closed
	case strings.Contains(t, "noon"):
		return "12:00 PM"
	case strings.Contains(t, "midnight"):
		return "12:00 AM"
	}

	m := timeRegexp.FindStringSubmatch(t)
	if m == nil {
		return CleanText(text)
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	if m[4] != "" {
		marker := strings.ToUpper(m[4]) + "M"
		if hour > 12 {
			hour -= 12
		}
		if hour == 0 {
			hour = 12
		}
		return fmt.Sprintf("%d:%02d %s", hour, minute, marker)
	}

	if m[3] != "" || hour > 12 || hour == 0 || (len(m[1]) == 2 && m[1][0] == '0') {
		return clock12(hour, minute)
	}

	if infer == nil {
		infer = EveningBias
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, infer(hour))
}

// Convert24 turns a 24 hour "HH:MM" or "HH:MM:SS" into "H:MM AM".
func Convert24(text string) string {
	t := strings.TrimSpace(text)
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return t
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return t
	}
	return clock12(hour, minute)
}

func clock12(hour, minute int) string {
	hour %= 24
	marker := "AM"
	if hour >= 12 {
		marker = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, marker)
}

// ParseTimeRange parses an "open - close" string. Any "closed" in the text
// gives the Closed pair. The split is on "-", "–" or "to" and must yield
// exactly two sides. ok is false when no valid pair could be built.
func ParseTimeRange(text string, infer Meridiem) (models.DayHours, bool) {
	return ParseTimeRangeWith(text, infer, infer)
}

// ParseTimeRangeWith is ParseTimeRange with separate rules for each side.
func ParseTimeRangeWith(text string, openInfer, closeInfer Meridiem) (models.DayHours, bool) {
	if IsClosedText(text) {
		return models.ClosedDay(), true
	}
	parts := rangeSepRegexp.Split(strings.TrimSpace(text), -1)
	if len(parts) != 2 {
		return models.DayHours{}, false
	}
	h := models.DayHours{
		Open:   FormatTime(parts[0], openInfer),
		Closed: FormatTime(parts[1], closeInfer),
	}
	return h, h.Valid()
}

// FindTimeRange locates the first "open - close" pair inside longer text.
func FindTimeRange(text string, infer Meridiem) (models.DayHours, bool) {
	m := TimeRangeRegexp.FindStringSubmatch(text)
	if m == nil {
		return models.DayHours{}, false
	}
	h := models.DayHours{Open: FormatTime(m[1], infer), Closed: FormatTime(m[2], infer)}
	return h, h.Valid()
}

// MatchDay returns the day named in s, by full name first and then by a three
// letter prefix ("Tues", "Thurs"). Returns "" when no day is found.
func MatchDay(s string) string {
	low := strings.ToLower(s)
	if strings.Contains(low, "public holiday") {
		return "Public Holiday"
	}
	for _, d := range models.Weekdays {
		if strings.Contains(low, strings.ToLower(d)) {
			return d
		}
	}
	for _, a := range dayAliases {
		if strings.Contains(low, a.prefix) {
			return a.day
		}
	}
	return ""
}

// dayIndex finds the first weekday whose lower-case name contains token.
func dayIndex(token string) int {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return -1
	}
	for i, d := range models.Weekdays {
		if strings.Contains(strings.ToLower(d), t) {
			return i
		}
	}
	if len(t) >= 3 {
		for i, d := range models.Weekdays {
			if strings.HasPrefix(t, strings.ToLower(d[:3])) {
				return i
			}
		}
	}
	return -1
}

// ExpandDays returns the days from start to end inclusive in calendar order.
// Either end is matched by substring, so "Mon" and "monday" both work. An
// unknown end or an end before the start gives nil.
func ExpandDays(start, end string) []string {
	si, ei := dayIndex(start), dayIndex(end)
	if si < 0 || ei < 0 || ei < si {
		return nil
	}
	out := make([]string, 0, ei-si+1)
	out = append(out, models.Weekdays[si:ei+1]...)
	return out
}

// DaysIn interprets a day phrase: "Monday - Friday", "Mon to Fri",
// "Saturday & Sunday", "Weekdays", "Weekends", "7 days", or a single day.
func DaysIn(phrase string) []string {
	low := strings.ToLower(CleanText(phrase))
	switch {
	case low == "":
		return nil
	case strings.Contains(low, "7 days"), strings.Contains(low, "seven days"), strings.Contains(low, "every day"), strings.Contains(low, "daily"):
		return append([]string(nil), models.Weekdays...)
	case strings.Contains(low, "weekday"):
		return append([]string(nil), models.Weekdays[:5]...)
	case strings.Contains(low, "weekend"):
		return append([]string(nil), models.Weekdays[5:]...)
	}

	if parts := rangeSepRegexp.Split(low, -1); len(parts) == 2 {
		if days := ExpandDays(parts[0], parts[1]); days != nil {
			return days
		}
	}

	var out []string
	for _, piece := range dayListSepRegexp.Split(low, -1) {
		if d := MatchDay(piece); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// ParseDayRange parses "Monday - Friday: 9am-5pm" or "Saturday: Closed" into
// trading hours. The text before the first colon is the day phrase and the
// rest is the time range.
func ParseDayRange(text string, infer Meridiem) models.TradingHours {
	th := models.TradingHours{}
	dayPart, hours, found := strings.Cut(text, ":")
	if !found {
		return th
	}
	h, ok := ParseTimeRange(hours, infer)
	if !ok {
		return th
	}

	if strings.ContainsAny(dayPart, "-–") {
		parts := dashRegexp.Split(dayPart, -1)
		if len(parts) == 2 {
			th.SetDays(ExpandDays(parts[0], parts[1]), h)
		}
		return th
	}
	if d := MatchDay(dayPart); d != "" {
		th.Set(d, h)
	}
	return th
}

// ParseSchedule applies ParseDayRange to each line and merges the results.
func ParseSchedule(lines []string, infer Meridiem) models.TradingHours {
	th := models.TradingHours{}
	for _, l := range lines {
		th.Merge(ParseDayRange(l, infer))
	}
	return th
}
