package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// DayOrder is the canonical ordering of trading-hours keys.
var DayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday", "Public Holiday",
}

// Weekdays are the seven calendar days without the public holiday key.
var Weekdays = DayOrder[:7]

// Closed is the marker used for both fields of a day the store does not open.
const Closed = "Closed"

// Columns is the fixed, brand-independent output field order.
var Columns = []string{
	"name", "address", "email", "fax", "latitude", "longitude", "phone",
	"postcode", "state", "street_address", "suburb", "trading_hours", "website",
}

// DayHours is one day's open/close pair.
type DayHours struct {
	Open   string `json:"open"`
	Closed string `json:"closed"`
}

// IsClosed reports whether the pair is the explicit Closed marker.
func (d DayHours) IsClosed() bool {
	return d.Open == Closed && d.Closed == Closed
}

// Valid reports whether both fields are populated.
func (d DayHours) Valid() bool {
	return d.Open != "" && d.Closed != ""
}

// ClosedDay returns the explicit Closed pair.
func ClosedDay() DayHours {
	return DayHours{Open: Closed, Closed: Closed}
}

// TradingHours maps a day name to its hours. A missing key means unknown,
// a Closed pair means the store is confirmed shut that day.
type TradingHours map[string]DayHours

// ClosedWeek returns the closed-by-default template that handlers overwrite
// day by day as hours are discovered.
func ClosedWeek() TradingHours {
	th := make(TradingHours, len(DayOrder))
	for _, d := range DayOrder {
		th[d] = ClosedDay()
	}
	return th
}

// Set stores hours for day, ignoring half-filled pairs.
func (th TradingHours) Set(day string, h DayHours) {
	if !h.Valid() {
		return
	}
	th[day] = h
}

// SetDays stores the same hours for every day given.
func (th TradingHours) SetDays(days []string, h DayHours) {
	for _, d := range days {
		th.Set(d, h)
	}
}

// OrNil returns nil for an empty map so the field is omitted.
func (th TradingHours) OrNil() TradingHours {
	if len(th) == 0 {
		return nil
	}
	return th
}

// Merge copies every valid entry of other into th.
func (th TradingHours) Merge(other TradingHours) {
	for d, h := range other {
		th.Set(d, h)
	}
}

// keys returns the day keys in DayOrder, then any unrecognised keys sorted.
func (th TradingHours) keys() []string {
	known := make(map[string]bool, len(DayOrder))
	out := make([]string, 0, len(th))
	for _, d := range DayOrder {
		known[d] = true
		if _, ok := th[d]; ok {
			out = append(out, d)
		}
	}
	var extra []string
	for d := range th {
		if !known[d] {
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// MarshalJSON writes days in calendar order so serialized output is stable.
func (th TradingHours) MarshalJSON() ([]byte, error) {
	if th == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range th.keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(th[d])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Pharmacy is the normalized record every brand handler produces.
// Empty fields mean the source did not provide the value.
type Pharmacy struct {
	Name          string       `json:"name,omitempty"`
	Address       string       `json:"address,omitempty"`
	Email         string       `json:"email,omitempty"`
	Fax           string       `json:"fax,omitempty"`
	Latitude      string       `json:"latitude,omitempty"`
	Longitude     string       `json:"longitude,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	Postcode      string       `json:"postcode,omitempty"`
	State         string       `json:"state,omitempty"`
	StreetAddress string       `json:"street_address,omitempty"`
	Suburb        string       `json:"suburb,omitempty"`
	TradingHours  TradingHours `json:"trading_hours,omitempty"`
	Website       string       `json:"website,omitempty"`
}

// Values returns the record as a row in Columns order. Trading hours are
// encoded as a single JSON cell.
func (p Pharmacy) Values() ([]string, error) {
	hours := ""
	if len(p.TradingHours) > 0 {
		b, err := json.Marshal(p.TradingHours)
		if err != nil {
			return nil, err
		}
		hours = string(b)
	}
	return []string{
		p.Name, p.Address, p.Email, p.Fax, p.Latitude, p.Longitude, p.Phone,
		p.Postcode, p.State, p.StreetAddress, p.Suburb, hours, p.Website,
	}, nil
}

// IsEmpty reports whether no field at all was populated.
func (p Pharmacy) IsEmpty() bool {
	row, _ := p.Values()
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
