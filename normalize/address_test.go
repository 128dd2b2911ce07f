package normalize

import "testing"

func TestExtractStatePostcode(t *testing.T) {
	tests := []struct {
		in        string
		wantState string
		wantPC    string
	}{
		{"12 Main St, Sydney NSW 2000", "NSW", "2000"},
		{"no state or code here", "", ""},
		{"Shop 3, 1234 Long Rd, Hobart TAS 7000", "TAS", "1234"},
		{"2600 Canberra ACT", "ACT", "2600"},
		{"VICTORIA 3000", "", "3000"},
		{"Darwin NT", "NT", ""},
		{"SAVINGS 12345", "", ""},
	}

	for _, tt := range tests {
		st, pc := ExtractStatePostcode(tt.in)
		if st != tt.wantState || pc != tt.wantPC {
			t.Errorf("ExtractStatePostcode(%q) = (%q, %q); want (%q, %q)", tt.in, st, pc, tt.wantState, tt.wantPC)
		}
	}
}

func TestStandardizeState(t *testing.T) {
	tests := []struct{ in, want string }{
		{"New South Wales", "NSW"},
		{"queensland", "QLD"},
		{" vic ", "VIC"},
		{"Australian Capital Territory", "ACT"},
		{"Auckland", "Auckland"},
	}
	for _, tt := range tests {
		if got := StandardizeState(tt.in); got != tt.want {
			t.Errorf("StandardizeState(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestStateAbbr(t *testing.T) {
	tests := []struct{ in, want string }{
		{"NSW", "NSW"},
		{"N.S.W.", "NSW"},
		{"Vic.", "VIC"},
		{" western australia ", "WA"},
		{"A.C.T", "ACT"},
		{"Auckland", ""},
		{"NZ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StateAbbr(tt.in); got != tt.want {
			t.Errorf("StateAbbr(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestStateFromPostcode(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2000", "NSW"},
		{"2600", "ACT"},
		{"2618", "ACT"},
		{"2619", "NSW"},
		{"2905", "ACT"},
		{"3121", "VIC"},
		{"4000", "QLD"},
		{"5000", "SA"},
		{"6000", "WA"},
		{"7000", "TAS"},
		{"0800", "NT"},
		{"abcd", ""},
		{"9999", ""},
	}
	for _, tt := range tests {
		if got := StateFromPostcode(tt.in); got != tt.want {
			t.Errorf("StateFromPostcode(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveState(t *testing.T) {
	if got := ResolveState("1 Queen St, Brisbane Queensland", "4000"); got != "QLD" {
		t.Errorf("state name: got %q", got)
	}
	if got := ResolveState("1 Queen St, Brisbane", "4000"); got != "QLD" {
		t.Errorf("postcode fallback: got %q", got)
	}
	if got := ResolveState("1 Rundle Mall Adelaide SA", ""); got != "SA" {
		t.Errorf("abbreviation: got %q", got)
	}
}

func TestSuburbBeforeState(t *testing.T) {
	tests := []struct{ in, want string }{
		{"12 Main St Surry Hills NSW 2010", "Surry Hills"},
		{"12 Main St, Surry Hills NSW 2010", "Surry Hills"},
		{"Shop 1 Westfield Parramatta NSW 2150", ""},
		{"45 Beach Rd Sandgate QLD 4017", "Sandgate"},
		{"45 Beach Rd QLD 4017", ""},
		{"Sandgate QLD", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SuburbBeforeState(tt.in); got != tt.want {
			t.Errorf("SuburbBeforeState(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestSuburbFromCommaAddress(t *testing.T) {
	tests := []struct{ in, want string }{
		{"12 Main St, Kurri Kurri NSW 2327", "Kurri Kurri"},
		{"Shop 2, 12 Main St, Bendigo, VIC 3550", "Bendigo"},
		{"12 Main St", ""},
	}
	for _, tt := range tests {
		if got := SuburbFromCommaAddress(tt.in); got != tt.want {
			t.Errorf("SuburbFromCommaAddress(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitStatePostcode(t *testing.T) {
	rest, st, pc := SplitStatePostcode("Glenelg South, SA 5045")
	if rest != "Glenelg South" || st != "SA" || pc != "5045" {
		t.Errorf("got (%q, %q, %q)", rest, st, pc)
	}
	rest, st, pc = SplitStatePostcode("Somewhere")
	if rest != "Somewhere" || st != "" || pc != "" {
		t.Errorf("no suffix: got (%q, %q, %q)", rest, st, pc)
	}
}

func TestJoinAddress(t *testing.T) {
	got := JoinAddress(" 1  Main St ", "", "Hobart", "TAS 7000")
	if got != "1 Main St, Hobart, TAS 7000" {
		t.Errorf("JoinAddress = %q", got)
	}
}

func TestSplitRegional(t *testing.T) {
	tests := []struct {
		in   string
		want [4]string
	}{
		{"1/1 Glynburn Rd, Frewville SA 5063", [4]string{"1/1 Glynburn Rd", "Frewville", "SA", "5063"}},
		{"40 Brisbane St, Ipswich 4305", [4]string{"40 Brisbane St", "Ipswich", "QLD", "4305"}},
		{"Shop 1, Westfield", [4]string{"Shop 1", "Westfield", "QLD", ""}},
		{"", [4]string{"", "", "QLD", ""}},
	}
	for _, tt := range tests {
		street, suburb, state, postcode := SplitRegional(tt.in, "QLD")
		if got := [4]string{street, suburb, state, postcode}; got != tt.want {
			t.Errorf("SplitRegional(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripStatePostcode(t *testing.T) {
	tests := []struct{ in, want string }{
		{"1 High St, Kew East VIC 3102", "1 High St, Kew East  "},
		{"Shop 2 NSW", "Shop 2 "},
		{"no tokens", "no tokens"},
	}
	for _, tt := range tests {
		if got := StripStatePostcode(tt.in); got != tt.want {
			t.Errorf("StripStatePostcode(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
