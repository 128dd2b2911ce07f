package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pharmacy-locator/models"
	"pharmacy-locator/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func TestCleanerRecordText(t *testing.T) {
	c := NewCleaner(newTestLogger())
	got := c.Clean("alive", []models.Pharmacy{{
		Name:          " Alive\u00a0Midland ",
		StreetAddress: "  Shop 2,\n 1 Clayton St ",
		Suburb:        "\tMidland",
	}})
	want := []models.Pharmacy{{Name: "Alive Midland", StreetAddress: "Shop 2, 1 Clayton St", Suburb: "Midland"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clean mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanerRestrictsState(t *testing.T) {
	c := NewCleaner(newTestLogger())
	tests := []struct {
		raw  string
		want string
	}{
		{" Western Australia ", "WA"},
		{"N.S.W.", "NSW"},
		{"Vic.", "VIC"},
		{"Auckland", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := c.Clean("dds", []models.Pharmacy{{Name: "DDS Bondi", State: tt.raw}})
		if len(got) != 1 || got[0].State != tt.want {
			t.Errorf("Clean(state %q) = %+v; want state %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerDropsNameless(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []models.Pharmacy{
		{Address: "1 High St"},
		{Name: "  ", Phone: "03 9817 1234"},
		{Name: "Footes Pharmacy Balwyn"},
	}

	cleaned := c.Clean("footes", raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 record after dropping nameless ones, got %d", len(cleaned))
	}
}

func TestCleanerDeduplicates(t *testing.T) {
	c := NewCleaner(newTestLogger())
	hours := models.TradingHours{"Monday": {Open: "9:00 AM", Closed: "5:00 PM"}}
	raw := []models.Pharmacy{
		{Name: "Wizard Pharmacy Joondalup", Suburb: "Joondalup", TradingHours: hours},
		{Name: "Wizard Pharmacy  Joondalup", Suburb: "Joondalup ", TradingHours: hours},
		{Name: "Wizard Pharmacy Joondalup", Suburb: "Joondalup"},
	}

	cleaned := c.Clean("wizard", raw)
	want := []models.Pharmacy{
		{Name: "Wizard Pharmacy Joondalup", Suburb: "Joondalup", TradingHours: hours},
		{Name: "Wizard Pharmacy Joondalup", Suburb: "Joondalup"},
	}
	if diff := cmp.Diff(want, cleaned); diff != "" {
		t.Errorf("dedup mismatch (-want +got):\n%s", diff)
	}
}
