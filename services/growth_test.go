package services

import (
	"reflect"
	"strings"
	"testing"
)

func TestSupportedStates(t *testing.T) {
	want := []string{"CA", "FL", "NC", "TX", "VA"}
	if got := SupportedStates(); !reflect.DeepEqual(got, want) {
		t.Errorf("SupportedStates() = %v; want %v", got, want)
	}
}

func TestGrowthAreasLookup(t *testing.T) {
	areas := GrowthAreas("VA")
	if len(areas) == 0 {
		t.Fatal("expected growth areas for VA")
	}
	if areas[0].Area != "Northern Virginia" {
		t.Errorf("first VA area: got %q", areas[0].Area)
	}
}

func TestGrowthAreasCaseInsensitive(t *testing.T) {
	if len(GrowthAreas("tx")) != len(GrowthAreas("TX")) {
		t.Error("lookup should be case-insensitive")
	}
}

func TestGrowthAreasUnknownState(t *testing.T) {
	if areas := GrowthAreas("ZZ"); len(areas) != 0 {
		t.Errorf("unknown state: got %d areas, want 0", len(areas))
	}
}

func TestFormatGrowthAreas(t *testing.T) {
	out := FormatGrowthAreas("NC")
	for _, want := range []string{"Economically Growing Areas in NC", "Research Triangle", "Charlotte Metro", "Raleigh"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q", want)
		}
	}
}

func TestFormatGrowthAreasUnknownState(t *testing.T) {
	out := FormatGrowthAreas("ZZ")
	if !strings.Contains(out, "No growth area data") {
		t.Errorf("unexpected output for unknown state: %q", out)
	}
}
