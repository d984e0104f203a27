package vrm

import "testing"

func TestSlugCases(t *testing.T) {
	tests := []struct {
		name, city, state string
		want              string
	}{
		{"", "Miami", "FL", "miami-fl"},
		{"O'Malley's Place!", "St. Louis", "MO", "o-malley-s-place-st-louis-mo"},
		{"The   Grand  Villa", "New  York", "NY", "the-grand-villa-new-york-ny"},
		{"Unit 42B", "Austin", "TX", "unit-42b-austin-tx"},
		{"Beach House", "", "FL", "beach-house-fl"},
		{"---", "!!!", "VA", "va"},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		got := Slug(tt.name, tt.city, tt.state)
		if got != tt.want {
			t.Errorf("Slug(%q, %q, %q) = %q; want %q", tt.name, tt.city, tt.state, got, tt.want)
		}
	}
}

func TestSlugDeterministic(t *testing.T) {
	first := Slug("Sea Breeze Cottage", "Virginia Beach", "VA")
	second := Slug("Sea Breeze Cottage", "Virginia Beach", "VA")
	if first != second {
		t.Errorf("slug not deterministic: %q != %q", first, second)
	}
}
