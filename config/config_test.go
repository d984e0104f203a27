package config

import (
	"reflect"
	"testing"
)

func TestParseStates(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"VA,TX,NC", []string{"VA", "TX", "NC"}},
		{" va , tx ", []string{"VA", "TX"}},
		{"fl", []string{"FL"}},
		{",,", []string{DefaultState}},
		{"", []string{DefaultState}},
	}

	for _, tt := range tests {
		got := ParseStates(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseStates(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}
