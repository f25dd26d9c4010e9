package cmd

import (
	"testing"

	"github.com/vilhena/ponto/internal/model"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		in   string
		want model.Event
	}{
		{"in", model.ClockIn},
		{"lunch-out", model.LunchOut},
		{"lunch-in", model.LunchIn},
		{"out", model.ClockOut},
	}
	for _, tt := range tests {
		got, err := parseEvent(tt.in)
		if err != nil {
			t.Errorf("parseEvent(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseEvent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "clock-in", "lunch", "IN"} {
		if _, err := parseEvent(bad); err == nil {
			t.Errorf("parseEvent(%q): expected error", bad)
		}
	}
}
