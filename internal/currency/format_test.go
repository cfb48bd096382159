package currency

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"1", "1"},
		{"999", "999"},
		{"1000", "1.0K"},
		{"1500", "1.5K"},
		{"9999", "10.0K"},
		{"100000", "100.0K"},
		{"1000000", "1.0M"},
		{"1500000", "1.5M"},
		{"1000000000", "1.0B"},
		{"1000000000000", "1.0T"},
		{"1999999999999999", "1.9Qa"},
	}

	for _, tt := range tests {
		got := Short(MustParse(tt.input))
		if got != tt.expected {
			t.Errorf("Short(%s) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestShortVeryLarge(t *testing.T) {
	got := Short(Pow(New(10), 30))
	if !strings.HasPrefix(got, "1.0") {
		t.Errorf("Short(10^30) = %q, want prefix 1.0", got)
	}
	if !strings.HasSuffix(got, "No") {
		t.Errorf("Short(10^30) = %q, want suffix No", got)
	}
}
