package vct

import (
	"testing"
	"time"
)

func TestParseWIBTime(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
	}{
		{
			name:     "explicit WIB marker",
			raw:      "11:00 pm WIB, Jan 20",
			expected: time.Date(2026, time.January, 20, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "marker without comma",
			raw:      "11:00 pm WIB Jan 20",
			expected: time.Date(2026, time.January, 20, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "reordered compact form",
			raw:      "12:00 am Mar 1",
			expected: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "date before time",
			raw:      "Mar 1 12:00 am",
			expected: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "no space before meridiem",
			raw:      "9:30pm WIB, Feb 3",
			expected: time.Date(2026, time.February, 3, 21, 30, 0, 0, time.UTC),
		},
		{
			name:     "uppercase meridiem",
			raw:      "9:30 PM, Feb 3",
			expected: time.Date(2026, time.February, 3, 21, 30, 0, 0, time.UTC),
		},
		{
			name:     "extra whitespace",
			raw:      "  11:00 pm   WIB,   Jan  20 ",
			expected: time.Date(2026, time.January, 20, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "explicit plausible year kept",
			raw:      "11:00 pm Jan 20 2027",
			expected: time.Date(2027, time.January, 20, 23, 0, 0, 0, time.UTC),
		},
		{name: "empty", raw: ""},
		{name: "placeholder dash", raw: "-"},
		{name: "garbage", raw: "vs TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWIBTime(tt.raw, 2026)
			if tt.expected.IsZero() {
				if !got.IsZero() {
					t.Errorf("ParseWIBTime(%q) = %v, expected zero time", tt.raw, got)
				}
				return
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseWIBTime(%q) = %v, expected %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestParseWIBTimeDefaultYear(t *testing.T) {
	got := ParseWIBTime("11:00 pm WIB, Jan 20", 2030)
	if got.Year() != 2030 {
		t.Errorf("expected default year 2030, got %d", got.Year())
	}
}

// Re-parsing the canonical form of a parsed value must yield the same time.
func TestParseWIBTimeIdempotent(t *testing.T) {
	inputs := []string{
		"11:00 pm WIB, Jan 20",
		"12:00 am Mar 1",
		"Mar 1 12:00 am",
		"9:30pm WIB, Feb 3",
	}

	for _, raw := range inputs {
		first := ParseWIBTime(raw, 2026)
		if first.IsZero() {
			t.Fatalf("ParseWIBTime(%q) unexpectedly failed", raw)
		}
		canonical := first.Format("3:04 pm Jan 2")
		second := ParseWIBTime(canonical, 2026)
		if !second.Equal(first) {
			t.Errorf("re-parsing %q (from %q) = %v, expected %v", canonical, raw, second, first)
		}
	}
}
