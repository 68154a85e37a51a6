package ctdf

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDayRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			value := NewTimeOfDay(hour, minute).Format()

			parsed, err := ParseTimeOfDay(value)
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) returned error %v", value, err)
			}
			if parsed.Format() != value {
				t.Fatalf("round trip of %q gave %q", value, parsed.Format())
			}
		}
	}
}

func TestParseTimeOfDayRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"9:00",
		"09:0",
		"0900",
		"09-00",
		"24:00",
		"25:99",
		"12:60",
		"ab:cd",
		" 09:00",
		"09:00 ",
		"+9:00",
		"09:00:00",
	}

	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			_, err := ParseTimeOfDay(value)
			if !errors.Is(err, ErrInvalidTimeFormat) {
				t.Errorf("ParseTimeOfDay(%q) error = %v, want ErrInvalidTimeFormat", value, err)
			}
		})
	}
}

func TestTimeOfDayArithmetic(t *testing.T) {
	start := NewTimeOfDay(8, 20)

	if got := start.Add(15 * time.Minute).Format(); got != "08:35" {
		t.Errorf("08:20 + 15m = %s, want 08:35", got)
	}
	if got := start.Add(90 * time.Second).Format(); got != "08:21" {
		t.Errorf("08:20 + 90s = %s, want 08:21", got)
	}
	if got := NewTimeOfDay(23, 50).Add(20 * time.Minute).Format(); got != "24:10" {
		t.Errorf("23:50 + 20m = %s, want 24:10", got)
	}
	if got := NewTimeOfDay(9, 5).Sub(NewTimeOfDay(8, 50)); got != 15*time.Minute {
		t.Errorf("09:05 - 08:50 = %s, want 15m", got)
	}
}

func TestParseGTFSTime(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "08:05:00", expected: "08:05"},
		{input: "8:05:59", expected: "08:05"},
		{input: "25:10:00", expected: "25:10"},
		{input: "08:05", wantErr: true},
		{input: "aa:00:00", wantErr: true},
		{input: "08:61:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseGTFSTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if result.Format() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result.Format())
			}
		})
	}
}
