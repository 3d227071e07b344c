package utils

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"09:30", 570, false},
		{"9:30", 570, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatClockZeroPads(t *testing.T) {
	if got := FormatClock(570); got != "09:30" {
		t.Fatalf("FormatClock(570) = %q", got)
	}
	if got := FormatClock(0); got != "00:00" {
		t.Fatalf("FormatClock(0) = %q", got)
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2026-03-03")
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}
	if start.Hour() != 0 || start.Day() != 3 {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("end = %v, want next midnight", end)
	}
	if _, _, err := DayBounds("03/03/2026"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestCombineDateAndClock(t *testing.T) {
	got, err := CombineDateAndClock("2026-03-03", "14:30")
	if err != nil {
		t.Fatalf("CombineDateAndClock: %v", err)
	}
	want := time.Date(2026, 3, 3, 14, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
