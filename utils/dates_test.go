package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 10 {
		t.Fatalf("parsed %v", got)
	}
	if got.Location() != time.Local {
		t.Fatalf("expected local time, got %v", got.Location())
	}

	if _, err := ParseDate("10/03/2026"); err == nil {
		t.Fatalf("expected an error for a non ISO date")
	}
}

func TestClockOnDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	got, err := ClockOnDay(day, "14:30")
	if err != nil {
		t.Fatalf("ClockOnDay: %v", err)
	}
	want := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, err := ClockOnDay(day, "2pm"); err == nil {
		t.Fatalf("expected an error for a non HH:MM clock")
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+14155552671", "+44 20 7946 0958", "(415) 555-2671"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = false, want true", p)
		}
	}

	invalid := []string{"", "abc", "+0123456", "7"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = true, want false", p)
		}
	}
}
