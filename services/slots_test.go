package services

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestIntervalOverlaps_Symmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{at(9, 0), at(10, 0)}, Interval{at(11, 0), at(12, 0)}, false},
		{"partial", Interval{at(9, 0), at(10, 0)}, Interval{at(9, 30), at(10, 30)}, true},
		{"contained", Interval{at(9, 0), at(10, 0)}, Interval{at(9, 15), at(9, 30)}, true},
		{"identical", Interval{at(9, 0), at(10, 0)}, Interval{at(9, 0), at(10, 0)}, true},
		{"touching", Interval{at(9, 0), at(9, 45)}, Interval{at(9, 45), at(10, 15)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Fatalf("Overlaps(a, b) = %v, want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Fatalf("Overlaps(b, a) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGenerateSlots_EmptyDay(t *testing.T) {
	slots := GenerateSlots(at(9, 0), at(18, 0), 30*time.Minute, 60*time.Minute, nil)

	// 09:00 through 17:00 inclusive at a 30 minute step; a 17:30 start
	// would end past 18:00 and must not appear
	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(9, 0)) {
		t.Fatalf("first slot = %s, want 09:00", slots[0].Start.Format("15:04"))
	}
	last := slots[len(slots)-1]
	if !last.Start.Equal(at(17, 0)) || !last.End.Equal(at(18, 0)) {
		t.Fatalf("last slot = %s-%s, want 17:00-18:00",
			last.Start.Format("15:04"), last.End.Format("15:04"))
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.After(slots[i-1].Start) {
			t.Fatalf("slots out of order at index %d", i)
		}
	}
}

func TestGenerateSlots_SkipsBookedIntervals(t *testing.T) {
	busy := []Interval{{Start: at(10, 0), End: at(11, 0)}}
	slots := GenerateSlots(at(9, 0), at(12, 0), 30*time.Minute, 60*time.Minute, busy)

	// A 60 minute booking fits only at 09:00 and 11:00: starts at 09:30,
	// 10:00 and 10:30 collide with the 10:00-11:00 booking
	want := []time.Time{at(9, 0), at(11, 0)}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, w := range want {
		if !slots[i].Start.Equal(w) {
			t.Fatalf("slot %d = %s, want %s", i, slots[i].Start.Format("15:04"), w.Format("15:04"))
		}
	}
}

func TestGenerateSlots_BoundaryTouchingIsFree(t *testing.T) {
	// Existing appointment 09:00-09:45; a candidate starting 09:45 must
	// be offered
	busy := []Interval{{Start: at(9, 0), End: at(9, 45)}}
	slots := GenerateSlots(at(9, 0), at(11, 0), 15*time.Minute, 30*time.Minute, busy)

	found := false
	for _, s := range slots {
		if s.Start.Equal(at(9, 45)) {
			found = true
		}
		if s.Start.Before(at(9, 45)) {
			t.Fatalf("slot at %s overlaps the booking", s.Start.Format("15:04"))
		}
	}
	if !found {
		t.Fatalf("expected a slot starting 09:45")
	}
}

func TestGenerateSlots_DurationExceedsWindow(t *testing.T) {
	slots := GenerateSlots(at(9, 0), at(10, 0), 30*time.Minute, 2*time.Hour, nil)
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestGenerateSlots_UnevenWindowNeverClamps(t *testing.T) {
	// 09:00-10:15 window, 30 minute step and duration: 09:00, 09:30 fit;
	// a 10:00 candidate would end 10:30 and must be dropped
	slots := GenerateSlots(at(9, 0), at(10, 15), 30*time.Minute, 30*time.Minute, nil)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.End.After(at(10, 15)) {
			t.Fatalf("slot ending %s exceeds the window", s.End.Format("15:04"))
		}
	}
}

func TestGenerateSlots_InvalidInputs(t *testing.T) {
	if got := GenerateSlots(at(9, 0), at(18, 0), 30*time.Minute, 0, nil); got != nil {
		t.Fatalf("zero duration: expected nil, got %v", got)
	}
	if got := GenerateSlots(at(9, 0), at(18, 0), 0, 30*time.Minute, nil); got != nil {
		t.Fatalf("zero step: expected nil, got %v", got)
	}
	if got := GenerateSlots(at(18, 0), at(9, 0), 30*time.Minute, 30*time.Minute, nil); got != nil {
		t.Fatalf("inverted window: expected nil, got %v", got)
	}
}

func TestDefaultDuration(t *testing.T) {
	cases := map[string]int{
		"measurement":  60,
		"fitting":      45,
		"consultation": 30,
		"fabric":       30,
		"anything":     30,
	}
	for serviceType, want := range cases {
		if got := DefaultDuration(serviceType); got != want {
			t.Fatalf("DefaultDuration(%q) = %d, want %d", serviceType, got, want)
		}
	}
}
