// services/slots.go
package services

import (
	"time"

	"tailorly-backend/models"
)

// Slot step size used when enumerating candidate start times.
const SlotStepMinutes = 30

// Working hours offered when the tailor has not configured a day.
const (
	DefaultDayOpen  = "09:00"
	DefaultDayClose = "18:00"
)

const fallbackDurationMinutes = 30

var defaultDurations = map[string]int{
	models.ServiceMeasurement:  60,
	models.ServiceFitting:      45,
	models.ServiceConsultation: 30,
	models.ServiceFabric:       30,
}

// DefaultDuration returns the booking length in minutes for a service
// type when the caller did not supply one.
func DefaultDuration(serviceType string) int {
	if d, ok := defaultDurations[serviceType]; ok {
		return d
	}
	return fallbackDurationMinutes
}

// Interval is a half-open [Start, End) span of tailor time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
// Touching boundaries do not overlap: an appointment ending at 10:00
// does not conflict with one starting at 10:00.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// Slot is a bookable interval offered to the client.
type Slot struct {
	Start time.Time
	End   time.Time
}

// GenerateSlots enumerates candidate start times between dayStart and
// dayEnd at the given step and keeps those where a booking of length
// duration would not overlap any busy interval. A candidate whose end
// would pass dayEnd is dropped, never clamped. Output is chronological
// and fully determined by the inputs.
func GenerateSlots(dayStart, dayEnd time.Time, step, duration time.Duration, busy []Interval) []Slot {
	if duration <= 0 || step <= 0 {
		return nil
	}
	if !dayEnd.After(dayStart) {
		return nil
	}

	var slots []Slot
	for t := dayStart; !t.Add(duration).After(dayEnd); t = t.Add(step) {
		candidate := Interval{Start: t, End: t.Add(duration)}
		if !overlapsAny(candidate, busy) {
			slots = append(slots, Slot(candidate))
		}
	}
	return slots
}

func bookedIntervals(appts []models.Appointment) []Interval {
	intervals := make([]Interval, 0, len(appts))
	for i := range appts {
		if !appts[i].Active() {
			continue
		}
		intervals = append(intervals, Interval{Start: appts[i].StartTime, End: appts[i].EndTime()})
	}
	return intervals
}
