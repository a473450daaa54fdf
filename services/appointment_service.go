// services/appointment_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"tailorly-backend/models"
	"tailorly-backend/utils"

	"github.com/google/uuid"
)

// AppointmentService coordinates appointment create/update/cancel so
// that, per tailor, no two non-cancelled appointments overlap. The
// availability check and the write run inside one store transaction
// with the conflicting rows locked, so two concurrent creates for the
// same window cannot both pass the check.
type AppointmentService struct {
	store   AppointmentStore
	tailors TailorDirectory
}

func NewAppointmentService(store AppointmentStore, tailors TailorDirectory) *AppointmentService {
	return &AppointmentService{store: store, tailors: tailors}
}

type CreateAppointmentInput struct {
	ClientID        uuid.UUID
	ServiceType     string
	StartTime       time.Time
	DurationMinutes *int
	Notes           string
}

// UpdateAppointmentInput lists every updatable field explicitly; nil
// means "keep the stored value".
type UpdateAppointmentInput struct {
	ClientID        *uuid.UUID
	ServiceType     *string
	StartTime       *time.Time
	DurationMinutes *int
	Status          *string
	Notes           *string
}

func (s *AppointmentService) Create(tailorID uuid.UUID, in CreateAppointmentInput) (*models.Appointment, error) {
	if tailorID == uuid.Nil {
		return nil, validationError("tailor_id is required")
	}
	if in.ClientID == uuid.Nil {
		return nil, validationError("client_id is required")
	}
	serviceType := strings.TrimSpace(in.ServiceType)
	if serviceType == "" {
		return nil, validationError("service_type is required")
	}
	if in.StartTime.IsZero() {
		return nil, validationError("start_time is required")
	}

	duration := DefaultDuration(serviceType)
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return nil, validationError("duration must be a positive number of minutes")
		}
		duration = *in.DurationMinutes
	}

	appt := &models.Appointment{
		TailorID:        tailorID,
		ClientID:        in.ClientID,
		ServiceType:     serviceType,
		StartTime:       in.StartTime,
		DurationMinutes: duration,
		Status:          models.AppointmentScheduled,
		Notes:           in.Notes,
	}

	err := s.store.InTransaction(func(tx AppointmentStore) error {
		free, err := slotFree(tx, tailorID, appt.StartTime, duration, nil)
		if err != nil {
			return err
		}
		if !free {
			return ErrConflict
		}
		if err := tx.Create(appt); err != nil {
			return storeFailure(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *AppointmentService) Update(tailorID, id uuid.UUID, in UpdateAppointmentInput) (*models.Appointment, error) {
	if tailorID == uuid.Nil {
		return nil, validationError("tailor_id is required")
	}
	if id == uuid.Nil {
		return nil, validationError("appointment_id is required")
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return nil, validationError("duration must be a positive number of minutes")
	}
	if in.Status != nil && !validStatus(*in.Status) {
		return nil, validationError("invalid status")
	}

	var updated *models.Appointment
	err := s.store.InTransaction(func(tx AppointmentStore) error {
		appt, err := tx.GetByID(tailorID, id)
		if err != nil {
			return getFailure(err)
		}

		timingChanged := false
		if in.StartTime != nil && !in.StartTime.Equal(appt.StartTime) {
			appt.StartTime = *in.StartTime
			timingChanged = true
		}
		if in.DurationMinutes != nil && *in.DurationMinutes != appt.DurationMinutes {
			appt.DurationMinutes = *in.DurationMinutes
			timingChanged = true
		}
		if in.ClientID != nil {
			appt.ClientID = *in.ClientID
		}
		if in.ServiceType != nil {
			appt.ServiceType = *in.ServiceType
		}
		if in.Status != nil {
			appt.Status = *in.Status
		}
		if in.Notes != nil {
			appt.Notes = *in.Notes
		}

		if timingChanged && appt.Active() {
			free, err := slotFree(tx, tailorID, appt.StartTime, appt.DurationMinutes, &appt.ID)
			if err != nil {
				return err
			}
			if !free {
				return ErrConflict
			}
		}

		if err := tx.Save(appt); err != nil {
			return storeFailure(err)
		}
		updated = appt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel flips the appointment to cancelled. Cancelling an already
// cancelled appointment succeeds and only refreshes UpdatedAt; the
// status is overwritten unconditionally.
func (s *AppointmentService) Cancel(tailorID, id uuid.UUID) (*models.Appointment, error) {
	if tailorID == uuid.Nil {
		return nil, validationError("tailor_id is required")
	}
	if id == uuid.Nil {
		return nil, validationError("appointment_id is required")
	}

	appt, err := s.store.GetByID(tailorID, id)
	if err != nil {
		return nil, getFailure(err)
	}

	appt.Status = models.AppointmentCancelled
	if err := s.store.Save(appt); err != nil {
		return nil, storeFailure(err)
	}
	return appt, nil
}

func (s *AppointmentService) List(tailorID uuid.UUID, filter AppointmentFilter) ([]models.Appointment, error) {
	if tailorID == uuid.Nil {
		return nil, validationError("tailor_id is required")
	}
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, validationError("invalid status")
	}

	appts, err := s.store.ListByTailor(tailorID, filter)
	if err != nil {
		return nil, storeFailure(err)
	}
	return appts, nil
}

func (s *AppointmentService) Get(tailorID, id uuid.UUID) (*models.Appointment, error) {
	if tailorID == uuid.Nil {
		return nil, validationError("tailor_id is required")
	}
	if id == uuid.Nil {
		return nil, validationError("appointment_id is required")
	}

	appt, err := s.store.GetByID(tailorID, id)
	if err != nil {
		return nil, getFailure(err)
	}
	return appt, nil
}

// IsSlotAvailable reports whether [start, start+duration) is free of
// active appointments for the tailor. excludeID skips the appointment
// being rescheduled so it does not conflict with itself.
func (s *AppointmentService) IsSlotAvailable(tailorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (bool, error) {
	if tailorID == uuid.Nil {
		return false, validationError("tailor_id is required")
	}
	if start.IsZero() {
		return false, validationError("start_time is required")
	}
	if durationMinutes <= 0 {
		return false, validationError("duration must be a positive number of minutes")
	}
	return slotFree(s.store, tailorID, start, durationMinutes, excludeID)
}

// CheckSlot is IsSlotAvailable with the duration defaulted from the
// service type.
func (s *AppointmentService) CheckSlot(tailorID uuid.UUID, start time.Time, serviceType string) (bool, error) {
	return s.IsSlotAvailable(tailorID, start, DefaultDuration(serviceType), nil)
}

// AvailableSlots enumerates free slots within the tailor's working
// hours on the given day, for a booking of the service type's default
// duration. Recomputed fresh on every call.
func (s *AppointmentService) AvailableSlots(tailorID uuid.UUID, day time.Time, serviceType string) ([]Slot, error) {
	if tailorID == uuid.Nil {
		return nil, validationError("tailor_id is required")
	}
	if day.IsZero() {
		return nil, validationError("date is required")
	}

	hours, err := s.tailors.WorkingHours(tailorID)
	if err != nil {
		return nil, getFailure(err)
	}

	dayStart, dayEnd, closed, err := dayWindow(hours, day)
	if err != nil {
		return nil, err
	}
	if closed {
		return []Slot{}, nil
	}

	booked, err := s.store.ActiveBetween(tailorID, dayStart, dayEnd, nil)
	if err != nil {
		return nil, storeFailure(err)
	}

	duration := time.Duration(DefaultDuration(serviceType)) * time.Minute
	step := SlotStepMinutes * time.Minute
	slots := GenerateSlots(dayStart, dayEnd, step, duration, bookedIntervals(booked))
	if slots == nil {
		slots = []Slot{}
	}
	return slots, nil
}

// slotFree loads the tailor's active appointments that could intersect
// the candidate interval and runs the half-open overlap test against
// each of them.
func slotFree(store AppointmentStore, tailorID uuid.UUID, start time.Time, durationMinutes int, excludeID *uuid.UUID) (bool, error) {
	candidate := Interval{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}

	booked, err := store.ActiveBetween(tailorID, candidate.Start, candidate.End, excludeID)
	if err != nil {
		return false, storeFailure(err)
	}

	for i := range booked {
		existing := Interval{Start: booked[i].StartTime, End: booked[i].EndTime()}
		if candidate.Overlaps(existing) {
			return false, nil
		}
	}
	return true, nil
}

// dayWindow resolves the tailor's working hours for the day's weekday,
// falling back to the 09:00-18:00 default when unset or malformed.
func dayWindow(hours models.JSONB, day time.Time) (start, end time.Time, closed bool, err error) {
	open, close := DefaultDayOpen, DefaultDayClose

	key := strings.ToLower(day.Weekday().String())
	if raw, ok := hours[key]; ok {
		if entry, ok := raw.(map[string]interface{}); ok {
			if c, ok := entry["closed"].(bool); ok && c {
				return time.Time{}, time.Time{}, true, nil
			}
			if v, ok := entry["open"].(string); ok && v != "" {
				open = v
			}
			if v, ok := entry["close"].(string); ok && v != "" {
				close = v
			}
		}
	}

	start, err = utils.ClockOnDay(day, open)
	if err != nil {
		return time.Time{}, time.Time{}, false, validationError(err.Error())
	}
	end, err = utils.ClockOnDay(day, close)
	if err != nil {
		return time.Time{}, time.Time{}, false, validationError(err.Error())
	}
	return start, end, false, nil
}

func validStatus(status string) bool {
	switch status {
	case models.AppointmentScheduled, models.AppointmentCancelled, models.AppointmentCompleted:
		return true
	}
	return false
}

func getFailure(err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return storeFailure(err)
}
