package services

import (
	"errors"
	"testing"
	"time"

	"tailorly-backend/models"

	"github.com/google/uuid"
)

// fakeStore keeps appointments in a slice and lets individual tests
// override behavior through function fields.
type fakeStore struct {
	appts []models.Appointment

	activeBetweenFn func(tailorID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) ([]models.Appointment, error)
	createFn        func(appt *models.Appointment) error
	saveFn          func(appt *models.Appointment) error

	created []models.Appointment
	saved   []models.Appointment
}

func (f *fakeStore) ListByTailor(tailorID uuid.UUID, filter AppointmentFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.TailorID != tailorID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.ClientID != nil && a.ClientID != *filter.ClientID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) GetByID(tailorID, id uuid.UUID) (*models.Appointment, error) {
	for i := range f.appts {
		if f.appts[i].TailorID == tailorID && f.appts[i].ID == id {
			a := f.appts[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) ActiveBetween(tailorID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) ([]models.Appointment, error) {
	if f.activeBetweenFn != nil {
		return f.activeBetweenFn(tailorID, from, to, excludeID)
	}
	var out []models.Appointment
	for _, a := range f.appts {
		if a.TailorID != tailorID || !a.Active() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.StartTime.Before(to) && a.EndTime().After(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(appt *models.Appointment) error {
	if f.createFn != nil {
		return f.createFn(appt)
	}
	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}
	f.appts = append(f.appts, *appt)
	f.created = append(f.created, *appt)
	return nil
}

func (f *fakeStore) Save(appt *models.Appointment) error {
	if f.saveFn != nil {
		return f.saveFn(appt)
	}
	for i := range f.appts {
		if f.appts[i].ID == appt.ID {
			f.appts[i] = *appt
		}
	}
	f.saved = append(f.saved, *appt)
	return nil
}

func (f *fakeStore) InTransaction(fn func(AppointmentStore) error) error {
	return fn(f)
}

type fakeDirectory struct {
	hours models.JSONB
	err   error
}

func (d *fakeDirectory) WorkingHours(tailorID uuid.UUID) (models.JSONB, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.hours, nil
}

func scheduled(tailorID uuid.UUID, start time.Time, minutes int) models.Appointment {
	return models.Appointment{
		ID:              uuid.New(),
		TailorID:        tailorID,
		ClientID:        uuid.New(),
		ServiceType:     models.ServiceFitting,
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          models.AppointmentScheduled,
	}
}

func intPtr(v int) *int              { return &v }
func strPtr(v string) *string        { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestCreate_Valid(t *testing.T) {
	tailorID := uuid.New()
	store := &fakeStore{}
	svc := NewAppointmentService(store, &fakeDirectory{})

	appt, err := svc.Create(tailorID, CreateAppointmentInput{
		ClientID:    uuid.New(),
		ServiceType: models.ServiceMeasurement,
		StartTime:   at(10, 0),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if appt.DurationMinutes != 60 {
		t.Fatalf("duration = %d, want the measurement default 60", appt.DurationMinutes)
	}
	if appt.Status != models.AppointmentScheduled {
		t.Fatalf("status = %q, want scheduled", appt.Status)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one write, got %d", len(store.created))
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	tailorID := uuid.New()
	clientID := uuid.New()

	cases := []struct {
		name  string
		input CreateAppointmentInput
	}{
		{"missing client", CreateAppointmentInput{ServiceType: "fitting", StartTime: at(10, 0)}},
		{"missing service type", CreateAppointmentInput{ClientID: clientID, StartTime: at(10, 0)}},
		{"missing start time", CreateAppointmentInput{ClientID: clientID, ServiceType: "fitting"}},
		{"zero duration", CreateAppointmentInput{ClientID: clientID, ServiceType: "fitting", StartTime: at(10, 0), DurationMinutes: intPtr(0)}},
		{"negative duration", CreateAppointmentInput{ClientID: clientID, ServiceType: "fitting", StartTime: at(10, 0), DurationMinutes: intPtr(-30)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := NewAppointmentService(store, &fakeDirectory{})

			_, err := svc.Create(tailorID, tc.input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if len(store.created) != 0 {
				t.Fatalf("validation failure must not write")
			}
		})
	}
}

func TestCreate_ConflictWritesNothing(t *testing.T) {
	tailorID := uuid.New()
	store := &fakeStore{appts: []models.Appointment{scheduled(tailorID, at(10, 0), 60)}}
	svc := NewAppointmentService(store, &fakeDirectory{})

	_, err := svc.Create(tailorID, CreateAppointmentInput{
		ClientID:    uuid.New(),
		ServiceType: models.ServiceFitting,
		StartTime:   at(10, 30),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("conflicting create must not write")
	}
}

func TestCreate_BackToBackSucceeds(t *testing.T) {
	tailorID := uuid.New()
	store := &fakeStore{appts: []models.Appointment{scheduled(tailorID, at(10, 0), 60)}}
	svc := NewAppointmentService(store, &fakeDirectory{})

	// Starts exactly when the existing one ends
	_, err := svc.Create(tailorID, CreateAppointmentInput{
		ClientID:    uuid.New(),
		ServiceType: models.ServiceConsultation,
		StartTime:   at(11, 0),
	})
	if err != nil {
		t.Fatalf("back to back booking should succeed, got %v", err)
	}
}

func TestCreate_CancelledSlotIsFree(t *testing.T) {
	tailorID := uuid.New()
	cancelled := scheduled(tailorID, at(10, 0), 60)
	cancelled.Status = models.AppointmentCancelled
	store := &fakeStore{appts: []models.Appointment{cancelled}}
	svc := NewAppointmentService(store, &fakeDirectory{})

	_, err := svc.Create(tailorID, CreateAppointmentInput{
		ClientID:    uuid.New(),
		ServiceType: models.ServiceFitting,
		StartTime:   at(10, 0),
	})
	if err != nil {
		t.Fatalf("cancelled appointment must not block the slot, got %v", err)
	}
}

func TestCreate_StoreFailure(t *testing.T) {
	tailorID := uuid.New()
	store := &fakeStore{
		activeBetweenFn: func(uuid.UUID, time.Time, time.Time, *uuid.UUID) ([]models.Appointment, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewAppointmentService(store, &fakeDirectory{})

	_, err := svc.Create(tailorID, CreateAppointmentInput{
		ClientID:    uuid.New(),
		ServiceType: models.ServiceFitting,
		StartTime:   at(10, 0),
	})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("store failure must not read as a booking conflict")
	}
}

func TestUpdate_RescheduleExcludesSelf(t *testing.T) {
	tailorID := uuid.New()
	appt := scheduled(tailorID, at(10, 0), 60)
	store := &fakeStore{appts: []models.Appointment{appt}}
	svc := NewAppointmentService(store, &fakeDirectory{})

	// Shift by 30 minutes; the new window still overlaps the stored row,
	// which must not count against itself
	updated, err := svc.Update(tailorID, appt.ID, UpdateAppointmentInput{
		StartTime: timePtr(at(10, 30)),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.StartTime.Equal(at(10, 30)) {
		t.Fatalf("start = %s, want 10:30", updated.StartTime.Format("15:04"))
	}
}

func TestUpdate_RescheduleIntoOtherBookingConflicts(t *testing.T) {
	tailorID := uuid.New()
	appt := scheduled(tailorID, at(9, 0), 60)
	other := scheduled(tailorID, at(11, 0), 60)
	store := &fakeStore{appts: []models.Appointment{appt, other}}
	svc := NewAppointmentService(store, &fakeDirectory{})

	_, err := svc.Update(tailorID, appt.ID, UpdateAppointmentInput{
		StartTime: timePtr(at(11, 30)),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdate_NotesOnlySkipsAvailabilityCheck(t *testing.T) {
	tailorID := uuid.New()
	appt := scheduled(tailorID, at(10, 0), 60)
	store := &fakeStore{
		appts: []models.Appointment{appt},
		activeBetweenFn: func(uuid.UUID, time.Time, time.Time, *uuid.UUID) ([]models.Appointment, error) {
			return nil, errors.New("availability should not be checked")
		},
	}
	svc := NewAppointmentService(store, &fakeDirectory{})

	updated, err := svc.Update(tailorID, appt.ID, UpdateAppointmentInput{
		Notes: strPtr("bring the muslin"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Notes != "bring the muslin" {
		t.Fatalf("notes = %q", updated.Notes)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	tailorID := uuid.New()
	store := &fakeStore{}
	svc := NewAppointmentService(store, &fakeDirectory{})

	_, err := svc.Update(tailorID, uuid.New(), UpdateAppointmentInput{Notes: strPtr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_OtherTailorIsNotFound(t *testing.T) {
	owner := uuid.New()
	appt := scheduled(owner, at(10, 0), 60)
	store := &fakeStore{appts: []models.Appointment{appt}}
	svc := NewAppointmentService(store, &fakeDirectory{})

	_, err := svc.Update(uuid.New(), appt.ID, UpdateAppointmentInput{Notes: strPtr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another tailor's appointment, got %v", err)
	}
}

func TestCancel_Idempotent(t *testing.T) {
	tailorID := uuid.New()
	appt := scheduled(tailorID, at(10, 0), 60)
	store := &fakeStore{appts: []models.Appointment{appt}}
	svc := NewAppointmentService(store, &fakeDirectory{})

	first, err := svc.Cancel(tailorID, appt.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if first.Status != models.AppointmentCancelled {
		t.Fatalf("status = %q, want cancelled", first.Status)
	}

	second, err := svc.Cancel(tailorID, appt.ID)
	if err != nil {
		t.Fatalf("second Cancel: %v", err)
	}
	if second.Status != models.AppointmentCancelled {
		t.Fatalf("status = %q after second cancel", second.Status)
	}
}

func TestIsSlotAvailable(t *testing.T) {
	tailorID := uuid.New()
	appt := scheduled(tailorID, at(10, 0), 60)
	store := &fakeStore{appts: []models.Appointment{appt}}
	svc := NewAppointmentService(store, &fakeDirectory{})

	cases := []struct {
		name    string
		start   time.Time
		minutes int
		exclude *uuid.UUID
		want    bool
	}{
		{"free morning", at(8, 0), 60, nil, true},
		{"overlapping", at(10, 30), 60, nil, false},
		{"touching end", at(11, 0), 60, nil, true},
		{"self excluded", at(10, 0), 60, &appt.ID, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.IsSlotAvailable(tailorID, tc.start, tc.minutes, tc.exclude)
			if err != nil {
				t.Fatalf("IsSlotAvailable: %v", err)
			}
			if got != tc.want {
				t.Fatalf("available = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsSlotAvailable_InvalidDuration(t *testing.T) {
	svc := NewAppointmentService(&fakeStore{}, &fakeDirectory{})

	_, err := svc.IsSlotAvailable(uuid.New(), at(10, 0), 0, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCheckSlot_EmptyStore(t *testing.T) {
	svc := NewAppointmentService(&fakeStore{}, &fakeDirectory{})

	available, err := svc.CheckSlot(uuid.New(), at(10, 0), models.ServiceMeasurement)
	if err != nil {
		t.Fatalf("CheckSlot: %v", err)
	}
	if !available {
		t.Fatalf("empty store must report available")
	}
}

func TestAvailableSlots_DefaultHours(t *testing.T) {
	tailorID := uuid.New()
	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	store := &fakeStore{appts: []models.Appointment{scheduled(tailorID, noon, 60)}}
	svc := NewAppointmentService(store, &fakeDirectory{hours: models.JSONB{}})

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	slots, err := svc.AvailableSlots(tailorID, day, models.ServiceConsultation)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatalf("expected slots under default 09:00-18:00 hours")
	}
	for _, s := range slots {
		if s.Start.Hour() == 12 {
			t.Fatalf("slot at %s collides with the noon booking", s.Start.Format("15:04"))
		}
	}
}

func TestAvailableSlots_ClosedDay(t *testing.T) {
	tailorID := uuid.New()
	dir := &fakeDirectory{hours: models.JSONB{
		"sunday": map[string]interface{}{"closed": true},
	}}
	svc := NewAppointmentService(&fakeStore{}, dir)

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local)
	slots, err := svc.AvailableSlots(tailorID, sunday, models.ServiceFitting)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("closed day must return an empty list, got %v", slots)
	}
}

func TestAvailableSlots_CustomHours(t *testing.T) {
	tailorID := uuid.New()
	dir := &fakeDirectory{hours: models.JSONB{
		"tuesday": map[string]interface{}{"open": "14:00", "close": "16:00"},
	}}
	svc := NewAppointmentService(&fakeStore{}, dir)

	tuesday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	slots, err := svc.AvailableSlots(tailorID, tuesday, models.ServiceConsultation)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	// 30 minute consultations between 14:00 and 16:00 at a 30 minute step
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	if slots[0].Start.Hour() != 14 || slots[0].Start.Minute() != 0 {
		t.Fatalf("first slot = %s, want 14:00", slots[0].Start.Format("15:04"))
	}
}

func TestAvailableSlots_TailorNotFound(t *testing.T) {
	svc := NewAppointmentService(&fakeStore{}, &fakeDirectory{err: ErrNotFound})

	_, err := svc.AvailableSlots(uuid.New(), time.Now(), models.ServiceFitting)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_InvalidStatus(t *testing.T) {
	svc := NewAppointmentService(&fakeStore{}, &fakeDirectory{})

	_, err := svc.List(uuid.New(), AppointmentFilter{Status: "snoozed"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}
