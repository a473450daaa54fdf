// services/appointment_store.go
package services

import (
	"errors"
	"time"

	"tailorly-backend/models"
	"tailorly-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppointmentFilter narrows ListByTailor results. Zero values mean
// "no filter".
type AppointmentFilter struct {
	Day      *time.Time
	Status   string
	ClientID *uuid.UUID
}

// AppointmentStore is the persistence boundary of the scheduler. All
// lookups are scoped by tailor; a store failure is returned as-is so the
// service layer can distinguish it from "no rows".
type AppointmentStore interface {
	ListByTailor(tailorID uuid.UUID, filter AppointmentFilter) ([]models.Appointment, error)
	GetByID(tailorID, id uuid.UUID) (*models.Appointment, error)
	// ActiveBetween returns non-cancelled appointments whose interval
	// intersects [from, to), optionally excluding one appointment id.
	ActiveBetween(tailorID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) ([]models.Appointment, error)
	Create(appt *models.Appointment) error
	Save(appt *models.Appointment) error
	// InTransaction runs fn against a transactional view of the store.
	// Inside the transaction, ActiveBetween locks the matched rows so a
	// concurrent create for the same tailor serializes behind it.
	InTransaction(fn func(AppointmentStore) error) error
}

type GormAppointmentStore struct {
	db      *gorm.DB
	locking bool
}

func NewAppointmentStore(db *gorm.DB) *GormAppointmentStore {
	return &GormAppointmentStore{db: db}
}

func (s *GormAppointmentStore) ListByTailor(tailorID uuid.UUID, filter AppointmentFilter) ([]models.Appointment, error) {
	query := s.db.Where("tailor_id = ?", tailorID)

	if filter.Day != nil {
		dayStart := utils.BeginningOfDay(*filter.Day)
		query = query.Where("start_time >= ? AND start_time < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}

	var appts []models.Appointment
	if err := query.Order("start_time ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *GormAppointmentStore) GetByID(tailorID, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.Where("tailor_id = ? AND id = ?", tailorID, id).First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *GormAppointmentStore) ActiveBetween(tailorID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) ([]models.Appointment, error) {
	query := s.db.
		Where("tailor_id = ?", tailorID).
		Where("status <> ?", models.AppointmentCancelled).
		Where("start_time < ? AND start_time + make_interval(mins => duration_minutes) > ?", to, from)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if s.locking {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var appts []models.Appointment
	if err := query.Order("start_time ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *GormAppointmentStore) Create(appt *models.Appointment) error {
	return s.db.Create(appt).Error
}

func (s *GormAppointmentStore) Save(appt *models.Appointment) error {
	return s.db.Save(appt).Error
}

func (s *GormAppointmentStore) InTransaction(fn func(AppointmentStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormAppointmentStore{db: tx, locking: true})
	})
}

// TailorDirectory resolves tailor settings the scheduler needs.
type TailorDirectory interface {
	WorkingHours(tailorID uuid.UUID) (models.JSONB, error)
}

type GormTailorDirectory struct {
	db *gorm.DB
}

func NewTailorDirectory(db *gorm.DB) *GormTailorDirectory {
	return &GormTailorDirectory{db: db}
}

func (d *GormTailorDirectory) WorkingHours(tailorID uuid.UUID) (models.JSONB, error) {
	var tailor models.Tailor
	err := d.db.Select("working_hours").Where("id = ?", tailorID).First(&tailor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tailor.WorkingHours, nil
}
