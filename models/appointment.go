package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

const (
	ServiceMeasurement  = "measurement"
	ServiceFitting      = "fitting"
	ServiceConsultation = "consultation"
	ServiceFabric       = "fabric"
)

type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TailorID uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`

	ServiceType     string    `gorm:"type:varchar(30);not null"`
	StartTime       time.Time `gorm:"index;not null"`
	DurationMinutes int       `gorm:"not null"`

	Status string `gorm:"type:varchar(20);default:'scheduled'"`
	Notes  string

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// EndTime is the exclusive end of the booked interval.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Active reports whether the appointment blocks its time slot.
// Completed appointments keep blocking their historical slot; only
// cancelled ones free it.
func (a *Appointment) Active() bool {
	return a.Status != AppointmentCancelled
}
