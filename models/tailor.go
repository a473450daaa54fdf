package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"tailorly-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tailor struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	BusinessName    string
	BusinessAddress string
	WorkingHours    JSONB `gorm:"type:jsonb;default:'{}'"`

	AppointmentReminders  bool `gorm:"default:true"`
	WhatsAppNotifications bool `gorm:"default:false"`
	SMSNotifications      bool `gorm:"default:false"`

	Clients      []Client      `gorm:"foreignKey:TailorID"`
	Orders       []Order       `gorm:"foreignKey:TailorID"`
	Appointments []Appointment `gorm:"foreignKey:TailorID"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (t *Tailor) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(t.Password)
	if err != nil {
		return err
	}
	t.Password = hashed
	return
}

// Custom JSONB type for working hours, measurements and preferences
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
