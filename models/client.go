package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TailorID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name    string `gorm:"not null"`
	Email   string
	Phone   string
	Address string

	// Body measurements and styling preferences, free-form per tailor
	Measurements JSONB `gorm:"type:jsonb;default:'{}'"`
	Preferences  JSONB `gorm:"type:jsonb;default:'{}'"`
	Notes        string

	IsActive bool `gorm:"default:true"`

	Orders       []Order       `gorm:"foreignKey:ClientID"`
	Appointments []Appointment `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
