package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderPending    = "pending"
	OrderInProgress = "in-progress"
	OrderReady      = "ready"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

type Order struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TailorID uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`

	Service     string  `gorm:"not null"` // e.g. suit, dress, alteration
	Description string
	Amount      float64 `gorm:"type:decimal(10,2);not null"`

	Status    string    `gorm:"type:varchar(20);default:'pending'"`
	OrderDate time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	DueDate   *time.Time
	Notes     string

	gorm.Model
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
