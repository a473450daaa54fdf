package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TailorID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string `gorm:"not null"`
	Category    string `gorm:"default:'General'"` // fabric, thread, buttons, ...
	Description string

	Quantity    float64 `gorm:"type:decimal(10,2);default:0.0"`
	Unit        string  `gorm:"type:varchar(20)"` // meters, spools, pieces
	Price       float64 `gorm:"type:decimal(10,2);default:0.0"`
	MinQuantity float64 `gorm:"type:decimal(10,2);default:0.0"`

	gorm.Model
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
