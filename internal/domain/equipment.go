package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EquipmentStatus string

const (
	EquipmentOperational EquipmentStatus = "operational"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentBroken      EquipmentStatus = "broken"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentOperational, EquipmentMaintenance, EquipmentBroken:
		return true
	}
	return false
}

// Warning returns the member-facing caution text for non-operational
// equipment, or "" when there is nothing to warn about.
func (s EquipmentStatus) Warning() string {
	switch s {
	case EquipmentMaintenance:
		return "This equipment is under maintenance. Please check with staff before use."
	case EquipmentBroken:
		return "This equipment is out of order. Do not use."
	}
	return ""
}

// Equipment is a physical machine in a gym. QRCodeID is the payload printed
// on the machine's QR sticker; it is a separate identity from the primary
// key so stickers can be reissued without touching references.
type Equipment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	GymID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"gymId"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Status      EquipmentStatus `gorm:"size:20;not null;default:'operational'" json:"status"`
	QRCodeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"qrCodeId"`
	PhotoKey    string          `gorm:"size:512" json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Equipment) TableName() string { return "equipment" }
