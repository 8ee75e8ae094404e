package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gym is a tenant. Every other entity except SuperAdmin accounts and
// their role hangs off a gym.
type Gym struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Address      string         `gorm:"size:512" json:"address,omitempty"`
	ContactEmail string         `gorm:"size:255" json:"contactEmail,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Gym) TableName() string { return "gyms" }
