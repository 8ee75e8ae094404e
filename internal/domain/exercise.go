package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exercise is a catalog entry in a gym's exercise library. EquipmentID is
// optional: bodyweight movements carry none.
type Exercise struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GymID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"gymId"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	MuscleGroup string         `gorm:"size:100" json:"muscleGroup,omitempty"`
	Difficulty  string         `gorm:"size:50" json:"difficulty,omitempty"`
	EquipmentID *uuid.UUID     `gorm:"type:uuid;index" json:"equipmentId,omitempty"`
	VideoKey    string         `gorm:"size:512" json:"-"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Exercise) TableName() string { return "exercises" }
