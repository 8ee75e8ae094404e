package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	MatchActive MatchStatus = "active"
	MatchEnded  MatchStatus = "ended"
)

// TrainerMatch links a trainer to a student within a gym. The (trainer,
// student) pair is unique: re-matching a previously ended pair reactivates
// the existing row instead of creating a second one.
type TrainerMatch struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GymID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"gymId"`
	TrainerID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_trainer_student" json:"trainerId"`
	StudentID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_trainer_student" json:"studentId"`
	Status    MatchStatus    `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TrainerMatch) TableName() string { return "trainer_matches" }
