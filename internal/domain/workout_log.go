package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkoutLog is one training session against a program. EndedAt == nil
// means the session is still running; a user can have at most one such log.
type WorkoutLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GymID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"gymId"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	ProgramID uuid.UUID      `gorm:"type:uuid;not null;index" json:"programId"`
	StartedAt time.Time      `gorm:"not null" json:"startedAt"`
	EndedAt   *time.Time     `json:"endedAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorkoutLog) TableName() string { return "workout_logs" }

func (l *WorkoutLog) IsActive() bool { return l.EndedAt == nil }

// WorkoutLogEntry records one completed set. Entries are append-only while
// the parent log is active and frozen once it ends.
type WorkoutLogEntry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	WorkoutLogID uuid.UUID       `gorm:"type:uuid;not null;index" json:"workoutLogId"`
	ExerciseID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"exerciseId"`
	SetNumber    int             `gorm:"not null" json:"setNumber"`
	Reps         int             `gorm:"not null" json:"reps"`
	Weight       decimal.Decimal `gorm:"type:decimal(8,2)" json:"weight"`
	Notes        string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (WorkoutLogEntry) TableName() string { return "workout_log_entries" }
