package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkoutProgram is an ordered sequence of exercises authored by a trainer,
// optionally assigned to a single member.
type WorkoutProgram struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GymID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"gymId"`
	CreatedByID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"createdById"`
	AssignedToID *uuid.UUID     `gorm:"type:uuid;index" json:"assignedToId,omitempty"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorkoutProgram) TableName() string { return "workout_programs" }

// ProgramExercise positions one exercise inside a program. The live
// (non-deleted) rows of a program always hold order indexes 0..N-1 with no
// gaps and no duplicates; every mutation re-establishes that before
// committing.
type ProgramExercise struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProgramID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"programId"`
	ExerciseID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"exerciseId"`
	OrderIndex      int            `gorm:"not null" json:"orderIndex"`
	Sets            int            `gorm:"not null;default:0" json:"sets"`
	Reps            int            `gorm:"not null;default:0" json:"reps"`
	RestTimeSeconds int            `gorm:"not null;default:0" json:"restTimeSeconds"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProgramExercise) TableName() string { return "program_exercises" }
