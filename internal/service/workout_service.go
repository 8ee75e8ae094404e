package service

import (
	"context"
	"errors"
	"time"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrWorkoutAlreadyActive = errors.New("an active workout session already exists")
	ErrWorkoutEnded         = errors.New("workout session has already ended")
)

type LogEntryInput struct {
	ExerciseID uuid.UUID
	SetNumber  int
	Reps       int
	Weight     decimal.Decimal
	Notes      string
}

type WorkoutService interface {
	// Start opens a training session against a program. A user can run at
	// most one session at a time.
	Start(ctx context.Context, actor domain.Actor, programID uuid.UUID) (*domain.WorkoutLog, error)
	End(ctx context.Context, actor domain.Actor, logID uuid.UUID) (*domain.WorkoutLog, error)
	// AppendEntry records one completed set on an active session.
	AppendEntry(ctx context.Context, actor domain.Actor, logID uuid.UUID, input LogEntryInput) (*domain.WorkoutLogEntry, error)
	Get(ctx context.Context, actor domain.Actor, logID uuid.UUID) (*domain.WorkoutLog, error)
	GetActive(ctx context.Context, actor domain.Actor) (*domain.WorkoutLog, error)
	ListByUser(ctx context.Context, actor domain.Actor, userID uuid.UUID, page, limit int) ([]domain.WorkoutLog, int64, error)
	ListEntries(ctx context.Context, actor domain.Actor, logID uuid.UUID) ([]domain.WorkoutLogEntry, error)
}

type workoutService struct {
	logs     repository.WorkoutLogRepository
	programs repository.ProgramRepository
	uow      repository.UnitOfWork
}

func NewWorkoutService(logs repository.WorkoutLogRepository, programs repository.ProgramRepository, uow repository.UnitOfWork) WorkoutService {
	return &workoutService{logs: logs, programs: programs, uow: uow}
}

func (s *workoutService) Start(ctx context.Context, actor domain.Actor, programID uuid.UUID) (*domain.WorkoutLog, error) {
	if actor.GymID == nil {
		return nil, validationError("workout sessions must belong to a gym")
	}
	if _, err := s.programs.GetByID(ctx, actor.TenantScope(), programID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError("program not found in this gym")
		}
		return nil, err
	}

	log := &domain.WorkoutLog{
		ID:        uuid.New(),
		GymID:     *actor.GymID,
		UserID:    actor.UserID,
		ProgramID: programID,
		StartedAt: time.Now().UTC(),
	}
	// The active-session check and the insert share a transaction, so two
	// concurrent starts cannot both slip past the check.
	err := s.uow.Execute(ctx, func(r *repository.Repositories) error {
		if _, err := r.WorkoutLogs.GetActiveByUser(ctx, actor.UserID); err == nil {
			return ErrWorkoutAlreadyActive
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return r.WorkoutLogs.Create(ctx, log)
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (s *workoutService) End(ctx context.Context, actor domain.Actor, logID uuid.UUID) (*domain.WorkoutLog, error) {
	log, err := s.getOwned(ctx, actor, logID)
	if err != nil {
		return nil, err
	}
	if !log.IsActive() {
		return nil, ErrWorkoutEnded
	}

	now := time.Now().UTC()
	log.EndedAt = &now
	if err := s.logs.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *workoutService) AppendEntry(ctx context.Context, actor domain.Actor, logID uuid.UUID, input LogEntryInput) (*domain.WorkoutLogEntry, error) {
	log, err := s.getOwned(ctx, actor, logID)
	if err != nil {
		return nil, err
	}
	if !log.IsActive() {
		return nil, ErrWorkoutEnded
	}
	if input.SetNumber <= 0 || input.Reps < 0 {
		return nil, validationError("set number must be positive and reps non-negative")
	}
	if input.Weight.IsNegative() {
		return nil, validationError("weight cannot be negative")
	}

	entry := &domain.WorkoutLogEntry{
		ID:           uuid.New(),
		WorkoutLogID: log.ID,
		ExerciseID:   input.ExerciseID,
		SetNumber:    input.SetNumber,
		Reps:         input.Reps,
		Weight:       input.Weight,
		Notes:        input.Notes,
	}
	if err := s.logs.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *workoutService) Get(ctx context.Context, actor domain.Actor, logID uuid.UUID) (*domain.WorkoutLog, error) {
	log, err := s.logs.GetByID(ctx, actor.TenantScope(), logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Students read their own history only.
	if actor.IsStudent() && log.UserID != actor.UserID {
		return nil, ErrNotFound
	}
	return log, nil
}

func (s *workoutService) GetActive(ctx context.Context, actor domain.Actor) (*domain.WorkoutLog, error) {
	log, err := s.logs.GetActiveByUser(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

func (s *workoutService) ListByUser(ctx context.Context, actor domain.Actor, userID uuid.UUID, page, limit int) ([]domain.WorkoutLog, int64, error) {
	if actor.IsStudent() && userID != actor.UserID {
		return nil, 0, ErrPermissionDenied
	}
	return s.logs.ListByUser(ctx, userID, page, limit)
}

func (s *workoutService) ListEntries(ctx context.Context, actor domain.Actor, logID uuid.UUID) ([]domain.WorkoutLogEntry, error) {
	if _, err := s.Get(ctx, actor, logID); err != nil {
		return nil, err
	}
	return s.logs.ListEntries(ctx, logID)
}

// getOwned resolves a log the actor owns; sessions are personal, so even
// staff append sets only to their own logs.
func (s *workoutService) getOwned(ctx context.Context, actor domain.Actor, logID uuid.UUID) (*domain.WorkoutLog, error) {
	log, err := s.logs.GetByID(ctx, actor.TenantScope(), logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if log.UserID != actor.UserID {
		return nil, ErrNotFound
	}
	return log, nil
}
