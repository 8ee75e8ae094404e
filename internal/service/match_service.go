package service

import (
	"context"
	"errors"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
)

var ErrMatchAlreadyActive = errors.New("trainer and student are already matched")

type MatchService interface {
	// Match pairs a trainer with a student. Re-matching a previously
	// ended pair reactivates the existing row.
	Match(ctx context.Context, actor domain.Actor, trainerID, studentID uuid.UUID) (*domain.TrainerMatch, error)
	End(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.TrainerMatch, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.TrainerMatch, error)
	ListByTrainer(ctx context.Context, actor domain.Actor, trainerID uuid.UUID) ([]domain.TrainerMatch, error)
	ListByStudent(ctx context.Context, actor domain.Actor, studentID uuid.UUID) ([]domain.TrainerMatch, error)
}

type matchService struct {
	matches repository.TrainerMatchRepository
	users   repository.UserRepository
}

func NewMatchService(matches repository.TrainerMatchRepository, users repository.UserRepository) MatchService {
	return &matchService{matches: matches, users: users}
}

func (s *matchService) Match(ctx context.Context, actor domain.Actor, trainerID, studentID uuid.UUID) (*domain.TrainerMatch, error) {
	if actor.GymID == nil {
		return nil, validationError("matches must belong to a gym")
	}
	if trainerID == studentID {
		return nil, validationError("trainer and student must be different users")
	}

	trainer, err := s.users.GetByID(ctx, actor.TenantScope(), trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError("trainer not found in this gym")
		}
		return nil, err
	}
	if trainer.RoleName() != domain.RoleTrainer {
		return nil, validationError("user %s is not a trainer", trainerID)
	}

	student, err := s.users.GetByID(ctx, actor.TenantScope(), studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError("student not found in this gym")
		}
		return nil, err
	}
	if student.RoleName() != domain.RoleStudent {
		return nil, validationError("user %s is not a student", studentID)
	}

	existing, err := s.matches.GetByPair(ctx, actor.TenantScope(), trainerID, studentID)
	if err == nil {
		if existing.Status == domain.MatchActive {
			return nil, ErrMatchAlreadyActive
		}
		existing.Status = domain.MatchActive
		if err := s.matches.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	m := &domain.TrainerMatch{
		ID:        uuid.New(),
		GymID:     *actor.GymID,
		TrainerID: trainerID,
		StudentID: studentID,
		Status:    domain.MatchActive,
	}
	if err := s.matches.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrMatchAlreadyActive
		}
		return nil, err
	}
	return m, nil
}

func (s *matchService) End(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.TrainerMatch, error) {
	m, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.MatchEnded {
		return nil, conflictError("match already ended")
	}
	// Trainers end their own matches only.
	if actor.IsTrainer() && m.TrainerID != actor.UserID {
		return nil, ErrPermissionDenied
	}

	m.Status = domain.MatchEnded
	if err := s.matches.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *matchService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.TrainerMatch, error) {
	m, err := s.matches.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.IsStudent() && m.StudentID != actor.UserID {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *matchService) ListByTrainer(ctx context.Context, actor domain.Actor, trainerID uuid.UUID) ([]domain.TrainerMatch, error) {
	if actor.IsStudent() {
		return nil, ErrPermissionDenied
	}
	if actor.IsTrainer() && trainerID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	return s.matches.ListByTrainer(ctx, actor.TenantScope(), trainerID)
}

func (s *matchService) ListByStudent(ctx context.Context, actor domain.Actor, studentID uuid.UUID) ([]domain.TrainerMatch, error) {
	if actor.IsStudent() && studentID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	return s.matches.ListByStudent(ctx, actor.TenantScope(), studentID)
}
