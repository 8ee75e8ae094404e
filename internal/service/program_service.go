package service

import (
	"context"
	"errors"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
)

var ErrDuplicateExercise = errors.New("exercise already present in program")

type ProgramInput struct {
	Name         string
	Description  string
	AssignedToID *uuid.UUID
}

// ProgramEntryInput describes one exercise slot. OrderIndex == nil on
// insert means append at the end; on update it means keep the position.
type ProgramEntryInput struct {
	ExerciseID      uuid.UUID
	OrderIndex      *int
	Sets            int
	Reps            int
	RestTimeSeconds int
	Notes           string
}

// ReorderItem is one assignment in a bulk reorder request.
type ReorderItem struct {
	EntryID    uuid.UUID
	OrderIndex int
}

type ProgramService interface {
	Create(ctx context.Context, actor domain.Actor, input ProgramInput) (*domain.WorkoutProgram, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.WorkoutProgram, error)
	List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.WorkoutProgram, int64, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input ProgramInput) (*domain.WorkoutProgram, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error

	ListEntries(ctx context.Context, actor domain.Actor, programID uuid.UUID) ([]domain.ProgramExercise, error)
	// AddEntry inserts an exercise at the requested position, shifting
	// later entries down, or appends when no position is given.
	AddEntry(ctx context.Context, actor domain.Actor, programID uuid.UUID, input ProgramEntryInput) (*domain.ProgramExercise, error)
	// UpdateEntry edits an entry's prescription and optionally moves it;
	// the remaining entries close ranks around the move.
	UpdateEntry(ctx context.Context, actor domain.Actor, programID, entryID uuid.UUID, input ProgramEntryInput) (*domain.ProgramExercise, error)
	// RemoveEntry deletes an entry and closes the gap it leaves.
	RemoveEntry(ctx context.Context, actor domain.Actor, programID, entryID uuid.UUID) error
	// Reorder applies a full permutation of the program's entries. The
	// request must name every live entry exactly once and assign the
	// indexes 0..N-1 exactly once; anything else is rejected outright.
	Reorder(ctx context.Context, actor domain.Actor, programID uuid.UUID, items []ReorderItem) ([]domain.ProgramExercise, error)
}

type programService struct {
	programs  repository.ProgramRepository
	exercises repository.ExerciseRepository
	uow       repository.UnitOfWork
}

func NewProgramService(programs repository.ProgramRepository, exercises repository.ExerciseRepository, uow repository.UnitOfWork) ProgramService {
	return &programService{programs: programs, exercises: exercises, uow: uow}
}

func (s *programService) Create(ctx context.Context, actor domain.Actor, input ProgramInput) (*domain.WorkoutProgram, error) {
	if actor.GymID == nil {
		return nil, validationError("programs must belong to a gym")
	}
	if input.Name == "" {
		return nil, validationError("program name is required")
	}

	p := &domain.WorkoutProgram{
		ID:           uuid.New(),
		GymID:        *actor.GymID,
		CreatedByID:  actor.UserID,
		AssignedToID: input.AssignedToID,
		Name:         input.Name,
		Description:  input.Description,
	}
	if err := s.programs.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *programService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.WorkoutProgram, error) {
	p, err := s.programs.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *programService) List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.WorkoutProgram, int64, error) {
	return s.programs.List(ctx, actor.TenantScope(), page, limit)
}

func (s *programService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input ProgramInput) (*domain.WorkoutProgram, error) {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		p.Name = input.Name
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if input.AssignedToID != nil {
		p.AssignedToID = input.AssignedToID
	}
	if err := s.programs.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *programService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := s.programs.SoftDelete(ctx, actor.TenantScope(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *programService) ListEntries(ctx context.Context, actor domain.Actor, programID uuid.UUID) ([]domain.ProgramExercise, error) {
	if _, err := s.Get(ctx, actor, programID); err != nil {
		return nil, err
	}
	return s.programs.ListEntries(ctx, programID)
}

func (s *programService) AddEntry(ctx context.Context, actor domain.Actor, programID uuid.UUID, input ProgramEntryInput) (*domain.ProgramExercise, error) {
	if _, err := s.Get(ctx, actor, programID); err != nil {
		return nil, err
	}
	if _, err := s.exercises.GetByID(ctx, actor.TenantScope(), input.ExerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if input.Sets < 0 || input.Reps < 0 || input.RestTimeSeconds < 0 {
		return nil, validationError("sets, reps and rest time cannot be negative")
	}

	var entry *domain.ProgramExercise
	err := s.uow.Execute(ctx, func(r *repository.Repositories) error {
		if _, err := r.Programs.GetEntryByExercise(ctx, programID, input.ExerciseID); err == nil {
			return ErrDuplicateExercise
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		existing, err := r.Programs.ListEntries(ctx, programID)
		if err != nil {
			return err
		}
		n := len(existing)

		// Out-of-range or missing positions append; in-range positions
		// push everything at and after them down one slot.
		index := n
		if input.OrderIndex != nil && *input.OrderIndex >= 0 && *input.OrderIndex < n {
			index = *input.OrderIndex
			if err := r.Programs.ShiftEntries(ctx, programID, index, -1, +1); err != nil {
				return err
			}
		}

		entry = &domain.ProgramExercise{
			ID:              uuid.New(),
			ProgramID:       programID,
			ExerciseID:      input.ExerciseID,
			OrderIndex:      index,
			Sets:            input.Sets,
			Reps:            input.Reps,
			RestTimeSeconds: input.RestTimeSeconds,
			Notes:           input.Notes,
		}
		return r.Programs.CreateEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *programService) UpdateEntry(ctx context.Context, actor domain.Actor, programID, entryID uuid.UUID, input ProgramEntryInput) (*domain.ProgramExercise, error) {
	if _, err := s.Get(ctx, actor, programID); err != nil {
		return nil, err
	}
	if input.Sets < 0 || input.Reps < 0 || input.RestTimeSeconds < 0 {
		return nil, validationError("sets, reps and rest time cannot be negative")
	}

	var entry *domain.ProgramExercise
	err := s.uow.Execute(ctx, func(r *repository.Repositories) error {
		var err error
		entry, err = r.Programs.GetEntry(ctx, programID, entryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if input.Sets > 0 {
			entry.Sets = input.Sets
		}
		if input.Reps > 0 {
			entry.Reps = input.Reps
		}
		if input.RestTimeSeconds > 0 {
			entry.RestTimeSeconds = input.RestTimeSeconds
		}
		if input.Notes != "" {
			entry.Notes = input.Notes
		}

		if input.OrderIndex != nil && *input.OrderIndex != entry.OrderIndex {
			existing, err := r.Programs.ListEntries(ctx, programID)
			if err != nil {
				return err
			}
			n := len(existing)

			newIndex := *input.OrderIndex
			if newIndex < 0 || newIndex >= n {
				return validationError("order index %d out of range [0,%d)", newIndex, n)
			}

			old := entry.OrderIndex
			if newIndex > old {
				// Everything the entry jumps over moves up one slot.
				if err := r.Programs.ShiftEntries(ctx, programID, old+1, newIndex, -1); err != nil {
					return err
				}
			} else {
				// Everything from the target up to the old slot moves down.
				if err := r.Programs.ShiftEntries(ctx, programID, newIndex, old-1, +1); err != nil {
					return err
				}
			}
			entry.OrderIndex = newIndex
		}

		return r.Programs.UpdateEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *programService) RemoveEntry(ctx context.Context, actor domain.Actor, programID, entryID uuid.UUID) error {
	if _, err := s.Get(ctx, actor, programID); err != nil {
		return err
	}

	return s.uow.Execute(ctx, func(r *repository.Repositories) error {
		entry, err := r.Programs.GetEntry(ctx, programID, entryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := r.Programs.SoftDeleteEntry(ctx, programID, entryID); err != nil {
			return err
		}
		// Close the gap left behind.
		return r.Programs.ShiftEntries(ctx, programID, entry.OrderIndex+1, -1, -1)
	})
}

func (s *programService) Reorder(ctx context.Context, actor domain.Actor, programID uuid.UUID, items []ReorderItem) ([]domain.ProgramExercise, error) {
	if _, err := s.Get(ctx, actor, programID); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, validationError("reorder request is empty")
	}

	var result []domain.ProgramExercise
	err := s.uow.Execute(ctx, func(r *repository.Repositories) error {
		existing, err := r.Programs.ListEntries(ctx, programID)
		if err != nil {
			return err
		}
		if len(items) != len(existing) {
			return validationError("reorder must cover all %d entries, got %d", len(existing), len(items))
		}

		live := make(map[uuid.UUID]bool, len(existing))
		for _, e := range existing {
			live[e.ID] = true
		}

		indexes := make(map[uuid.UUID]int, len(items))
		seenIndex := make([]bool, len(items))
		for _, item := range items {
			if !live[item.EntryID] {
				return ErrNotFound
			}
			if _, dup := indexes[item.EntryID]; dup {
				return validationError("entry %s listed twice", item.EntryID)
			}
			if item.OrderIndex < 0 || item.OrderIndex >= len(items) {
				return validationError("order index %d out of range [0,%d)", item.OrderIndex, len(items))
			}
			if seenIndex[item.OrderIndex] {
				return validationError("order index %d assigned twice", item.OrderIndex)
			}
			seenIndex[item.OrderIndex] = true
			indexes[item.EntryID] = item.OrderIndex
		}

		if err := r.Programs.SetEntryIndexes(ctx, programID, indexes); err != nil {
			return err
		}
		result, err = r.Programs.ListEntries(ctx, programID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
