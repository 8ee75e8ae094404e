package postgres

import (
	"context"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type programRepository struct {
	db *gorm.DB
}

func (r *programRepository) Create(ctx context.Context, p *domain.WorkoutProgram) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *programRepository) GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.WorkoutProgram, error) {
	var p domain.WorkoutProgram
	err := gymScoped(r.db.WithContext(ctx), gym).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *programRepository) List(ctx context.Context, gym *uuid.UUID, page, limit int) ([]domain.WorkoutProgram, int64, error) {
	var items []domain.WorkoutProgram
	var total int64

	q := gymScoped(r.db.WithContext(ctx).Model(&domain.WorkoutProgram{}), gym)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q.Order("created_at DESC"), page, limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *programRepository) Update(ctx context.Context, p *domain.WorkoutProgram) error {
	res := r.db.WithContext(ctx).Model(&domain.WorkoutProgram{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":           p.Name,
		"description":    p.Description,
		"assigned_to_id": p.AssignedToID,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *programRepository) SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error {
	res := gymScoped(r.db.WithContext(ctx), gym).Delete(&domain.WorkoutProgram{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// --- entries ---

func (r *programRepository) CreateEntry(ctx context.Context, e *domain.ProgramExercise) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(e).Error)
}

func (r *programRepository) GetEntry(ctx context.Context, programID, entryID uuid.UUID) (*domain.ProgramExercise, error) {
	var e domain.ProgramExercise
	err := r.db.WithContext(ctx).
		Where("program_id = ?", programID).
		First(&e, "id = ?", entryID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *programRepository) GetEntryByExercise(ctx context.Context, programID, exerciseID uuid.UUID) (*domain.ProgramExercise, error) {
	var e domain.ProgramExercise
	err := r.db.WithContext(ctx).
		Where("program_id = ? AND exercise_id = ?", programID, exerciseID).
		First(&e).Error
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *programRepository) ListEntries(ctx context.Context, programID uuid.UUID) ([]domain.ProgramExercise, error) {
	var entries []domain.ProgramExercise
	err := r.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Order("order_index").
		Find(&entries).Error
	return entries, err
}

func (r *programRepository) UpdateEntry(ctx context.Context, e *domain.ProgramExercise) error {
	res := r.db.WithContext(ctx).Model(&domain.ProgramExercise{}).Where("id = ?", e.ID).Updates(map[string]any{
		"exercise_id":       e.ExerciseID,
		"order_index":       e.OrderIndex,
		"sets":              e.Sets,
		"reps":              e.Reps,
		"rest_time_seconds": e.RestTimeSeconds,
		"notes":             e.Notes,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *programRepository) SoftDeleteEntry(ctx context.Context, programID, entryID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Delete(&domain.ProgramExercise{}, "id = ?", entryID)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *programRepository) ShiftEntries(ctx context.Context, programID uuid.UUID, from, to, delta int) error {
	q := r.db.WithContext(ctx).Model(&domain.ProgramExercise{}).
		Where("program_id = ? AND order_index >= ?", programID, from)
	if to >= 0 {
		q = q.Where("order_index <= ?", to)
	}
	return translate(q.UpdateColumn("order_index", gorm.Expr("order_index + ?", delta)).Error)
}

func (r *programRepository) SetEntryIndexes(ctx context.Context, programID uuid.UUID, indexes map[uuid.UUID]int) error {
	for id, idx := range indexes {
		res := r.db.WithContext(ctx).Model(&domain.ProgramExercise{}).
			Where("program_id = ? AND id = ?", programID, id).
			UpdateColumn("order_index", idx)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
	}
	return nil
}
