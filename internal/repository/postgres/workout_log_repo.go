package postgres

import (
	"context"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type workoutLogRepository struct {
	db *gorm.DB
}

func (r *workoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(log).Error)
}

func (r *workoutLogRepository) GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	err := gymScoped(r.db.WithContext(ctx), gym).First(&log, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &log, nil
}

func (r *workoutLogRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ended_at IS NULL", userID).
		First(&log).Error
	if err != nil {
		return nil, translate(err)
	}
	return &log, nil
}

func (r *workoutLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.WorkoutLog, int64, error) {
	var logs []domain.WorkoutLog
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.WorkoutLog{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q.Order("started_at DESC"), page, limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *workoutLogRepository) Update(ctx context.Context, log *domain.WorkoutLog) error {
	res := r.db.WithContext(ctx).Model(&domain.WorkoutLog{}).Where("id = ?", log.ID).
		Update("ended_at", log.EndedAt)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutLogRepository) CreateEntry(ctx context.Context, entry *domain.WorkoutLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *workoutLogRepository) ListEntries(ctx context.Context, logID uuid.UUID) ([]domain.WorkoutLogEntry, error) {
	var entries []domain.WorkoutLogEntry
	err := r.db.WithContext(ctx).
		Where("workout_log_id = ?", logID).
		Order("created_at").
		Find(&entries).Error
	return entries, err
}
