package postgres

import (
	"context"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type exerciseRepository struct {
	db *gorm.DB
}

func (r *exerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(ex).Error)
}

func (r *exerciseRepository) GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Exercise, error) {
	var ex domain.Exercise
	err := gymScoped(r.db.WithContext(ctx), gym).First(&ex, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ex, nil
}

func (r *exerciseRepository) List(ctx context.Context, gym *uuid.UUID, page, limit int) ([]domain.Exercise, int64, error) {
	var items []domain.Exercise
	var total int64

	q := gymScoped(r.db.WithContext(ctx).Model(&domain.Exercise{}), gym)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q.Order("name"), page, limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *exerciseRepository) Update(ctx context.Context, ex *domain.Exercise) error {
	res := r.db.WithContext(ctx).Model(&domain.Exercise{}).Where("id = ?", ex.ID).Updates(map[string]any{
		"name":         ex.Name,
		"description":  ex.Description,
		"muscle_group": ex.MuscleGroup,
		"difficulty":   ex.Difficulty,
		"equipment_id": ex.EquipmentID,
		"video_key":    ex.VideoKey,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exerciseRepository) SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error {
	res := gymScoped(r.db.WithContext(ctx), gym).Delete(&domain.Exercise{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
