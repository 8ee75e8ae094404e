package postgres

import (
	"context"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gymRepository struct {
	db *gorm.DB
}

func (r *gymRepository) Create(ctx context.Context, gym *domain.Gym) error {
	if gym.ID == uuid.Nil {
		gym.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(gym).Error)
}

func (r *gymRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	var gym domain.Gym
	err := r.db.WithContext(ctx).First(&gym, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &gym, nil
}

func (r *gymRepository) List(ctx context.Context, page, limit int) ([]domain.Gym, int64, error) {
	var gyms []domain.Gym
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Gym{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q.Order("created_at DESC"), page, limit).Find(&gyms).Error; err != nil {
		return nil, 0, err
	}
	return gyms, total, nil
}

func (r *gymRepository) Update(ctx context.Context, gym *domain.Gym) error {
	res := r.db.WithContext(ctx).Model(&domain.Gym{}).Where("id = ?", gym.ID).Updates(map[string]any{
		"name":          gym.Name,
		"address":       gym.Address,
		"contact_email": gym.ContactEmail,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gymRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Gym{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
