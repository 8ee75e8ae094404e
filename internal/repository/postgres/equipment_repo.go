package postgres

import (
	"context"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type equipmentRepository struct {
	db *gorm.DB
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	if eq.ID == uuid.Nil {
		eq.ID = uuid.New()
	}
	if eq.QRCodeID == uuid.Nil {
		eq.QRCodeID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(eq).Error)
}

func (r *equipmentRepository) GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Equipment, error) {
	var eq domain.Equipment
	err := gymScoped(r.db.WithContext(ctx), gym).First(&eq, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &eq, nil
}

func (r *equipmentRepository) GetByQRCodeID(ctx context.Context, gym *uuid.UUID, qrCodeID uuid.UUID) (*domain.Equipment, error) {
	var eq domain.Equipment
	err := gymScoped(r.db.WithContext(ctx), gym).First(&eq, "qr_code_id = ?", qrCodeID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &eq, nil
}

func (r *equipmentRepository) List(ctx context.Context, gym *uuid.UUID, page, limit int) ([]domain.Equipment, int64, error) {
	var items []domain.Equipment
	var total int64

	q := gymScoped(r.db.WithContext(ctx).Model(&domain.Equipment{}), gym)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q.Order("name"), page, limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	res := r.db.WithContext(ctx).Model(&domain.Equipment{}).Where("id = ?", eq.ID).Updates(map[string]any{
		"name":        eq.Name,
		"description": eq.Description,
		"status":      eq.Status,
		"photo_key":   eq.PhotoKey,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error {
	res := gymScoped(r.db.WithContext(ctx), gym).Delete(&domain.Equipment{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
