package postgres

import (
	"context"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type roleRepository struct {
	db *gorm.DB
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(role).Error)
}

func (r *roleRepository) GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role
	// Roles with a nil gym (SuperAdmin) are visible to any caller that
	// holds them; tenant roles stay tenant-filtered.
	q := r.db.WithContext(ctx)
	if gym != nil {
		q = q.Where("gym_id = ? OR gym_id IS NULL", *gym)
	}
	err := q.First(&role, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, gym *uuid.UUID, name string) (*domain.Role, error) {
	var role domain.Role
	q := r.db.WithContext(ctx).Where("name = ?", name)
	if gym != nil {
		q = q.Where("gym_id = ?", *gym)
	} else {
		q = q.Where("gym_id IS NULL")
	}
	err := q.First(&role).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepository) ListByGym(ctx context.Context, gym uuid.UUID) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).Where("gym_id = ?", gym).Order("name").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	res := r.db.WithContext(ctx).Model(&domain.Role{}).Where("id = ?", role.ID).Updates(map[string]any{
		"name":        role.Name,
		"permissions": role.Permissions,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error {
	res := gymScoped(r.db.WithContext(ctx), gym).Delete(&domain.Role{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
