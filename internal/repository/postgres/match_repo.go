package postgres

import (
	"context"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type trainerMatchRepository struct {
	db *gorm.DB
}

func (r *trainerMatchRepository) Create(ctx context.Context, m *domain.TrainerMatch) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *trainerMatchRepository) GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.TrainerMatch, error) {
	var m domain.TrainerMatch
	err := gymScoped(r.db.WithContext(ctx), gym).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *trainerMatchRepository) GetByPair(ctx context.Context, gym *uuid.UUID, trainerID, studentID uuid.UUID) (*domain.TrainerMatch, error) {
	var m domain.TrainerMatch
	err := gymScoped(r.db.WithContext(ctx), gym).
		Where("trainer_id = ? AND student_id = ?", trainerID, studentID).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *trainerMatchRepository) ListByTrainer(ctx context.Context, gym *uuid.UUID, trainerID uuid.UUID) ([]domain.TrainerMatch, error) {
	var matches []domain.TrainerMatch
	err := gymScoped(r.db.WithContext(ctx), gym).
		Where("trainer_id = ?", trainerID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

func (r *trainerMatchRepository) ListByStudent(ctx context.Context, gym *uuid.UUID, studentID uuid.UUID) ([]domain.TrainerMatch, error) {
	var matches []domain.TrainerMatch
	err := gymScoped(r.db.WithContext(ctx), gym).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

func (r *trainerMatchRepository) Update(ctx context.Context, m *domain.TrainerMatch) error {
	res := r.db.WithContext(ctx).Model(&domain.TrainerMatch{}).Where("id = ?", m.ID).
		Update("status", m.Status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *trainerMatchRepository) ActiveStudentIDs(ctx context.Context, trainerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.TrainerMatch{}).
		Where("trainer_id = ? AND status = ?", trainerID, domain.MatchActive).
		Pluck("student_id", &ids).Error
	return ids, err
}
