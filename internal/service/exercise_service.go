package service

import (
	"context"
	"errors"
	"time"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"
	"grindhub/gym-platform/internal/storage"

	"github.com/google/uuid"
)

type ExerciseInput struct {
	Name        string
	Description string
	MuscleGroup string
	Difficulty  string
	EquipmentID *uuid.UUID
}

type ExerciseService interface {
	Create(ctx context.Context, actor domain.Actor, input ExerciseInput) (*domain.Exercise, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Exercise, error)
	List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Exercise, int64, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input ExerciseInput) (*domain.Exercise, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	VideoUploadURL(ctx context.Context, actor domain.Actor, id uuid.UUID, contentType string) (string, error)
	VideoDownloadURL(ctx context.Context, actor domain.Actor, id uuid.UUID) (string, error)
}

type exerciseService struct {
	exercises repository.ExerciseRepository
	equipment repository.EquipmentRepository
	files     storage.FileStorage
}

func NewExerciseService(exercises repository.ExerciseRepository, equipment repository.EquipmentRepository, files storage.FileStorage) ExerciseService {
	return &exerciseService{exercises: exercises, equipment: equipment, files: files}
}

func (s *exerciseService) Create(ctx context.Context, actor domain.Actor, input ExerciseInput) (*domain.Exercise, error) {
	if actor.GymID == nil {
		return nil, validationError("exercises must belong to a gym")
	}
	if input.Name == "" {
		return nil, validationError("exercise name is required")
	}
	if err := s.checkEquipmentRef(ctx, actor, input.EquipmentID); err != nil {
		return nil, err
	}

	ex := &domain.Exercise{
		ID:          uuid.New(),
		GymID:       *actor.GymID,
		Name:        input.Name,
		Description: input.Description,
		MuscleGroup: input.MuscleGroup,
		Difficulty:  input.Difficulty,
		EquipmentID: input.EquipmentID,
	}
	if err := s.exercises.Create(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

// checkEquipmentRef verifies a referenced machine exists in the caller's
// gym. Cross-gym references surface as validation failures.
func (s *exerciseService) checkEquipmentRef(ctx context.Context, actor domain.Actor, equipmentID *uuid.UUID) error {
	if equipmentID == nil {
		return nil
	}
	_, err := s.equipment.GetByID(ctx, actor.TenantScope(), *equipmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return validationError("equipment not found in this gym")
		}
		return err
	}
	return nil
}

func (s *exerciseService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Exercise, error) {
	ex, err := s.exercises.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ex, nil
}

func (s *exerciseService) List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Exercise, int64, error) {
	return s.exercises.List(ctx, actor.TenantScope(), page, limit)
}

func (s *exerciseService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input ExerciseInput) (*domain.Exercise, error) {
	ex, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		ex.Name = input.Name
	}
	if input.Description != "" {
		ex.Description = input.Description
	}
	if input.MuscleGroup != "" {
		ex.MuscleGroup = input.MuscleGroup
	}
	if input.Difficulty != "" {
		ex.Difficulty = input.Difficulty
	}
	if input.EquipmentID != nil {
		if err := s.checkEquipmentRef(ctx, actor, input.EquipmentID); err != nil {
			return nil, err
		}
		ex.EquipmentID = input.EquipmentID
	}
	if err := s.exercises.Update(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *exerciseService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := s.exercises.SoftDelete(ctx, actor.TenantScope(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *exerciseService) VideoUploadURL(ctx context.Context, actor domain.Actor, id uuid.UUID, contentType string) (string, error) {
	if contentType == "" {
		return "", validationError("content type is required")
	}
	ex, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}

	key := storage.ExerciseVideoKey(ex.GymID, ex.ID)
	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, 15*time.Minute)
	if err != nil {
		return "", err
	}
	if ex.VideoKey != key {
		ex.VideoKey = key
		if err := s.exercises.Update(ctx, ex); err != nil {
			return "", err
		}
	}
	return url, nil
}

func (s *exerciseService) VideoDownloadURL(ctx context.Context, actor domain.Actor, id uuid.UUID) (string, error) {
	ex, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}
	if ex.VideoKey == "" {
		return "", ErrNotFound
	}
	return s.files.GeneratePresignedDownloadURL(ctx, ex.VideoKey, 0)
}
