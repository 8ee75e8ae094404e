package service

import (
	"context"
	"errors"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
)

type GymService interface {
	// Create registers a new gym and seeds its system roles (GymOwner,
	// Trainer, Student) in the same transaction.
	Create(ctx context.Context, actor domain.Actor, name, address, contactEmail string) (*domain.Gym, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Gym, error)
	List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Gym, int64, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, name, address, contactEmail string) (*domain.Gym, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type gymService struct {
	gyms repository.GymRepository
	uow  repository.UnitOfWork
}

func NewGymService(gyms repository.GymRepository, uow repository.UnitOfWork) GymService {
	return &gymService{gyms: gyms, uow: uow}
}

func (s *gymService) Create(ctx context.Context, actor domain.Actor, name, address, contactEmail string) (*domain.Gym, error) {
	if !actor.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}
	if name == "" {
		return nil, validationError("gym name is required")
	}

	gym := &domain.Gym{
		ID:           uuid.New(),
		Name:         name,
		Address:      address,
		ContactEmail: contactEmail,
	}

	err := s.uow.Execute(ctx, func(r *repository.Repositories) error {
		if err := r.Gyms.Create(ctx, gym); err != nil {
			return err
		}
		for _, seed := range seedRoles(gym.ID) {
			role := seed
			if err := r.Roles.Create(ctx, &role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return gym, nil
}

func seedRoles(gymID uuid.UUID) []domain.Role {
	return []domain.Role{
		{
			ID:          uuid.New(),
			GymID:       &gymID,
			Name:        domain.RoleGymOwner,
			Description: "Full control over the gym",
			IsSystem:    true,
			Permissions: domain.FullPermissions().ToJSONMap(),
		},
		{
			ID:          uuid.New(),
			GymID:       &gymID,
			Name:        domain.RoleTrainer,
			Description: "Program authoring and student management",
			IsSystem:    true,
			Permissions: domain.TrainerPermissions().ToJSONMap(),
		},
		{
			ID:          uuid.New(),
			GymID:       &gymID,
			Name:        domain.RoleStudent,
			Description: "Member self-service",
			IsSystem:    true,
			Permissions: domain.StudentPermissions().ToJSONMap(),
		},
	}
}

func (s *gymService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Gym, error) {
	// Non-admin callers can only see their own gym.
	if !actor.IsSuperAdmin() && (actor.GymID == nil || *actor.GymID != id) {
		return nil, ErrNotFound
	}
	gym, err := s.gyms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return gym, nil
}

func (s *gymService) List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Gym, int64, error) {
	if !actor.IsSuperAdmin() {
		if actor.GymID == nil {
			return nil, 0, ErrPermissionDenied
		}
		gym, err := s.Get(ctx, actor, *actor.GymID)
		if err != nil {
			return nil, 0, err
		}
		return []domain.Gym{*gym}, 1, nil
	}
	return s.gyms.List(ctx, page, limit)
}

func (s *gymService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, name, address, contactEmail string) (*domain.Gym, error) {
	gym, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		gym.Name = name
	}
	if address != "" {
		gym.Address = address
	}
	if contactEmail != "" {
		gym.ContactEmail = contactEmail
	}
	if err := s.gyms.Update(ctx, gym); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return gym, nil
}

func (s *gymService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsSuperAdmin() {
		return ErrPermissionDenied
	}
	if err := s.gyms.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
