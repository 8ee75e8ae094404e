package service

import (
	"context"
	"errors"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserInput carries everything needed to provision a gym member or
// staff account.
type CreateUserInput struct {
	GymID    uuid.UUID
	RoleID   uuid.UUID
	Name     string
	Email    string
	Password string
}

type UpdateUserInput struct {
	Name     string
	Email    string
	RoleID   *uuid.UUID
	Password string
}

type UserService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.User, int64, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

func NewUserService(users repository.UserRepository, roles repository.RoleRepository) UserService {
	return &userService{users: users, roles: roles}
}

func (s *userService) Create(ctx context.Context, actor domain.Actor, input CreateUserInput) (*domain.User, error) {
	if !actor.IsSuperAdmin() && (actor.GymID == nil || *actor.GymID != input.GymID) {
		return nil, ErrPermissionDenied
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, validationError("name, email and password are required")
	}

	// The assigned role must be a role of the same gym.
	role, err := s.roles.GetByID(ctx, &input.GymID, input.RoleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError("role not found in this gym")
		}
		return nil, err
	}
	if role.Name == domain.RoleSuperAdmin {
		return nil, ErrPermissionDenied
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		ID:           uuid.New(),
		GymID:        &input.GymID,
		RoleID:       role.ID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflictError("user with this email already exists")
		}
		return nil, err
	}

	user.Role = role
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.User, error) {
	// Students only ever see themselves.
	if actor.IsStudent() && actor.UserID != id {
		return nil, ErrNotFound
	}
	user, err := s.users.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.User, int64, error) {
	if actor.IsStudent() {
		return nil, 0, ErrPermissionDenied
	}
	users, total, err := s.users.List(ctx, actor.TenantScope(), page, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, total, nil
}

func (s *userService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Students can update their own profile but never their role.
	if actor.IsStudent() {
		if actor.UserID != id {
			return nil, ErrNotFound
		}
		if input.RoleID != nil {
			return nil, ErrPermissionDenied
		}
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.RoleID != nil && *input.RoleID != user.RoleID {
		role, err := s.roles.GetByID(ctx, user.GymID, *input.RoleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, validationError("role not found in this gym")
			}
			return nil, err
		}
		if role.Name == domain.RoleSuperAdmin && !actor.IsSuperAdmin() {
			return nil, ErrPermissionDenied
		}
		user.RoleID = role.ID
		user.Role = role
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflictError("user with this email already exists")
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if actor.IsStudent() {
		return ErrPermissionDenied
	}
	if actor.UserID == id {
		return validationError("cannot delete your own account")
	}
	if err := s.users.SoftDelete(ctx, actor.TenantScope(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
