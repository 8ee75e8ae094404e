package service

import (
	"context"
	"errors"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSystemRole = errors.New("system roles cannot be modified or deleted")
	ErrRoleInUse  = errors.New("role is referenced by existing users")
)

type RoleService interface {
	Create(ctx context.Context, actor domain.Actor, gymID uuid.UUID, name, description string, permissions domain.PermissionMap) (*domain.Role, error)
	// InstantiateTemplate copies a template role (Receptionist, Assistant
	// Trainer) into the gym as an editable custom role.
	InstantiateTemplate(ctx context.Context, actor domain.Actor, gymID uuid.UUID, templateName string) (*domain.Role, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Role, error)
	ListByGym(ctx context.Context, actor domain.Actor, gymID uuid.UUID) ([]domain.Role, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, name, description string, permissions domain.PermissionMap) (*domain.Role, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	// Allows resolves the actor's role and checks one permission; the
	// authorization middleware calls this on every guarded route.
	Allows(ctx context.Context, actor domain.Actor, resource, action string) (bool, error)
}

type roleService struct {
	roles repository.RoleRepository
	users repository.UserRepository
}

func NewRoleService(roles repository.RoleRepository, users repository.UserRepository) RoleService {
	return &roleService{roles: roles, users: users}
}

func (s *roleService) Create(ctx context.Context, actor domain.Actor, gymID uuid.UUID, name, description string, permissions domain.PermissionMap) (*domain.Role, error) {
	if err := s.checkGymScope(actor, gymID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, validationError("role name is required")
	}
	if domain.IsSystemRoleName(name) {
		return nil, conflictError("role name %q is reserved", name)
	}
	if err := domain.ValidatePermissions(permissions); err != nil {
		return nil, validationError("%v", err)
	}

	role := &domain.Role{
		ID:          uuid.New(),
		GymID:       &gymID,
		Name:        name,
		Description: description,
		Permissions: permissions.ToJSONMap(),
	}
	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflictError("role %q already exists", name)
		}
		return nil, err
	}
	return role, nil
}

func (s *roleService) InstantiateTemplate(ctx context.Context, actor domain.Actor, gymID uuid.UUID, templateName string) (*domain.Role, error) {
	if err := s.checkGymScope(actor, gymID); err != nil {
		return nil, err
	}
	permissions := domain.TemplatePermissions(templateName)
	if permissions == nil {
		return nil, validationError("unknown role template %q", templateName)
	}
	if _, err := s.roles.GetByName(ctx, &gymID, templateName); err == nil {
		return nil, conflictError("role %q already exists", templateName)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	role := &domain.Role{
		ID:          uuid.New(),
		GymID:       &gymID,
		Name:        templateName,
		Permissions: permissions.ToJSONMap(),
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

func (s *roleService) ListByGym(ctx context.Context, actor domain.Actor, gymID uuid.UUID) ([]domain.Role, error) {
	if err := s.checkGymScope(actor, gymID); err != nil {
		return nil, err
	}
	return s.roles.ListByGym(ctx, gymID)
}

func (s *roleService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, name, description string, permissions domain.PermissionMap) (*domain.Role, error) {
	role, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if role.IsSystem {
		return nil, ErrSystemRole
	}
	if name != "" {
		if domain.IsSystemRoleName(name) {
			return nil, conflictError("role name %q is reserved", name)
		}
		role.Name = name
	}
	if description != "" {
		role.Description = description
	}
	if permissions != nil {
		if err := domain.ValidatePermissions(permissions); err != nil {
			return nil, validationError("%v", err)
		}
		role.Permissions = permissions.ToJSONMap()
	}
	if err := s.roles.Update(ctx, role); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflictError("role %q already exists", role.Name)
		}
		return nil, err
	}
	return role, nil
}

func (s *roleService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	role, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return ErrSystemRole
	}
	inUse, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrRoleInUse
	}
	return s.roles.Delete(ctx, actor.TenantScope(), id)
}

func (s *roleService) Allows(ctx context.Context, actor domain.Actor, resource, action string) (bool, error) {
	if actor.IsSuperAdmin() {
		return true, nil
	}
	role, err := s.roles.GetByID(ctx, actor.TenantScope(), actor.RoleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return role.Allows(resource, action), nil
}

func (s *roleService) checkGymScope(actor domain.Actor, gymID uuid.UUID) error {
	if actor.IsSuperAdmin() {
		return nil
	}
	if actor.GymID == nil || *actor.GymID != gymID {
		return ErrPermissionDenied
	}
	return nil
}
