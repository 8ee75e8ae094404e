package service

import (
	"context"
	"testing"

	"grindhub/gym-platform/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRoleSetup(t *testing.T) (*testStore, RoleService, domain.Actor) {
	t.Helper()
	store := newTestStore()
	gymID := uuid.New()
	owner := seedGymMember(store, gymID, domain.RoleGymOwner)
	svc := NewRoleService(store.roles, store.users)
	return store, svc, owner
}

func TestRoleCreateValidatesAgainstRegistry(t *testing.T) {
	_, svc, owner := newRoleSetup(t)
	gymID := *owner.GymID

	role, err := svc.Create(context.Background(), owner, gymID, "Night Manager", "closes up", domain.PermissionMap{
		"equipment": {"read": true, "update": true},
		"orders":    {"read": true},
	})
	require.NoError(t, err)
	require.False(t, role.IsSystem)
	require.True(t, role.Allows("equipment", "update"))
	require.False(t, role.Allows("equipment", "delete"))
	require.False(t, role.Allows("programs", "read"))

	// Unknown resources and actions are rejected outright.
	_, err = svc.Create(context.Background(), owner, gymID, "Bad", "", domain.PermissionMap{
		"spaceships": {"read": true},
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), owner, gymID, "Bad", "", domain.PermissionMap{
		"equipment": {"launch": true},
	})
	require.ErrorIs(t, err, ErrValidation)

	// System role names are reserved.
	_, err = svc.Create(context.Background(), owner, gymID, domain.RoleTrainer, "", nil)
	require.ErrorIs(t, err, ErrConflict)
}

func TestRoleSystemRolesProtected(t *testing.T) {
	store, svc, owner := newRoleSetup(t)

	system := &domain.Role{
		ID:          uuid.New(),
		GymID:       owner.GymID,
		Name:        domain.RoleTrainer,
		IsSystem:    true,
		Permissions: domain.TrainerPermissions().ToJSONMap(),
	}
	store.roles.add(system)

	_, err := svc.Update(context.Background(), owner, system.ID, "Renamed", "", nil)
	require.ErrorIs(t, err, ErrSystemRole)

	err = svc.Delete(context.Background(), owner, system.ID)
	require.ErrorIs(t, err, ErrSystemRole)
}

func TestRoleDeleteBlockedWhileInUse(t *testing.T) {
	store, svc, owner := newRoleSetup(t)
	gymID := *owner.GymID

	role, err := svc.Create(context.Background(), owner, gymID, "Night Manager", "", nil)
	require.NoError(t, err)

	user := &domain.User{ID: uuid.New(), GymID: &gymID, RoleID: role.ID, Email: "nm@example.com"}
	store.users.add(user)

	err = svc.Delete(context.Background(), owner, role.ID)
	require.ErrorIs(t, err, ErrRoleInUse)

	store.users.SoftDelete(context.Background(), nil, user.ID)
	require.NoError(t, svc.Delete(context.Background(), owner, role.ID))
}

func TestRoleInstantiateTemplate(t *testing.T) {
	_, svc, owner := newRoleSetup(t)
	gymID := *owner.GymID

	role, err := svc.InstantiateTemplate(context.Background(), owner, gymID, domain.RoleReceptionist)
	require.NoError(t, err)
	require.False(t, role.IsSystem)
	require.True(t, role.Allows("orders", "update"))
	require.False(t, role.Allows("programs", "create"))

	// Template copies are editable like any custom role.
	_, err = svc.Update(context.Background(), owner, role.ID, "", "front desk", domain.PermissionMap{
		"orders": {"read": true},
	})
	require.NoError(t, err)

	// A second instantiation of the same template is a conflict.
	_, err = svc.InstantiateTemplate(context.Background(), owner, gymID, domain.RoleReceptionist)
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.InstantiateTemplate(context.Background(), owner, gymID, "Janitor")
	require.ErrorIs(t, err, ErrValidation)
}

func TestRoleGymScopeEnforced(t *testing.T) {
	_, svc, owner := newRoleSetup(t)

	_, err := svc.Create(context.Background(), owner, uuid.New(), "Night Manager", "", nil)
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.ListByGym(context.Background(), owner, uuid.New())
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRoleAllows(t *testing.T) {
	store, svc, owner := newRoleSetup(t)
	gymID := *owner.GymID

	student := seedGymMember(store, gymID, domain.RoleStudent)
	studentRole, err := store.roles.GetByID(context.Background(), nil, student.RoleID)
	require.NoError(t, err)
	studentRole.Permissions = domain.StudentPermissions().ToJSONMap()
	require.NoError(t, store.roles.Update(context.Background(), studentRole))

	ok, err := svc.Allows(context.Background(), student, "orders", "create")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Allows(context.Background(), student, "users", "create")
	require.NoError(t, err)
	require.False(t, ok)

	// SuperAdmin bypasses permission maps entirely.
	admin := domain.Actor{UserID: uuid.New(), RoleID: uuid.New(), Role: domain.RoleSuperAdmin}
	ok, err = svc.Allows(context.Background(), admin, "gyms", "delete")
	require.NoError(t, err)
	require.True(t, ok)
}
