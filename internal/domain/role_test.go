package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRoleAllowsBothStoredShapes(t *testing.T) {
	role := &Role{Permissions: PermissionMap{
		"equipment": {"read": true, "update": false},
	}.ToJSONMap()}
	require.True(t, role.Allows("equipment", "read"))
	require.False(t, role.Allows("equipment", "update"))
	require.False(t, role.Allows("equipment", "delete"))
	require.False(t, role.Allows("orders", "read"))

	// After a JSONB round trip the leaves come back as map[string]any.
	raw, err := json.Marshal(role.Permissions)
	require.NoError(t, err)
	var stored datatypes.JSONMap
	require.NoError(t, json.Unmarshal(raw, &stored))

	roundTripped := &Role{Permissions: stored}
	require.True(t, roundTripped.Allows("equipment", "read"))
	require.False(t, roundTripped.Allows("equipment", "update"))

	// Typed map leaves are accepted too.
	typed := &Role{Permissions: datatypes.JSONMap{
		"equipment": map[string]bool{"read": true},
	}}
	require.True(t, typed.Allows("equipment", "read"))
	require.False(t, typed.Allows("equipment", "update"))

	var nilRole *Role
	require.False(t, nilRole.Allows("equipment", "read"))
}

func TestValidatePermissionsRegistry(t *testing.T) {
	require.NoError(t, ValidatePermissions(nil))
	require.NoError(t, ValidatePermissions(PermissionMap{
		"orders": {"read": true, "create": true},
	}))

	require.Error(t, ValidatePermissions(PermissionMap{
		"spaceships": {"read": true},
	}))
	require.Error(t, ValidatePermissions(PermissionMap{
		"orders": {"launch": true},
	}))
}

func TestPermissionMapJSONRoundTrip(t *testing.T) {
	p := TrainerPermissions()
	require.NoError(t, ValidatePermissions(p))

	got := PermissionMapFromJSON(p.ToJSONMap())
	require.Equal(t, p, got)
}

func TestSystemAndTemplateRoleNames(t *testing.T) {
	require.True(t, IsSystemRoleName(RoleSuperAdmin))
	require.True(t, IsSystemRoleName(RoleStudent))
	require.False(t, IsSystemRoleName(RoleReceptionist))
	require.False(t, IsSystemRoleName("Janitor"))

	require.True(t, IsTemplateRoleName(RoleReceptionist))
	require.True(t, IsTemplateRoleName(RoleAssistantTrainer))
	require.False(t, IsTemplateRoleName(RoleTrainer))

	require.NotNil(t, TemplatePermissions(RoleReceptionist))
	require.NotNil(t, TemplatePermissions(RoleAssistantTrainer))
	require.Nil(t, TemplatePermissions("Janitor"))
}

func TestSeededPermissionMapsAreRegistryValid(t *testing.T) {
	for name, p := range map[string]PermissionMap{
		"full":              FullPermissions(),
		"trainer":           TrainerPermissions(),
		"student":           StudentPermissions(),
		"receptionist":      ReceptionistPermissions(),
		"assistant trainer": AssistantTrainerPermissions(),
	} {
		require.NoError(t, ValidatePermissions(p), name)
	}

	// GymOwner-grade maps grant everything in the registry.
	full := FullPermissions()
	for _, resource := range PermissionResources {
		for _, action := range PermissionActions {
			require.True(t, full[resource][action], resource+"/"+action)
		}
	}
}
