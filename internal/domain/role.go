package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// System role names. These are seeded automatically and can never be
// renamed or deleted.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleGymOwner   = "GymOwner"
	RoleTrainer    = "Trainer"
	RoleStudent    = "Student"
)

// Template role names. Not seeded by default; a gym can instantiate them
// on demand and edit the copy like any custom role.
const (
	RoleReceptionist     = "Receptionist"
	RoleAssistantTrainer = "Assistant Trainer"
)

// PermissionResources is the closed registry of resources a role may be
// granted permissions on. Anything outside this list is rejected when a
// role is created or updated.
var PermissionResources = []string{
	"gyms",
	"users",
	"roles",
	"equipment",
	"exercises",
	"programs",
	"workouts",
	"products",
	"categories",
	"orders",
	"matches",
}

// PermissionActions is the closed registry of actions per resource.
var PermissionActions = []string{"read", "create", "update", "delete"}

// PermissionMap is resource -> action -> allowed. Missing keys deny.
type PermissionMap map[string]map[string]bool

// Role is a named permission set within a gym. GymID is nil only for the
// cross-tenant SuperAdmin role. Permissions is stored as JSONB.
type Role struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	GymID       *uuid.UUID        `gorm:"type:uuid;index" json:"gymId,omitempty"`
	Name        string            `gorm:"size:100;not null" json:"name"`
	Description string            `gorm:"size:255" json:"description,omitempty"`
	IsSystem    bool              `gorm:"not null;default:false" json:"isSystem"`
	Permissions datatypes.JSONMap `gorm:"type:jsonb" json:"permissions"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Role) TableName() string { return "roles" }

// Allows reports whether the role grants the action on the resource.
// The stored JSON round-trips through map[string]any, so both shapes are
// accepted.
func (r *Role) Allows(resource, action string) bool {
	if r == nil || r.Permissions == nil {
		return false
	}
	raw, ok := r.Permissions[resource]
	if !ok {
		return false
	}
	switch actions := raw.(type) {
	case map[string]any:
		allowed, ok := actions[action].(bool)
		return ok && allowed
	case map[string]bool:
		return actions[action]
	}
	return false
}

// ValidatePermissions checks a permission map against the registry.
func ValidatePermissions(p PermissionMap) error {
	for resource, actions := range p {
		if !registryContains(PermissionResources, resource) {
			return fmt.Errorf("unknown permission resource %q", resource)
		}
		for action := range actions {
			if !registryContains(PermissionActions, action) {
				return fmt.Errorf("unknown permission action %q on resource %q", action, resource)
			}
		}
	}
	return nil
}

func registryContains(registry []string, v string) bool {
	for _, item := range registry {
		if item == v {
			return true
		}
	}
	return false
}

// ToJSONMap converts a PermissionMap to the JSONB column shape.
func (p PermissionMap) ToJSONMap() datatypes.JSONMap {
	m := make(datatypes.JSONMap, len(p))
	for resource, actions := range p {
		inner := make(map[string]any, len(actions))
		for action, allowed := range actions {
			inner[action] = allowed
		}
		m[resource] = inner
	}
	return m
}

// PermissionMapFromJSON converts the JSONB column shape back to a typed
// PermissionMap, dropping anything that is not a boolean leaf.
func PermissionMapFromJSON(m datatypes.JSONMap) PermissionMap {
	p := make(PermissionMap, len(m))
	for resource, raw := range m {
		actions, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		inner := make(map[string]bool, len(actions))
		for action, v := range actions {
			if allowed, ok := v.(bool); ok {
				inner[action] = allowed
			}
		}
		p[resource] = inner
	}
	return p
}

func IsSystemRoleName(name string) bool {
	switch name {
	case RoleSuperAdmin, RoleGymOwner, RoleTrainer, RoleStudent:
		return true
	}
	return false
}

func IsTemplateRoleName(name string) bool {
	return name == RoleReceptionist || name == RoleAssistantTrainer
}

// FullPermissions grants every action on every resource (GymOwner,
// SuperAdmin).
func FullPermissions() PermissionMap {
	p := make(PermissionMap, len(PermissionResources))
	for _, resource := range PermissionResources {
		inner := make(map[string]bool, len(PermissionActions))
		for _, action := range PermissionActions {
			inner[action] = true
		}
		p[resource] = inner
	}
	return p
}

// TrainerPermissions covers program authoring, catalog access and the
// trainer's student-facing surfaces.
func TrainerPermissions() PermissionMap {
	return PermissionMap{
		"users":      {"read": true},
		"equipment":  {"read": true},
		"exercises":  {"read": true, "create": true, "update": true, "delete": true},
		"programs":   {"read": true, "create": true, "update": true, "delete": true},
		"workouts":   {"read": true, "create": true, "update": true},
		"products":   {"read": true},
		"categories": {"read": true},
		"orders":     {"read": true, "create": true, "update": true},
		"matches":    {"read": true, "create": true, "update": true},
	}
}

// StudentPermissions is the self-service subset: browse catalogs, run
// workouts, place orders.
func StudentPermissions() PermissionMap {
	return PermissionMap{
		"equipment":  {"read": true},
		"exercises":  {"read": true},
		"programs":   {"read": true},
		"workouts":   {"read": true, "create": true, "update": true},
		"products":   {"read": true},
		"categories": {"read": true},
		"orders":     {"read": true, "create": true, "delete": true},
		"matches":    {"read": true},
	}
}

// ReceptionistPermissions: front-desk work; user admin and the shop, no
// training surfaces beyond reading.
func ReceptionistPermissions() PermissionMap {
	return PermissionMap{
		"users":      {"read": true, "create": true, "update": true},
		"equipment":  {"read": true},
		"products":   {"read": true, "create": true, "update": true},
		"categories": {"read": true, "create": true, "update": true},
		"orders":     {"read": true, "create": true, "update": true, "delete": true},
	}
}

// AssistantTrainerPermissions: the trainer subset without destructive
// catalog rights.
func AssistantTrainerPermissions() PermissionMap {
	return PermissionMap{
		"users":     {"read": true},
		"equipment": {"read": true},
		"exercises": {"read": true},
		"programs":  {"read": true, "update": true},
		"workouts":  {"read": true, "create": true, "update": true},
		"matches":   {"read": true},
	}
}

// TemplatePermissions returns the permission map for a template role
// name, or nil when the name is not a template.
func TemplatePermissions(name string) PermissionMap {
	switch name {
	case RoleReceptionist:
		return ReceptionistPermissions()
	case RoleAssistantTrainer:
		return AssistantTrainerPermissions()
	}
	return nil
}
