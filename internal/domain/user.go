package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User belongs to exactly one role within their gym. GymID is nil only for
// SuperAdmin accounts, which may operate across tenants.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GymID        *uuid.UUID     `gorm:"type:uuid;index" json:"gymId,omitempty"`
	RoleID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"roleId"`
	Role         *Role          `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// Actor is the authenticated caller as carried through a request: identity,
// tenant, and role name from the token. Permission maps are looked up
// separately; the role name only drives the rules bound to specific system
// roles (student self-service, trainer scoping).
type Actor struct {
	UserID uuid.UUID
	GymID  *uuid.UUID
	RoleID uuid.UUID
	Role   string
}

func (a Actor) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }
func (a Actor) IsStudent() bool    { return a.Role == RoleStudent }
func (a Actor) IsTrainer() bool    { return a.Role == RoleTrainer }

// TenantScope returns the gym filter the actor's queries must carry.
// nil means cross-tenant (SuperAdmin only).
func (a Actor) TenantScope() *uuid.UUID {
	if a.IsSuperAdmin() {
		return nil
	}
	return a.GymID
}
