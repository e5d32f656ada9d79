package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role represents a role in the role-based access control (RBAC) system.
// Roles created before the permission migration keep their grants in the
// Permissions matrix; newer roles reference permission definitions
// through RolePermission rows.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Slug is the stable identifier of the role (e.g. "super_admin", "manager").
	Slug string `gorm:"unique;size:100;not null"`
	// Name is the display name of the role.
	Name string `gorm:"size:100;not null"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255"`
	// IsSystem indicates if this is a system role that cannot be deleted.
	IsSystem bool `gorm:"default:false"`
	// Permissions is the category -> action -> bool matrix of pre-migration roles.
	// It is null for roles that use RolePermission grants.
	Permissions datatypes.JSON
	// Grants are the normalized permission references of the role.
	Grants []RolePermission `gorm:"foreignKey:RoleID"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// HasLegacyPermissions reports whether the role stores a legacy permission matrix.
func (r *Role) HasLegacyPermissions() bool {
	s := string(r.Permissions)
	return s != "" && s != "null"
}
