package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission is a permission definition: the smallest grantable capability.
// Definitions are referenced by normalized roles through RolePermission.
type Permission struct {
	// ID is the backend assigned identifier. New definitions get a UUID.
	ID string `gorm:"primaryKey;size:36"`
	// Category is the resource the permission applies to (e.g. "members").
	Category string `gorm:"size:100;not null;uniqueIndex:idx_permission_path"`
	// Action is the action allowed on the category (e.g. "create").
	Action string `gorm:"size:100;not null;uniqueIndex:idx_permission_path"`
	// DisplayName is shown in role editors.
	DisplayName string `gorm:"size:255"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}

// BeforeCreate assigns a UUID to definitions created without an id.
func (p *Permission) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	return nil
}

// Path returns the permission in "category.action" form.
func (p *Permission) Path() string {
	return p.Category + "." + p.Action
}
