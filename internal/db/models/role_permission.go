package models

// RolePermission is a normalized grant: it maps a role to a permission definition.
// When a role or a permission is deleted, its grants are removed (CASCADE).
type RolePermission struct {
	// RoleID is the ID of the role in this mapping.
	RoleID uint `gorm:"primaryKey;column:role_id"`
	// PermissionID is the ID of the permission definition in this mapping.
	PermissionID string `gorm:"primaryKey;column:permission_id;size:36"`
	// Permission is the referenced definition (loaded via foreign key).
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the RolePermission model.
func (RolePermission) TableName() string {
	return "role_permissions"
}
