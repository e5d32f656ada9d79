package models

import "time"

// Member is a person recorded by a merchant.
type Member struct {
	ID         uint64 `gorm:"primaryKey"`
	MerchantID uint   `gorm:"index;not null"`
	FirstName  string `gorm:"size:100;not null" form:"first_name" validate:"required,max=100"`
	LastName   string `gorm:"size:100;not null" form:"last_name" validate:"required,max=100"`
	Email      string `gorm:"size:255" form:"email" validate:"omitempty,email,max=255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for the Member model.
func (Member) TableName() string {
	return "members"
}

// FullName returns first and last name separated by a space.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
