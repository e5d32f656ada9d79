package models

import "time"

// Merchant is the organization account users and members belong to.
type Merchant struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255;not null"`
	Subscription *Subscription
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for the Merchant model.
func (Merchant) TableName() string {
	return "merchants"
}

// Subscription is the plan a merchant is subscribed to.
type Subscription struct {
	ID         uint   `gorm:"primaryKey"`
	MerchantID uint   `gorm:"uniqueIndex;not null"`
	Plan       string `gorm:"size:100;not null"`
	Active     bool   `gorm:"default:true"`
	Quotas     []SubscriptionQuota
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for the Subscription model.
func (Subscription) TableName() string {
	return "subscriptions"
}

// SubscriptionQuota holds usage and limit of one resource kind.
// A NULL limit means the plan does not limit the kind.
type SubscriptionQuota struct {
	SubscriptionID uint   `gorm:"primaryKey"`
	Kind           string `gorm:"primaryKey;size:50"`
	Usage          int    `gorm:"column:used;not null;default:0"`
	Limit          *int   `gorm:"column:quota_limit"`
}

// TableName specifies the database table name for the SubscriptionQuota model.
func (SubscriptionQuota) TableName() string {
	return "subscription_quotas"
}
