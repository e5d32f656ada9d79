// Package member provides the persistence operations behind the members pages.
package member

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orgdesk/orgdesk/internal/db/models"
	"github.com/orgdesk/orgdesk/internal/quota"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNoSubscription is returned when the merchant has no active subscription.
	ErrNoSubscription = errors.New("merchant has no active subscription")
	// ErrLimitReached is returned when the plan limit for members is used up.
	ErrLimitReached = errors.New("member limit reached")
)

// List returns the merchant's members ordered by last and first name.
func List(ctx context.Context, db *gorm.DB, merchantID uint) ([]models.Member, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var members []models.Member
	err := db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("last_name, first_name").
		Find(&members).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list members")
	}

	return members, nil
}

// Create inserts the member and bumps the members usage of the merchant's
// subscription in one transaction. The stored limit is re-checked under a
// row lock so concurrent creates cannot exceed it.
func Create(ctx context.Context, db *gorm.DB, m *models.Member) error {
	if db == nil {
		return ErrDBNil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub models.Subscription
		err := tx.Where("merchant_id = ? AND active = ?", m.MerchantID, true).First(&sub).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSubscription
		}
		if err != nil {
			return pkgerrors.Wrap(err, "read subscription")
		}

		usage := models.SubscriptionQuota{SubscriptionID: sub.ID, Kind: string(quota.Members)}
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&usage).
			FirstOrCreate(&usage).Error
		if err != nil {
			return pkgerrors.Wrap(err, "read member usage")
		}

		if usage.Limit != nil && usage.Usage >= *usage.Limit {
			return ErrLimitReached
		}

		if err := tx.Create(m).Error; err != nil {
			return pkgerrors.Wrap(err, "insert member")
		}

		err = tx.Model(&models.SubscriptionQuota{}).
			Where("subscription_id = ? AND kind = ?", sub.ID, usage.Kind).
			UpdateColumn("used", gorm.Expr("used + ?", 1)).Error

		return pkgerrors.Wrap(err, "bump member usage")
	})
}
