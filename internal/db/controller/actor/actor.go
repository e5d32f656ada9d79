// Package actor builds the access snapshot of a dashboard user from the database.
package actor

import (
	"context"
	"encoding/json"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/db/models"
)

var (
	// ErrUserNotFound is returned when no active user exists for the id.
	ErrUserNotFound = errors.New("user not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Load reads the user, its role with grants and its merchant subscription
// and returns them as an immutable actor snapshot.
func Load(ctx context.Context, db *gorm.DB, userID uint64) (*access.Actor, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	err := db.WithContext(ctx).
		Preload("Role.Grants.Permission").
		Preload("Merchant.Subscription.Quotas").
		Where("active = ? AND deleted_at IS NULL", true).
		First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, pkgerrors.Wrapf(err, "load user %d", userID)
	}

	return FromUser(&user), nil
}

// FromUser converts a user with preloaded role and merchant into an actor.
func FromUser(user *models.User) *access.Actor {
	actor := &access.Actor{
		UserID:   user.ID,
		Username: user.Username,
		Role:     roleOf(user.Role),
	}

	if user.Merchant != nil {
		actor.Merchant = &access.Merchant{
			ID:           user.Merchant.ID,
			Subscription: subscriptionOf(user.Merchant.Subscription),
		}
	}

	return actor
}

// roleOf keeps the schema the role was stored with. Roles that have junction
// grants, or no legacy matrix at all, resolve through the normalized set.
func roleOf(role *models.Role) *access.Role {
	if role == nil {
		return nil
	}

	out := &access.Role{Slug: role.Slug, Name: role.Name}

	if len(role.Grants) == 0 && role.HasLegacyPermissions() {
		var legacy access.LegacyPermissions
		if err := json.Unmarshal(role.Permissions, &legacy); err != nil {
			log.Warn().Err(err).Str("role", role.Slug).Msg("unreadable legacy permissions, role grants nothing")
			return out
		}
		out.Permissions = legacy

		return out
	}

	grants := make(access.NormalizedPermissions, 0, len(role.Grants))
	for _, g := range role.Grants {
		grants = append(grants, access.Grant(access.PermissionDefinition{
			ID:          g.Permission.ID,
			Category:    g.Permission.Category,
			Action:      g.Permission.Action,
			DisplayName: g.Permission.DisplayName,
		}))
	}
	out.Permissions = grants

	return out
}

func subscriptionOf(sub *models.Subscription) *access.Subscription {
	if sub == nil || !sub.Active {
		return nil
	}

	out := &access.Subscription{
		Usage:  make(map[string]int, len(sub.Quotas)),
		Limits: make(map[string]*int, len(sub.Quotas)),
	}
	for _, q := range sub.Quotas {
		out.Usage[q.Kind] = q.Usage
		if q.Limit != nil {
			limit := *q.Limit
			out.Limits[q.Kind] = &limit
		} else {
			out.Limits[q.Kind] = nil
		}
	}

	return out
}
