package actor

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/db/models"
	"github.com/orgdesk/orgdesk/internal/quota"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: opens a fresh database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	return db
}

func intPtr(v int) *int { return &v }

func createUser(t *testing.T, db *gorm.DB, role *models.Role, merchant *models.Merchant) *models.User {
	t.Helper()

	user := &models.User{
		Active:   true,
		Username: "alice",
		Email:    "alice@example.org",
		Password: "x",
	}
	if role != nil {
		user.RoleID = &role.ID
	}
	if merchant != nil {
		user.MerchantID = &merchant.ID
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

func TestLoad_LegacyRole(t *testing.T) {
	db := setupTestDB(t)

	role := &models.Role{
		Slug:        "manager",
		Name:        "Manager",
		Permissions: datatypes.JSON(`{"members":{"view":true,"create":"true"}}`),
	}
	require.NoError(t, db.Create(role).Error)
	user := createUser(t, db, role, nil)

	actor, err := Load(context.Background(), db, user.ID)
	require.NoError(t, err)

	require.NotNil(t, actor.Role)
	assert.IsType(t, access.LegacyPermissions{}, actor.Role.Permissions)
	assert.Equal(t, "alice", actor.Username)
	assert.True(t, access.Has(actor, "members.view"))
	assert.False(t, access.Has(actor, "members.create"), "string \"true\" is not a grant")
	assert.Nil(t, actor.Subscription())
}

func TestLoad_NormalizedRole(t *testing.T) {
	db := setupTestDB(t)

	view := &models.Permission{Category: "members", Action: "view"}
	require.NoError(t, db.Create(view).Error)
	assert.Len(t, view.ID, 36, "definitions get a uuid")

	role := &models.Role{Slug: "viewer", Name: "Viewer"}
	require.NoError(t, db.Create(role).Error)
	require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: view.ID}).Error)
	user := createUser(t, db, role, nil)

	actor, err := Load(context.Background(), db, user.ID)
	require.NoError(t, err)

	assert.IsType(t, access.NormalizedPermissions{}, actor.Role.Permissions)
	assert.True(t, access.Has(actor, "MEMBERS.VIEW"))
	assert.True(t, access.Has(actor, view.ID))
	assert.False(t, access.Has(actor, "members.create"))
}

func TestLoad_RoleWithoutGrantsIsNormalized(t *testing.T) {
	db := setupTestDB(t)

	role := &models.Role{Slug: "empty", Name: "Empty"}
	require.NoError(t, db.Create(role).Error)
	user := createUser(t, db, role, nil)

	actor, err := Load(context.Background(), db, user.ID)
	require.NoError(t, err)

	assert.Equal(t, access.NormalizedPermissions{}, actor.Role.Permissions)
	assert.False(t, access.Has(actor, "members.view"))
}

func TestLoad_SuperAdmin(t *testing.T) {
	db := setupTestDB(t)

	role := &models.Role{Slug: access.SuperAdminSlug, Name: "Super Admin", IsSystem: true}
	require.NoError(t, db.Create(role).Error)
	user := createUser(t, db, role, nil)

	actor, err := Load(context.Background(), db, user.ID)
	require.NoError(t, err)

	d := access.Resolve(actor, access.Single("anything.at_all"))
	assert.True(t, d.HasPermission)
	assert.True(t, d.IsSuperAdmin)
}

func TestLoad_Subscription(t *testing.T) {
	db := setupTestDB(t)

	merchant := &models.Merchant{Name: "Acme"}
	require.NoError(t, db.Create(merchant).Error)
	sub := &models.Subscription{
		MerchantID: merchant.ID,
		Plan:       "starter",
		Active:     true,
		Quotas: []models.SubscriptionQuota{
			{Kind: string(quota.Members), Usage: 7, Limit: intPtr(10)},
			{Kind: string(quota.Events), Usage: 3},
		},
	}
	require.NoError(t, db.Create(sub).Error)
	user := createUser(t, db, nil, merchant)

	actor, err := Load(context.Background(), db, user.ID)
	require.NoError(t, err)

	require.NotNil(t, actor.Subscription())
	id, ok := actor.MerchantID()
	assert.True(t, ok)
	assert.Equal(t, merchant.ID, id)

	members := quota.Evaluate(actor, quota.Members)
	assert.True(t, members.CanCreate)
	assert.Equal(t, 3, members.Remaining)
	assert.True(t, members.IsNearLimit)

	events := quota.Evaluate(actor, quota.Events)
	assert.True(t, events.IsUnlimited)
}

func TestLoad_InactiveSubscription(t *testing.T) {
	db := setupTestDB(t)

	merchant := &models.Merchant{Name: "Acme"}
	require.NoError(t, db.Create(merchant).Error)
	sub := &models.Subscription{MerchantID: merchant.ID, Plan: "starter", Active: true}
	require.NoError(t, db.Create(sub).Error)
	require.NoError(t, db.Model(sub).Update("active", false).Error)
	user := createUser(t, db, nil, merchant)

	actor, err := Load(context.Background(), db, user.ID)
	require.NoError(t, err)

	assert.Nil(t, actor.Subscription())
	assert.False(t, quota.Evaluate(actor, quota.Members).CanCreate)
}

func TestLoad_Errors(t *testing.T) {
	db := setupTestDB(t)

	_, err := Load(context.Background(), nil, 1)
	assert.ErrorIs(t, err, ErrDBNil)

	_, err = Load(context.Background(), db, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := createUser(t, db, nil, nil)
	require.NoError(t, db.Model(user).Update("active", false).Error)

	_, err = Load(context.Background(), db, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
