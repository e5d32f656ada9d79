package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orgdesk/orgdesk/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, db.Create(&models.Role{Slug: "manager", Name: "Manager"}).Error)

	return db
}

func TestService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user, err := svc.CreateUser("alice", "alice@example.org", "s3cret", "manager", nil)
	require.NoError(t, err)
	require.NotNil(t, user.RoleID)

	got, err := svc.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate("alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Authenticate("bob", "s3cret")
	require.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, svc.DeactivateUser(user.ID))
	_, err = svc.Authenticate("alice", "s3cret")
	require.ErrorIs(t, err, ErrUserAccountDisabled)
}

func TestService_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.CreateUser("alice", "alice@example.org", "pw", "", nil)
	require.NoError(t, err)

	_, err = svc.CreateUser("alice", "other@example.org", "pw", "", nil)
	require.ErrorIs(t, err, ErrUserNameOrEmailExists)

	_, err = svc.CreateUser("bob", "bob@example.org", "pw", "nope", nil)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestService_ChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user, err := svc.CreateUser("alice", "alice@example.org", "old", "", nil)
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword(user.ID, "bad", "new"), ErrInvalidOldPassword)
	require.NoError(t, svc.ChangePassword(user.ID, "old", "new"))

	_, err = svc.Authenticate("alice", "new")
	require.NoError(t, err)
}
