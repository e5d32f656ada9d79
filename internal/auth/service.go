package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/db/models"
)

// Service handles local database authentication.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Authenticate authenticates a user against the local database.
func (s *Service) Authenticate(username, password string) (*models.User, error) {
	var user models.User

	err := s.db.Where("username = ? AND deleted_at IS NULL", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

// CreateUser creates a new active user with the role identified by roleSlug.
// An empty slug creates a user without role.
func (s *Service) CreateUser(username, email, password, roleSlug string, merchantID *uint) (*models.User, error) {
	var existingUser models.User

	err := s.db.Where("username = ? OR email = ?", username, email).First(&existingUser).Error
	if err == nil {
		return nil, ErrUserNameOrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.User{
		Active:     true,
		Username:   username,
		Email:      email,
		Password:   models.HashPassword(password),
		MerchantID: merchantID,
	}

	if roleSlug != "" {
		var role models.Role
		if err := s.db.Where("slug = ?", roleSlug).First(&role).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoleNotFound
			}

			return nil, fmt.Errorf("failed to query role: %w", err)
		}
		user.RoleID = &role.ID
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ChangePassword changes a user's password.
func (s *Service) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password":   models.HashPassword(newPassword),
			"updated_at": time.Now(),
		}).Error
}

// DeactivateUser deactivates a user account. Existing sessions stop resolving
// on the next request because the actor loader only returns active users.
func (s *Service) DeactivateUser(userID uint64) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("active", false).Error
}
