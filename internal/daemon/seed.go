package daemon

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/auth"
	"github.com/orgdesk/orgdesk/internal/db/models"
	"github.com/orgdesk/orgdesk/internal/quota"
	"github.com/orgdesk/orgdesk/internal/uniuri"
)

const (
	// AdminUsername is the name of the initial super admin account.
	AdminUsername = "admin"
	adminEmail    = "admin@localhost"

	// ManagerRoleSlug is the seeded role stored as a legacy permission matrix.
	ManagerRoleSlug = "manager"
	// ViewerRoleSlug is the seeded role stored as normalized grants.
	ViewerRoleSlug = "viewer"

	defaultMerchantName = "Default Organization"
	defaultPlan         = "starter"
)

// managerMatrix is stored in the pre-migration schema.
var managerMatrix = access.LegacyPermissions{
	"dashboard":    {"view": true},
	"members":      {"view": true, "create": true, "edit": true, "delete": false, "export": true},
	"branches":     {"view": true, "create": true},
	"departments":  {"view": true, "create": true},
	"events":       {"view": true, "create": true, "edit": true},
	"donations":    {"view": true},
	"subscription": {"view": true},
}

var viewerPermissions = []string{
	access.PermDashboardView,
	access.PermMembersView,
	access.PermEventsView,
	access.PermDonationsView,
}

// starterLimits are the plan limits of the seeded subscription. Nil is unlimited.
var starterLimits = map[quota.ResourceKind]*int{
	quota.Members:     intPtr(100),
	quota.Branches:    intPtr(3),
	quota.Departments: intPtr(10),
	quota.Events:      nil,
	quota.Donations:   nil,
}

// Seed creates the permission catalog, the built-in roles, a default merchant
// and the initial admin account. Existing rows are left untouched.
func Seed(db *gorm.DB) error {
	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := seedPermissions(tx); err != nil {
			return err
		}

		if err := seedRoles(tx); err != nil {
			return err
		}

		_, err := seedMerchant(tx)

		return err
	}); err != nil {
		return err //nolint:wrapcheck
	}

	return seedAdmin(db)
}

func seedPermissions(tx *gorm.DB) error {
	title := cases.Title(language.English)

	for _, path := range access.Catalog() {
		category, action, _ := strings.Cut(path, ".")

		perm := models.Permission{
			Category:    category,
			Action:      action,
			DisplayName: title.String(action) + " " + title.String(category),
		}

		if err := tx.Where(models.Permission{Category: category, Action: action}).
			FirstOrCreate(&perm).Error; err != nil {
			return errors.Wrapf(err, "failed to seed permission %s", path)
		}
	}

	return nil
}

func seedRoles(tx *gorm.DB) error {
	matrix, err := json.Marshal(managerMatrix)
	if err != nil {
		return errors.Wrap(err, "failed to encode manager permissions")
	}

	roles := []models.Role{
		{
			Slug:        access.SuperAdminSlug,
			Name:        "Super Admin",
			Description: "Full access to every area",
			IsSystem:    true,
		},
		{
			Slug:        ManagerRoleSlug,
			Name:        "Manager",
			Description: "Manages members, branches and events",
			IsSystem:    true,
			Permissions: datatypes.JSON(matrix),
		},
		{
			Slug:        ViewerRoleSlug,
			Name:        "Viewer",
			Description: "Read-only access",
			IsSystem:    true,
		},
	}

	for i := range roles {
		if err := tx.Where(models.Role{Slug: roles[i].Slug}).
			Attrs(roles[i]).
			FirstOrCreate(&roles[i]).Error; err != nil {
			return errors.Wrapf(err, "failed to seed role %s", roles[i].Slug)
		}
	}

	viewer := roles[2]

	var perms []models.Permission
	for _, path := range viewerPermissions {
		category, action, _ := strings.Cut(path, ".")

		var perm models.Permission
		if err := tx.Where("category = ? AND action = ?", category, action).First(&perm).Error; err != nil {
			return errors.Wrapf(err, "failed to find permission %s", path)
		}

		perms = append(perms, perm)
	}

	grants := make([]models.RolePermission, 0, len(perms))
	for _, perm := range perms {
		grants = append(grants, models.RolePermission{RoleID: viewer.ID, PermissionID: perm.ID})
	}

	err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&grants).Error

	return errors.Wrap(err, "failed to seed viewer grants")
}

func seedMerchant(tx *gorm.DB) (*models.Merchant, error) {
	var merchant models.Merchant

	err := tx.Where(models.Merchant{Name: defaultMerchantName}).FirstOrCreate(&merchant).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to seed merchant")
	}

	subscription := models.Subscription{MerchantID: merchant.ID, Plan: defaultPlan, Active: true}

	err = tx.Where(models.Subscription{MerchantID: merchant.ID}).
		Attrs(subscription).
		FirstOrCreate(&subscription).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to seed subscription")
	}

	for _, kind := range quota.Kinds() {
		row := models.SubscriptionQuota{
			SubscriptionID: subscription.ID,
			Kind:           string(kind),
			Limit:          starterLimits[kind],
		}

		if err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return nil, errors.Wrapf(err, "failed to seed %s quota", kind)
		}
	}

	return &merchant, nil
}

// seedAdmin creates the admin account when no user exists yet. The generated
// password is logged once.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count users")
	}

	if count > 0 {
		return nil
	}

	var merchant models.Merchant
	if err := db.Where("name = ?", defaultMerchantName).First(&merchant).Error; err != nil {
		return errors.Wrap(err, "failed to find default merchant")
	}

	password := uniuri.Password()

	_, err := auth.NewService(db).CreateUser(AdminUsername, adminEmail, password, access.SuperAdminSlug, &merchant.ID)
	if err != nil {
		return errors.Wrap(err, "failed to create admin user")
	}

	log.Warn().
		Str("username", AdminUsername).
		Str("password", password).
		Msg("created initial admin account, change the password with `orgdesk passwd`")

	return nil
}

func intPtr(i int) *int {
	return &i
}
