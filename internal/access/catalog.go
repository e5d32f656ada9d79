package access

// Permission constants in "category.action" form. They match the permission
// definitions seeded into the database and the keys of legacy role matrices.
const (
	// PermDashboardView allows viewing the dashboard with usage overview.
	PermDashboardView = "dashboard.view"

	// PermMembersView allows listing and viewing members.
	PermMembersView = "members.view"
	// PermMembersCreate allows adding members.
	PermMembersCreate = "members.create"
	// PermMembersEdit allows editing members.
	PermMembersEdit = "members.edit"
	// PermMembersDelete allows removing members.
	PermMembersDelete = "members.delete"
	// PermMembersExport allows exporting the member list.
	PermMembersExport = "members.export"

	// PermBranchesView allows listing branches.
	PermBranchesView = "branches.view"
	// PermBranchesCreate allows adding branches.
	PermBranchesCreate = "branches.create"
	// PermBranchesEdit allows editing branches.
	PermBranchesEdit = "branches.edit"
	// PermBranchesDelete allows removing branches.
	PermBranchesDelete = "branches.delete"

	// PermDepartmentsView allows listing departments.
	PermDepartmentsView = "departments.view"
	// PermDepartmentsCreate allows adding departments.
	PermDepartmentsCreate = "departments.create"
	// PermDepartmentsEdit allows editing departments.
	PermDepartmentsEdit = "departments.edit"
	// PermDepartmentsDelete allows removing departments.
	PermDepartmentsDelete = "departments.delete"

	// PermEventsView allows listing events.
	PermEventsView = "events.view"
	// PermEventsCreate allows scheduling events.
	PermEventsCreate = "events.create"
	// PermEventsEdit allows editing events.
	PermEventsEdit = "events.edit"
	// PermEventsDelete allows cancelling events.
	PermEventsDelete = "events.delete"

	// PermDonationsView allows listing donations.
	PermDonationsView = "donations.view"
	// PermDonationsCreate allows recording donations.
	PermDonationsCreate = "donations.create"
	// PermDonationsExport allows exporting donation records.
	PermDonationsExport = "donations.export"

	// PermFinanceView allows viewing financial summaries.
	PermFinanceView = "finance.view"

	// PermRolesView allows listing roles and their permissions.
	PermRolesView = "roles.view"
	// PermRolesEdit allows managing roles and their permissions.
	PermRolesEdit = "roles.edit"
	// PermUsersView allows listing dashboard users.
	PermUsersView = "users.view"
	// PermUsersEdit allows managing dashboard users.
	PermUsersEdit = "users.edit"

	// PermSubscriptionView allows viewing plan usage and limits.
	PermSubscriptionView = "subscription.view"
)

// Catalog returns every known permission path, grouped by category.
func Catalog() []string {
	return []string{
		PermDashboardView,
		PermMembersView, PermMembersCreate, PermMembersEdit, PermMembersDelete, PermMembersExport,
		PermBranchesView, PermBranchesCreate, PermBranchesEdit, PermBranchesDelete,
		PermDepartmentsView, PermDepartmentsCreate, PermDepartmentsEdit, PermDepartmentsDelete,
		PermEventsView, PermEventsCreate, PermEventsEdit, PermEventsDelete,
		PermDonationsView, PermDonationsCreate, PermDonationsExport,
		PermFinanceView,
		PermRolesView, PermRolesEdit,
		PermUsersView, PermUsersEdit,
		PermSubscriptionView,
	}
}
