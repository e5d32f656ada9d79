package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/web/navigation"
	"github.com/orgdesk/orgdesk/internal/web/session"
)

// Sidebar is the full sidebar. Entries are filtered per actor by NewPage.
func Sidebar() []navigation.MenuItem {
	return []navigation.MenuItem{
		{Title: "Dashboard", URL: "/dashboard", Section: "dashboard", Icon: "home",
			Request: access.Single(access.PermDashboardView)},
		{Title: "Members", Section: "members", Icon: "users", Children: []navigation.MenuItem{
			{Title: "Directory", URL: "/members", Request: access.Single(access.PermMembersView)},
			{Title: "Add member", URL: "/members#add-member",
				Request: access.AllOf(access.PermMembersView, access.PermMembersCreate)},
		}},
		{Title: "Plan usage", URL: "/dashboard/usage", Section: "dashboard", Icon: "gauge",
			Request: access.AnyOf(access.PermSubscriptionView)},
	}
}

// NewPage returns the actor of the request and a navigation context whose
// sidebar only lists what the actor may open.
func NewPage(c *fiber.Ctx, title, section, page string) (*access.Actor, *navigation.Context) {
	actor, _ := session.FromContext(c)
	nav := navigation.NewContext(title, section, page).
		WithMenu(navigation.BuildMenu(actor, Sidebar()))

	return actor, nav
}
