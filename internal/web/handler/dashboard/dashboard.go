// Package dashboard provides the landing page with plan usage overview.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/config"
	"github.com/orgdesk/orgdesk/internal/quota"
	"github.com/orgdesk/orgdesk/internal/web/handler"
	"github.com/orgdesk/orgdesk/internal/web/navigation"
	"github.com/orgdesk/orgdesk/internal/web/session"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// UsagePath serves plan usage as JSON.
	UsagePath = Path + "/usage"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"
)

// Card is one usage card on the dashboard.
type Card struct {
	Title     string
	Usage     string
	Remaining string
	Level     quota.Level
	Percent   int
	Limit     quota.Limit
}

// Service is the dashboard handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the dashboard handler.
var Handler = Service{}

var _ handler.Service = (*Service)(nil)

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *gorm.DB) error {
	if app == nil || cfg == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg

	// the dashboard is the redirect target of denied pages, so it must not redirect itself
	app.Get(Path, navigation.Guard{
		Request:  access.Single(access.PermDashboardView),
		Fallback: handler.Forbidden,
	}.Handler(), s.Get)

	app.Get(UsagePath, navigation.Guard{
		Request: access.Single(access.PermSubscriptionView),
		Fallback: func(c *fiber.Ctx) error {
			return fiber.ErrForbidden
		},
	}.Handler(), s.Usage)

	return nil
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	actor, nav := handler.NewPage(c, "Dashboard", "dashboard", "dashboard")
	nav.AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Dashboard", Path, true)

	limits := quota.EvaluateAll(actor)
	cards := make([]Card, 0, len(limits))

	for _, l := range limits {
		cards = append(cards, Card{
			Title:     l.Kind.Title(),
			Usage:     l.UsageLabel(),
			Remaining: l.RemainingLabel(),
			Level:     l.Level(),
			Percent:   l.PercentageUsed,
			Limit:     l,
		})
	}

	log.Debug().
		Uint64("user_id", actor.UserID).
		Int("menu_items", len(nav.Menu)).
		Msg("dashboard rendered")

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Actor":      actor,
		"Navigation": nav,
		"Cards":      cards,
		"Access":     navigation.Access(actor, access.Single(access.PermSubscriptionView)),
	}, handler.BaseLayout)
}

// Usage returns the plan usage of the actor's merchant as JSON.
func (s *Service) Usage(c *fiber.Ctx) error {
	actor, _ := session.FromContext(c)

	out := make(map[quota.ResourceKind]quota.Limit, len(quota.Kinds()))
	for _, l := range quota.EvaluateAll(actor) {
		out[l.Kind] = l
	}

	return c.JSON(out)
}
