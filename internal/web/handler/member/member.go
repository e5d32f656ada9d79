// Package member provides the member list and the add member form.
package member

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/config"
	membercontroller "github.com/orgdesk/orgdesk/internal/db/controller/member"
	"github.com/orgdesk/orgdesk/internal/db/models"
	"github.com/orgdesk/orgdesk/internal/quota"
	"github.com/orgdesk/orgdesk/internal/web/control"
	"github.com/orgdesk/orgdesk/internal/web/handler"
	"github.com/orgdesk/orgdesk/internal/web/navigation"
)

const (
	// Path is the path to the member pages.
	Path = handler.RootPath + "members"

	// ExportPath downloads the member list as JSON.
	ExportPath = Path + "/export"

	exportFileName = "members.json"

	// TemplateName is the name of the member list template.
	TemplateName = "members/list"

	// DefaultPageSize is the default number of members per page.
	DefaultPageSize = 25

	maxPageSize = 100
)

// Form is the add member form.
type Form struct {
	FirstName string `form:"first_name" validate:"required,max=100"`
	LastName  string `form:"last_name" validate:"required,max=100"`
	Email     string `form:"email" validate:"omitempty,email,max=255"`
}

// Page is one page of the member list.
type Page struct {
	Members     []models.Member
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    int
	NextPage    int
}

// Service is the member handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the member handler.
var Handler = Service{}

var _ handler.Service = (*Service)(nil)

// Init initializes the member handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db

	// register routes with permission checks
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath,
			navigation.RequirePermission(access.PermMembersView),
			s.List,
		)
		router.Post(handler.RouterRootPath,
			navigation.Guard{
				Request:      access.Single(access.PermMembersCreate),
				RedirectPath: Path,
			}.Handler(),
			s.Create,
		)
		router.Get("/export",
			navigation.RequireAll(access.PermMembersView, access.PermMembersExport),
			s.Export,
		)
	})

	return nil
}

// List handles the member list rendering.
func (s *Service) List(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, nil, "")
}

// Create handles the add member form submission.
func (s *Service) Create(c *fiber.Ctx) error {
	actor, _, _ := s.actor(c)

	merchantID, ok := actor.MerchantID()
	if !ok {
		return s.render(c, fiber.StatusForbidden, nil, "Your account does not belong to an organization.")
	}

	// fast refusal from the session snapshot; the controller re-checks under lock
	if limit := quota.Evaluate(actor, quota.Members); !limit.CanCreate {
		return s.render(c, fiber.StatusPaymentRequired, nil, control.TooltipLimitReached)
	}

	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return s.render(c, fiber.StatusBadRequest, form, "Invalid form data.")
	}

	if errs := handler.Validate(form); errs != nil {
		return s.render(c, fiber.StatusUnprocessableEntity, form, handler.Messages(errs))
	}

	member := &models.Member{
		MerchantID: merchantID,
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Email:      form.Email,
	}

	err := membercontroller.Create(c.UserContext(), s.db, member)
	switch {
	case errors.Is(err, membercontroller.ErrLimitReached):
		return s.render(c, fiber.StatusPaymentRequired, form, control.TooltipLimitReached)
	case errors.Is(err, membercontroller.ErrNoSubscription):
		return s.render(c, fiber.StatusPaymentRequired, form, "Your organization has no active subscription.")
	case err != nil:
		log.Error().Err(err).Uint("merchant_id", merchantID).Msg("failed to create member")
		return s.render(c, fiber.StatusInternalServerError, form, "Failed to add member.")
	}

	log.Info().
		Uint64("user_id", actor.UserID).
		Uint("merchant_id", merchantID).
		Uint64("member_id", member.ID).
		Msg("member created")

	return c.Redirect(Path)
}

// Export sends every member of the actor's merchant as a JSON attachment.
func (s *Service) Export(c *fiber.Ctx) error {
	actor, _, _ := s.actor(c)

	merchantID, ok := actor.MerchantID()
	if !ok {
		return fiber.ErrForbidden
	}

	members, err := membercontroller.List(c.UserContext(), s.db, merchantID)
	if err != nil {
		log.Error().Err(err).Uint("merchant_id", merchantID).Msg("failed to export members")
		return fiber.ErrInternalServerError
	}

	log.Info().
		Uint64("user_id", actor.UserID).
		Uint("merchant_id", merchantID).
		Int("members", len(members)).
		Msg("members exported")

	c.Attachment(exportFileName)

	return c.JSON(members)
}

func (s *Service) actor(c *fiber.Ctx) (*access.Actor, *navigation.Context, control.State) {
	actor, nav := handler.NewPage(c, "Members", "members", "member-list")
	nav.AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Members", Path, true)

	add := control.ForQuota(control.For(actor, access.PermMembersCreate), quota.Evaluate(actor, quota.Members))

	return actor, nav, add
}

func (s *Service) render(c *fiber.Ctx, status int, form *Form, formError string) error {
	actor, nav, add := s.actor(c)

	var page Page
	if merchantID, ok := actor.MerchantID(); ok {
		members, err := membercontroller.List(c.UserContext(), s.db, merchantID)
		if err != nil {
			log.Error().Err(err).Uint("merchant_id", merchantID).Msg("failed to list members")
			return fiber.ErrInternalServerError
		}

		page = paginate(members, c.QueryInt("page", 1), c.QueryInt("pageSize", DefaultPageSize))
	}

	return c.Status(status).Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Actor":      actor,
		"Navigation": nav,
		"Page":       page,
		"Limit":      quota.Evaluate(actor, quota.Members),
		"AddControl": add,
		"Form":       form,
		"FormError":  formError,
	}, handler.BaseLayout)
}

// paginate returns the requested page, clamped to the available pages.
func paginate(members []models.Member, page, pageSize int) Page {
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = DefaultPageSize
	}

	totalItems := len(members)
	totalPages := max((totalItems+pageSize-1)/pageSize, 1)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*pageSize, totalItems)
	end := min(start+pageSize, totalItems)

	return Page{
		Members:     members[start:end],
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
	}
}
