package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/config"
)

// ErrNilACD is returned by Init when app, cfg or db is nil.
var ErrNilACD = errors.New(ErrNilACDFatalLogMsg)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error
}

// Forbidden renders the forbidden page. It is the fallback of page guards
// that should not redirect.
func Forbidden(c *fiber.Ctx) error {
	actor, nav := NewPage(c, "Forbidden", "", "")

	return c.Status(fiber.StatusForbidden).Render(ForbiddenTemplate, fiber.Map{
		"Actor":      actor,
		"Navigation": nav,
	}, BaseLayout)
}
