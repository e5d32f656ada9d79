package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/db/controller/actor"
	"github.com/orgdesk/orgdesk/internal/web/handler/login"
	"github.com/orgdesk/orgdesk/internal/web/handler/logout"
	"github.com/orgdesk/orgdesk/internal/web/navigation"
	"github.com/orgdesk/orgdesk/internal/web/session"
)

// Loader loads the actor of a user.
type Loader func(ctx context.Context, userID uint64) (*access.Actor, error)

// Config configures the middleware.
type Config struct {
	// Loader loads the actor. Required.
	Loader Loader
	// LoadTimeout bounds the actor load. When it passes the request is marked
	// as loading and guards render the loading view.
	LoadTimeout time.Duration
	// RedirectPath is where logged in users visiting the login page are sent.
	RedirectPath string
}

// DBLoader loads actors from the database.
func DBLoader(db *gorm.DB) Loader {
	return func(ctx context.Context, userID uint64) (*access.Actor, error) {
		return actor.Load(ctx, db, userID)
	}
}

type loadResult struct {
	actor *access.Actor
	err   error
}

// New returns the middleware checking user authentication.
func New(cfg Config) fiber.Handler {
	if cfg.Loader == nil {
		panic("auth middleware: loader is nil")
	}

	if cfg.RedirectPath == "" {
		cfg.RedirectPath = navigation.DefaultRedirectPath
	}

	return func(c *fiber.Ctx) error {
		isLoginPage := IsLoginPage(c)

		originalURL := strings.ToLower(c.OriginalURL())
		if strings.HasPrefix(originalURL, "/static") {
			return c.Next()
		}

		// Allow logout page without authentication
		if IsLogoutPage(c) {
			return c.Next()
		}

		sessionID := c.Cookies(session.CookieName)
		if sessionID == "" {
			if isLoginPage {
				return c.Next()
			}

			return c.Redirect(login.Path)
		}

		sessData := new(session.Data)
		if err := sessData.Read(sessionID); err != nil || sessData.UserID == 0 {
			// If we're already on the login page, don't redirect (would cause loop)
			if isLoginPage {
				return c.Next()
			}

			return c.Redirect(login.Path)
		}

		if isLoginPage {
			return c.Redirect(cfg.RedirectPath)
		}

		res, ok := load(c.UserContext(), cfg, sessData.UserID)
		switch {
		case !ok:
			log.Warn().Uint64("user_id", sessData.UserID).Dur("timeout", cfg.LoadTimeout).
				Msg("actor not loaded in time")
			session.SetLoading(c)
		case errors.Is(res.err, actor.ErrUserNotFound):
			// user was deleted or deactivated after login
			if err := session.Delete(sessionID); err != nil {
				log.Error().Err(err).Msg("failed to delete session")
			}
			c.ClearCookie(session.CookieName)

			return c.Redirect(login.Path)
		case res.err != nil:
			log.Error().Err(res.err).Uint64("user_id", sessData.UserID).Msg("failed to load actor")

			return fiber.ErrInternalServerError
		default:
			session.SetActor(c, res.actor)
		}

		return c.Next()
	}
}

// load runs the loader with a deadline. ok is false when the deadline passed first.
func load(parent context.Context, cfg Config, userID uint64) (loadResult, bool) {
	if cfg.LoadTimeout <= 0 {
		a, err := cfg.Loader(parent, userID)
		return loadResult{actor: a, err: err}, true
	}

	ctx, cancel := context.WithTimeout(parent, cfg.LoadTimeout)
	defer cancel()

	done := make(chan loadResult, 1)
	go func() {
		a, err := cfg.Loader(ctx, userID)
		done <- loadResult{actor: a, err: err}
	}()

	select {
	case res := <-done:
		if errors.Is(res.err, context.DeadlineExceeded) {
			return res, false
		}

		return res, true
	case <-ctx.Done():
		return loadResult{}, false
	}
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, login.Path)
}

// IsLogoutPage checks if the current request is for the logout page.
func IsLogoutPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, logout.Path)
}
