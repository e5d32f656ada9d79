package navigation

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/web/session"
)

// DefaultRedirectPath is where denied requests are sent when no fallback is set.
const DefaultRedirectPath = "/dashboard"

// LoadingView is the template rendered while the actor is still loading.
const LoadingView = "partials/loading"

// State is the outcome of a guard evaluation.
type State int

const (
	// StateLoading means the actor data has not arrived yet. Nothing was evaluated.
	StateLoading State = iota
	// StateAllowed means the request passes the guard.
	StateAllowed
	// StateDenied means the request does not pass the guard.
	StateDenied
)

// String returns the metric label of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAllowed:
		return "allowed"
	default:
		return "denied"
	}
}

// Guard protects a route with a permission request.
type Guard struct {
	Request access.Request
	// Fallback handles denied requests. When nil the request is redirected.
	Fallback fiber.Handler
	// RedirectPath is the redirect target of denied requests, DefaultRedirectPath when empty.
	RedirectPath string
}

// Evaluate returns the state for the actor. While loading the permission
// request is not resolved. A guard without permissions denies.
func (g Guard) Evaluate(loading bool, actor *access.Actor) State {
	if loading {
		return StateLoading
	}

	if g.Request.IsZero() {
		return StateDenied
	}

	if access.Resolve(actor, g.Request).HasPermission {
		return StateAllowed
	}

	return StateDenied
}

// Handler returns the fiber middleware enforcing the guard.
func (g Guard) Handler() fiber.Handler {
	redirectPath := g.RedirectPath
	if redirectPath == "" {
		redirectPath = DefaultRedirectPath
	}

	return func(c *fiber.Ctx) error {
		actor, loading := session.FromContext(c)
		state := g.Evaluate(loading, actor)
		guardDecisions().WithLabelValues(state.String()).Inc()

		switch state {
		case StateLoading:
			c.Set(fiber.HeaderRetryAfter, "1")

			return c.Status(fiber.StatusAccepted).Render(LoadingView, fiber.Map{
				"Title": "Loading",
				"URL":   c.OriginalURL(),
			})
		case StateAllowed:
			return c.Next()
		}

		var username string
		if actor != nil {
			username = actor.Username
		}

		log.Warn().
			Str("user", username).
			Str("mode", g.Request.Mode.String()).
			Strs("permissions", g.Request.Permissions).
			Str("path", c.Path()).
			Msg("User lacks required permission")

		if g.Fallback != nil {
			return g.Fallback(c)
		}

		// redirecting a GET to itself would loop
		if c.Method() == fiber.MethodGet && c.Path() == redirectPath {
			return fiber.ErrForbidden
		}

		return c.Redirect(redirectPath)
	}
}

// RequirePermission returns middleware that requires a single permission.
func RequirePermission(permission string) fiber.Handler {
	return Guard{Request: access.Single(permission)}.Handler()
}

// RequireAll returns middleware that requires every permission.
func RequireAll(permissions ...string) fiber.Handler {
	return Guard{Request: access.AllOf(permissions...)}.Handler()
}

// RequireAny returns middleware that requires at least one of the permissions.
func RequireAny(permissions ...string) fiber.Handler {
	return Guard{Request: access.AnyOf(permissions...)}.Handler()
}

// AccessInfo is the decision of a guard without any rendering.
type AccessInfo struct {
	HasAccess    bool    `json:"hasAccess"`
	IsSuperAdmin bool    `json:"isSuperAdmin"`
	RoleName     *string `json:"roleName"`
}

// Access resolves req for the actor and returns the decision only.
func Access(actor *access.Actor, req access.Request) AccessInfo {
	d := access.Resolve(actor, req)

	return AccessInfo{
		HasAccess:    d.HasPermission,
		IsSuperAdmin: d.IsSuperAdmin,
		RoleName:     d.RoleName,
	}
}
