package access

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Decision is the outcome of a permission check.
// It is built fresh on every call and never cached.
type Decision struct {
	HasPermission bool    `json:"hasPermission"`
	IsSuperAdmin  bool    `json:"isSuperAdmin"`
	RoleName      *string `json:"roleName"`
	RoleSlug      *string `json:"roleSlug"`
}

// Resolve decides whether the actor is granted the requested permissions.
//
// A super admin is granted everything, whatever the request looks like. Otherwise
// every token is evaluated against the role's permission set and the results are
// combined according to the request mode. A nil actor, role or permission set
// grants nothing. Malformed tokens are logged and evaluate to false.
func Resolve(actor *Actor, req Request) Decision {
	var role *Role
	if actor != nil {
		role = actor.Role
	}

	decision := Decision{}
	if role != nil {
		decision.RoleName = stringPtr(role.Name)
		decision.RoleSlug = stringPtr(role.Slug)
	}

	if role.IsSuperAdmin() {
		decision.HasPermission = true
		decision.IsSuperAdmin = true

		return decision
	}

	var set PermissionSet
	if role != nil {
		set = role.Permissions
	}

	decision.HasPermission = combine(set, req)

	return decision
}

// Has reports whether the actor holds a single permission.
func Has(actor *Actor, permission string) bool {
	return Resolve(actor, Single(permission)).HasPermission
}

// HasAll reports whether the actor holds every given permission.
func HasAll(actor *Actor, permissions ...string) bool {
	return Resolve(actor, AllOf(permissions...)).HasPermission
}

// HasAny reports whether the actor holds at least one of the given permissions.
func HasAny(actor *Actor, permissions ...string) bool {
	return Resolve(actor, AnyOf(permissions...)).HasPermission
}

func combine(set PermissionSet, req Request) bool {
	switch req.Mode {
	case ModeAll:
		for _, raw := range req.Permissions {
			if !evaluate(set, raw) {
				return false
			}
		}

		return true
	case ModeAny:
		for _, raw := range req.Permissions {
			if evaluate(set, raw) {
				return true
			}
		}

		return false
	default:
		if len(req.Permissions) == 0 {
			return false
		}

		return evaluate(set, req.Permissions[0])
	}
}

// evaluate checks one raw token. The token is classified once here; the matchers
// below only ever see the parsed form.
func evaluate(set PermissionSet, raw string) bool {
	token, err := ParseToken(raw)
	if err != nil {
		log.Warn().Err(err).Str("permission", raw).
			Msg("permission must be an identifier or use the category.action format")

		return false
	}

	return granted(set, token)
}

// granted is the single dispatch point between the two permission schemas.
func granted(set PermissionSet, token Token) bool {
	switch permissions := set.(type) {
	case LegacyPermissions:
		return legacyGranted(permissions, token)
	case NormalizedPermissions:
		return normalizedGranted(permissions, token)
	default:
		return false
	}
}

// legacyGranted never matches identifiers: the legacy matrix has no ids.
func legacyGranted(permissions LegacyPermissions, token Token) bool {
	if token.Kind != TokenPath {
		return false
	}

	for category, actions := range permissions {
		if !strings.EqualFold(category, token.Category) {
			continue
		}

		for action, allowed := range actions {
			if allowed && strings.EqualFold(action, token.Action) {
				return true
			}
		}
	}

	return false
}

func normalizedGranted(permissions NormalizedPermissions, token Token) bool {
	for _, grant := range permissions {
		def := grant.Definition

		switch token.Kind {
		case TokenIdentifier:
			if def.ID == token.ID {
				return true
			}
		case TokenPath:
			if strings.EqualFold(def.Category, token.Category) && strings.EqualFold(def.Action, token.Action) {
				return true
			}
		}
	}

	return false
}

func stringPtr(s string) *string {
	return &s
}
