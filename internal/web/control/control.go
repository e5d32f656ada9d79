// Package control adapts access decisions to the state of interactive
// controls such as buttons and form inputs.
package control

import (
	"github.com/orgdesk/orgdesk/internal/access"
	"github.com/orgdesk/orgdesk/internal/quota"
)

// MutedClass is the CSS class applied to disabled controls.
const MutedClass = "is-muted"

// Tooltips shown on disabled controls.
const (
	TooltipSingle       = "You do not have permission to perform this action."
	TooltipAll          = "You need all of the required permissions to perform this action."
	TooltipAny          = "You need at least one of the required permissions to perform this action."
	TooltipLimitReached = "Your plan limit has been reached. Upgrade your subscription to add more."
)

// State is the rendering state of a control. HasAccess reports the permission
// decision; IsEnabled can still be false when a plan limit is reached.
type State struct {
	IsEnabled     bool
	HasAccess     bool
	TooltipText   string
	DisabledClass string
}

// For returns the state of a control that requires one permission.
func For(actor *access.Actor, permission string) State {
	return stateOf(access.Resolve(actor, access.Single(permission)), TooltipSingle)
}

// ForAll returns the state of a control that requires every permission.
func ForAll(actor *access.Actor, permissions ...string) State {
	return stateOf(access.Resolve(actor, access.AllOf(permissions...)), TooltipAll)
}

// ForAny returns the state of a control that requires any of the permissions.
func ForAny(actor *access.Actor, permissions ...string) State {
	return stateOf(access.Resolve(actor, access.AnyOf(permissions...)), TooltipAny)
}

// Visible reports whether a control requiring permission is shown at all.
func Visible(actor *access.Actor, permission string) bool {
	return access.Has(actor, permission)
}

// ForQuota disables an otherwise enabled control when the plan limit does
// not allow creating another resource.
func ForQuota(s State, limit quota.Limit) State {
	if !s.IsEnabled || limit.CanCreate {
		return s
	}

	limited := disabled(TooltipLimitReached)
	limited.HasAccess = s.HasAccess

	return limited
}

func stateOf(d access.Decision, tooltip string) State {
	if d.HasPermission {
		return State{IsEnabled: true, HasAccess: true}
	}

	return disabled(tooltip)
}

func disabled(tooltip string) State {
	return State{TooltipText: tooltip, DisabledClass: MutedClass}
}
