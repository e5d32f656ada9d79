// Package quota evaluates plan usage limits before a resource is created.
//
// Evaluate is a pure projection of the actor's subscription snapshot. It shares
// the super admin bypass with the access package but no state.
package quota

import (
	"encoding/json"
	"math"

	"github.com/orgdesk/orgdesk/internal/access"
)

// ResourceKind is a countable, plan-limited entity type.
type ResourceKind string

const (
	// Members are the people recorded by an organization.
	Members ResourceKind = "members"
	// Branches are the locations of an organization.
	Branches ResourceKind = "branches"
	// Departments are the organizational units.
	Departments ResourceKind = "departments"
	// Events are scheduled gatherings.
	Events ResourceKind = "events"
	// Donations are recorded contributions.
	Donations ResourceKind = "donations"
)

const (
	// NearLimitThreshold is the usage percentage from which a limit counts as nearly reached.
	NearLimitThreshold = 60

	// Unbounded is the Remaining value of an unlimited resource.
	Unbounded = math.MaxInt

	fullPercentage = 100
)

// Kinds returns every resource kind in display order.
func Kinds() []ResourceKind {
	return []ResourceKind{Members, Branches, Departments, Events, Donations}
}

// Limit is the usage evaluation of one resource kind.
type Limit struct {
	Kind           ResourceKind `json:"-"`
	CanCreate      bool         `json:"canCreate"`
	Current        int          `json:"current"`
	Limit          *int         `json:"limit"`
	IsUnlimited    bool         `json:"isUnlimited"`
	PercentageUsed int          `json:"percentageUsed"`
	Remaining      int          `json:"remaining"`
	IsNearLimit    bool         `json:"isNearLimit"`
}

// Evaluate reports whether the actor may create another resource of the given kind.
//
// Rules, first match wins:
//   - super admins are never limited
//   - without a subscription snapshot everything is exhausted
//   - a missing or null limit is unlimited
//   - otherwise usage is compared against the limit
//
// Unknown kinds are not validated; a missing usage entry counts as zero.
func Evaluate(actor *access.Actor, kind ResourceKind) Limit {
	sub := actor.Subscription()

	var current int
	if sub != nil {
		current = sub.Usage[string(kind)]
	}

	if actor.IsSuperAdmin() {
		return unlimited(kind, current)
	}

	if sub == nil {
		zero := 0

		return Limit{
			Kind:           kind,
			CanCreate:      false,
			Current:        current,
			Limit:          &zero,
			PercentageUsed: fullPercentage,
			Remaining:      0,
			IsNearLimit:    true,
		}
	}

	limit := sub.Limits[string(kind)]
	if limit == nil {
		return unlimited(kind, current)
	}

	ceiling := *limit

	var percentage int
	if ceiling > 0 {
		percentage = int(math.Round(float64(current) / float64(ceiling) * fullPercentage))
	}

	return Limit{
		Kind:           kind,
		CanCreate:      current < ceiling,
		Current:        current,
		Limit:          &ceiling,
		PercentageUsed: percentage,
		Remaining:      remaining(current, ceiling),
		IsNearLimit:    percentage >= NearLimitThreshold,
	}
}

// EvaluateAll evaluates every known resource kind.
func EvaluateAll(actor *access.Actor) []Limit {
	kinds := Kinds()
	out := make([]Limit, 0, len(kinds))

	for _, kind := range kinds {
		out = append(out, Evaluate(actor, kind))
	}

	return out
}

func unlimited(kind ResourceKind, current int) Limit {
	return Limit{
		Kind:        kind,
		CanCreate:   true,
		Current:     current,
		IsUnlimited: true,
		Remaining:   Unbounded,
	}
}

func remaining(current, limit int) int {
	if left := limit - current; left > 0 {
		return left
	}

	return 0
}

// IsUnbounded reports whether Remaining stands for infinity.
func (l Limit) IsUnbounded() bool {
	return l.Remaining == Unbounded
}

// MarshalJSON writes an unbounded Remaining as the string "Infinity".
func (l Limit) MarshalJSON() ([]byte, error) {
	type plain Limit

	out := struct {
		plain
		Remaining any `json:"remaining"`
	}{plain: plain(l), Remaining: l.Remaining}

	if l.IsUnbounded() {
		out.Remaining = "Infinity"
	}

	return json.Marshal(out) //nolint:wrapcheck
}
