package access

// SuperAdminSlug is the reserved role slug that is granted every permission.
const SuperAdminSlug = "super_admin"

// Actor is the authenticated user a decision is made for.
// It is handed over whole by the session provider and never mutated here.
type Actor struct {
	// UserID and Username identify the actor for logging and display only.
	UserID   uint64 `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	// Role is the role assigned to the actor. Nil means no grants.
	Role *Role `json:"role,omitempty"`
	// Merchant carries the subscription snapshot used for usage limits.
	Merchant *Merchant `json:"merchant,omitempty"`
}

// Merchant is the organization account the actor belongs to.
type Merchant struct {
	ID           uint          `json:"id,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// Subscription is a snapshot of plan usage and plan limits per resource kind.
// A nil limit means unlimited.
type Subscription struct {
	Usage  map[string]int  `json:"usage,omitempty"`
	Limits map[string]*int `json:"limits,omitempty"`
}

// IsSuperAdmin reports whether the role carries the reserved super admin slug.
func (r *Role) IsSuperAdmin() bool {
	return r != nil && r.Slug == SuperAdminSlug
}

// IsSuperAdmin reports whether the actor's role is the super admin role.
func (a *Actor) IsSuperAdmin() bool {
	return a != nil && a.Role.IsSuperAdmin()
}

// Subscription returns the actor's subscription snapshot or nil.
func (a *Actor) Subscription() *Subscription {
	if a == nil || a.Merchant == nil {
		return nil
	}

	return a.Merchant.Subscription
}

// MerchantID returns the id of the actor's merchant. ok is false when the
// actor does not belong to a merchant.
func (a *Actor) MerchantID() (id uint, ok bool) {
	if a == nil || a.Merchant == nil || a.Merchant.ID == 0 {
		return 0, false
	}

	return a.Merchant.ID, true
}
