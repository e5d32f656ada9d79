package access

// Mode is how the permissions of a request are combined.
type Mode int

const (
	// ModeSingle checks exactly one permission.
	ModeSingle Mode = iota
	// ModeAll requires every permission. An empty list is satisfied.
	ModeAll
	// ModeAny requires at least one permission. An empty list is not satisfied.
	ModeAny
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeAny:
		return "any"
	default:
		return "single"
	}
}

// Request is a permission query: one token, an AND-list or an OR-list.
type Request struct {
	Mode        Mode
	Permissions []string
}

// Single requests one permission.
func Single(permission string) Request {
	return Request{Mode: ModeSingle, Permissions: []string{permission}}
}

// AllOf requests every given permission.
func AllOf(permissions ...string) Request {
	return Request{Mode: ModeAll, Permissions: permissions}
}

// AnyOf requests at least one of the given permissions.
func AnyOf(permissions ...string) Request {
	return Request{Mode: ModeAny, Permissions: permissions}
}

// IsZero reports whether the request names no permission at all.
func (r Request) IsZero() bool {
	return len(r.Permissions) == 0
}
