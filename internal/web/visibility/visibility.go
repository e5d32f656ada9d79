// Package visibility decides whether a block of a page is shown to the actor.
//
// A Gate is evaluated on every render. It holds no state and caches nothing,
// so a role change is visible on the next page load.
package visibility

import (
	"html/template"
	"strings"

	"github.com/orgdesk/orgdesk/internal/access"
)

// Gate describes what a page block requires. The first applicable input wins:
// SuperAdminOnly, then Permission, then AllOf, then AnyOf. A gate with none of
// them set denies. Empty lists count as not set.
type Gate struct {
	SuperAdminOnly bool
	Permission     string
	AllOf          []string
	AnyOf          []string
	// Silent renders nothing on denial, even when a fallback is set.
	Silent   bool
	Fallback template.HTML
}

// Allowed reports whether the actor passes the gate.
func (g Gate) Allowed(actor *access.Actor) bool {
	switch {
	case g.SuperAdminOnly:
		return actor.IsSuperAdmin()
	case g.Permission != "":
		return access.Has(actor, g.Permission)
	case len(g.AllOf) > 0:
		return access.HasAll(actor, g.AllOf...)
	case len(g.AnyOf) > 0:
		return access.HasAny(actor, g.AnyOf...)
	default:
		return false
	}
}

// Render returns granted when the actor passes the gate, otherwise the
// fallback, or nothing when the gate is silent.
func (g Gate) Render(actor *access.Actor, granted template.HTML) template.HTML {
	if g.Allowed(actor) {
		return granted
	}

	if g.Silent {
		return ""
	}

	return g.Fallback
}

// Parse builds a gate from the short form used in templates:
//
//	members.view                  single permission
//	members.view & members.edit   all of
//	members.edit | members.delete any of
//	@super_admin                  super admin only
//
// Mixing & and | is not supported; such an expression is read as all of its tokens.
func Parse(expr string) Gate {
	expr = strings.TrimSpace(expr)

	switch {
	case expr == "":
		return Gate{}
	case expr == "@"+access.SuperAdminSlug:
		return Gate{SuperAdminOnly: true}
	case strings.Contains(expr, "&"):
		return Gate{AllOf: split(expr, "&|")}
	case strings.Contains(expr, "|"):
		return Gate{AnyOf: split(expr, "|")}
	default:
		return Gate{Permission: expr}
	}
}

func split(expr, seps string) []string {
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}
