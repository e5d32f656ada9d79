package visibility

import (
	"html/template"

	"github.com/orgdesk/orgdesk/internal/access"
)

// FuncMap returns the template helpers registered on the html engine.
//
//	{{ if can .Actor "members.create" }}...{{ end }}
//	{{ gate .Actor "finance.view | finance.export" "<a href=\"/finance\">Finance</a>" }}
//	{{ gate .Actor "roles.edit" "<button>Edit</button>" "<span>read only</span>" }}
//
// gate is silent unless a fallback is passed.
func FuncMap() map[string]any {
	return map[string]any{
		"can": func(actor *access.Actor, permission string) bool {
			return Gate{Permission: permission}.Allowed(actor)
		},
		"canAll": func(actor *access.Actor, permissions ...string) bool {
			return Gate{AllOf: permissions}.Allowed(actor)
		},
		"canAny": func(actor *access.Actor, permissions ...string) bool {
			return Gate{AnyOf: permissions}.Allowed(actor)
		},
		"isSuperAdmin": func(actor *access.Actor) bool {
			return Gate{SuperAdminOnly: true}.Allowed(actor)
		},
		"gate": func(actor *access.Actor, expr string, granted template.HTML, fallback ...template.HTML) template.HTML {
			g := Parse(expr)
			if len(fallback) == 0 {
				g.Silent = true
			} else {
				g.Fallback = fallback[0]
			}

			return g.Render(actor, granted)
		},
	}
}
