package navigation

import "github.com/orgdesk/orgdesk/internal/access"

// MenuItem is a sidebar entry. An item with a zero Request is always shown.
type MenuItem struct {
	Title    string
	URL      string
	Section  string
	Icon     string
	Request  access.Request
	Children []MenuItem
}

// BuildMenu returns the items the actor may open. Children are filtered the
// same way; a parent without a URL is dropped when none of its children remain.
func BuildMenu(actor *access.Actor, items []MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))

	for _, item := range items {
		if !item.Request.IsZero() && !access.Resolve(actor, item.Request).HasPermission {
			continue
		}

		if len(item.Children) > 0 {
			item.Children = BuildMenu(actor, item.Children)
			if len(item.Children) == 0 && item.URL == "" {
				continue
			}
		}

		out = append(out, item)
	}

	return out
}
