package control

// FuncMap returns the template helpers registered on the html engine.
//
//	{{ with control .Actor "members.create" }}
//	  <button class="{{ .DisabledClass }}" title="{{ .TooltipText }}" {{ if not .IsEnabled }}disabled{{ end }}>Add</button>
//	{{ end }}
func FuncMap() map[string]any {
	return map[string]any{
		"control":    For,
		"controlAll": ForAll,
		"controlAny": ForAny,
		"visible":    Visible,
	}
}
