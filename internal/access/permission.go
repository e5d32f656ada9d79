package access

import (
	"bytes"
	"encoding/json"
)

// Role is a named bundle of grants assigned to an actor.
type Role struct {
	// Slug is the stable identifier of the role. SuperAdminSlug is reserved.
	Slug string
	// Name is the display name of the role.
	Name string
	// Permissions holds the grants in either the legacy or the normalized schema.
	// Nil means no grants.
	Permissions PermissionSet
}

// PermissionSet is the union of the two permission schemas a role may be stored in.
// The only implementations are LegacyPermissions and NormalizedPermissions.
type PermissionSet interface {
	permissionSet()
}

// LegacyPermissions is the pre-migration schema: category -> action -> granted.
// A missing category or action is not granted.
type LegacyPermissions map[string]map[string]bool

func (LegacyPermissions) permissionSet() {}

// NormalizedPermissions is the post-migration schema: a list of grants referencing
// permission definitions. Order is irrelevant and duplicates are allowed.
type NormalizedPermissions []PermissionGrant

func (NormalizedPermissions) permissionSet() {}

// PermissionDefinition describes one grantable capability.
type PermissionDefinition struct {
	// ID is the backend assigned identifier, compared by exact string equality.
	ID string `json:"id"`
	// Category groups the capability, e.g. "members". Compared case-insensitively.
	Category string `json:"category"`
	// Action is the verb within the category, e.g. "create". Compared case-insensitively.
	Action string `json:"action"`
	// DisplayName is for presentation only.
	DisplayName string `json:"displayName,omitempty"`
}

// Path returns the definition in "category.action" form.
func (d PermissionDefinition) Path() string {
	if d.Category == "" && d.Action == "" {
		return ""
	}

	return d.Category + "." + d.Action
}

// PermissionGrant references a permission definition. Upstream data is sometimes
// only partially expanded, so the reference may carry just the definition id.
type PermissionGrant struct {
	Definition PermissionDefinition
}

// GrantID creates a grant that references a definition by id only.
func GrantID(id string) PermissionGrant {
	return PermissionGrant{Definition: PermissionDefinition{ID: id}}
}

// Grant creates a grant embedding the full definition.
func Grant(def PermissionDefinition) PermissionGrant {
	return PermissionGrant{Definition: def}
}

type roleJSON struct {
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Permissions json.RawMessage `json:"permissions,omitempty"`
}

// UnmarshalJSON decodes a role and picks the permission schema from the JSON shape:
// an object is the legacy matrix, an array is the normalized list.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw roleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err //nolint:wrapcheck
	}

	r.Slug = raw.Slug
	r.Name = raw.Name
	r.Permissions = decodePermissionSet(raw.Permissions)

	return nil
}

// MarshalJSON encodes the role with its permissions in their original schema.
func (r Role) MarshalJSON() ([]byte, error) {
	out := struct {
		Slug        string        `json:"slug"`
		Name        string        `json:"name"`
		Permissions PermissionSet `json:"permissions"`
	}{
		Slug:        r.Slug,
		Name:        r.Name,
		Permissions: r.Permissions,
	}

	return json.Marshal(out) //nolint:wrapcheck
}

// decodePermissionSet returns nil for absent, null or unrecognized shapes so that a
// broken permissions field degrades to "no grants".
func decodePermissionSet(raw json.RawMessage) PermissionSet {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '{':
		var legacy LegacyPermissions
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil
		}

		return legacy
	case '[':
		var normalized NormalizedPermissions
		if err := json.Unmarshal(raw, &normalized); err != nil {
			return nil
		}

		return normalized
	default:
		return nil
	}
}

// UnmarshalJSON keeps only actions whose stored value is the boolean true.
// null, numbers, strings and other truthy values are not grants.
func (l *LegacyPermissions) UnmarshalJSON(data []byte) error {
	var categories map[string]json.RawMessage
	if err := json.Unmarshal(data, &categories); err != nil {
		return err //nolint:wrapcheck
	}

	out := make(LegacyPermissions, len(categories))

	for category, body := range categories {
		var actions map[string]json.RawMessage
		if err := json.Unmarshal(body, &actions); err != nil {
			continue
		}

		granted := make(map[string]bool, len(actions))
		for action, value := range actions {
			granted[action] = bytes.Equal(bytes.TrimSpace(value), []byte("true"))
		}

		out[category] = granted
	}

	*l = out

	return nil
}

// UnmarshalJSON skips list entries that do not decode to a grant.
func (n *NormalizedPermissions) UnmarshalJSON(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return err //nolint:wrapcheck
	}

	out := make(NormalizedPermissions, 0, len(entries))

	for _, entry := range entries {
		var grant PermissionGrant
		if err := json.Unmarshal(entry, &grant); err != nil {
			continue
		}

		out = append(out, grant)
	}

	*n = out

	return nil
}

// UnmarshalJSON accepts {"permissionId": {...}}, {"permissionId": "<id>"},
// a bare definition object or a bare id string.
func (g *PermissionGrant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '{' {
		var ref struct {
			PermissionID json.RawMessage `json:"permissionId"`
		}

		if err := json.Unmarshal(data, &ref); err != nil {
			return err //nolint:wrapcheck
		}

		if len(ref.PermissionID) > 0 && !bytes.Equal(ref.PermissionID, []byte("null")) {
			data = ref.PermissionID
		}
	}

	return g.Definition.decodeReference(data)
}

// MarshalJSON encodes the grant as an expanded reference.
func (g PermissionGrant) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct { //nolint:wrapcheck
		PermissionID PermissionDefinition `json:"permissionId"`
	}{g.Definition})
}

func (d *PermissionDefinition) decodeReference(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err //nolint:wrapcheck
		}

		*d = PermissionDefinition{ID: id}

		return nil
	}

	return json.Unmarshal(data, d) //nolint:wrapcheck
}

// UnmarshalJSON accepts both "id" and the document store "_id" key.
func (d *PermissionDefinition) UnmarshalJSON(data []byte) error {
	type plain PermissionDefinition

	var raw struct {
		plain
		DocumentID string `json:"_id"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err //nolint:wrapcheck
	}

	*d = PermissionDefinition(raw.plain)
	if d.ID == "" {
		d.ID = raw.DocumentID
	}

	return nil
}
