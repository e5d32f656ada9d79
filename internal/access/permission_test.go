package access

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeActor(t *testing.T, raw string) *Actor {
	t.Helper()

	actor := new(Actor)
	require.NoError(t, json.Unmarshal([]byte(raw), actor))

	return actor
}

func TestActorJSON_Legacy(t *testing.T) {
	actor := decodeActor(t, `{
		"role": {
			"slug": "manager",
			"name": "Manager",
			"permissions": {
				"members": {"create": true, "delete": false, "view": 1, "edit": "true", "export": null},
				"finance": "yes"
			}
		}
	}`)

	legacy, ok := actor.Role.Permissions.(LegacyPermissions)
	require.True(t, ok, "an object decodes to the legacy schema")

	assert.True(t, legacy["members"]["create"])
	assert.False(t, legacy["members"]["delete"])
	assert.False(t, legacy["members"]["view"], "truthy numbers are not grants")
	assert.False(t, legacy["members"]["edit"], "the string \"true\" is not a grant")
	assert.False(t, legacy["members"]["export"])
	assert.NotContains(t, legacy, "finance")

	assert.True(t, Has(actor, "members.create"))
	assert.False(t, Has(actor, "members.view"))
	assert.False(t, Has(actor, "members.edit"))
}

func TestActorJSON_Normalized(t *testing.T) {
	actor := decodeActor(t, `{
		"role": {
			"slug": "viewer",
			"name": "Viewer",
			"permissions": [
				{"permissionId": {"_id": "65f1c0de9a1b2c3d4e5f6a7b", "category": "members", "action": "create", "displayName": "Create members"}},
				{"permissionId": "3f2504e0-4f89-11d3-9a0c-0305e82c3301"},
				{"id": "aaaaaaaaaaaaaaaaaaaaaaaa", "category": "events", "action": "view"},
				"bbbbbbbbbbbbbbbbbbbbbbbb",
				42
			]
		}
	}`)

	normalized, ok := actor.Role.Permissions.(NormalizedPermissions)
	require.True(t, ok, "an array decodes to the normalized schema")
	require.Len(t, normalized, 4, "entries that are not grants are skipped")

	assert.Equal(t, PermissionDefinition{
		ID:          "65f1c0de9a1b2c3d4e5f6a7b",
		Category:    "members",
		Action:      "create",
		DisplayName: "Create members",
	}, normalized[0].Definition)
	assert.Equal(t, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", normalized[1].Definition.ID)
	assert.Equal(t, "events.view", normalized[2].Definition.Path())
	assert.Equal(t, "bbbbbbbbbbbbbbbbbbbbbbbb", normalized[3].Definition.ID)

	assert.True(t, Has(actor, "65f1c0de9a1b2c3d4e5f6a7b"))
	assert.True(t, Has(actor, "members.CREATE"))
	assert.True(t, Has(actor, "3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
	assert.True(t, Has(actor, "Events.View"))
	assert.False(t, Has(actor, "members.delete"))
}

func TestActorJSON_DegenerateShapes(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"no role", `{}`},
		{"null role", `{"role": null}`},
		{"no permissions", `{"role": {"slug": "x", "name": "X"}}`},
		{"null permissions", `{"role": {"slug": "x", "name": "X", "permissions": null}}`},
		{"string permissions", `{"role": {"slug": "x", "name": "X", "permissions": "members.view"}}`},
		{"number permissions", `{"role": {"slug": "x", "name": "X", "permissions": 7}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actor := decodeActor(t, tc.raw)

			assert.False(t, Has(actor, PermMembersView))
		})
	}
}

func TestActorJSON_SuperAdminWithoutPermissions(t *testing.T) {
	actor := decodeActor(t, `{"role": {"slug": "super_admin", "name": "Super Admin"}}`)

	assert.True(t, actor.IsSuperAdmin())
	assert.True(t, Has(actor, "anything.at-all"))
}

func TestActorJSON_Subscription(t *testing.T) {
	actor := decodeActor(t, `{
		"merchant": {"subscription": {
			"usage": {"members": 8, "events": 2},
			"limits": {"members": 10, "events": null}
		}}
	}`)

	sub := actor.Subscription()
	require.NotNil(t, sub)
	assert.Equal(t, 8, sub.Usage["members"])
	require.NotNil(t, sub.Limits["members"])
	assert.Equal(t, 10, *sub.Limits["members"])
	assert.Nil(t, sub.Limits["events"])

	assert.Nil(t, (&Actor{}).Subscription())
	assert.Nil(t, (*Actor)(nil).Subscription())
}

func TestRoleJSON_RoundTripKeepsSchema(t *testing.T) {
	roles := []Role{
		{Slug: "manager", Name: "Manager", Permissions: LegacyPermissions{"members": {"view": true}}},
		{Slug: "viewer", Name: "Viewer", Permissions: NormalizedPermissions{
			Grant(PermissionDefinition{ID: "65f1c0de9a1b2c3d4e5f6a7b", Category: "members", Action: "view"}),
		}},
	}

	for _, role := range roles {
		t.Run(role.Slug, func(t *testing.T) {
			out, err := json.Marshal(role)
			require.NoError(t, err)

			var decoded Role
			require.NoError(t, json.Unmarshal(out, &decoded))
			assert.Equal(t, role, decoded)
		})
	}
}

func TestDecisionJSON(t *testing.T) {
	out, err := json.Marshal(Resolve(nil, Single(PermMembersView)))
	require.NoError(t, err)

	assert.JSONEq(t, `{"hasPermission":false,"isSuperAdmin":false,"roleName":null,"roleSlug":null}`, string(out))
}
