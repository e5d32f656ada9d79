package access

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	membersCreateID = "65f1c0de9a1b2c3d4e5f6a7b"
	membersViewUUID = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
)

func legacyActor() *Actor {
	return &Actor{Role: &Role{
		Slug: "manager",
		Name: "Manager",
		Permissions: LegacyPermissions{
			"members": {"create": true, "delete": false},
		},
	}}
}

func normalizedActor(grants ...PermissionGrant) *Actor {
	return &Actor{Role: &Role{
		Slug:        "viewer",
		Name:        "Viewer",
		Permissions: NormalizedPermissions(grants),
	}}
}

func superAdmin() *Actor {
	return &Actor{Role: &Role{Slug: SuperAdminSlug, Name: "Super Admin"}}
}

func TestResolve_SuperAdminIsGrantedEverything(t *testing.T) {
	requests := []struct {
		name string
		req  Request
	}{
		{"path", Single(PermFinanceView)},
		{"malformed", Single("notadottedpath")},
		{"empty token", Single("")},
		{"unknown identifier", Single("ffffffffffffffffffffffff")},
		{"empty and", AllOf()},
		{"empty or", AnyOf()},
		{"zero request", Request{}},
		{"mixed list", AllOf("members.view", ".broken", membersViewUUID)},
	}

	for _, tt := range requests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Resolve(superAdmin(), tt.req)

			assert.True(t, decision.HasPermission)
			assert.True(t, decision.IsSuperAdmin)
			require.NotNil(t, decision.RoleSlug)
			assert.Equal(t, SuperAdminSlug, *decision.RoleSlug)
			require.NotNil(t, decision.RoleName)
			assert.Equal(t, "Super Admin", *decision.RoleName)
		})
	}
}

func TestResolve_SuperAdminIgnoresPermissionContents(t *testing.T) {
	actor := &Actor{Role: &Role{
		Slug:        SuperAdminSlug,
		Permissions: LegacyPermissions{"members": {"view": false}},
	}}

	assert.True(t, Has(actor, PermMembersView))
}

func TestResolve_Legacy(t *testing.T) {
	actor := legacyActor()

	assert.True(t, Has(actor, "members.create"))
	assert.False(t, Has(actor, "members.delete"))
	assert.False(t, Has(actor, "finance.view"))
	assert.False(t, Has(actor, "members.view"))
}

func TestResolve_LegacyNeverMatchesIdentifiers(t *testing.T) {
	actor := legacyActor()

	assert.False(t, Has(actor, membersCreateID))
	assert.False(t, Has(actor, membersViewUUID))
}

func TestResolve_LegacyLookupIgnoresCase(t *testing.T) {
	actor := legacyActor()

	assert.True(t, Has(actor, "Members.Create"))
	assert.True(t, Has(actor, "members.CREATE"))
	assert.False(t, Has(actor, "MEMBERS.DELETE"), "a stored false stays false")

	mixed := &Actor{Role: &Role{Slug: "manager", Permissions: LegacyPermissions{
		"Events": {"View": true},
	}}}
	assert.True(t, Has(mixed, "events.view"))
	assert.False(t, Has(mixed, "events.create"))
}

func TestResolve_Normalized(t *testing.T) {
	actor := normalizedActor(Grant(PermissionDefinition{
		ID:       membersCreateID,
		Category: "members",
		Action:   "create",
	}))

	assert.True(t, Has(actor, membersCreateID))
	assert.True(t, Has(actor, "members.CREATE"))
	assert.True(t, Has(actor, "MEMBERS.create"))
	assert.False(t, Has(actor, "members.delete"))
	assert.False(t, Has(actor, "65F1C0DE9A1B2C3D4E5F6A7B"), "identifier comparison is case-sensitive")
}

func TestResolve_NormalizedUUIDIdentifier(t *testing.T) {
	actor := normalizedActor(GrantID(membersViewUUID))

	assert.True(t, Has(actor, membersViewUUID))
	assert.False(t, Has(actor, "members.view"), "an id-only grant carries no category or action")
}

func TestResolve_NormalizedDuplicatesAndOrder(t *testing.T) {
	def := PermissionDefinition{ID: membersCreateID, Category: "members", Action: "view"}
	actor := normalizedActor(GrantID("aaaaaaaaaaaaaaaaaaaaaaaa"), Grant(def), Grant(def))

	assert.True(t, Has(actor, "members.view"))
}

func TestResolve_AllOf(t *testing.T) {
	actor := normalizedActor(Grant(PermissionDefinition{Category: "members", Action: "view"}))

	assert.False(t, HasAll(actor, "members.view", "members.export"))
	assert.True(t, HasAll(actor, "members.view"))
	assert.True(t, HasAll(actor), "an empty AND list is vacuously true")
	assert.False(t, HasAll(actor, "members.view", "broken"), "a malformed token fails the list")
}

func TestResolve_AnyOf(t *testing.T) {
	actor := normalizedActor(Grant(PermissionDefinition{Category: "members", Action: "delete"}))

	assert.True(t, HasAny(actor, "members.edit", "members.delete"))
	assert.False(t, HasAny(actor, "members.edit", "members.view"))
	assert.False(t, HasAny(actor), "an empty OR list is false")
	assert.True(t, HasAny(actor, "broken", "members.delete"), "a malformed token does not block other tokens")
}

func TestResolve_MalformedTokens(t *testing.T) {
	actor := normalizedActor(Grant(PermissionDefinition{Category: "members", Action: "view"}))

	var buf bytes.Buffer

	previous := log.Logger
	log.Logger = zerolog.New(&buf)

	t.Cleanup(func() { log.Logger = previous })

	for _, token := range []string{"notadottedpath", ".view", "members.", ".", ""} {
		t.Run(token, func(t *testing.T) {
			buf.Reset()

			assert.NotPanics(t, func() {
				assert.False(t, Has(actor, token))
			})

			var entry struct {
				Level      string `json:"level"`
				Permission string `json:"permission"`
				Error      string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
			assert.Equal(t, zerolog.WarnLevel.String(), entry.Level)
			assert.Equal(t, token, entry.Permission)
			assert.Equal(t, ErrMalformedToken.Error(), entry.Error)
		})
	}
}

func TestResolve_MissingData(t *testing.T) {
	testCases := []struct {
		name  string
		actor *Actor
	}{
		{"nil actor", nil},
		{"no role", &Actor{}},
		{"no permissions", &Actor{Role: &Role{Slug: "empty", Name: "Empty"}}},
		{"empty legacy", &Actor{Role: &Role{Permissions: LegacyPermissions{}}}},
		{"empty normalized", &Actor{Role: &Role{Permissions: NormalizedPermissions{}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Resolve(tc.actor, Single(PermMembersView))

			assert.False(t, decision.HasPermission)
			assert.False(t, decision.IsSuperAdmin)
		})
	}
}

func TestResolve_RoleContext(t *testing.T) {
	decision := Resolve(legacyActor(), Single("members.create"))

	require.NotNil(t, decision.RoleName)
	require.NotNil(t, decision.RoleSlug)
	assert.Equal(t, "Manager", *decision.RoleName)
	assert.Equal(t, "manager", *decision.RoleSlug)
	assert.False(t, decision.IsSuperAdmin)

	decision = Resolve(&Actor{}, Single("members.create"))
	assert.Nil(t, decision.RoleName)
	assert.Nil(t, decision.RoleSlug)
}

func TestResolve_Idempotent(t *testing.T) {
	actor := legacyActor()
	req := AnyOf("members.create", "finance.view")

	first := Resolve(actor, req)
	second := Resolve(actor, req)

	assert.Equal(t, first, second)
	assert.NotSame(t, first.RoleName, second.RoleName, "decisions are built fresh on every call")
}

func TestResolve_Concurrent(t *testing.T) {
	actor := normalizedActor(Grant(PermissionDefinition{Category: "members", Action: "view"}))

	var wg sync.WaitGroup

	results := make([]bool, 64)

	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			results[i] = Has(actor, "members.view")
		}(i)
	}

	wg.Wait()

	for _, got := range results {
		assert.True(t, got)
	}
}
