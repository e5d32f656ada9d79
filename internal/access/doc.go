// Package access decides whether an actor may perform an action.
//
// Roles store their grants in one of two schemas that coexist in the data:
//   - the legacy matrix: category -> action -> granted
//   - the normalized list: references to permission definitions
//
// Callers ask in several shapes:
//   - a single permission: Single("members.create")
//   - an identifier-addressed permission: Single("65f1c0de9a1b2c3d4e5f6a7b")
//   - all of a list: AllOf("members.view", "members.export")
//   - any of a list: AnyOf("members.edit", "members.delete")
//
// A role with the slug "super_admin" is granted everything.
//
// Resolve is a pure function over the actor snapshot it is handed. It never
// fetches, caches or mutates permission data and is safe for concurrent use.
//
// Example usage:
//
//	decision := access.Resolve(actor, access.AnyOf(access.PermMembersEdit, access.PermMembersDelete))
//	if decision.HasPermission {
//	    ...
//	}
package access
