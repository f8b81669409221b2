package aclkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func membershipFixture() *Membership {
	roles := []Role{
		{ID: "r1", TenantID: "t1", Name: "editor"},
		{ID: "r2", TenantID: "t1", Name: "viewer"},
	}
	perms := []Permission{
		{ID: "p1", TenantID: "t1", Name: "view.post", Resource: "post", Action: "view"},
		{ID: "p2", TenantID: "t1", Name: "update.post", Resource: "post", Action: "update"},
	}
	return NewMembership("t1", "user1", roles, perms)
}

func superadminMembership() *Membership {
	roles := []Role{
		{ID: "r9", TenantID: "t1", Name: "superadmin", IsSuperadmin: true},
	}
	return NewMembership("t1", "boss", roles, nil)
}

// TestMembership_HasRole tests role checks on a resolved membership
func TestMembership_HasRole(t *testing.T) {
	m := membershipFixture()

	assert.True(t, m.HasRole(RoleByName("editor")))
	assert.True(t, m.HasRole(RoleByName("viewer")))
	assert.False(t, m.HasRole(RoleByName("admin")))
	assert.False(t, m.HasRole(RoleRef{}))

	assert.True(t, m.HasRole(RoleByID("r1")))
	assert.False(t, m.HasRole(RoleByID("r99")))
	assert.True(t, m.HasRole(RoleEntity(&Role{ID: "r2", TenantID: "t1", Name: "viewer"})))
}

// TestMembership_HasRole_SuperadminNoBypass verifies that the superadmin
// flag does not make role checks pass for roles the user does not hold.
func TestMembership_HasRole_SuperadminNoBypass(t *testing.T) {
	m := superadminMembership()

	assert.True(t, m.HasRole(RoleByName("superadmin")))
	assert.False(t, m.HasRole(RoleByName("editor")))
}

// TestMembership_HasPermission tests permission checks
func TestMembership_HasPermission(t *testing.T) {
	m := membershipFixture()

	assert.True(t, m.HasPermission(PermissionByName("view.post")))
	assert.True(t, m.HasPermission(PermissionFor("post", "update")))
	assert.False(t, m.HasPermission(PermissionByName("delete.post")))
	assert.False(t, m.HasPermission(PermissionRef{}))

	assert.True(t, m.HasPermission(PermissionByID("p1")))
	assert.False(t, m.HasPermission(PermissionByID("p99")))
}

// TestMembership_SuperadminBypass verifies that superadmins hold every
// permission, including names that were never created.
func TestMembership_SuperadminBypass(t *testing.T) {
	m := superadminMembership()

	assert.True(t, m.IsSuperadmin())
	assert.True(t, m.HasPermission(PermissionByName("delete.post")))
	assert.True(t, m.HasPermission(PermissionByName("does.not.exist")))
	assert.True(t, m.HasAnyPermission())
	assert.True(t, m.HasAllPermissions(PermissionRefs("a.b", "c.d", "e.f")...))
}

// TestMembership_HasAnyPermission tests the any-of combinator
func TestMembership_HasAnyPermission(t *testing.T) {
	m := membershipFixture()

	assert.True(t, m.HasAnyPermission(PermissionRefs("delete.post", "view.post")...))
	assert.False(t, m.HasAnyPermission(PermissionRefs("delete.post", "create.post")...))

	// Empty list: nothing can match.
	assert.False(t, m.HasAnyPermission())
}

// TestMembership_HasAllPermissions tests the all-of combinator
func TestMembership_HasAllPermissions(t *testing.T) {
	m := membershipFixture()

	assert.True(t, m.HasAllPermissions(PermissionRefs("view.post", "update.post")...))
	assert.False(t, m.HasAllPermissions(PermissionRefs("view.post", "delete.post")...))

	// Vacuous truth on the empty list.
	assert.True(t, m.HasAllPermissions())
}

// TestMembership_EmptyUser tests a user with no roles at all
func TestMembership_EmptyUser(t *testing.T) {
	m := NewMembership("t1", "nobody", nil, nil)

	assert.True(t, m.IsEmpty())
	assert.False(t, m.IsSuperadmin())
	assert.False(t, m.HasRole(RoleByName("editor")))
	assert.False(t, m.HasPermission(PermissionByName("view.post")))
	assert.False(t, m.HasAnyPermission(PermissionByName("view.post")))
	assert.True(t, m.HasAllPermissions())
	assert.Empty(t, m.RoleNames())
	assert.Empty(t, m.Permissions())
}

// TestMembership_Accessors tests the sorted accessor views
func TestMembership_Accessors(t *testing.T) {
	m := membershipFixture()

	assert.Equal(t, []string{"editor", "viewer"}, m.RoleNames())
	assert.Equal(t, []string{"update.post", "view.post"}, m.Permissions())

	roles := m.Roles()
	assert.Len(t, roles, 2)
	assert.Equal(t, "editor", roles[0].Name)
	assert.Equal(t, "viewer", roles[1].Name)
	assert.False(t, m.IsEmpty())
}

// TestMembership_DuplicateRoleNames verifies the last role wins on
// name collisions and that superadmin stays sticky.
func TestMembership_DuplicateRoleNames(t *testing.T) {
	roles := []Role{
		{ID: "r1", TenantID: "t1", Name: "ops", IsSuperadmin: true},
		{ID: "r2", TenantID: "t1", Name: "ops"},
	}
	m := NewMembership("t1", "user1", roles, nil)

	assert.True(t, m.IsSuperadmin())
	assert.Equal(t, []string{"ops"}, m.RoleNames())
}
