package aclkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// checksFixture primes a cache-backed service with one editor and one
// superadmin so the check surface can be exercised without a database.
func checksFixture() *Service {
	boss := NewMembership("t1",
		"boss",
		[]Role{{ID: "r9", TenantID: "t1", Name: "superadmin", IsSuperadmin: true}},
		nil)
	return cachedService(editorMembership(), boss)
}

// TestService_HasRole tests the boolean role check
func TestService_HasRole(t *testing.T) {
	s := checksFixture()
	ctx := context.Background()

	assert.True(t, s.HasRole(ctx, "t1", "user1", RoleByName("editor")))
	assert.False(t, s.HasRole(ctx, "t1", "user1", RoleByName("admin")))

	// Missing identity resolves to false, never an error.
	assert.False(t, s.HasRole(ctx, "", "user1", RoleByName("editor")))
	assert.False(t, s.HasRole(ctx, "t1", "", RoleByName("editor")))
}

// TestService_IsSuperadmin tests the superadmin check
func TestService_IsSuperadmin(t *testing.T) {
	s := checksFixture()
	ctx := context.Background()

	assert.True(t, s.IsSuperadmin(ctx, "t1", "boss"))
	assert.False(t, s.IsSuperadmin(ctx, "t1", "user1"))
}

// TestService_HasPermission tests the boolean permission check
func TestService_HasPermission(t *testing.T) {
	s := checksFixture()
	ctx := context.Background()

	assert.True(t, s.HasPermission(ctx, "t1", "user1", PermissionByName("view.post")))
	assert.False(t, s.HasPermission(ctx, "t1", "user1", PermissionByName("delete.post")))

	// Superadmin passes any permission, even unknown names.
	assert.True(t, s.HasPermission(ctx, "t1", "boss", PermissionByName("anything.at.all")))
}

// TestService_HasAnyAllPermissions tests the combinators
func TestService_HasAnyAllPermissions(t *testing.T) {
	s := checksFixture()
	ctx := context.Background()

	assert.True(t, s.HasAnyPermission(ctx, "t1", "user1", PermissionRefs("delete.post", "view.post")...))
	assert.False(t, s.HasAnyPermission(ctx, "t1", "user1", PermissionRefs("delete.post")...))
	assert.False(t, s.HasAnyPermission(ctx, "t1", "user1"))

	assert.True(t, s.HasAllPermissions(ctx, "t1", "user1", PermissionRefs("view.post", "update.post")...))
	assert.False(t, s.HasAllPermissions(ctx, "t1", "user1", PermissionRefs("view.post", "delete.post")...))
	assert.True(t, s.HasAllPermissions(ctx, "t1", "user1"))

	assert.True(t, s.HasAnyPermission(ctx, "t1", "boss"))
	assert.True(t, s.HasAllPermissions(ctx, "t1", "boss", PermissionRefs("a.b", "c.d")...))
}

// TestService_Can tests the resource/action convenience check
func TestService_Can(t *testing.T) {
	s := checksFixture()
	ctx := context.Background()

	assert.True(t, s.Can(ctx, "t1", "user1", "view", "post"))
	assert.True(t, s.Can(ctx, "t1", "user1", "update", "post"))
	assert.False(t, s.Can(ctx, "t1", "user1", "delete", "post"))
	assert.True(t, s.Can(ctx, "t1", "boss", "delete", "post"))
}
