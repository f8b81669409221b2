package aclkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func policyFixture() *Service {
	user := NewMembership("t1",
		"user1",
		[]Role{{ID: "r1", TenantID: "t1", Name: "editor"}},
		[]Permission{
			{ID: "p1", TenantID: "t1", Name: "view.post", Resource: "post", Action: "view"},
			{ID: "p2", TenantID: "t1", Name: "update.post", Resource: "post", Action: "update"},
		})
	boss := NewMembership("t1",
		"boss",
		[]Role{{ID: "r9", TenantID: "t1", Name: "superadmin", IsSuperadmin: true}},
		nil)
	return cachedService(user, boss)
}

// TestResourcePolicy_Allows tests per-action authorization
func TestResourcePolicy_Allows(t *testing.T) {
	policy := NewResourcePolicy(policyFixture(), "post")
	ctx := context.Background()

	assert.Equal(t, "post", policy.Resource())
	assert.True(t, policy.Allows(ctx, "t1", "user1", "view"))
	assert.True(t, policy.Allows(ctx, "t1", "user1", "update"))
	assert.False(t, policy.Allows(ctx, "t1", "user1", "delete"))
}

// TestResourcePolicy_ActionHelpers tests the named action shortcuts
func TestResourcePolicy_ActionHelpers(t *testing.T) {
	policy := NewResourcePolicy(policyFixture(), "post")
	ctx := context.Background()

	assert.True(t, policy.View(ctx, "t1", "user1"))
	assert.True(t, policy.Update(ctx, "t1", "user1"))
	assert.False(t, policy.Create(ctx, "t1", "user1"))
	assert.False(t, policy.Delete(ctx, "t1", "user1"))
	assert.False(t, policy.Restore(ctx, "t1", "user1"))
	assert.False(t, policy.ForceDelete(ctx, "t1", "user1"))
}

// TestResourcePolicy_Superadmin tests that superadmins pass every action
func TestResourcePolicy_Superadmin(t *testing.T) {
	policy := NewResourcePolicy(policyFixture(), "post")
	ctx := context.Background()

	assert.True(t, policy.View(ctx, "t1", "boss"))
	assert.True(t, policy.ForceDelete(ctx, "t1", "boss"))
	assert.True(t, policy.Allows(ctx, "t1", "boss", "made_up_action"))
}

// TestResourcePolicy_UnknownUser tests that unresolvable users are denied
func TestResourcePolicy_UnknownUser(t *testing.T) {
	policy := NewResourcePolicy(policyFixture(), "post")
	ctx := context.Background()

	assert.False(t, policy.View(ctx, "t1", ""))
	assert.False(t, policy.View(ctx, "", "user1"))
}
