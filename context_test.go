package aclkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTenantIDContext tests tenant ID storage and retrieval
func TestTenantIDContext(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "", TenantID(ctx))

	ctx = WithTenantID(ctx, "tenant1")
	assert.Equal(t, "tenant1", TenantID(ctx))
	assert.Equal(t, "tenant1", MustTenantID(ctx))
}

// TestMustTenantID_Panics tests that MustTenantID panics without a tenant
func TestMustTenantID_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustTenantID(context.Background())
	})
}

// TestUserIDContext tests user ID storage and retrieval
func TestUserIDContext(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "", UserID(ctx))

	ctx = WithUserID(ctx, "user42")
	assert.Equal(t, "user42", UserID(ctx))
}

// TestActorID_FallsBackToUserID tests that the actor defaults to the user
func TestActorID_FallsBackToUserID(t *testing.T) {
	ctx := WithUserID(context.Background(), "user42")
	assert.Equal(t, "user42", ActorID(ctx))

	ctx = WithActorID(ctx, "admin1")
	assert.Equal(t, "admin1", ActorID(ctx))
	assert.Equal(t, "user42", UserID(ctx))
}

// TestRequestMetadataContext tests IP, user agent and request ID helpers
func TestRequestMetadataContext(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "", IPAddress(ctx))
	assert.Equal(t, "", UserAgent(ctx))
	assert.Equal(t, "", RequestID(ctx))

	ctx = WithIPAddress(ctx, "203.0.113.9")
	ctx = WithUserAgent(ctx, "test-agent/1.0")
	ctx = WithRequestID(ctx, "req-1")

	assert.Equal(t, "203.0.113.9", IPAddress(ctx))
	assert.Equal(t, "test-agent/1.0", UserAgent(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
}

// TestMembershipContext tests membership storage and retrieval
func TestMembershipContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, MembershipFromContext(ctx))

	m := NewMembership("t1", "user1", nil, nil)
	ctx = WithMembership(ctx, m)
	assert.Same(t, m, MembershipFromContext(ctx))
}

// TestAuditContext_RoundTrip tests the bulk audit helpers
func TestAuditContext_RoundTrip(t *testing.T) {
	ac := AuditContext{
		ActorID:   "admin1",
		IPAddress: "203.0.113.9",
		UserAgent: "test-agent",
		RequestID: "req-1",
	}

	ctx := WithAuditContext(context.Background(), ac)
	assert.Equal(t, ac, GetAuditContext(ctx))
}

// TestAuditContext_PartialValues tests that empty fields are not stored
func TestAuditContext_PartialValues(t *testing.T) {
	ctx := WithUserID(context.Background(), "user42")
	ctx = WithAuditContext(ctx, AuditContext{RequestID: "req-9"})

	got := GetAuditContext(ctx)
	assert.Equal(t, "user42", got.ActorID) // falls back to user ID
	assert.Equal(t, "req-9", got.RequestID)
	assert.Equal(t, "", got.IPAddress)
	assert.Equal(t, "", got.UserAgent)
}
