package aclkit

import (
	"context"
)

// Context keys for aclkit values.
type contextKey string

const (
	contextKeyTenantID   contextKey = "aclkit:tenant_id"
	contextKeyUserID     contextKey = "aclkit:user_id"
	contextKeyActorID    contextKey = "aclkit:actor_id"
	contextKeyIPAddress  contextKey = "aclkit:ip_address"
	contextKeyUserAgent  contextKey = "aclkit:user_agent"
	contextKeyRequestID  contextKey = "aclkit:request_id"
	contextKeyMembership contextKey = "aclkit:membership"
)

// WithTenantID adds a tenant ID to the context. The service API takes the
// tenant explicitly on every call; these helpers exist for the HTTP
// middleware and for hosts that carry the tenant through request contexts.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, contextKeyTenantID, tenantID)
}

// TenantID retrieves the tenant ID from context. Returns empty string if
// not set.
func TenantID(ctx context.Context) string {
	if s, ok := ctx.Value(contextKeyTenantID).(string); ok {
		return s
	}
	return ""
}

// MustTenantID retrieves the tenant ID from context. Panics if not set.
// Use this only in handlers that cannot run without a tenant.
func MustTenantID(ctx context.Context) string {
	tenantID := TenantID(ctx)
	if tenantID == "" {
		panic("aclkit: tenant ID not in context")
	}
	return tenantID
}

// WithUserID adds a user ID to the context. This is the user being checked
// for permissions.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKeyUserID, userID)
}

// UserID retrieves the user ID from context. Returns empty string if not set.
func UserID(ctx context.Context) string {
	if s, ok := ctx.Value(contextKeyUserID).(string); ok {
		return s
	}
	return ""
}

// WithActorID adds an actor ID to the context. This is the user performing
// the mutation, recorded in the audit log. Often the same as the user ID,
// but can differ for administrative actions.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, contextKeyActorID, actorID)
}

// ActorID retrieves the actor ID from context. Falls back to the user ID if
// the actor ID is not explicitly set.
func ActorID(ctx context.Context) string {
	if s, ok := ctx.Value(contextKeyActorID).(string); ok {
		return s
	}
	return UserID(ctx)
}

// WithIPAddress adds the client IP address to the context (for audit).
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKeyIPAddress, ip)
}

// IPAddress retrieves the IP address from context.
func IPAddress(ctx context.Context) string {
	if s, ok := ctx.Value(contextKeyIPAddress).(string); ok {
		return s
	}
	return ""
}

// WithUserAgent adds the user agent to the context (for audit).
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, contextKeyUserAgent, ua)
}

// UserAgent retrieves the user agent from context.
func UserAgent(ctx context.Context) string {
	if s, ok := ctx.Value(contextKeyUserAgent).(string); ok {
		return s
	}
	return ""
}

// WithRequestID adds a request ID to the context (for audit and correlation).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// RequestID retrieves the request ID from context.
func RequestID(ctx context.Context) string {
	if s, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return s
	}
	return ""
}

// WithMembership adds a resolved Membership to the context. This is set by
// the middleware and can be retrieved in handlers.
func WithMembership(ctx context.Context, m *Membership) context.Context {
	return context.WithValue(ctx, contextKeyMembership, m)
}

// MembershipFromContext retrieves the Membership from context.
// Returns nil if not set.
func MembershipFromContext(ctx context.Context) *Membership {
	if m, ok := ctx.Value(contextKeyMembership).(*Membership); ok {
		return m
	}
	return nil
}

// AuditContext holds all audit-related information from context.
type AuditContext struct {
	ActorID   string
	IPAddress string
	UserAgent string
	RequestID string
}

// GetAuditContext extracts all audit information from context.
func GetAuditContext(ctx context.Context) AuditContext {
	return AuditContext{
		ActorID:   ActorID(ctx),
		IPAddress: IPAddress(ctx),
		UserAgent: UserAgent(ctx),
		RequestID: RequestID(ctx),
	}
}

// WithAuditContext adds all audit information to context at once.
func WithAuditContext(ctx context.Context, ac AuditContext) context.Context {
	if ac.ActorID != "" {
		ctx = WithActorID(ctx, ac.ActorID)
	}
	if ac.IPAddress != "" {
		ctx = WithIPAddress(ctx, ac.IPAddress)
	}
	if ac.UserAgent != "" {
		ctx = WithUserAgent(ctx, ac.UserAgent)
	}
	if ac.RequestID != "" {
		ctx = WithRequestID(ctx, ac.RequestID)
	}
	return ctx
}
