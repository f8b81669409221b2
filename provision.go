package aclkit

import (
	"context"
	"log/slog"
)

// SuperadminRoleName is the reserved name of the role created by the
// first-user bootstrap. The superadmin behavior itself hangs off the role's
// IsSuperadmin flag, not this name; renaming the role later does not demote
// anyone.
const SuperadminRoleName = "superadmin"

// UserCounter reports how many users exist in a tenant. The hosting
// application owns the user table; the kit only needs the count to detect
// the first user.
type UserCounter interface {
	CountUsers(ctx context.Context, tenantID string) (int, error)
}

// UserCounterFunc adapts a function to the UserCounter interface.
type UserCounterFunc func(ctx context.Context, tenantID string) (int, error)

// CountUsers implements UserCounter.
func (f UserCounterFunc) CountUsers(ctx context.Context, tenantID string) (int, error) {
	return f(ctx, tenantID)
}

// Provisioner bootstraps tenants: when the first user of a tenant is
// created, it gets the superadmin role. Wire UserCreated into the host's
// user-creation path, after the user row is committed.
type Provisioner struct {
	service *Service
	users   UserCounter
	logger  *slog.Logger
}

// NewProvisioner creates a Provisioner backed by the given service and the
// host's user counter.
func NewProvisioner(service *Service, users UserCounter) *Provisioner {
	return &Provisioner{
		service: service,
		users:   users,
		logger:  service.logger,
	}
}

// UserCreated handles a user-created event. If the new user is the first in
// its tenant, the superadmin role is created if missing and assigned to the
// user.
//
// Failures are logged, never returned: provisioning is fire-and-forget with
// respect to the user creation that triggered it, and must not fail it.
//
// If two first users are created concurrently, both callers can observe a
// count of one and both end up superadmin. The get-or-create goes through
// the unique role-name constraint, so the role itself is never duplicated;
// the double promotion is accepted.
func (p *Provisioner) UserCreated(ctx context.Context, tenantID, userID string) {
	if tenantID == "" || userID == "" {
		p.logger.WarnContext(ctx, "aclkit: user created event missing tenant or user",
			"tenant_id", tenantID, "user_id", userID)
		return
	}

	count, err := p.users.CountUsers(ctx, tenantID)
	if err != nil {
		p.logger.ErrorContext(ctx, "aclkit: superadmin bootstrap: user count failed",
			"tenant_id", tenantID, "user_id", userID, "error", err)
		return
	}
	if count != 1 {
		return
	}

	role, err := p.service.EnsureSuperadminRole(ctx, tenantID)
	if err != nil {
		p.logger.ErrorContext(ctx, "aclkit: superadmin bootstrap: role creation failed",
			"tenant_id", tenantID, "user_id", userID, "error", err)
		return
	}

	if err := p.service.AssignRole(ctx, tenantID, userID, RoleEntity(role)); err != nil {
		p.logger.ErrorContext(ctx, "aclkit: superadmin bootstrap: role assignment failed",
			"tenant_id", tenantID, "user_id", userID, "error", err)
		return
	}

	p.logger.InfoContext(ctx, "aclkit: first user promoted to superadmin",
		"tenant_id", tenantID, "user_id", userID)
}
