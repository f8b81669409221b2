package aclkit

import "context"

// Authorizable is the check surface the hosting application exposes on its
// own user type. The host's user does not inherit behavior from the kit; it
// holds a *Member and delegates, or embeds it.
type Authorizable interface {
	IsSuperAdmin(ctx context.Context) bool
	HasRole(ctx context.Context, role RoleRef) bool
	HasPermission(ctx context.Context, permission PermissionRef) bool
	HasAnyPermission(ctx context.Context, permissions ...PermissionRef) bool
	HasAllPermissions(ctx context.Context, permissions ...PermissionRef) bool
}

// Member binds one user in one tenant to the service, giving the host's
// user type its authorization surface without the tenant and user IDs
// repeated on every call.
//
// Example:
//
//	member := service.Member(tenantID, user.ID)
//	if member.HasPermission(ctx, aclkit.PermissionByName("manage.role")) {
//	    ...
//	}
type Member struct {
	service  *Service
	tenantID string
	userID   string
}

var _ Authorizable = (*Member)(nil)

// Member returns the authorization surface for a user in a tenant.
func (s *Service) Member(tenantID, userID string) *Member {
	return &Member{
		service:  s,
		tenantID: tenantID,
		userID:   userID,
	}
}

// TenantID returns the tenant this member is bound to.
func (m *Member) TenantID() string {
	return m.tenantID
}

// UserID returns the user this member is bound to.
func (m *Member) UserID() string {
	return m.userID
}

// Roles returns the member's roles sorted by name.
func (m *Member) Roles(ctx context.Context) ([]Role, error) {
	return m.service.RolesOf(ctx, m.tenantID, m.userID)
}

// IsSuperAdmin reports whether any of the member's roles carries the
// superadmin flag.
func (m *Member) IsSuperAdmin(ctx context.Context) bool {
	return m.service.IsSuperadmin(ctx, m.tenantID, m.userID)
}

// HasRole checks if the member holds the referenced role.
func (m *Member) HasRole(ctx context.Context, role RoleRef) bool {
	return m.service.HasRole(ctx, m.tenantID, m.userID, role)
}

// HasPermission checks if the member holds the referenced permission.
func (m *Member) HasPermission(ctx context.Context, permission PermissionRef) bool {
	return m.service.HasPermission(ctx, m.tenantID, m.userID, permission)
}

// HasAnyPermission checks if the member holds at least one of the
// referenced permissions.
func (m *Member) HasAnyPermission(ctx context.Context, permissions ...PermissionRef) bool {
	return m.service.HasAnyPermission(ctx, m.tenantID, m.userID, permissions...)
}

// HasAllPermissions checks if the member holds every referenced permission.
func (m *Member) HasAllPermissions(ctx context.Context, permissions ...PermissionRef) bool {
	return m.service.HasAllPermissions(ctx, m.tenantID, m.userID, permissions...)
}

// AssignRole assigns a role to the member. Returns the member for chaining.
//
// Example:
//
//	_, err := member.AssignRole(ctx, aclkit.RoleByName("editor"))
func (m *Member) AssignRole(ctx context.Context, role RoleRef) (*Member, error) {
	if err := m.service.AssignRole(ctx, m.tenantID, m.userID, role); err != nil {
		return m, err
	}
	return m, nil
}

// RemoveRole removes a role from the member. Returns the member for chaining.
func (m *Member) RemoveRole(ctx context.Context, role RoleRef) (*Member, error) {
	if err := m.service.RemoveRole(ctx, m.tenantID, m.userID, role); err != nil {
		return m, err
	}
	return m, nil
}

// SyncRoles replaces the member's role set. Returns the member for chaining.
func (m *Member) SyncRoles(ctx context.Context, roles ...RoleRef) (*Member, error) {
	if err := m.service.SyncRoles(ctx, m.tenantID, m.userID, roles...); err != nil {
		return m, err
	}
	return m, nil
}
