package aclkit

import (
	"context"
	"sort"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// MEMBERSHIP RESOLVER
// ============================================================================

// Membership is the resolved authorization state of one user in one tenant:
// the closed set of roles directly assigned to the user and the union of the
// permissions those roles carry. A membership with a superadmin role
// satisfies every permission check without consulting explicit grants.
type Membership struct {
	TenantID string
	UserID   string

	roles      map[string]Role
	roleIDs    map[string]struct{}
	perms      map[string]struct{}
	permIDs    map[string]struct{}
	superadmin bool
}

// NewMembership builds a Membership from loaded roles and permissions.
// Used by the resolver and directly constructible in tests.
func NewMembership(tenantID, userID string, roles []Role, perms []Permission) *Membership {
	m := &Membership{
		TenantID: tenantID,
		UserID:   userID,
		roles:    make(map[string]Role, len(roles)),
		roleIDs:  make(map[string]struct{}, len(roles)),
		perms:    make(map[string]struct{}, len(perms)),
		permIDs:  make(map[string]struct{}, len(perms)),
	}

	for _, role := range roles {
		m.roles[role.Name] = role
		if role.ID != "" {
			m.roleIDs[role.ID] = struct{}{}
		}
		if role.IsSuperadmin {
			m.superadmin = true
		}
	}
	for _, perm := range perms {
		m.perms[perm.Name] = struct{}{}
		if perm.ID != "" {
			m.permIDs[perm.ID] = struct{}{}
		}
	}

	return m
}

// IsSuperadmin reports whether any of the user's roles carries the
// superadmin flag.
func (m *Membership) IsSuperadmin() bool {
	return m.superadmin
}

// HasRole reports whether the referenced role is among the user's roles.
// Superadmin does not bypass role checks; only permission checks.
func (m *Membership) HasRole(ref RoleRef) bool {
	if ref.IsZero() {
		return false
	}
	if name := ref.Name(); name != "" {
		_, ok := m.roles[name]
		return ok
	}
	_, ok := m.roleIDs[ref.ID()]
	return ok
}

// HasPermission reports whether the user holds the referenced permission,
// short-circuiting true for superadmins. A name that matches no granted
// permission simply yields false; the resolver does not distinguish
// "permission does not exist" from "user lacks it".
func (m *Membership) HasPermission(ref PermissionRef) bool {
	if m.superadmin {
		return true
	}
	if ref.IsZero() {
		return false
	}
	if name := ref.Name(); name != "" {
		_, ok := m.perms[name]
		return ok
	}
	_, ok := m.permIDs[ref.ID()]
	return ok
}

// HasAnyPermission reports whether the user holds at least one of the
// referenced permissions. Superadmins pass regardless of the list.
func (m *Membership) HasAnyPermission(refs ...PermissionRef) bool {
	if m.superadmin {
		return true
	}
	for _, ref := range refs {
		if m.HasPermission(ref) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the user holds every referenced
// permission. Superadmins pass regardless of the list.
func (m *Membership) HasAllPermissions(refs ...PermissionRef) bool {
	if m.superadmin {
		return true
	}
	for _, ref := range refs {
		if !m.HasPermission(ref) {
			return false
		}
	}
	return true
}

// Roles returns the user's roles sorted by name.
func (m *Membership) Roles() []Role {
	roles := make([]Role, 0, len(m.roles))
	for _, role := range m.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles
}

// RoleNames returns the user's role names sorted.
func (m *Membership) RoleNames() []string {
	names := make([]string, 0, len(m.roles))
	for name := range m.roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Permissions returns the names of the explicitly granted permissions,
// sorted. Resolution skips grant loading for superadmins, so memberships
// resolved for them report an empty list; every check passes regardless.
func (m *Membership) Permissions() []string {
	names := make([]string, 0, len(m.perms))
	for name := range m.perms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsEmpty reports whether the user holds no roles at all.
func (m *Membership) IsEmpty() bool {
	return len(m.roles) == 0
}

// GetMembership resolves the roles and permissions of a user in a tenant.
// This is a pure read over current state; when the membership cache is
// enabled the result may be up to the cache TTL old, and every grant
// manager mutation invalidates the affected entries.
func (s *Service) GetMembership(ctx context.Context, tenantID, userID string) (*Membership, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "membership resolution requires a tenant")
	}
	if userID == "" {
		return nil, NewError(ErrNoUserID, "membership resolution requires a user")
	}

	if m, ok := s.cache.get(tenantID, userID); ok {
		return m, nil
	}

	var roles []Role
	err := dbkit.WithErr1(s.conn(ctx).NewSelect().
		Model(&roles).
		Join("JOIN acl_user_role AS ur ON ur.role_id = r.id").
		Where("ur.tenant_id = ? AND ur.user_id = ? AND r.tenant_id = ?", tenantID, userID, tenantID).
		Scan(ctx), "GetMembershipRoles").Err()
	if err != nil {
		return nil, err
	}

	superadmin := false
	for _, role := range roles {
		if role.IsSuperadmin {
			superadmin = true
			break
		}
	}

	// Superadmins pass every permission check; loading the explicit grants
	// would not change any answer.
	var perms []Permission
	if len(roles) > 0 && !superadmin {
		err = dbkit.WithErr1(s.conn(ctx).NewSelect().
			Model(&perms).
			Distinct().
			Join("JOIN acl_role_permission AS rp ON rp.permission_id = p.id").
			Join("JOIN acl_user_role AS ur ON ur.role_id = rp.role_id").
			Where("ur.tenant_id = ? AND ur.user_id = ? AND p.tenant_id = ?", tenantID, userID, tenantID).
			Scan(ctx), "GetMembershipPermissions").Err()
		if err != nil {
			return nil, err
		}
	}

	m := NewMembership(tenantID, userID, roles, perms)
	s.cache.set(m)
	return m, nil
}

// RolesOf returns the roles directly assigned to the user in the tenant,
// sorted by name.
func (s *Service) RolesOf(ctx context.Context, tenantID, userID string) ([]Role, error) {
	m, err := s.GetMembership(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return m.Roles(), nil
}

// PermissionsOf returns the names of permissions explicitly granted to the
// user through its roles, sorted. Superadmins pass every check without
// explicit grants and resolve with an empty list here; callers that need
// the distinction should check IsSuperadmin on the membership.
func (s *Service) PermissionsOf(ctx context.Context, tenantID, userID string) ([]string, error) {
	m, err := s.GetMembership(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return m.Permissions(), nil
}

// ListRoleMembers returns the IDs of users holding the referenced role in
// the tenant.
func (s *Service) ListRoleMembers(ctx context.Context, tenantID string, ref RoleRef) ([]string, error) {
	role, err := s.resolveRole(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}

	var userIDs []string
	err = dbkit.WithErr1(s.conn(ctx).NewRaw(
		"SELECT DISTINCT user_id FROM acl_user_role WHERE tenant_id = ? AND role_id = ?",
		tenantID, role.ID).Scan(ctx, &userIDs), "ListRoleMembers").Err()
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
