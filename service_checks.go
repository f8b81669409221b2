package aclkit

import "context"

// ============================================================================
// CHECK SURFACE
// ============================================================================
//
// All checks are read-only and answer with a plain bool. A reference that
// does not resolve to an existing entity yields false, never an error: the
// check surface treats "permission does not exist" and "user lacks it"
// identically.

// HasRole checks if a user holds the referenced role in the tenant.
//
// Example:
//
//	if service.HasRole(ctx, tenantID, userID, aclkit.RoleByName("editor")) {
//	    // User is an editor
//	}
func (s *Service) HasRole(ctx context.Context, tenantID, userID string, role RoleRef) bool {
	m, err := s.GetMembership(ctx, tenantID, userID)
	if err != nil {
		return false
	}
	return m.HasRole(role)
}

// IsSuperadmin checks if any of the user's roles carries the superadmin flag.
func (s *Service) IsSuperadmin(ctx context.Context, tenantID, userID string) bool {
	m, err := s.GetMembership(ctx, tenantID, userID)
	if err != nil {
		return false
	}
	return m.IsSuperadmin()
}

// HasPermission checks if a user holds the referenced permission in the
// tenant. Superadmins pass every permission check.
//
// Example:
//
//	if service.HasPermission(ctx, tenantID, userID, aclkit.PermissionByName("delete.user")) {
//	    // User can delete users
//	}
func (s *Service) HasPermission(ctx context.Context, tenantID, userID string, permission PermissionRef) bool {
	m, err := s.GetMembership(ctx, tenantID, userID)
	if err != nil {
		return false
	}
	return m.HasPermission(permission)
}

// HasAnyPermission checks if a user holds at least one of the referenced
// permissions.
func (s *Service) HasAnyPermission(ctx context.Context, tenantID, userID string, permissions ...PermissionRef) bool {
	m, err := s.GetMembership(ctx, tenantID, userID)
	if err != nil {
		return false
	}
	return m.HasAnyPermission(permissions...)
}

// HasAllPermissions checks if a user holds every referenced permission.
func (s *Service) HasAllPermissions(ctx context.Context, tenantID, userID string, permissions ...PermissionRef) bool {
	m, err := s.GetMembership(ctx, tenantID, userID)
	if err != nil {
		return false
	}
	return m.HasAllPermissions(permissions...)
}

// Can checks the canonical permission for an action on a resource. It is the
// primitive resource policies compose.
//
// Example:
//
//	if service.Can(ctx, tenantID, userID, "update", "invoice") {
//	    // User holds "update.invoice" or is superadmin
//	}
func (s *Service) Can(ctx context.Context, tenantID, userID, action, resource string) bool {
	return s.HasPermission(ctx, tenantID, userID, PermissionFor(resource, action))
}
