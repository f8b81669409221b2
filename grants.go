package aclkit

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"
)

// ============================================================================
// GRANT MANAGER
// ============================================================================
//
// Mutations resolve refs up front and fail fast with ErrRoleNotFound /
// ErrPermissionNotFound. Idempotence never relies on check-then-act: inserts
// go through ON CONFLICT DO NOTHING against the unique constraints, so
// concurrent identical calls converge on a single row.

// AssignRole assigns a role to a user in the tenant. Assigning a role the
// user already holds is a no-op.
//
// Example:
//
//	err := service.AssignRole(ctx, tenantID, userID, aclkit.RoleByName("editor"))
func (s *Service) AssignRole(ctx context.Context, tenantID, userID string, ref RoleRef) error {
	if userID == "" {
		return NewError(ErrNoUserID, "role assignment requires a user")
	}

	role, err := s.resolveRole(ctx, tenantID, ref)
	if err != nil {
		return err
	}

	previous, err := s.userRoleNames(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	membership := &UserRole{
		TenantID: tenantID,
		UserID:   userID,
		RoleID:   role.ID,
	}

	result, err := s.conn(ctx).NewInsert().
		Model(membership).
		On("CONFLICT (tenant_id, user_id, role_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return dbkitErr(result, err, "AssignRole")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Already assigned.
		return nil
	}

	s.cache.evictUser(tenantID, userID)

	newRoles := append(append([]string(nil), previous...), role.Name)
	sort.Strings(newRoles)

	audit := GetAuditContext(ctx)
	_ = s.logAudit(ctx, &AuditEntry{
		TenantID:      tenantID,
		ActorID:       audit.ActorID,
		Action:        AuditActionAssigned,
		TargetUserID:  userID,
		Role:          role.Name,
		PreviousRoles: previous,
		NewRoles:      newRoles,
		IPAddress:     audit.IPAddress,
		UserAgent:     audit.UserAgent,
		RequestID:     audit.RequestID,
	})

	return nil
}

// RemoveRole removes a role from a user in the tenant. Removing a role the
// user does not hold is a no-op.
func (s *Service) RemoveRole(ctx context.Context, tenantID, userID string, ref RoleRef) error {
	if userID == "" {
		return NewError(ErrNoUserID, "role removal requires a user")
	}

	role, err := s.resolveRole(ctx, tenantID, ref)
	if err != nil {
		return err
	}

	previous, err := s.userRoleNames(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	result, err := s.conn(ctx).NewDelete().
		Model((*UserRole)(nil)).
		Where("tenant_id = ? AND user_id = ? AND role_id = ?", tenantID, userID, role.ID).
		Exec(ctx)
	if err != nil {
		return dbkitErr(result, err, "RemoveRole")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Not assigned; nothing to do.
		return nil
	}

	s.cache.evictUser(tenantID, userID)

	remaining := make([]string, 0, len(previous))
	for _, name := range previous {
		if name != role.Name {
			remaining = append(remaining, name)
		}
	}

	audit := GetAuditContext(ctx)
	_ = s.logAudit(ctx, &AuditEntry{
		TenantID:      tenantID,
		ActorID:       audit.ActorID,
		Action:        AuditActionRemoved,
		TargetUserID:  userID,
		Role:          role.Name,
		PreviousRoles: previous,
		NewRoles:      remaining,
		IPAddress:     audit.IPAddress,
		UserAgent:     audit.UserAgent,
		RequestID:     audit.RequestID,
	})

	return nil
}

// SyncRoles replaces the user's entire role set with exactly the referenced
// roles: extra roles are removed, missing roles added, unchanged roles left
// untouched. Every ref is resolved before anything is written; a single
// unresolvable name aborts the sync with no partial application.
//
// Example:
//
//	err := service.SyncRoles(ctx, tenantID, userID,
//	    aclkit.RoleByName("editor"), aclkit.RoleByName("reviewer"))
func (s *Service) SyncRoles(ctx context.Context, tenantID, userID string, refs ...RoleRef) error {
	if userID == "" {
		return NewError(ErrNoUserID, "role sync requires a user")
	}
	if tenantID == "" {
		return NewError(ErrNoTenant, "role sync requires a tenant")
	}

	// Resolve all before applying anything.
	wanted := make(map[string]*Role, len(refs))
	for _, ref := range refs {
		role, err := s.resolveRole(ctx, tenantID, ref)
		if err != nil {
			return err
		}
		wanted[role.ID] = role
	}

	previous, err := s.userRoleNames(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	err = s.Transaction(ctx, func(ctx context.Context) error {
		var currentIDs []string
		err := s.conn(ctx).NewSelect().
			Model((*UserRole)(nil)).
			Column("role_id").
			Where("tenant_id = ? AND user_id = ?", tenantID, userID).
			Scan(ctx, &currentIDs)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return dbkit.WithErr1(err, "SyncRolesCurrent").Err()
		}

		current := make(map[string]bool, len(currentIDs))
		for _, id := range currentIDs {
			current[id] = true
		}

		for id := range current {
			if _, keep := wanted[id]; keep {
				continue
			}
			result, err := s.conn(ctx).NewDelete().
				Model((*UserRole)(nil)).
				Where("tenant_id = ? AND user_id = ? AND role_id = ?", tenantID, userID, id).
				Exec(ctx)
			if err != nil {
				return dbkitErr(result, err, "SyncRolesRemove")
			}
		}

		for id := range wanted {
			if current[id] {
				continue
			}
			result, err := s.conn(ctx).NewInsert().
				Model(&UserRole{TenantID: tenantID, UserID: userID, RoleID: id}).
				On("CONFLICT (tenant_id, user_id, role_id) DO NOTHING").
				Exec(ctx)
			if err != nil {
				return dbkitErr(result, err, "SyncRolesAdd")
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.cache.evictUser(tenantID, userID)

	names := make([]string, 0, len(wanted))
	for _, role := range wanted {
		names = append(names, role.Name)
	}
	sort.Strings(names)

	audit := GetAuditContext(ctx)
	_ = s.logAudit(ctx, &AuditEntry{
		TenantID:      tenantID,
		ActorID:       audit.ActorID,
		Action:        AuditActionSynced,
		TargetUserID:  userID,
		PreviousRoles: previous,
		NewRoles:      names,
		IPAddress:     audit.IPAddress,
		UserAgent:     audit.UserAgent,
		RequestID:     audit.RequestID,
	})

	return nil
}

// GrantPermission grants a permission to a role. Granting a permission the
// role already holds is a no-op, and so is granting anything to a superadmin
// role: it already passes every check.
func (s *Service) GrantPermission(ctx context.Context, tenantID string, roleRef RoleRef, permRef PermissionRef) error {
	role, err := s.resolveRole(ctx, tenantID, roleRef)
	if err != nil {
		return err
	}
	perm, err := s.resolvePermission(ctx, tenantID, permRef)
	if err != nil {
		return err
	}

	if role.IsSuperadmin {
		return nil
	}

	grant := &RolePermission{
		TenantID:     tenantID,
		RoleID:       role.ID,
		PermissionID: perm.ID,
	}

	result, err := s.conn(ctx).NewInsert().
		Model(grant).
		On("CONFLICT (tenant_id, role_id, permission_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return dbkitErr(result, err, "GrantPermission")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil
	}

	// Any member of the role is affected.
	s.cache.purge()

	audit := GetAuditContext(ctx)
	_ = s.logAudit(ctx, &AuditEntry{
		TenantID:   tenantID,
		ActorID:    audit.ActorID,
		Action:     AuditActionGranted,
		Role:       role.Name,
		Permission: perm.Name,
		IPAddress:  audit.IPAddress,
		UserAgent:  audit.UserAgent,
		RequestID:  audit.RequestID,
	})

	return nil
}

// RevokePermission removes a permission from a role. Revoking a permission
// the role does not hold is a no-op.
func (s *Service) RevokePermission(ctx context.Context, tenantID string, roleRef RoleRef, permRef PermissionRef) error {
	role, err := s.resolveRole(ctx, tenantID, roleRef)
	if err != nil {
		return err
	}
	perm, err := s.resolvePermission(ctx, tenantID, permRef)
	if err != nil {
		return err
	}

	result, err := s.conn(ctx).NewDelete().
		Model((*RolePermission)(nil)).
		Where("tenant_id = ? AND role_id = ? AND permission_id = ?", tenantID, role.ID, perm.ID).
		Exec(ctx)
	if err != nil {
		return dbkitErr(result, err, "RevokePermission")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil
	}

	s.cache.purge()

	audit := GetAuditContext(ctx)
	_ = s.logAudit(ctx, &AuditEntry{
		TenantID:   tenantID,
		ActorID:    audit.ActorID,
		Action:     AuditActionRevoked,
		Role:       role.Name,
		Permission: perm.Name,
		IPAddress:  audit.IPAddress,
		UserAgent:  audit.UserAgent,
		RequestID:  audit.RequestID,
	})

	return nil
}

// RevokeAllPermissions removes every permission from a role. Always
// succeeds, including on a role with no grants.
func (s *Service) RevokeAllPermissions(ctx context.Context, tenantID string, ref RoleRef) error {
	role, err := s.resolveRole(ctx, tenantID, ref)
	if err != nil {
		return err
	}

	result, err := s.conn(ctx).NewDelete().
		Model((*RolePermission)(nil)).
		Where("tenant_id = ? AND role_id = ?", tenantID, role.ID).
		Exec(ctx)
	if err != nil {
		return dbkitErr(result, err, "RevokeAllPermissions")
	}

	s.cache.purge()

	audit := GetAuditContext(ctx)
	_ = s.logAudit(ctx, &AuditEntry{
		TenantID:  tenantID,
		ActorID:   audit.ActorID,
		Action:    AuditActionRevokedAll,
		Role:      role.Name,
		IPAddress: audit.IPAddress,
		UserAgent: audit.UserAgent,
		RequestID: audit.RequestID,
	})

	return nil
}

// HasGrant checks if a grant row exists for a role and permission, without
// the superadmin short-circuit. Mostly useful for admin UIs that show the
// explicit grant matrix.
func (s *Service) HasGrant(ctx context.Context, tenantID string, roleRef RoleRef, permRef PermissionRef) bool {
	role, err := s.resolveRole(ctx, tenantID, roleRef)
	if err != nil {
		return false
	}
	perm, err := s.resolvePermission(ctx, tenantID, permRef)
	if err != nil {
		return false
	}

	exists, err := dbkit.Exists[RolePermission](ctx, s.conn(ctx), func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("tenant_id = ? AND role_id = ? AND permission_id = ?", tenantID, role.ID, perm.ID)
	})
	if err != nil {
		return false
	}
	return exists
}

// CountRoles returns the number of roles assigned to a user in the tenant.
func (s *Service) CountRoles(ctx context.Context, tenantID, userID string) (int, error) {
	return dbkit.Count[UserRole](ctx, s.conn(ctx), func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("tenant_id = ? AND user_id = ?", tenantID, userID)
	})
}

// userRoleNames returns the names of a user's roles, for audit snapshots.
func (s *Service) userRoleNames(ctx context.Context, tenantID, userID string) ([]string, error) {
	var names []string
	err := dbkit.WithErr1(s.conn(ctx).NewRaw(
		"SELECT r.name FROM acl_roles r JOIN acl_user_role ur ON ur.role_id = r.id WHERE ur.tenant_id = ? AND ur.user_id = ? ORDER BY r.name",
		tenantID, userID).Scan(ctx, &names), "UserRoleNames").Err()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return names, nil
}
