package aclkit

import (
	"context"
	"database/sql"
	"time"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// ENTITY STORE
// ============================================================================

// dbkitErr wraps an exec result with dbkit's chainable error context.
func dbkitErr(result sql.Result, err error, op string) error {
	return dbkit.WithErr(result, err, op).Err()
}

// CreateRole creates a role in the tenant. Fails with ErrRoleExists if the
// name is already taken within the tenant.
func (s *Service) CreateRole(ctx context.Context, tenantID, name, description string, isSuperadmin bool) (*Role, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "role creation requires a tenant")
	}
	if name == "" {
		return nil, NewError(ErrRoleNotFound, "role name cannot be empty").WithTenant(tenantID)
	}

	role := &Role{
		TenantID:     tenantID,
		Name:         name,
		Description:  description,
		IsSuperadmin: isSuperadmin,
	}

	result, err := s.conn(ctx).NewInsert().Model(role).Returning("*").Exec(ctx)
	if err != nil {
		if dbkit.IsDuplicate(err) {
			return nil, NewError(ErrRoleExists, "a role with this name exists in the tenant").
				WithTenant(tenantID).
				WithRole(name)
		}
		return nil, dbkitErr(result, err, "CreateRole")
	}

	return role, nil
}

// CreatePermission creates a permission in the tenant. The canonical name is
// derived from the resource and action pair. Fails with ErrPermissionExists
// on a duplicate name within the tenant.
func (s *Service) CreatePermission(ctx context.Context, tenantID, resource, action, description string) (*Permission, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "permission creation requires a tenant")
	}
	if resource == "" || action == "" {
		return nil, NewError(ErrPermissionNotFound, "permission requires a resource and an action").
			WithTenant(tenantID)
	}

	perm := &Permission{
		TenantID:    tenantID,
		Name:        PermissionName(resource, action),
		Description: description,
		Resource:    resource,
		Action:      action,
	}

	result, err := s.conn(ctx).NewInsert().Model(perm).Returning("*").Exec(ctx)
	if err != nil {
		if dbkit.IsDuplicate(err) {
			return nil, NewError(ErrPermissionExists, "a permission with this name exists in the tenant").
				WithTenant(tenantID).
				WithPermission(perm.Name)
		}
		return nil, dbkitErr(result, err, "CreatePermission")
	}

	return perm, nil
}

// FindRoleByName returns the role with the given name in the tenant, or
// ErrRoleNotFound.
func (s *Service) FindRoleByName(ctx context.Context, tenantID, name string) (*Role, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "role lookup requires a tenant")
	}

	var role Role
	err := dbkit.WithErr1(s.conn(ctx).NewSelect().
		Model(&role).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Limit(1).
		Scan(ctx), "FindRoleByName").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrRoleNotFound, "no role with this name in the tenant").
				WithTenant(tenantID).
				WithRole(name)
		}
		return nil, err
	}
	return &role, nil
}

// FindPermissionByName returns the permission with the given canonical name
// in the tenant, or ErrPermissionNotFound.
func (s *Service) FindPermissionByName(ctx context.Context, tenantID, name string) (*Permission, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "permission lookup requires a tenant")
	}

	var perm Permission
	err := dbkit.WithErr1(s.conn(ctx).NewSelect().
		Model(&perm).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Limit(1).
		Scan(ctx), "FindPermissionByName").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrPermissionNotFound, "no permission with this name in the tenant").
				WithTenant(tenantID).
				WithPermission(name)
		}
		return nil, err
	}
	return &perm, nil
}

// GetRole returns the role with the given ID in the tenant, or
// ErrRoleNotFound.
func (s *Service) GetRole(ctx context.Context, tenantID, id string) (*Role, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "role lookup requires a tenant")
	}

	var role Role
	err := dbkit.WithErr1(s.conn(ctx).NewSelect().
		Model(&role).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Limit(1).
		Scan(ctx), "GetRole").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrRoleNotFound, "no role with this ID in the tenant").
				WithTenant(tenantID)
		}
		return nil, err
	}
	return &role, nil
}

// GetPermission returns the permission with the given ID in the tenant, or
// ErrPermissionNotFound.
func (s *Service) GetPermission(ctx context.Context, tenantID, id string) (*Permission, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "permission lookup requires a tenant")
	}

	var perm Permission
	err := dbkit.WithErr1(s.conn(ctx).NewSelect().
		Model(&perm).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Limit(1).
		Scan(ctx), "GetPermission").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, NewError(ErrPermissionNotFound, "no permission with this ID in the tenant").
				WithTenant(tenantID)
		}
		return nil, err
	}
	return &perm, nil
}

// ListRoles returns all roles in the tenant ordered by name.
func (s *Service) ListRoles(ctx context.Context, tenantID string) ([]Role, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "role listing requires a tenant")
	}

	var roles []Role
	err := dbkit.WithErr1(s.conn(ctx).NewSelect().
		Model(&roles).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Scan(ctx), "ListRoles").Err()
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// ListPermissions returns all permissions in the tenant ordered by name.
func (s *Service) ListPermissions(ctx context.Context, tenantID string) ([]Permission, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "permission listing requires a tenant")
	}

	var perms []Permission
	err := dbkit.WithErr1(s.conn(ctx).NewSelect().
		Model(&perms).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Scan(ctx), "ListPermissions").Err()
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// ListPermissionsForResource returns the tenant's permissions for a resource.
func (s *Service) ListPermissionsForResource(ctx context.Context, tenantID, resource string) ([]Permission, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "permission listing requires a tenant")
	}

	var perms []Permission
	err := dbkit.WithErr1(s.conn(ctx).NewSelect().
		Model(&perms).
		Where("tenant_id = ? AND resource = ?", tenantID, resource).
		Order("name ASC").
		Scan(ctx), "ListPermissionsForResource").Err()
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// ListPermissionsForAction returns the tenant's permissions for an action.
func (s *Service) ListPermissionsForAction(ctx context.Context, tenantID, action string) ([]Permission, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "permission listing requires a tenant")
	}

	var perms []Permission
	err := dbkit.WithErr1(s.conn(ctx).NewSelect().
		Model(&perms).
		Where("tenant_id = ? AND action = ?", tenantID, action).
		Order("name ASC").
		Scan(ctx), "ListPermissionsForAction").Err()
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// UpdateRole updates a role's name, description and superadmin flag.
// Renaming to a name already used in the tenant fails with ErrRoleExists.
func (s *Service) UpdateRole(ctx context.Context, tenantID string, role *Role) error {
	if tenantID == "" {
		return NewError(ErrNoTenant, "role update requires a tenant")
	}
	if role == nil || role.ID == "" {
		return NewError(ErrRoleNotFound, "role update requires a loaded role").WithTenant(tenantID)
	}

	role.UpdatedAt = time.Now()
	result, err := s.conn(ctx).NewUpdate().
		Model(role).
		Column("name", "description", "is_superadmin", "updated_at").
		Where("id = ? AND tenant_id = ?", role.ID, tenantID).
		Exec(ctx)
	if err != nil {
		if dbkit.IsDuplicate(err) {
			return NewError(ErrRoleExists, "a role with this name exists in the tenant").
				WithTenant(tenantID).
				WithRole(role.Name)
		}
		return dbkitErr(result, err, "UpdateRole")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return NewError(ErrRoleNotFound, "role does not exist in the tenant").
			WithTenant(tenantID).
			WithRole(role.Name)
	}

	// Superadmin flips change the outcome of every check for the role's
	// members.
	s.cache.purge()

	return nil
}

// UpdatePermission updates a permission's description. Resource, action and
// the derived name are immutable; delete and recreate to change them.
func (s *Service) UpdatePermission(ctx context.Context, tenantID string, perm *Permission) error {
	if tenantID == "" {
		return NewError(ErrNoTenant, "permission update requires a tenant")
	}
	if perm == nil || perm.ID == "" {
		return NewError(ErrPermissionNotFound, "permission update requires a loaded permission").
			WithTenant(tenantID)
	}

	perm.UpdatedAt = time.Now()
	result, err := s.conn(ctx).NewUpdate().
		Model(perm).
		Column("description", "updated_at").
		Where("id = ? AND tenant_id = ?", perm.ID, tenantID).
		Exec(ctx)
	if err != nil {
		return dbkitErr(result, err, "UpdatePermission")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return NewError(ErrPermissionNotFound, "permission does not exist in the tenant").
			WithTenant(tenantID).
			WithPermission(perm.Name)
	}

	return nil
}

// DeleteRole deletes a role and all membership and grant rows referencing
// it. Fails with ErrRoleNotFound when the ref does not resolve.
func (s *Service) DeleteRole(ctx context.Context, tenantID string, ref RoleRef) error {
	role, err := s.resolveRole(ctx, tenantID, ref)
	if err != nil {
		return err
	}

	err = s.Transaction(ctx, func(ctx context.Context) error {
		// The schema cascades on delete; the explicit deletes keep the
		// behavior identical on stores without foreign keys enabled.
		result, err := s.conn(ctx).NewDelete().
			Model((*UserRole)(nil)).
			Where("tenant_id = ? AND role_id = ?", tenantID, role.ID).
			Exec(ctx)
		if err != nil {
			return dbkitErr(result, err, "DeleteRoleMemberships")
		}

		result, err = s.conn(ctx).NewDelete().
			Model((*RolePermission)(nil)).
			Where("tenant_id = ? AND role_id = ?", tenantID, role.ID).
			Exec(ctx)
		if err != nil {
			return dbkitErr(result, err, "DeleteRoleGrants")
		}

		result, err = s.conn(ctx).NewDelete().
			Model((*Role)(nil)).
			Where("tenant_id = ? AND id = ?", tenantID, role.ID).
			Exec(ctx)
		return dbkitErr(result, err, "DeleteRole")
	})
	if err != nil {
		return err
	}

	s.cache.purge()
	return nil
}

// DeletePermission deletes a permission and all grant rows referencing it.
// Fails with ErrPermissionNotFound when the ref does not resolve.
func (s *Service) DeletePermission(ctx context.Context, tenantID string, ref PermissionRef) error {
	perm, err := s.resolvePermission(ctx, tenantID, ref)
	if err != nil {
		return err
	}

	err = s.Transaction(ctx, func(ctx context.Context) error {
		result, err := s.conn(ctx).NewDelete().
			Model((*RolePermission)(nil)).
			Where("tenant_id = ? AND permission_id = ?", tenantID, perm.ID).
			Exec(ctx)
		if err != nil {
			return dbkitErr(result, err, "DeletePermissionGrants")
		}

		result, err = s.conn(ctx).NewDelete().
			Model((*Permission)(nil)).
			Where("tenant_id = ? AND id = ?", tenantID, perm.ID).
			Exec(ctx)
		return dbkitErr(result, err, "DeletePermission")
	})
	if err != nil {
		return err
	}

	s.cache.purge()
	return nil
}

// EnsureSuperadminRole returns the tenant's superadmin role, creating it if
// missing. The get-or-insert goes through the unique (tenant_id, name)
// constraint, so concurrent callers converge on a single row.
func (s *Service) EnsureSuperadminRole(ctx context.Context, tenantID string) (*Role, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "superadmin bootstrap requires a tenant")
	}

	role := &Role{
		TenantID:     tenantID,
		Name:         SuperadminRoleName,
		Description:  "Super administrator with all permissions",
		IsSuperadmin: true,
	}

	result, err := s.conn(ctx).NewInsert().
		Model(role).
		On("CONFLICT (tenant_id, name) DO NOTHING").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, dbkitErr(result, err, "EnsureSuperadminRole")
	}
	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		return role, nil
	}

	// Another caller created it first; read the winning row.
	return s.FindRoleByName(ctx, tenantID, SuperadminRoleName)
}

// ============================================================================
// REF RESOLUTION
// ============================================================================

// resolveRole resolves a ref to a canonical role in the tenant. A loaded
// entity from a different tenant does not resolve; cross-tenant identifiers
// are never accepted.
func (s *Service) resolveRole(ctx context.Context, tenantID string, ref RoleRef) (*Role, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "role resolution requires a tenant")
	}
	if ref.IsZero() {
		return nil, NewError(ErrRoleNotFound, "empty role reference").WithTenant(tenantID)
	}
	if role := ref.Entity(); role != nil {
		if role.TenantID != tenantID {
			return nil, NewError(ErrRoleNotFound, "role belongs to another tenant").
				WithTenant(tenantID).
				WithRole(role.Name)
		}
		return role, nil
	}
	if id := ref.ID(); id != "" {
		return s.GetRole(ctx, tenantID, id)
	}
	return s.FindRoleByName(ctx, tenantID, ref.Name())
}

// resolvePermission resolves a ref to a canonical permission in the tenant.
func (s *Service) resolvePermission(ctx context.Context, tenantID string, ref PermissionRef) (*Permission, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "permission resolution requires a tenant")
	}
	if ref.IsZero() {
		return nil, NewError(ErrPermissionNotFound, "empty permission reference").WithTenant(tenantID)
	}
	if perm := ref.Entity(); perm != nil {
		if perm.TenantID != tenantID {
			return nil, NewError(ErrPermissionNotFound, "permission belongs to another tenant").
				WithTenant(tenantID).
				WithPermission(perm.Name)
		}
		return perm, nil
	}
	if id := ref.ID(); id != "" {
		return s.GetPermission(ctx, tenantID, id)
	}
	return s.FindPermissionByName(ctx, tenantID, ref.Name())
}
