package aclkit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Database defines the database operations interface for dependency
// injection.
type Database interface {
	dbkit.IDB
}

// EntityStore defines the tenant-partitioned CRUD surface for roles and
// permissions.
type EntityStore interface {
	CreateRole(ctx context.Context, tenantID, name, description string, isSuperadmin bool) (*Role, error)
	CreatePermission(ctx context.Context, tenantID, resource, action, description string) (*Permission, error)
	FindRoleByName(ctx context.Context, tenantID, name string) (*Role, error)
	FindPermissionByName(ctx context.Context, tenantID, name string) (*Permission, error)
	GetRole(ctx context.Context, tenantID, id string) (*Role, error)
	GetPermission(ctx context.Context, tenantID, id string) (*Permission, error)
	ListRoles(ctx context.Context, tenantID string) ([]Role, error)
	ListPermissions(ctx context.Context, tenantID string) ([]Permission, error)
	UpdateRole(ctx context.Context, tenantID string, role *Role) error
	UpdatePermission(ctx context.Context, tenantID string, perm *Permission) error
	DeleteRole(ctx context.Context, tenantID string, ref RoleRef) error
	DeletePermission(ctx context.Context, tenantID string, ref PermissionRef) error
}

// MembershipResolver computes authorization facts for a user.
type MembershipResolver interface {
	GetMembership(ctx context.Context, tenantID, userID string) (*Membership, error)
	RolesOf(ctx context.Context, tenantID, userID string) ([]Role, error)
	PermissionsOf(ctx context.Context, tenantID, userID string) ([]string, error)
}

// AuthorizationEngine is the read-only decision surface.
type AuthorizationEngine interface {
	HasRole(ctx context.Context, tenantID, userID string, role RoleRef) bool
	IsSuperadmin(ctx context.Context, tenantID, userID string) bool
	HasPermission(ctx context.Context, tenantID, userID string, permission PermissionRef) bool
	HasAnyPermission(ctx context.Context, tenantID, userID string, permissions ...PermissionRef) bool
	HasAllPermissions(ctx context.Context, tenantID, userID string, permissions ...PermissionRef) bool
	Can(ctx context.Context, tenantID, userID, action, resource string) bool
}

// GrantManager mutates membership and grants.
type GrantManager interface {
	AssignRole(ctx context.Context, tenantID, userID string, ref RoleRef) error
	RemoveRole(ctx context.Context, tenantID, userID string, ref RoleRef) error
	SyncRoles(ctx context.Context, tenantID, userID string, refs ...RoleRef) error
	GrantPermission(ctx context.Context, tenantID string, roleRef RoleRef, permRef PermissionRef) error
	RevokePermission(ctx context.Context, tenantID string, roleRef RoleRef, permRef PermissionRef) error
	RevokeAllPermissions(ctx context.Context, tenantID string, ref RoleRef) error
}

// TransactionManager defines the transaction management interface.
type TransactionManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	TransactionWithOptions(ctx context.Context, opts dbkit.TxOptions, fn func(ctx context.Context) error) error
	ReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// HealthMonitor defines the health monitoring interface.
type HealthMonitor interface {
	Health(ctx context.Context) dbkit.HealthStatus
	IsHealthy(ctx context.Context) bool
	Ping(ctx context.Context) error
	GetPoolStats() dbkit.PoolStats
}

// AuditLog defines the audit query interface.
type AuditLog interface {
	GetAuditLog(ctx context.Context, tenantID string, filter AuditLogFilter) ([]GrantAuditLog, error)
}

// Service implements all component interfaces.
var (
	_ EntityStore         = (*Service)(nil)
	_ MembershipResolver  = (*Service)(nil)
	_ AuthorizationEngine = (*Service)(nil)
	_ GrantManager        = (*Service)(nil)
	_ TransactionManager  = (*Service)(nil)
	_ HealthMonitor       = (*Service)(nil)
	_ AuditLog            = (*Service)(nil)
)
