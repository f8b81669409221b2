package aclkit

import (
	"time"

	"github.com/uptrace/bun"
)

// Role is a named bundle of permissions within a tenant. Role names are
// unique per tenant. A role with IsSuperadmin set grants every permission
// implicitly, regardless of explicit grants.
type Role struct {
	bun.BaseModel `bun:"table:acl_roles,alias:r"`

	ID           string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	TenantID     string    `bun:"tenant_id,notnull"`
	Name         string    `bun:"name,notnull"`
	Description  string    `bun:"description"`
	IsSuperadmin bool      `bun:"is_superadmin,notnull,default:false"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Permission governs one (resource, action) pair within a tenant.
// Its name is the canonical "action.resource" string and is unique per
// tenant. Resource and action are free-form keys; the kit never validates
// them against the catalog.
type Permission struct {
	bun.BaseModel `bun:"table:acl_permissions,alias:p"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	TenantID    string    `bun:"tenant_id,notnull"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description"`
	Resource    string    `bun:"resource,notnull"`
	Action      string    `bun:"action,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// PermissionName builds the canonical permission name for a resource and
// action pair.
//
// Example:
//
//	PermissionName("user", "delete") // "delete.user"
func PermissionName(resource, action string) string {
	return action + "." + resource
}

// UserRole links a user (owned by the hosting application) to a role.
// Unique per (tenant, user, role).
type UserRole struct {
	bun.BaseModel `bun:"table:acl_user_role,alias:ur"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	TenantID  string    `bun:"tenant_id,notnull"`
	UserID    string    `bun:"user_id,notnull"`
	RoleID    string    `bun:"role_id,notnull,type:uuid"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// RolePermission links a permission to a role. Unique per
// (tenant, role, permission).
type RolePermission struct {
	bun.BaseModel `bun:"table:acl_role_permission,alias:rp"`

	ID           string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	TenantID     string    `bun:"tenant_id,notnull"`
	RoleID       string    `bun:"role_id,notnull,type:uuid"`
	PermissionID string    `bun:"permission_id,notnull,type:uuid"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// GrantAuditLog records membership and grant mutations for compliance and
// debugging.
type GrantAuditLog struct {
	bun.BaseModel `bun:"table:acl_grant_audit_log,alias:gal"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Timestamp time.Time `bun:"timestamp,notnull,default:current_timestamp"`
	TenantID  string    `bun:"tenant_id,notnull"`

	// Who performed the mutation, when known.
	ActorID string `bun:"actor_id"`

	// What was done: see the AuditAction constants.
	Action string `bun:"action,notnull"`

	// Target of the mutation. TargetUserID is set for membership changes,
	// Role for both, Permission for grant changes.
	TargetUserID string `bun:"target_user_id"`
	Role         string `bun:"role"`
	Permission   string `bun:"permission"`

	// Membership before and after the change, for membership mutations.
	PreviousRoles []string `bun:"previous_roles,type:text[]"`
	NewRoles      []string `bun:"new_roles,type:text[]"`

	// Request metadata for forensics.
	IPAddress string `bun:"ip_address"`
	UserAgent string `bun:"user_agent"`
	RequestID string `bun:"request_id"`
}

// AuditAction is the type of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionAssigned   AuditAction = "assigned"
	AuditActionRemoved    AuditAction = "removed"
	AuditActionSynced     AuditAction = "synced"
	AuditActionGranted    AuditAction = "granted"
	AuditActionRevoked    AuditAction = "revoked"
	AuditActionRevokedAll AuditAction = "revoked_all"
)

// AuditEntry is used to create new audit log entries.
type AuditEntry struct {
	TenantID      string
	ActorID       string
	Action        AuditAction
	TargetUserID  string
	Role          string
	Permission    string
	PreviousRoles []string
	NewRoles      []string
	IPAddress     string
	UserAgent     string
	RequestID     string
}

// ToModel converts an AuditEntry to a GrantAuditLog model.
func (e *AuditEntry) ToModel() *GrantAuditLog {
	return &GrantAuditLog{
		TenantID:      e.TenantID,
		ActorID:       e.ActorID,
		Action:        string(e.Action),
		TargetUserID:  e.TargetUserID,
		Role:          e.Role,
		Permission:    e.Permission,
		PreviousRoles: e.PreviousRoles,
		NewRoles:      e.NewRoles,
		IPAddress:     e.IPAddress,
		UserAgent:     e.UserAgent,
		RequestID:     e.RequestID,
		Timestamp:     time.Now(),
	}
}
