package aclkit

import (
	"github.com/fernandezvara/dbkit"
)

// Migrations returns all database migrations required for aclkit.
// Use db.Migrate(ctx, service.Migrations()) to run them.
func (s *Service) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "aclkit-001",
			Description: "Create acl_roles table",
			SQL: `
                CREATE TABLE IF NOT EXISTS acl_roles (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    tenant_id TEXT NOT NULL,
                    name TEXT NOT NULL,
                    description TEXT,
                    is_superadmin BOOLEAN NOT NULL DEFAULT false,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    UNIQUE (tenant_id, name)
                );
                CREATE INDEX IF NOT EXISTS idx_acl_roles_superadmin
                    ON acl_roles (tenant_id, is_superadmin)`,
		},
		{
			ID:          "aclkit-002",
			Description: "Create acl_permissions table",
			SQL: `
                CREATE TABLE IF NOT EXISTS acl_permissions (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    tenant_id TEXT NOT NULL,
                    name TEXT NOT NULL,
                    description TEXT,
                    resource TEXT NOT NULL,
                    action TEXT NOT NULL,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    UNIQUE (tenant_id, name)
                );
                CREATE INDEX IF NOT EXISTS idx_acl_permissions_resource_action
                    ON acl_permissions (tenant_id, resource, action)`,
		},
		{
			ID:          "aclkit-003",
			Description: "Create acl_user_role table",
			SQL: `
                CREATE TABLE IF NOT EXISTS acl_user_role (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    tenant_id TEXT NOT NULL,
                    user_id TEXT NOT NULL,
                    role_id UUID NOT NULL REFERENCES acl_roles (id) ON DELETE CASCADE,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    UNIQUE (tenant_id, user_id, role_id)
                );
                CREATE INDEX IF NOT EXISTS idx_acl_user_role_user
                    ON acl_user_role (tenant_id, user_id)`,
		},
		{
			ID:          "aclkit-004",
			Description: "Create acl_role_permission table",
			SQL: `
                CREATE TABLE IF NOT EXISTS acl_role_permission (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    tenant_id TEXT NOT NULL,
                    role_id UUID NOT NULL REFERENCES acl_roles (id) ON DELETE CASCADE,
                    permission_id UUID NOT NULL REFERENCES acl_permissions (id) ON DELETE CASCADE,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    UNIQUE (tenant_id, role_id, permission_id)
                );
                CREATE INDEX IF NOT EXISTS idx_acl_role_permission_role
                    ON acl_role_permission (tenant_id, role_id)`,
		},
		{
			ID:          "aclkit-005",
			Description: "Create acl_grant_audit_log table",
			SQL: `
                CREATE TABLE IF NOT EXISTS acl_grant_audit_log (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    timestamp TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    tenant_id TEXT NOT NULL,
                    actor_id TEXT,
                    action TEXT NOT NULL,
                    target_user_id TEXT,
                    role TEXT,
                    permission TEXT,
                    previous_roles TEXT[],
                    new_roles TEXT[],
                    ip_address TEXT,
                    user_agent TEXT,
                    request_id TEXT
                );
                CREATE INDEX IF NOT EXISTS idx_acl_grant_audit_log_tenant
                    ON acl_grant_audit_log (tenant_id, timestamp)`,
		},
	}
}
