package aclkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMigrations tests that migrations are properly defined
func TestMigrations(t *testing.T) {
	service := &Service{}
	migrations := service.Migrations()

	assert.Len(t, migrations, 5)

	seen := make(map[string]bool)
	for _, m := range migrations {
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.Description)
		assert.NotEmpty(t, m.SQL)
		assert.False(t, seen[m.ID], "duplicate migration ID %s", m.ID)
		seen[m.ID] = true
	}
}

// TestMigrations_TableCoverage verifies each table the models expect has a
// migration creating it.
func TestMigrations_TableCoverage(t *testing.T) {
	service := &Service{}

	var all strings.Builder
	for _, m := range service.Migrations() {
		all.WriteString(m.SQL)
	}
	sql := all.String()

	tables := []string{
		"acl_roles",
		"acl_permissions",
		"acl_user_role",
		"acl_role_permission",
		"acl_grant_audit_log",
	}
	for _, table := range tables {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table)
	}

	// Per-tenant uniqueness and multi-tenant partitioning.
	assert.Contains(t, sql, "UNIQUE (tenant_id, name)")
	assert.Contains(t, sql, "UNIQUE (tenant_id, user_id, role_id)")
	assert.Contains(t, sql, "UNIQUE (tenant_id, role_id, permission_id)")

	// Role and permission deletes cascade through the link tables.
	assert.Contains(t, sql, "REFERENCES acl_roles (id) ON DELETE CASCADE")
	assert.Contains(t, sql, "REFERENCES acl_permissions (id) ON DELETE CASCADE")
}
