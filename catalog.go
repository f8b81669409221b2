package aclkit

import (
	"context"
	"sort"
)

// Catalog is the vocabulary of resources and actions the hosting
// application exposes for permission management, mapping each key to a
// display name. It is consumed by UI layers when presenting choices and by
// SeedPermissions; the check surface accepts any (resource, action) pair
// whether or not it appears here.
type Catalog struct {
	Resources map[string]string
	Actions   map[string]string
}

// DefaultCatalog returns the catalog the kit manages out of the box: its
// own entities plus the host's user resource, with the usual CRUD actions.
func DefaultCatalog() Catalog {
	return Catalog{
		Resources: map[string]string{
			"user":       "User",
			"role":       "Role",
			"permission": "Permission",
		},
		Actions: map[string]string{
			"view":         "View",
			"create":       "Create",
			"update":       "Update",
			"delete":       "Delete",
			"restore":      "Restore",
			"force_delete": "Force Delete",
			"manage":       "Manage",
		},
	}
}

// ResourceKeys returns the resource keys in sorted order.
func (c Catalog) ResourceKeys() []string {
	keys := make([]string, 0, len(c.Resources))
	for k := range c.Resources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ActionKeys returns the action keys in sorted order.
func (c Catalog) ActionKeys() []string {
	keys := make([]string, 0, len(c.Actions))
	for k := range c.Actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether the (resource, action) pair is part of the catalog.
func (c Catalog) Has(resource, action string) bool {
	_, okR := c.Resources[resource]
	_, okA := c.Actions[action]
	return okR && okA
}

// PermissionNames returns the canonical names of every resource/action
// combination in the catalog, sorted.
func (c Catalog) PermissionNames() []string {
	names := make([]string, 0, len(c.Resources)*len(c.Actions))
	for _, resource := range c.ResourceKeys() {
		for _, action := range c.ActionKeys() {
			names = append(names, PermissionName(resource, action))
		}
	}
	sort.Strings(names)
	return names
}

// SeedPermissions creates a permission row for every resource/action pair in
// the service catalog that does not already exist in the tenant. It is
// idempotent and safe to run on every startup. Returns the number of
// permissions created.
func (s *Service) SeedPermissions(ctx context.Context, tenantID string) (int, error) {
	if tenantID == "" {
		return 0, NewError(ErrNoTenant, "seeding requires a tenant")
	}

	created := 0
	for _, resource := range s.catalog.ResourceKeys() {
		for _, action := range s.catalog.ActionKeys() {
			perm := &Permission{
				TenantID: tenantID,
				Name:     PermissionName(resource, action),
				Resource: resource,
				Action:   action,
			}
			result, err := s.conn(ctx).NewInsert().
				Model(perm).
				On("CONFLICT (tenant_id, name) DO NOTHING").
				Exec(ctx)
			err = dbkitErr(result, err, "SeedPermissions")
			if err != nil {
				return created, NewError(ErrDatabaseError, "failed to seed permissions").
					WithCause(err).
					WithTenant(tenantID).
					WithPermission(perm.Name)
			}
			if rows, err := result.RowsAffected(); err == nil && rows > 0 {
				created++
			}
		}
	}

	return created, nil
}
