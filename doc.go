// Package aclkit provides multi-tenant role-based access control backed by
// PostgreSQL.
//
// Users are granted roles, roles aggregate permissions scoped to a
// (resource, action) pair, and a role flagged as superadmin bypasses every
// permission check. Every entity and every query is partitioned by tenant:
// nothing is shared across tenants, and every service call takes the tenant
// explicitly.
//
// # Core Concepts
//
// Tenant: an opaque isolation boundary (a customer, organization or
// workspace namespace). Roles, permissions and their relations all carry a
// tenant identifier; no operation crosses tenants.
//
// Role: a named bundle of permissions, unique per tenant. A role with the
// superadmin flag implicitly grants all permissions.
//
// Permission: governs one (resource, action) pair, canonically named
// "action.resource" ("delete.user", "manage.role"). Any string pair is
// valid; the catalog only drives UI choices and seeding.
//
// Membership: the resolved state of one user in one tenant - its roles and
// the union of their permissions.
//
// # Basic Usage
//
//	// 1. Connect and migrate (at application startup)
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := aclkit.NewService(db,
//	    aclkit.WithCatalog(aclkit.DefaultCatalog()),
//	    aclkit.WithMembershipCache(1024, time.Minute),
//	)
//	db.Migrate(ctx, service.Migrations())
//
//	// 2. Seed the catalog permissions for a tenant
//	service.SeedPermissions(ctx, tenantID)
//
//	// 3. Create roles and grant permissions
//	service.CreateRole(ctx, tenantID, "editor", "Can edit content", false)
//	service.GrantPermission(ctx, tenantID,
//	    aclkit.RoleByName("editor"), aclkit.PermissionByName("update.user"))
//
//	// 4. Assign roles
//	service.AssignRole(ctx, tenantID, userID, aclkit.RoleByName("editor"))
//
//	// 5. Check
//	if service.HasPermission(ctx, tenantID, userID, aclkit.PermissionByName("update.user")) {
//	    // allowed
//	}
//
// # First-User Bootstrap
//
// The first user created in a tenant becomes superadmin. Wire the
// Provisioner into the host's user-creation path:
//
//	prov := aclkit.NewProvisioner(service, userCounter)
//	// after committing the new user row:
//	prov.UserCreated(ctx, tenantID, newUser.ID)
//
// Provisioning failures are logged and never abort the user creation.
//
// # Host User Types
//
// The kit never owns the user entity. Hosts attach the authorization
// surface by holding a Member:
//
//	member := service.Member(tenantID, user.ID)
//	member.IsSuperAdmin(ctx)
//	member.HasAnyPermission(ctx, aclkit.PermissionRefs("view.user", "manage.user")...)
//	member.SyncRoles(ctx, aclkit.RoleByName("editor"), aclkit.RoleByName("reviewer"))
//
// # Resource Policies
//
// Admin UIs compose per-resource policies from the check primitives:
//
//	invoices := aclkit.NewResourcePolicy(service, "invoice")
//	invoices.View(ctx, tenantID, userID)   // superadmin OR "view.invoice"
//	invoices.Delete(ctx, tenantID, userID) // superadmin OR "delete.invoice"
//
// # Middleware Usage
//
//	mw := aclkit.NewMiddleware(service,
//	    aclkit.WithTenantExtractor(aclkit.TenantFromHeader("X-Tenant-ID")),
//	)
//
//	router.With(mw.RequirePermission(aclkit.PermissionByName("manage.role"))).
//	    Post("/roles", createRoleHandler)
//
// # Errors
//
// Mutations that reference a missing role or permission by name fail with
// ErrRoleNotFound / ErrPermissionNotFound; duplicate-name creations fail
// with ErrRoleExists / ErrPermissionExists. Checks never fail: an unknown
// name simply answers false.
package aclkit
