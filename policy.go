package aclkit

import "context"

// ResourcePolicy is the base authorization policy for one resource type:
// each default check passes for superadmins, otherwise requires the
// "action.resource" permission. Admin UI layers compose these per concrete
// resource, with the resource name fixed statically.
//
// Example:
//
//	invoices := aclkit.NewResourcePolicy(service, "invoice")
//	if invoices.Update(ctx, tenantID, userID) {
//	    ...
//	}
type ResourcePolicy struct {
	service  *Service
	resource string
}

// NewResourcePolicy creates a policy for a resource name.
func NewResourcePolicy(service *Service, resource string) *ResourcePolicy {
	return &ResourcePolicy{
		service:  service,
		resource: resource,
	}
}

// Resource returns the resource name this policy governs.
func (p *ResourcePolicy) Resource() string {
	return p.resource
}

// Allows is the generic check behind the named policy methods. The
// membership is resolved once per decision; the superadmin bypass and the
// permission check share it.
func (p *ResourcePolicy) Allows(ctx context.Context, tenantID, userID, action string) bool {
	m, err := p.service.GetMembership(ctx, tenantID, userID)
	if err != nil {
		return false
	}
	if m.IsSuperadmin() {
		return true
	}
	return m.HasPermission(PermissionFor(p.resource, action))
}

// View checks the "view" action on the resource.
func (p *ResourcePolicy) View(ctx context.Context, tenantID, userID string) bool {
	return p.Allows(ctx, tenantID, userID, "view")
}

// Create checks the "create" action on the resource.
func (p *ResourcePolicy) Create(ctx context.Context, tenantID, userID string) bool {
	return p.Allows(ctx, tenantID, userID, "create")
}

// Update checks the "update" action on the resource.
func (p *ResourcePolicy) Update(ctx context.Context, tenantID, userID string) bool {
	return p.Allows(ctx, tenantID, userID, "update")
}

// Delete checks the "delete" action on the resource.
func (p *ResourcePolicy) Delete(ctx context.Context, tenantID, userID string) bool {
	return p.Allows(ctx, tenantID, userID, "delete")
}

// Restore checks the "restore" action on the resource.
func (p *ResourcePolicy) Restore(ctx context.Context, tenantID, userID string) bool {
	return p.Allows(ctx, tenantID, userID, "restore")
}

// ForceDelete checks the "force_delete" action on the resource.
func (p *ResourcePolicy) ForceDelete(ctx context.Context, tenantID, userID string) bool {
	return p.Allows(ctx, tenantID, userID, "force_delete")
}
