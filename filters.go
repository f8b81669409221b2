package aclkit

import "time"

// AuditLogFilter provides options for filtering audit log queries.
// The tenant itself is a required argument of GetAuditLog, not a filter.
type AuditLogFilter struct {
	// Filter by actor who performed the mutation
	ActorID string

	// Filter by target user of membership mutations
	TargetUserID string

	// Filter by role name
	Role string

	// Filter by permission name
	Permission string

	// Filter by action type (see the AuditAction constants)
	Action AuditAction

	// Filter by time range
	Since time.Time
	Until time.Time

	// Pagination
	Limit  int
	Offset int
}

// NewAuditLogFilter creates a new AuditLogFilter with default values.
func NewAuditLogFilter() AuditLogFilter {
	return AuditLogFilter{
		Limit: 100,
	}
}

// WithActor sets the actor ID filter.
func (f AuditLogFilter) WithActor(actorID string) AuditLogFilter {
	f.ActorID = actorID
	return f
}

// WithTargetUser sets the target user ID filter.
func (f AuditLogFilter) WithTargetUser(userID string) AuditLogFilter {
	f.TargetUserID = userID
	return f
}

// WithRole sets the role name filter.
func (f AuditLogFilter) WithRole(role string) AuditLogFilter {
	f.Role = role
	return f
}

// WithPermission sets the permission name filter.
func (f AuditLogFilter) WithPermission(permission string) AuditLogFilter {
	f.Permission = permission
	return f
}

// WithAction sets the action filter.
func (f AuditLogFilter) WithAction(action AuditAction) AuditLogFilter {
	f.Action = action
	return f
}

// WithTimeRange sets the time range filter. Zero values leave the bound
// open.
func (f AuditLogFilter) WithTimeRange(since, until time.Time) AuditLogFilter {
	f.Since = since
	f.Until = until
	return f
}

// WithPagination sets limit and offset.
func (f AuditLogFilter) WithPagination(limit, offset int) AuditLogFilter {
	f.Limit = limit
	f.Offset = offset
	return f
}
