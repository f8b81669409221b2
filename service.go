package aclkit

import (
	"context"
	"log/slog"
	"time"

	"github.com/fernandezvara/dbkit"
)

// Service is the authorization core: tenant-partitioned storage for roles
// and permissions, membership resolution, the check surface, and the grant
// manager. It integrates with the database through dbkit.
//
// Every method takes the tenant explicitly. There is no ambient "current
// tenant" state inside the service; a cross-tenant mistake is a visible
// wrong argument, not a hidden leak.
//
// Error handling: database operations use dbkit's chainable error wrapping.
// Duplicate and not-found conditions are classified with dbkit.IsDuplicate
// and dbkit.IsNotFound and surfaced as the package sentinels (ErrRoleExists,
// ErrRoleNotFound, ...).
type Service struct {
	db        dbkit.IDB
	catalog   Catalog
	logger    *slog.Logger
	cache     *membershipCache
	txMonitor *transactionMonitor
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger used for non-fatal reporting (provisioning
// failures, audit write failures). Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCatalog sets the resource/action catalog presented to UI layers and
// used by SeedPermissions. The check surface never validates against it.
func WithCatalog(catalog Catalog) Option {
	return func(s *Service) {
		s.catalog = catalog
	}
}

// WithMembershipCache enables an in-memory LRU cache for resolved
// memberships. Entries expire after ttl and are invalidated on every grant
// manager mutation that can affect them.
func WithMembershipCache(size int, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = newMembershipCache(size, ttl)
	}
}

// NewService creates a new aclkit service.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := aclkit.NewService(db,
//	    aclkit.WithCatalog(aclkit.DefaultCatalog()),
//	    aclkit.WithMembershipCache(1024, time.Minute),
//	)
func NewService(db dbkit.IDB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		catalog:   DefaultCatalog(),
		logger:    slog.Default(),
		txMonitor: newTransactionMonitor(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Catalog returns the configured resource/action catalog.
func (s *Service) Catalog() Catalog {
	return s.catalog
}

// ============================================================================
// AUDIT LOG
// ============================================================================

// GetAuditLog retrieves audit log entries for a tenant with optional filters.
func (s *Service) GetAuditLog(ctx context.Context, tenantID string, filter AuditLogFilter) ([]GrantAuditLog, error) {
	if tenantID == "" {
		return nil, NewError(ErrNoTenant, "audit log queries require a tenant")
	}

	var logs []GrantAuditLog
	q := s.conn(ctx).NewSelect().Model(&logs).Where("tenant_id = ?", tenantID)
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.TargetUserID != "" {
		q = q.Where("target_user_id = ?", filter.TargetUserID)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Permission != "" {
		q = q.Where("permission = ?", filter.Permission)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if !filter.Since.IsZero() {
		q = q.Where("timestamp >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("timestamp <= ?", filter.Until)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100 // Default limit
	}
	q = q.Limit(limit)

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	q = q.Order("timestamp DESC")
	err := dbkit.WithErr1(q.Scan(ctx), "GetAuditLog").Err()
	if err != nil {
		return nil, err
	}

	return logs, nil
}

// logAudit writes an audit entry. An audit write failure never fails the
// mutation it describes; it is logged and swallowed by callers.
func (s *Service) logAudit(ctx context.Context, entry *AuditEntry) error {
	_, err := s.conn(ctx).NewInsert().Model(entry.ToModel()).Exec(ctx)
	err = dbkit.WithErr1(err, "LogAudit").Err()
	if err != nil {
		s.logger.WarnContext(ctx, "aclkit: audit write failed",
			"tenant_id", entry.TenantID,
			"action", string(entry.Action),
			"error", err)
	}
	return err
}
