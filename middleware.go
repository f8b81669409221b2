package aclkit

import (
	"errors"
	"net/http"
)

// Middleware provides HTTP middleware for role and permission checks.
// It is router-agnostic: extractors cover path values, query parameters,
// headers and context, which works with chi, gorilla/mux and the standard
// library mux.
type Middleware struct {
	service      *Service
	getTenantID  TenantExtractor
	getUserID    func(*http.Request) string
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// Example:
//
//	mw := aclkit.NewMiddleware(service,
//	    aclkit.WithTenantExtractor(aclkit.TenantFromHeader("X-Tenant-ID")),
//	)
func NewMiddleware(service *Service, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		service:      service,
		getTenantID:  defaultGetTenantID,
		getUserID:    defaultGetUserID,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithTenantExtractor sets how the middleware resolves the tenant from a
// request. Defaults to reading the request context.
func WithTenantExtractor(fn TenantExtractor) MiddlewareOption {
	return func(m *Middleware) {
		m.getTenantID = fn
	}
}

// WithUserIDExtractor sets a custom function to extract the user ID from a
// request. Defaults to reading the request context.
func WithUserIDExtractor(fn func(*http.Request) string) MiddlewareOption {
	return func(m *Middleware) {
		m.getUserID = fn
	}
}

// WithErrorHandler sets a custom error handler for the middleware.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

func defaultGetUserID(r *http.Request) string {
	return UserID(r.Context())
}

func defaultGetTenantID(r *http.Request) (string, error) {
	tenantID := TenantID(r.Context())
	if tenantID == "" {
		return "", NewError(ErrNoTenant, "tenant not found in request context")
	}
	return tenantID, nil
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsPermissionDenied(err) || IsNotFound(err):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNoTenant) || errors.Is(err, ErrNoUserID):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// TenantExtractor resolves the tenant identifier from an HTTP request.
type TenantExtractor func(*http.Request) (string, error)

// TenantFromHeader reads the tenant ID from a request header.
//
// Example:
//
//	aclkit.TenantFromHeader("X-Tenant-ID")
func TenantFromHeader(headerName string) TenantExtractor {
	return func(r *http.Request) (string, error) {
		tenantID := r.Header.Get(headerName)
		if tenantID == "" {
			return "", NewError(ErrNoTenant, "tenant not found in header")
		}
		return tenantID, nil
	}
}

// TenantFromQuery reads the tenant ID from a query parameter.
func TenantFromQuery(queryParam string) TenantExtractor {
	return func(r *http.Request) (string, error) {
		tenantID := r.URL.Query().Get(queryParam)
		if tenantID == "" {
			return "", NewError(ErrNoTenant, "tenant not found in query")
		}
		return tenantID, nil
	}
}

// TenantFromParam reads the tenant ID from a URL path value.
//
// Example:
//
//	// For route /tenants/{tenantID}/roles
//	aclkit.TenantFromParam("tenantID")
func TenantFromParam(paramName string) TenantExtractor {
	return func(r *http.Request) (string, error) {
		tenantID := r.PathValue(paramName)
		if tenantID == "" {
			return "", NewError(ErrNoTenant, "tenant not found in path")
		}
		return tenantID, nil
	}
}

// StaticTenant always returns the same tenant. Useful for single-tenant
// deployments of multi-tenant code.
func StaticTenant(tenantID string) TenantExtractor {
	return func(r *http.Request) (string, error) {
		return tenantID, nil
	}
}

// RequireRole creates middleware that requires a role.
//
// Example:
//
//	router.With(mw.RequireRole(aclkit.RoleByName("admin"))).
//	    Post("/roles", createRoleHandler)
func (m *Middleware) RequireRole(role RoleRef) func(http.Handler) http.Handler {
	return m.require(func(ms *Membership) bool {
		return ms.HasRole(role)
	})
}

// RequirePermission creates middleware that requires a permission.
func (m *Middleware) RequirePermission(permission PermissionRef) func(http.Handler) http.Handler {
	return m.require(func(ms *Membership) bool {
		return ms.HasPermission(permission)
	})
}

// RequireAnyPermission creates middleware that requires at least one of the
// permissions.
func (m *Middleware) RequireAnyPermission(permissions ...PermissionRef) func(http.Handler) http.Handler {
	return m.require(func(ms *Membership) bool {
		return ms.HasAnyPermission(permissions...)
	})
}

// RequireAllPermissions creates middleware that requires every permission.
func (m *Middleware) RequireAllPermissions(permissions ...PermissionRef) func(http.Handler) http.Handler {
	return m.require(func(ms *Membership) bool {
		return ms.HasAllPermissions(permissions...)
	})
}

// RequireSuperadmin creates middleware that requires a superadmin role.
func (m *Middleware) RequireSuperadmin() func(http.Handler) http.Handler {
	return m.require(func(ms *Membership) bool {
		return ms.IsSuperadmin()
	})
}

// require resolves the membership once per request, applies the check, and
// stores the membership in context for handlers.
func (m *Middleware) require(check func(*Membership) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tenantID, err := m.getTenantID(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			userID := m.getUserID(r)
			if userID == "" {
				m.errorHandler(w, r, NewError(ErrNoUserID, "user not found in request").WithTenant(tenantID))
				return
			}

			membership, err := m.service.GetMembership(ctx, tenantID, userID)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			if !check(membership) {
				m.errorHandler(w, r, NewError(ErrPermissionDenied, "request does not satisfy the required check").
					WithTenant(tenantID).
					WithUser(userID))
				return
			}

			ctx = WithMembership(ctx, membership)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
