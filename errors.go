package aclkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for aclkit operations.
var (
	// ErrRoleNotFound is returned when a role name used for a mutation does
	// not resolve to an existing role in the tenant.
	ErrRoleNotFound = errors.New("aclkit: role not found")

	// ErrPermissionNotFound is returned when a permission name used for a
	// mutation does not resolve to an existing permission in the tenant.
	ErrPermissionNotFound = errors.New("aclkit: permission not found")

	// ErrRoleExists is returned when creating a role whose name already
	// exists in the tenant.
	ErrRoleExists = errors.New("aclkit: role already exists")

	// ErrPermissionExists is returned when creating a permission whose name
	// already exists in the tenant.
	ErrPermissionExists = errors.New("aclkit: permission already exists")

	// ErrNoTenant is returned when an operation is called without a tenant
	// identifier, or when no tenant is found in a request context.
	ErrNoTenant = errors.New("aclkit: no tenant")

	// ErrNoUserID is returned when a user ID is required but missing.
	ErrNoUserID = errors.New("aclkit: no user ID")

	// ErrPermissionDenied is returned by the HTTP middleware when a check
	// fails. The decision surface itself never returns it; checks are plain
	// booleans.
	ErrPermissionDenied = errors.New("aclkit: permission denied")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("aclkit: database error")
)

// Error wraps a sentinel error with tenant and entity context.
type Error struct {
	Err        error  // Underlying sentinel error
	Cause      error  // Originating error, if any (driver failures, ...)
	Message    string // Additional context
	TenantID   string // Tenant involved
	Role       string // Role name involved (if applicable)
	Permission string // Permission name involved (if applicable)
	UserID     string // User involved (if applicable)
	ActorID    string // Actor who triggered the error (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	return msg
}

// Unwrap returns the wrapped errors for errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	if errors.Is(e.Err, target) {
		return true
	}
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithCause attaches the originating error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithTenant adds tenant information to the error.
func (e *Error) WithTenant(tenantID string) *Error {
	e.TenantID = tenantID
	return e
}

// WithRole adds role information to the error.
func (e *Error) WithRole(role string) *Error {
	e.Role = role
	return e
}

// WithPermission adds permission information to the error.
func (e *Error) WithPermission(permission string) *Error {
	e.Permission = permission
	return e
}

// WithUser adds user information to the error.
func (e *Error) WithUser(userID string) *Error {
	e.UserID = userID
	return e
}

// WithActor adds actor information to the error.
func (e *Error) WithActor(actorID string) *Error {
	e.ActorID = actorID
	return e
}

// IsNotFound checks if an error is an unresolved role or permission lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoleNotFound) || errors.Is(err, ErrPermissionNotFound)
}

// IsConflict checks if an error is a duplicate-name creation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrRoleExists) || errors.Is(err, ErrPermissionExists)
}

// IsPermissionDenied checks if an error is a middleware authorization denial.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
