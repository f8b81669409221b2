package aclkit

import (
	"context"
	"fmt"
	"time"

	"github.com/fernandezvara/dbkit"
)

// txContextKey carries the active transaction through the context so that
// service calls made inside a Transaction callback execute on the
// transaction's connection instead of the pool.
type txContextKey struct{}

// conn returns the executor for the context: the active transaction when one
// is bound, the service's pool otherwise. Every query the service builds
// goes through here.
func (s *Service) conn(ctx context.Context) Database {
	if tx, ok := ctx.Value(txContextKey{}).(*dbkit.Tx); ok {
		return tx
	}
	return s.db
}

// Transaction executes a function within a database transaction with
// automatic commit/rollback. If the function returns an error the
// transaction is rolled back, otherwise it is committed. The transaction is
// bound to the context passed to fn; service calls made with that context
// run inside it, and nested Transaction calls fall back to savepoints.
//
// Example:
//
//	err := service.Transaction(ctx, func(ctx context.Context) error {
//	    if err := service.AssignRole(ctx, tenantID, "user1", aclkit.RoleByName("editor")); err != nil {
//	        return err // rollback
//	    }
//	    return service.AssignRole(ctx, tenantID, "user2", aclkit.RoleByName("viewer"))
//	})
func (s *Service) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	start := time.Now()
	var err error

	switch db := s.conn(ctx).(type) {
	case *dbkit.Tx:
		// Already in a transaction; nest via savepoint.
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(context.WithValue(ctx, txContextKey{}, tx))
		})
	case *dbkit.DBKit:
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(context.WithValue(ctx, txContextKey{}, tx))
		})
	default:
		err = fmt.Errorf("transaction support requires a dbkit.DBKit or dbkit.Tx instance")
	}

	s.txMonitor.record(time.Since(start), err == nil)

	return err
}

// TransactionWithOptions executes a function within a database transaction
// with custom options (isolation level, read-only, ...). Nested calls fall
// back to savepoints, where options do not apply.
func (s *Service) TransactionWithOptions(ctx context.Context, opts dbkit.TxOptions, fn func(ctx context.Context) error) error {
	start := time.Now()
	var err error

	switch db := s.conn(ctx).(type) {
	case *dbkit.Tx:
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(context.WithValue(ctx, txContextKey{}, tx))
		})
	case *dbkit.DBKit:
		err = db.TransactionWithOptions(ctx, opts, func(tx *dbkit.Tx) error {
			return fn(context.WithValue(ctx, txContextKey{}, tx))
		})
	default:
		err = fmt.Errorf("transaction support requires a dbkit.DBKit or dbkit.Tx instance")
	}

	s.txMonitor.record(time.Since(start), err == nil)

	return err
}

// ReadOnlyTransaction executes a function within a read-only transaction.
// Useful for multi-query reads that need a consistent snapshot.
func (s *Service) ReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.TransactionWithOptions(ctx, dbkit.ReadOnlyTxOptions(), fn)
}
