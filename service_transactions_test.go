package aclkit

import (
	"context"
	"testing"

	"github.com/fernandezvara/dbkit"
	"github.com/stretchr/testify/assert"
)

// TestServiceConn verifies that queries target the transaction bound to the
// context when one is active, and fall back to the pool otherwise.
func TestServiceConn(t *testing.T) {
	svc := NewService(nil)

	t.Run("No transaction falls back to pool", func(t *testing.T) {
		assert.Nil(t, svc.conn(context.Background()))
	})

	t.Run("Bound transaction wins", func(t *testing.T) {
		tx := new(dbkit.Tx)
		ctx := context.WithValue(context.Background(), txContextKey{}, tx)
		assert.Same(t, tx, svc.conn(ctx))
	})

	t.Run("Binding does not leak to the parent context", func(t *testing.T) {
		parent := context.Background()
		_ = context.WithValue(parent, txContextKey{}, new(dbkit.Tx))
		assert.Nil(t, svc.conn(parent))
	})
}
