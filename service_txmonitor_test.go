package aclkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestTransactionMonitor_Record tests metric accumulation
func TestTransactionMonitor_Record(t *testing.T) {
	tm := newTransactionMonitor()

	tm.record(10*time.Millisecond, true)
	tm.record(30*time.Millisecond, true)
	tm.record(20*time.Millisecond, false)

	m := tm.metrics()
	assert.Equal(t, int64(3), m.TotalTransactions)
	assert.Equal(t, int64(2), m.SuccessfulTransactions)
	assert.Equal(t, int64(1), m.FailedTransactions)
	assert.Equal(t, 20*time.Millisecond, m.AverageDuration)
	assert.Equal(t, 30*time.Millisecond, m.MaxDuration)
	assert.Equal(t, 10*time.Millisecond, m.MinDuration)
	assert.False(t, m.LastReset.IsZero())
}

// TestTransactionMonitor_Reset tests clearing metrics
func TestTransactionMonitor_Reset(t *testing.T) {
	tm := newTransactionMonitor()
	tm.record(10*time.Millisecond, true)

	tm.reset()

	m := tm.metrics()
	assert.Equal(t, int64(0), m.TotalTransactions)
	assert.Equal(t, int64(0), m.SuccessfulTransactions)
	assert.Equal(t, int64(0), m.FailedTransactions)
	assert.Equal(t, time.Duration(0), m.AverageDuration)
}

// TestIsTransactionHealthy tests the health thresholds
func TestIsTransactionHealthy(t *testing.T) {
	t.Run("Few samples is healthy", func(t *testing.T) {
		s := NewService(nil)
		s.txMonitor.record(5*time.Second, false)
		assert.True(t, s.IsTransactionHealthy())
	})

	t.Run("Low failure rate and fast is healthy", func(t *testing.T) {
		s := NewService(nil)
		for i := 0; i < 20; i++ {
			s.txMonitor.record(10*time.Millisecond, true)
		}
		assert.True(t, s.IsTransactionHealthy())
	})

	t.Run("High failure rate is unhealthy", func(t *testing.T) {
		s := NewService(nil)
		for i := 0; i < 18; i++ {
			s.txMonitor.record(10*time.Millisecond, true)
		}
		s.txMonitor.record(10*time.Millisecond, false)
		s.txMonitor.record(10*time.Millisecond, false)
		assert.False(t, s.IsTransactionHealthy())
	})

	t.Run("Slow transactions are unhealthy", func(t *testing.T) {
		s := NewService(nil)
		for i := 0; i < 20; i++ {
			s.txMonitor.record(2*time.Second, true)
		}
		assert.False(t, s.IsTransactionHealthy())
	})
}

// TestGetTransactionMetrics tests the service accessors
func TestGetTransactionMetrics(t *testing.T) {
	s := NewService(nil)
	s.txMonitor.record(15*time.Millisecond, true)

	m := s.GetTransactionMetrics()
	assert.Equal(t, int64(1), m.TotalTransactions)

	s.ResetTransactionMetrics()
	assert.Equal(t, int64(0), s.GetTransactionMetrics().TotalTransactions)
}
