package aclkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestMembershipCache_SetGet tests basic cache storage
func TestMembershipCache_SetGet(t *testing.T) {
	c := newMembershipCache(16, time.Minute)

	m := NewMembership("t1", "user1", nil, nil)
	c.set(m)

	got, ok := c.get("t1", "user1")
	assert.True(t, ok)
	assert.Same(t, m, got)

	_, ok = c.get("t1", "user2")
	assert.False(t, ok)

	// Same user in another tenant is a distinct entry.
	_, ok = c.get("t2", "user1")
	assert.False(t, ok)
}

// TestMembershipCache_EvictUser tests single-user invalidation
func TestMembershipCache_EvictUser(t *testing.T) {
	c := newMembershipCache(16, time.Minute)

	c.set(NewMembership("t1", "user1", nil, nil))
	c.set(NewMembership("t1", "user2", nil, nil))

	c.evictUser("t1", "user1")

	_, ok := c.get("t1", "user1")
	assert.False(t, ok)
	_, ok = c.get("t1", "user2")
	assert.True(t, ok)
}

// TestMembershipCache_Purge tests full invalidation
func TestMembershipCache_Purge(t *testing.T) {
	c := newMembershipCache(16, time.Minute)

	c.set(NewMembership("t1", "user1", nil, nil))
	c.set(NewMembership("t2", "user2", nil, nil))
	assert.Equal(t, 2, c.len())

	c.purge()
	assert.Equal(t, 0, c.len())
}

// TestMembershipCache_TTL tests that entries expire
func TestMembershipCache_TTL(t *testing.T) {
	c := newMembershipCache(16, 10*time.Millisecond)

	c.set(NewMembership("t1", "user1", nil, nil))
	_, ok := c.get("t1", "user1")
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	_, ok = c.get("t1", "user1")
	assert.False(t, ok)
}

// TestMembershipCache_NilSafe tests that a disabled cache is inert
func TestMembershipCache_NilSafe(t *testing.T) {
	var c *membershipCache

	assert.NotPanics(t, func() {
		c.set(NewMembership("t1", "user1", nil, nil))
		_, ok := c.get("t1", "user1")
		assert.False(t, ok)
		c.evictUser("t1", "user1")
		c.purge()
		assert.Equal(t, 0, c.len())
	})
}

// TestMembershipKey tests the composite cache key
func TestMembershipKey(t *testing.T) {
	assert.Equal(t, "t1:user1", membershipKey("t1", "user1"))
	assert.NotEqual(t, membershipKey("t1", "user1"), membershipKey("t1", "user2"))
}
