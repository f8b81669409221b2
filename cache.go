package aclkit

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// membershipCache caches resolved memberships keyed by tenant and user.
// Invalidation rules: a mutation scoped to one user (assign, remove, sync)
// evicts that user's entry; a mutation scoped to a role or permission
// (grant, revoke, delete) can affect any member, so it purges the cache.
// A nil cache is valid and disables caching.
type membershipCache struct {
	lru *lru.LRU[string, *Membership]
}

func newMembershipCache(size int, ttl time.Duration) *membershipCache {
	if size <= 0 {
		size = 1024
	}
	return &membershipCache{
		lru: lru.NewLRU[string, *Membership](size, nil, ttl),
	}
}

func membershipKey(tenantID, userID string) string {
	return tenantID + ":" + userID
}

func (c *membershipCache) get(tenantID, userID string) (*Membership, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(membershipKey(tenantID, userID))
}

func (c *membershipCache) set(m *Membership) {
	if c == nil || m == nil {
		return
	}
	c.lru.Add(membershipKey(m.TenantID, m.UserID), m)
}

func (c *membershipCache) evictUser(tenantID, userID string) {
	if c == nil {
		return
	}
	c.lru.Remove(membershipKey(tenantID, userID))
}

func (c *membershipCache) purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

func (c *membershipCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
