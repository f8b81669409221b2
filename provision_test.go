package aclkit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUserCounterFunc tests the function adapter
func TestUserCounterFunc(t *testing.T) {
	counter := UserCounterFunc(func(ctx context.Context, tenantID string) (int, error) {
		if tenantID == "t1" {
			return 3, nil
		}
		return 0, errors.New("unknown tenant")
	})

	count, err := counter.CountUsers(context.Background(), "t1")
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = counter.CountUsers(context.Background(), "t2")
	assert.Error(t, err)
}

// TestProvisioner_SkipsLaterUsers verifies that only the first user of a
// tenant triggers the bootstrap. Later users never reach the service, so a
// database is not needed here.
func TestProvisioner_SkipsLaterUsers(t *testing.T) {
	calls := 0
	counter := UserCounterFunc(func(ctx context.Context, tenantID string) (int, error) {
		calls++
		return 5, nil
	})

	p := NewProvisioner(NewService(nil), counter)

	assert.NotPanics(t, func() {
		p.UserCreated(context.Background(), "t1", "user5")
	})
	assert.Equal(t, 1, calls)
}

// TestProvisioner_CountFailure verifies a counter failure is swallowed
func TestProvisioner_CountFailure(t *testing.T) {
	counter := UserCounterFunc(func(ctx context.Context, tenantID string) (int, error) {
		return 0, errors.New("users table unavailable")
	})

	p := NewProvisioner(NewService(nil), counter)

	assert.NotPanics(t, func() {
		p.UserCreated(context.Background(), "t1", "user1")
	})
}

// TestProvisioner_MissingIdentity verifies events without tenant or user are
// ignored before the counter is consulted.
func TestProvisioner_MissingIdentity(t *testing.T) {
	counter := UserCounterFunc(func(ctx context.Context, tenantID string) (int, error) {
		t.Fatal("counter should not be called")
		return 0, nil
	})

	p := NewProvisioner(NewService(nil), counter)

	assert.NotPanics(t, func() {
		p.UserCreated(context.Background(), "", "user1")
		p.UserCreated(context.Background(), "t1", "")
	})
}

// TestSuperadminRoleName pins the reserved bootstrap role name
func TestSuperadminRoleName(t *testing.T) {
	assert.Equal(t, "superadmin", SuperadminRoleName)
}
