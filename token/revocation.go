package token

import (
	"context"
	"sync"
	"time"
)

// Denylist records revoked token ids until the tokens expire
type Denylist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// InMemoryDenylist is the single-process implementation
type InMemoryDenylist struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
	nowFunc func() time.Time
}

type InMemoryDenylistOption func(*InMemoryDenylist)

func WithDenylistNowFunc(now func() time.Time) InMemoryDenylistOption {
	return func(d *InMemoryDenylist) {
		d.nowFunc = now
	}
}

func NewInMemoryDenylist(options ...InMemoryDenylistOption) *InMemoryDenylist {
	d := &InMemoryDenylist{
		revoked: make(map[string]time.Time),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *InMemoryDenylist) Revoke(_ context.Context, jti string, exp time.Time) error {
	d.Cleanup()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = exp
	return nil
}

func (d *InMemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	exp, exists := d.revoked[jti]
	return exists && d.nowFunc().Before(exp), nil
}

// Cleanup drops entries whose tokens have expired
func (d *InMemoryDenylist) Cleanup() {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.nowFunc()
	for jti, exp := range d.revoked {
		if !now.Before(exp) {
			delete(d.revoked, jti)
		}
	}
}

// Len returns the number of tracked entries
func (d *InMemoryDenylist) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.revoked)
}
