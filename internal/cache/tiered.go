package cache

import (
	"context"
	"time"
)

// Tiered checks a fast L1 before a shared L2 and writes to both.
// An L2 hit repopulates L1 for l1TTL.
type Tiered struct {
	l1    Cache
	l2    Cache
	l1TTL time.Duration
}

// NewTiered creates a two-level cache
func NewTiered(l1, l2 Cache, l1TTL time.Duration) *Tiered {
	return &Tiered{l1: l1, l2: l2, l1TTL: l1TTL}
}

// Get tries L1, then L2
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := t.l1.Get(ctx, key); ok {
		return v, true
	}
	v, ok := t.l2.Get(ctx, key)
	if !ok {
		return nil, false
	}
	t.l1.Set(ctx, key, v, t.l1TTL)
	return v, true
}

// Set stores value in both levels
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	t.l1.Set(ctx, key, value, ttl)
	t.l2.Set(ctx, key, value, ttl)
}
