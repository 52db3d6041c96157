package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter keeps the window in process. It is meant for single-instance
// development setups; multiple API replicas each get their own quota.
type MemoryLimiter struct {
	policy Policy
	now    func() time.Time

	mu     sync.Mutex
	events map[string][]time.Time
}

// MemoryOption configures a MemoryLimiter
type MemoryOption func(*MemoryLimiter)

// WithClock overrides time.Now
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

func NewMemoryLimiter(policy Policy, opts ...MemoryOption) (*MemoryLimiter, error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}

	l := &MemoryLimiter{
		policy: policy,
		now:    time.Now,
		events: make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *MemoryLimiter) TryConsume(ctx context.Context, identity string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	live := l.trim(identity, now)
	if len(live) >= l.policy.Quota {
		return false, nil
	}

	l.events[identity] = append(live, now)
	return true, nil
}

// trim drops events at or before now-window. Caller holds mu.
func (l *MemoryLimiter) trim(identity string, now time.Time) []time.Time {
	events := l.events[identity]
	cutoff := now.Add(-l.policy.Window)

	i := 0
	for i < len(events) && !events[i].After(cutoff) {
		i++
	}

	live := events[i:]
	if len(live) == 0 {
		delete(l.events, identity)
		return nil
	}
	return live
}
