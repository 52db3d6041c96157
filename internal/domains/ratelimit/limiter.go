// Package ratelimit implements admission control for post writes: a
// sliding-window limiter keyed by the acting identity.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Limiter decides whether identity may perform one more write right now.
// A true result consumes one unit of the identity's quota; false consumes
// nothing. Implementations must be safe for concurrent use and must not let
// concurrent callers for one identity exceed the quota.
type Limiter interface {
	TryConsume(ctx context.Context, identity string) (bool, error)
}

// Policy is the sliding-window shape: at most Quota events inside any
// trailing Window.
type Policy struct {
	Window time.Duration
	Quota  int
}

// DefaultPolicy allows 3 writes per rolling minute
var DefaultPolicy = Policy{Window: time.Minute, Quota: 3}

func (p Policy) validate() error {
	if p.Window <= 0 {
		return fmt.Errorf("ratelimit: window must be positive, got %v", p.Window)
	}
	if p.Quota < 1 {
		return fmt.Errorf("ratelimit: quota must be positive, got %d", p.Quota)
	}
	return nil
}
