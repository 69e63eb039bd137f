package driven

import (
	"context"
	"time"
)

// AttemptLock serializes chat turns on a single attempt.
// Two concurrent turns on the same attempt would otherwise interleave their
// student/tutor interaction pairs; the lock guarantees one pair at a time.
// Implementations can use Redis SETNX (preferred) or Postgres advisory locks.
type AttemptLock interface {
	// Acquire attempts to acquire the lock for an attempt with the given TTL.
	// Returns true if acquired, false if currently held.
	Acquire(ctx context.Context, attemptID string, ttl time.Duration) (bool, error)

	// Release releases the lock for an attempt if held by this instance.
	// Safe to call even if the lock is not held or has expired.
	Release(ctx context.Context, attemptID string) error
}
