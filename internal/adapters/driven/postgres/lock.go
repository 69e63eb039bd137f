package postgres

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AttemptLock = (*AdvisoryLock)(nil)

// AdvisoryLock implements AttemptLock using PostgreSQL advisory locks.
//
// IMPORTANT LIMITATIONS:
// - Advisory locks are connection-scoped, not TTL-based
// - If the connection is lost, the lock is automatically released
// - The TTL parameter is ignored (locks don't expire on their own)
//
// For multi-instance deployments the Redis lock is recommended; this is the
// fallback when Redis is unavailable.
type AdvisoryLock struct {
	db *DB
}

// NewAdvisoryLock creates a new PostgreSQL advisory lock adapter.
func NewAdvisoryLock(db *DB) *AdvisoryLock {
	return &AdvisoryLock{db: db}
}

// hashLockName converts an attempt ID to a 64-bit integer for PostgreSQL
// advisory locks. Uses FNV-1a for consistent, well-distributed values.
func hashLockName(attemptID string) int64 {
	h := fnv.New64a()
	h.Write([]byte("bitacora:attempt:" + attemptID))
	return int64(h.Sum64())
}

// Acquire attempts to acquire the lock for an attempt without blocking.
// The TTL parameter is ignored; the lock is held until explicitly released
// or the connection closes.
func (l *AdvisoryLock) Acquire(ctx context.Context, attemptID string, ttl time.Duration) (bool, error) {
	lockID := hashLockName(attemptID)

	var acquired bool
	err := l.db.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", lockID).Scan(&acquired)
	if err != nil {
		return false, err
	}
	return acquired, nil
}

// Release releases the lock for an attempt.
// Safe to call even if the lock is not held.
func (l *AdvisoryLock) Release(ctx context.Context, attemptID string) error {
	lockID := hashLockName(attemptID)

	var released bool
	return l.db.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", lockID).Scan(&released)
}
