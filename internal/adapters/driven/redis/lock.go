package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AttemptLock = (*Lock)(nil)

const lockPrefix = "bitacora:attempt:"

// Lock implements AttemptLock using Redis SETNX with TTL.
// Each instance tags its locks with a unique owner ID so one instance can
// never release a lock held by another.
type Lock struct {
	client  *redis.Client
	ownerID string
}

// NewLock creates a new Redis-backed attempt lock.
// The owner ID is generated automatically to uniquely identify this instance.
func NewLock(client *redis.Client) *Lock {
	return &Lock{
		client:  client,
		ownerID: generateOwnerID(),
	}
}

// generateOwnerID creates a unique identifier for this lock holder.
// Format: hostname:pid:random
func generateOwnerID() string {
	hostname, _ := os.Hostname()
	randomBytes := make([]byte, 8)
	_, _ = rand.Read(randomBytes)
	return fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), hex.EncodeToString(randomBytes))
}

// Acquire attempts to lock an attempt for the given TTL.
// Uses Redis SETNX for atomic acquisition. Returns true if acquired, false
// if another turn on the same attempt is in flight.
func (l *Lock) Acquire(ctx context.Context, attemptID string, ttl time.Duration) (bool, error) {
	key := lockPrefix + attemptID
	result, err := l.client.SetNX(ctx, key, l.ownerID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", attemptID, err)
	}
	return result, nil
}

// releaseScript deletes the lock only when the current owner matches,
// preventing accidental release of a lock held by another instance.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Release releases the lock for an attempt if held by this instance.
// Safe to call even if the lock is not held or has expired.
func (l *Lock) Release(ctx context.Context, attemptID string) error {
	key := lockPrefix + attemptID
	_, err := releaseScript.Run(ctx, l.client, []string{key}, l.ownerID).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("release lock %s: %w", attemptID, err)
	}
	return nil
}

// Ping checks if the Redis backend is healthy.
func (l *Lock) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// OwnerID returns the unique identifier for this lock instance.
func (l *Lock) OwnerID() string {
	return l.ownerID
}
