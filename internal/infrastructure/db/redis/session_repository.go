package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository persists serialized session blobs with a TTL.
// Key format: session:<sid>
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a SessionRepository wrapping the given client.
// If ttl <= 0, sessions live for 24 hours.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRepository{client: client, ttl: ttl}
}

// Put stores the blob under sid, refreshing the TTL.
func (r *SessionRepository) Put(ctx context.Context, sid string, blob []byte) error {
	if err := r.client.Set(ctx, r.key(sid), blob, r.ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

// Get returns the blob for sid, or (nil, nil) when no record exists.
func (r *SessionRepository) Get(ctx context.Context, sid string) ([]byte, error) {
	blob, err := r.client.Get(ctx, r.key(sid)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	return blob, nil
}

// Delete removes the record for sid. Deleting an absent record is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (r *SessionRepository) key(sid string) string {
	return "session:" + sid
}
