package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const applyGuardTTL = time.Minute

// ApplyGuard bounds duplicate job applications using Redis SETNX.
// Key format: apply:<user_id>:<job_id>
type ApplyGuard struct {
	client *redis.Client
}

// NewApplyGuard creates an ApplyGuard wrapping the given Redis client.
func NewApplyGuard(client *redis.Client) *ApplyGuard {
	return &ApplyGuard{client: client}
}

// Acquire claims the user/job pair. Returns false when an identical
// submission already holds the claim (in flight or recently completed).
func (g *ApplyGuard) Acquire(ctx context.Context, userID, jobID int64) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(userID, jobID), "1", applyGuardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("apply guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees the claim so a failed submission can be retried immediately.
func (g *ApplyGuard) Release(ctx context.Context, userID, jobID int64) error {
	if err := g.client.Del(ctx, g.key(userID, jobID)).Err(); err != nil {
		return fmt.Errorf("apply guard release: %w", err)
	}
	return nil
}

func (g *ApplyGuard) key(userID, jobID int64) string {
	return fmt.Sprintf("apply:%d:%d", userID, jobID)
}
