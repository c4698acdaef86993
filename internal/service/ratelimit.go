package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultCreateCooldown = 5 * time.Second

// checkCreateRateLimit enforces a per-user creation cooldown with a redis
// SetNX lock. A nil client disables rate limiting entirely.
func checkCreateRateLimit(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	limit := defaultCreateCooldown
	if raw := os.Getenv("RATE_LIMIT_CREATE"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			limit = parsed
		}
	}

	key := fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}
