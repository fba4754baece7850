package middleware

import (
	"context"
	"net/http"
	"time"

	"algolearn/internal/common"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RateLimiter is a fixed-window limiter backed by Redis, keyed by the
// authenticated user id. Window state lives in Redis with a TTL, so it is
// bounded and shared across instances.
type RateLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window}
}

func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	fullKey := rl.prefix + ":" + key
	count, err := rl.rdb.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rl.rdb.Expire(ctx, fullKey, rl.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(rl.limit), nil
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
			return
		}

		allowed, err := rl.Allow(r.Context(), userID)
		if err != nil {
			// Fail open: an unreachable limiter should not take the admin API down.
			log.WithError(err).Warn("rate limiter check failed")
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			log.WithField("user_id", userID).Warn("admin rate limit exceeded")
			common.RespondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
