package redisad

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saikatmaity13/vibemap/internal/adapters/observability"
)

// Sessions keeps login sessions in Redis, keyed by an opaque random
// token handed to the browser as a cookie.
type Sessions struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *Sessions {
	return &Sessions{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

func (s *Sessions) Create(ctx context.Context, userID string) (string, error) {
	var b [24]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b[:])
	observability.ObserveCache("sessions", "set")
	if err := s.c.Set(ctx, key(token), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Sessions) Get(ctx context.Context, token string) (string, bool, error) {
	v, err := s.c.Get(ctx, key(token)).Result()
	if err == redis.Nil {
		observability.ObserveCache("sessions", "miss")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	observability.ObserveCache("sessions", "hit")
	return v, true, nil
}

func (s *Sessions) Delete(ctx context.Context, token string) error {
	observability.ObserveCache("sessions", "del")
	return s.c.Del(ctx, key(token)).Err()
}

func key(token string) string { return "session:" + token }
