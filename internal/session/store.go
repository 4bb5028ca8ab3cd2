package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the opaque session cookie attached to every
// authenticated request.
const CookieName = "nomad_session"

var ErrNoSession = errors.New("session not found")

// Store keeps server-side sessions in Redis. The cookie carries only an
// opaque session id; the id resolves to a user id with a sliding TTL.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{redis: redisClient, ttl: ttl}
}

func (s *Store) Issue(ctx context.Context, userID string) (string, error) {
	if s.redis == nil {
		return "", errors.New("session store unavailable")
	}
	id := uuid.NewString()
	if err := s.redis.Set(ctx, sessionKey(id), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Resolve(ctx context.Context, sessionID string) (string, error) {
	if s.redis == nil || sessionID == "" {
		return "", ErrNoSession
	}
	userID, err := s.redis.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	_ = s.redis.Expire(ctx, sessionKey(sessionID), s.ttl).Err()
	return userID, nil
}

func (s *Store) Revoke(ctx context.Context, sessionID string) error {
	if s.redis == nil || sessionID == "" {
		return nil
	}
	return s.redis.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(id string) string {
	return "session:" + id
}
