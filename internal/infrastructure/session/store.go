// Package session persists console sessions in Redis.
// A session survives console restarts; its Redis TTL is the only expiry the
// console tracks — token expiry upstream is discovered reactively via 401.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fixware/console/internal/core/ports"
)

const defaultTTL = 30 * 24 * time.Hour

// RedisStore implements ports.SessionStore on top of a Redis client.
// Key format: session:<uuid>
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps the given Redis client. A default TTL is applied when
// none is provided.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Create assigns a fresh ID and persists the session.
func (s *RedisStore) Create(ctx context.Context, sess *ports.Session) error {
	sess.ID = uuid.NewString()
	sess.CreatedAt = time.Now().UTC()
	return s.write(ctx, sess)
}

// Get loads a session by ID. Missing or expired sessions return
// ports.ErrSessionNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (*ports.Session, error) {
	raw, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var sess ports.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &sess, nil
}

// Save persists updated session state (cached profile, pager bookkeeping)
// and refreshes the TTL.
func (s *RedisStore) Save(ctx context.Context, sess *ports.Session) error {
	if sess.ID == "" {
		return ports.ErrSessionNotFound
	}
	return s.write(ctx, sess)
}

// Delete tears a session down. Deleting a session that no longer exists is
// not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *RedisStore) write(ctx context.Context, sess *ports.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func key(id string) string {
	return "session:" + id
}
