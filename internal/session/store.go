package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore persists the access token between restarts of the terminal.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the token for the life of the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	return m.Save(context.Background(), "")
}

// RedisStore keeps the token under a single key.
type RedisStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisStore stores under key; a zero ttl never expires.
func NewRedisStore(rdb *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, key: "pos:session:" + key, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	return s.rdb.Set(ctx, s.key, token, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}
