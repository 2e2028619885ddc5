package cartstore

import (
	"context"
	"errors"
	"time"

	"marketcart/internal/domain/cart"
	repo "marketcart/internal/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// RedisCartStore はセッションカートをRedisにJSONスナップショットで保存する。
// 書き込みはスナップショット丸ごと（後勝ち）。TTLでセッション寿命を区切る。
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DI
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

var _ repo.CartStore = (*RedisCartStore)(nil)

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *RedisCartStore) Load(ctx context.Context, sessionID string) ([]cart.Item, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(data)
}

func (s *RedisCartStore) Save(ctx context.Context, sessionID string, items []cart.Item) error {
	data, err := encodeSnapshot(items, time.Now())
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err()
}

func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *RedisCartStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
