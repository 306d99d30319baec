// Package session implements the identity/session collaborator surface the
// core consumes: a per-principal metadata bag with TTL semantics. It is a
// credential cache for the connect flow, nothing more; session internals
// (cookies, verification) belong to the external identity provider.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "session:meta:"

// Store keeps per-principal metadata bags in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStore constructs a store with the given bag TTL.
func NewStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{client: client, ttl: ttl, logger: logger}
}

// Metadata returns the bag for a principal, refreshing its TTL. A missing
// bag yields an empty map, not an error.
func (s *Store) Metadata(ctx context.Context, principalID string) (map[string]string, error) {
	key := keyPrefix + principalID
	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: get metadata: %w", err)
	}

	var bag map[string]string
	if err := json.Unmarshal([]byte(raw), &bag); err != nil {
		return nil, fmt.Errorf("session: decode metadata: %w", err)
	}

	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		s.logger.Warn("session ttl refresh failed", zap.Error(err))
	}
	return bag, nil
}

// UpdateMetadata merges updates into the bag and rewrites it with a fresh
// TTL. An empty string value removes the key.
func (s *Store) UpdateMetadata(ctx context.Context, principalID string, updates map[string]string) (map[string]string, error) {
	bag, err := s.Metadata(ctx, principalID)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		if v == "" {
			delete(bag, k)
			continue
		}
		bag[k] = v
	}

	encoded, err := json.Marshal(bag)
	if err != nil {
		return nil, fmt.Errorf("session: encode metadata: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+principalID, encoded, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session: set metadata: %w", err)
	}
	return bag, nil
}

// Clear drops the bag entirely.
func (s *Store) Clear(ctx context.Context, principalID string) error {
	if err := s.client.Del(ctx, keyPrefix+principalID).Err(); err != nil {
		return fmt.Errorf("session: clear metadata: %w", err)
	}
	return nil
}
