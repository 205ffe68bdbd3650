package memory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swarakshak/vidhaan/pkg/errors"
)

// RedisStore is the shared-state Store for multi-instance deployments.  Each
// session is a Redis list of JSON-encoded turns, trimmed to the ring bound
// and refreshed with a sliding TTL on every append.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	maxTurns  int
	ttl       time.Duration
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client redis.UniversalClient, keyPrefix string, maxTurns int, ttl time.Duration) *RedisStore {
	if maxTurns < 1 {
		maxTurns = DefaultMaxTurns
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, maxTurns: maxTurns, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, turn Turn) error {
	if turn.isEmpty() {
		return nil
	}
	raw, err := json.Marshal(turn)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSessionStoreFailed, "encoding session turn")
	}

	key := s.key(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, raw)
	pipe.LTrim(ctx, key, int64(-s.maxTurns), -1)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeSessionStoreFailed, "appending session turn").
			WithDetail("session_id=" + sessionID)
	}
	return nil
}

func (s *RedisStore) Turns(ctx context.Context, sessionID string) ([]Turn, error) {
	rows, err := s.client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSessionStoreFailed, "reading session turns").
			WithDetail("session_id=" + sessionID)
	}
	turns := make([]Turn, 0, len(rows))
	for _, row := range rows {
		var t Turn
		if err := json.Unmarshal([]byte(row), &t); err != nil {
			// Skip rows written by an incompatible version.
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeSessionStoreFailed, "clearing session").
			WithDetail("session_id=" + sessionID)
	}
	return nil
}
