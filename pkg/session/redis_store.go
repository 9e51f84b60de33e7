package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session history in a Redis list with a sliding TTL. Every
// append refreshes the expiry, so history lives exactly as long as the
// session stays active.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s", sessionID)
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}
	key := sessionKey(sessionID)

	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		raw, err := json.Marshal(turn)
		if err != nil {
			return err
		}
		values = append(values, raw)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) History(ctx context.Context, sessionID string) ([]Turn, error) {
	raw, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(raw))
	for _, item := range raw {
		var turn Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			continue // skip unreadable entries, history is best effort
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
