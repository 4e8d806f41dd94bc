package cache

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed implementation of Store. Entries are stored as
// JSON without a Redis expiry: TTL handling stays with the caller so stale
// entries survive for fallback reads.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Store on top of the given Redis client.
// If namespace is empty, it uses "portfolio".
func NewRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "portfolio"
	}
	return &RedisStore{rdb: rdb, namespace: namespace}
}

func (s *RedisStore) redisKey(key string) string {
	return s.namespace + ":" + key
}

// Get returns the entry for key, or nil if absent. Corrupted entries are
// deleted and treated as absent.
func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	b, err := s.rdb.Get(ctx, s.redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		_ = s.rdb.Del(ctx, s.redisKey(key)).Err()
		return nil, nil
	}
	e.Key = key
	return &e, nil
}

// Set stores value under key, overwriting any previous entry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ts time.Time) error {
	b, err := json.Marshal(Entry{Key: key, Value: value, Timestamp: ts})
	if err != nil {
		return err
	}
	// No Redis expiry: staleness is evaluated on read.
	return s.rdb.Set(ctx, s.redisKey(key), b, 0).Err()
}

// Keys returns key and timestamp for every entry under prefix using SCAN.
func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]Entry, error) {
	keys, err := s.scan(ctx, s.redisKey(prefix)+"*")
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		b, err := s.rdb.Get(ctx, k).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var e Entry
		if err := json.Unmarshal(b, &e); err != nil {
			continue
		}
		out = append(out, Entry{Key: k[len(s.namespace)+1:], Timestamp: e.Timestamp})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Clear removes all entries under prefix.
func (s *RedisStore) Clear(ctx context.Context, prefix string) error {
	keys, err := s.scan(ctx, s.redisKey(prefix)+"*")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// scan collects all keys matching pattern using SCAN.
func (s *RedisStore) scan(ctx context.Context, pattern string) ([]string, error) {
	var out []string
	var cursor uint64
	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return nil, err
		}
		out = append(out, keys...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return out, nil
}
