package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
	redisdb "github.com/appzeto/food-admin/internal/infrastructure/db/redis"
)

const (
	redisKeyPrefix   = "rtdb:"
	maxUpdateRetries = 5
)

// ErrUnsupportedPath is returned by RedisStore for paths deeper than
// "collection/child".
var ErrUnsupportedPath = errors.New("realtime: path too deep for redis backend")

// RedisStore keeps each collection in a hash "rtdb:<collection>" whose
// fields are child ids and whose values are JSON documents.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// RedisConnector dials Redis with the shared connection settings.
func RedisConnector(cfg redisdb.Config) Connector {
	return func(ctx context.Context) (ports.RealtimeStore, error) {
		if cfg.Addr == "" {
			return nil, fmt.Errorf("%w: REDIS_ADDR is empty", ErrNotConfigured)
		}
		client, err := redisdb.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	}
}

func (r *RedisStore) Get(ctx context.Context, path string) (domain.Record, error) {
	key, field, err := redisLocation(path)
	if err != nil {
		return nil, err
	}

	if field == "" {
		all, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis hgetall %s: %w", key, err)
		}
		return decodeHash(all)
	}

	raw, err := r.client.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget %s %s: %w", key, field, err)
	}
	return decodeDocument(raw)
}

func (r *RedisStore) Exists(ctx context.Context, path string) (bool, error) {
	key, field, err := redisLocation(path)
	if err != nil {
		return false, err
	}

	if field == "" {
		n, err := r.client.Exists(ctx, key).Result()
		if err != nil {
			return false, fmt.Errorf("redis exists %s: %w", key, err)
		}
		return n > 0, nil
	}
	ok, err := r.client.HExists(ctx, key, field).Result()
	if err != nil {
		return false, fmt.Errorf("redis hexists %s %s: %w", key, field, err)
	}
	return ok, nil
}

// Set replaces a child, or the whole hash when path names a collection.
func (r *RedisStore) Set(ctx context.Context, path string, value domain.Record) error {
	key, field, err := redisLocation(path)
	if err != nil {
		return err
	}
	doc, err := normalizeRecord(value)
	if err != nil {
		return err
	}

	if field != "" {
		if doc == nil {
			return r.client.HDel(ctx, key, field).Err()
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		return r.client.HSet(ctx, key, field, raw).Err()
	}

	fields, err := encodeHash(doc)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis replace %s: %w", key, err)
	}
	return nil
}

// Update merges fields into a child document under WATCH, retrying when a
// concurrent writer touches the hash first.
func (r *RedisStore) Update(ctx context.Context, path string, fields domain.Record) error {
	key, field, err := redisLocation(path)
	if err != nil {
		return err
	}
	if field == "" {
		return r.updateCollection(ctx, key, fields)
	}

	patch := make(map[string]any, len(fields))
	for k, v := range fields {
		nv, err := normalize(v)
		if err != nil {
			return err
		}
		patch[k] = nv
	}

	txf := func(tx *redis.Tx) error {
		doc := make(map[string]any)
		raw, err := tx.HGet(ctx, key, field).Result()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if err := json.Unmarshal([]byte(raw), &doc); err != nil {
				return fmt.Errorf("decode %s %s: %w", key, field, err)
			}
		}

		for k, v := range patch {
			if v == nil {
				delete(doc, k)
				continue
			}
			doc[k] = v
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(doc) == 0 {
				pipe.HDel(ctx, key, field)
				return nil
			}
			encoded, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			pipe.HSet(ctx, key, field, encoded)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err = r.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("redis update %s %s: %w", key, field, err)
	}
	return nil
}

func (r *RedisStore) updateCollection(ctx context.Context, key string, fields domain.Record) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for id, v := range fields {
			nv, err := normalize(v)
			if err != nil {
				return err
			}
			if nv == nil {
				pipe.HDel(ctx, key, id)
				continue
			}
			raw, err := json.Marshal(nv)
			if err != nil {
				return err
			}
			pipe.HSet(ctx, key, id, raw)
		}
		return nil
	})
	return err
}

func (r *RedisStore) Remove(ctx context.Context, path string) error {
	key, field, err := redisLocation(path)
	if err != nil {
		return err
	}
	if field == "" {
		return r.client.Del(ctx, key).Err()
	}
	return r.client.HDel(ctx, key, field).Err()
}

// QueryEqual scans the collection hash and filters in process.
func (r *RedisStore) QueryEqual(ctx context.Context, path, child string, value any) (map[string]domain.Record, error) {
	all, err := r.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.Record)
	for id, rec := range childRecords(all) {
		if equalValues(rec[child], value) {
			out[id] = rec
		}
	}
	return out, nil
}

func redisLocation(path string) (key, field string, err error) {
	segs, err := splitPath(path)
	if err != nil {
		return "", "", err
	}
	switch len(segs) {
	case 1:
		return redisKeyPrefix + segs[0], "", nil
	case 2:
		return redisKeyPrefix + segs[0], segs[1], nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedPath, path)
	}
}

func encodeHash(doc map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(doc))
	for id, v := range doc {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[id] = string(raw)
	}
	return out, nil
}

func decodeHash(all map[string]string) (domain.Record, error) {
	if len(all) == 0 {
		return nil, nil
	}
	out := make(domain.Record, len(all))
	for id, raw := range all {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("decode child %s: %w", id, err)
		}
		out[id] = v
	}
	return out, nil
}

func decodeDocument(raw string) (domain.Record, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, nil
	}
	return domain.Record(doc), nil
}
