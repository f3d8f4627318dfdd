package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domainRepo "go-medical-scheduling/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces every collection hash
const RedisKeyPrefix = "scheduler:store:"

// RedisStore keeps a collection in a single Redis hash: field = entity ID,
// value = JSON document.
type RedisStore[T domainRepo.Entity[T]] struct {
	client *redis.Client
	key    string
}

func NewRedisStore[T domainRepo.Entity[T]](client *redis.Client, name string) *RedisStore[T] {
	return &RedisStore[T]{
		client: client,
		key:    RedisKeyPrefix + name,
	}
}

func (s *RedisStore[T]) SaveAll(ctx context.Context, entities map[string]T) error {
	fields := make(map[string]interface{}, len(entities))
	for id, e := range entities {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", s.key, id, err)
		}
		fields[id] = string(data)
	}

	// DEL + HSET in one MULTI/EXEC so readers never see a half-written hash
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, s.key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore[T]) LoadAll(ctx context.Context) (map[string]T, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}

	out := make(map[string]T, len(raw))
	for id, data := range raw {
		var e T
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", s.key, id, err)
		}
		out[id] = e
	}
	return out, nil
}

func (s *RedisStore[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	var e T

	data, err := s.client.HGet(ctx, s.key, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return e, false, nil
		}
		return e, false, fmt.Errorf("get %s/%s: %w", s.key, id, err)
	}
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return e, false, fmt.Errorf("decode %s/%s: %w", s.key, id, err)
	}
	return e, true, nil
}

func (s *RedisStore[T]) Save(ctx context.Context, e T) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", s.key, e.Key(), err)
	}
	if err := s.client.HSet(ctx, s.key, e.Key(), string(data)).Err(); err != nil {
		return fmt.Errorf("save %s/%s: %w", s.key, e.Key(), err)
	}
	return nil
}

func (s *RedisStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.client.HDel(ctx, s.key, id).Err(); err != nil {
		return fmt.Errorf("delete %s/%s: %w", s.key, id, err)
	}
	return nil
}
