// redisdb — реализация storage.Counters поверх Redis.
//
// Атомарность: INCR в Redis атомарен сам по себе; EXPIRE выставляется в той
// же транзакционной пайплайне, так что конкурентные неудачные входы не
// теряют попыток и не оставляют ключ без TTL.
package redisdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store — клиент Redis для счётчиков неудачных входов.
type Store struct {
	rdb *redis.Client
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Подключение проверяется сразу (fail-fast на старте).
func New(ctx context.Context, redisURL string) (*Store, error) {
	const op = "storage.redisdb.New"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{rdb: rdb}, nil
}

// NewWithClient оборачивает готовый клиент (используется в тестах с miniredis).
func NewWithClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Count возвращает текущее значение счётчика; 0 — если ключа нет.
func (s *Store) Count(ctx context.Context, key string) (int64, error) {
	const op = "storage.redisdb.Count"

	n, err := s.rdb.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// IncrWithTTL атомарно увеличивает счётчик и перевыставляет TTL.
func (s *Store) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	const op = "storage.redisdb.IncrWithTTL"

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return incr.Val(), nil
}

// Delete удаляет счётчик; отсутствие ключа — не ошибка.
func (s *Store) Delete(ctx context.Context, key string) error {
	const op = "storage.redisdb.Delete"

	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает клиент Redis.
func (s *Store) Close() error { return s.rdb.Close() }
