package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/SpotTheSpy/backend/internal/config"
	"github.com/SpotTheSpy/backend/internal/model"
)

// ErrConflict is returned by Update when the watched key changed between
// read and write. Callers retry with a fresh read.
var ErrConflict = errors.New("store: concurrent modification")

// Store is a generic typed key-value store over Redis. Values are stored
// as JSON records under {prefix}:{tag}:{primary-key}.
//
// A payload that fails to decode is treated as absent, never as an error;
// this layer favors availability over strict validation. Scan is
// best-effort under concurrent mutation: it iterates the store's native
// cursor and may miss or duplicate entries written mid-scan.
type Store[T model.Object] struct {
	client *redis.Client
	prefix string
	tag    string
	decode func(model.Record) (T, bool)
}

func NewStore[T model.Object](client *redis.Client, prefix string, decode func(model.Record) (T, bool)) *Store[T] {
	var zero T
	return &Store[T]{
		client: client,
		prefix: prefix,
		tag:    zero.StorageKey(),
		decode: decode,
	}
}

func (s *Store[T]) key(primaryKey string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, s.tag, primaryKey)
}

func (s *Store[T]) pattern() string {
	return fmt.Sprintf("%s:%s:*", s.prefix, s.tag)
}

// opContext bounds one store operation so a stalled Redis node fails the
// call instead of holding the request until the outer timeout.
func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.StoreOpTimeout)
}

func (s *Store[T]) Set(ctx context.Context, value T) error {
	return s.SetTTL(ctx, value, 0)
}

func (s *Store[T]) SetTTL(ctx context.Context, value T, ttl time.Duration) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	payload, err := json.Marshal(map[string]any(value.ToRecord()))
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.tag, err)
	}
	if err := s.client.Set(ctx, s.key(value.PrimaryKey()), payload, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.tag, err)
	}
	return nil
}

// Get returns the stored value, or the zero value and nil when the key is
// absent or the payload is malformed.
func (s *Store[T]) Get(ctx context.Context, primaryKey string) (T, error) {
	var zero T

	ctx, cancel := opContext(ctx)
	defer cancel()

	payload, err := s.client.Get(ctx, s.key(primaryKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", s.tag, err)
	}

	return s.decodePayload(primaryKey, payload), nil
}

func (s *Store[T]) Exists(ctx context.Context, primaryKey string) (bool, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	n, err := s.client.Exists(ctx, s.key(primaryKey)).Result()
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", s.tag, err)
	}
	return n > 0, nil
}

func (s *Store[T]) Remove(ctx context.Context, primaryKey string) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if err := s.client.Del(ctx, s.key(primaryKey)).Err(); err != nil {
		return fmt.Errorf("remove %s: %w", s.tag, err)
	}
	return nil
}

// Scan returns up to limit values of this type, skipping the first offset
// keys in cursor order. Malformed values are skipped.
func (s *Store[T]) Scan(ctx context.Context, limit, offset int) ([]T, error) {
	if limit <= 0 {
		return nil, nil
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	var (
		cursor  uint64
		skipped int
		values  []T
	)

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.pattern(), config.ScanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.tag, err)
		}

		for _, key := range keys {
			if skipped < offset {
				skipped++
				continue
			}
			if len(values) >= limit {
				return values, nil
			}

			payload, err := s.client.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("scan get %s: %w", s.tag, err)
			}

			value := s.decodePayload(key, payload)
			if isZero(value) {
				continue
			}
			values = append(values, value)
		}

		cursor = next
		if cursor == 0 {
			return values, nil
		}
	}
}

// Update performs an optimistic read-modify-write on one key: the key is
// watched, fn mutates the current value, and the write is committed only
// if no concurrent write landed in between. Returns ErrConflict on a lost
// race and the value as written otherwise. fn receiving the zero value
// means the key is absent; returning an error from fn aborts the update.
func (s *Store[T]) Update(ctx context.Context, primaryKey string, fn func(T) (T, error)) (T, error) {
	var (
		zero    T
		updated T
	)

	ctx, cancel := opContext(ctx)
	defer cancel()

	key := s.key(primaryKey)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		var current T

		payload, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("get %s: %w", s.tag, err)
		}
		if err == nil {
			current = s.decodePayload(primaryKey, payload)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		out, err := json.Marshal(map[string]any(next.ToRecord()))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", s.tag, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, redis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}

		updated = next
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return zero, ErrConflict
	}
	if err != nil {
		return zero, err
	}
	return updated, nil
}

func (s *Store[T]) decodePayload(key string, payload []byte) T {
	var zero T

	var rec model.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		log.Warn().Str("key", key).Str("type", s.tag).Msg("malformed stored payload, treating as absent")
		return zero
	}

	value, ok := s.decode(rec)
	if !ok {
		log.Warn().Str("key", key).Str("type", s.tag).Msg("stored record failed validation, treating as absent")
		return zero
	}
	return value
}

func isZero[T model.Object](v T) bool {
	// T is always a pointer type here; comparing against the zero value
	// detects "absent".
	var zero T
	return any(v) == any(zero)
}
