package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps assets as binary values under
// {prefix}:blob:{bucket}:{key}. Buckets are pure namespacing; nothing
// needs creating up front.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	bucket  string
	ttl     time.Duration
	signer  *URLSigner
	baseURL string
}

// NewRedisStore builds a store for one bucket. ttl bounds how long assets
// live (0 = no expiration). baseURL is the public prefix signed URLs are
// rooted at, e.g. "https://api.example.com/v1/assets".
func NewRedisStore(client *redis.Client, prefix, bucket string, ttl time.Duration, signer *URLSigner, baseURL string) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		bucket:  bucket,
		ttl:     ttl,
		signer:  signer,
		baseURL: baseURL,
	}
}

func (s *RedisStore) Bucket() string {
	return s.bucket
}

func (s *RedisStore) key(key string) string {
	return fmt.Sprintf("%s:blob:%s:%s", s.prefix, s.bucket, key)
}

func (s *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("put blob %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s/%s: %w", s.bucket, key, err)
	}
	return data, nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("exists blob %s/%s: %w", s.bucket, key, err)
	}
	return n > 0, nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("remove blob %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func (s *RedisStore) URL(key string, ttl time.Duration) (string, error) {
	token, err := s.signer.Sign(s.bucket, key, ttl)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.baseURL, token), nil
}

var _ Store = (*RedisStore)(nil)
