// Package blob stores binary assets (invitation QR codes) namespaced by
// bucket. The Store interface is what the rest of the system consumes; the
// Redis implementation below keeps the deployment footprint to the stores
// the service already runs, and object storage can replace it behind the
// same interface.
package blob

import (
	"context"
	"time"
)

type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	// Get returns nil, nil when the asset is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Remove(ctx context.Context, key string) error
	// URL returns a signed URL granting access to the asset for ttl.
	URL(key string, ttl time.Duration) (string, error)
}
