// Package metadata is the client's local key/value store: the auth token,
// the serialized user, the token expiry and the legacy avatar cache.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteKeys(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
