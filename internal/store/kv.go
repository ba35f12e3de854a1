package store

import (
	"context"
	"errors"
)

// ErrKeyMissing is returned by KV.Get when the key has never been written
// or has been deleted. Gateway readers translate it into empty collections.
var ErrKeyMissing = errors.New("store: key missing")

// KV is the durable key-value boundary the Gateway sits on. Values are
// JSON-serialized text blobs; backends store them opaquely.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
