package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is durable string key-value storage. Values are written entry by
// entry and keys stay individually enumerable by prefix.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
