// Package metadata is the client's local key/value store. It keeps the
// role sessions and the small append-only logs the client writes
// (forgot-password requests, submitted applications). Values are opaque
// bytes, normally JSON documents.
package metadata

import (
	"context"
)

// UpdateFunc receives the current value of a key (nil when absent) and
// returns the value to store.
type UpdateFunc func(old []byte) ([]byte, error)

// Repository is implemented by the SQLite and Redis stores. Get returns
// (nil, nil) for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	// Update performs an atomic read-modify-write of key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
