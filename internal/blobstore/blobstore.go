// Package blobstore persists opaque JSON documents under string keys. The
// game keeps its whole aggregate in a single key, so backends only need
// point reads and writes.
package blobstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blob not found")

// Store is a key-value store for JSON documents.
type Store interface {
	// Get returns ErrNotFound when key has never been written or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
