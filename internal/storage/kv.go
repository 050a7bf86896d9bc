// Package storage provides the durable key/value slot the cart is
// persisted to. Every driver stores opaque bytes under a string key.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no entry.
var ErrNotFound = errors.New("storage: key not found")

// KV is a durable key/value slot.
// Delete on an absent key is not an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
