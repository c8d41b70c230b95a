package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when key has no stored value.
var ErrNotFound = errors.New("store: key not found")

// Store is the only persistence contract the core depends on: a plain
// key/value interface, synchronous from the caller's point of view (§6, §9).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// NoteCacheStateKey is the fixed persistence key for a synchronizer's note
// cache snapshot (§6).
const NoteCacheStateKey = "notecache.state"

// TreeKey is the persistence key for the commitment tree belonging to a
// given address identifier (§6: "tree.<address-id>").
func TreeKey(addressID string) string {
	return "tree." + addressID
}
