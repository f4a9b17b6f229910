package store

import "context"

// CollectionKey is the key the board collection is persisted under.
const CollectionKey = "boards"

// Store is durable key/value byte storage.
//
// Read reports ok=false with a nil error when the key is absent. Write
// replaces the whole value; readers never observe a partially written value.
// Implementations return backend failures as-is; they don't retry.
type Store interface {
	Read(ctx context.Context, key string) (data []byte, ok bool, err error)
	Write(ctx context.Context, key string, data []byte) error
	Close() error
}
