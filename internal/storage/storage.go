package storage

import (
	"context"
	"time"
)

// Store is the object-store contract the render pipeline depends on.
// PutFile streams from disk so large objects never have to fit in memory.
type Store interface {
	PutFile(ctx context.Context, key, path, contentType string) error
	Presign(ctx context.Context, key string, expires time.Duration) (string, error)
}
