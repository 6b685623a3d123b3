package settings

import (
	"context"
	"encoding/json"
)

// Repository is a key/value store of JSON documents.
type Repository interface {
	// Get returns (nil, nil) when the key has never been written.
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
}
