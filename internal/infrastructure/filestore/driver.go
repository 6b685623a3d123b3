// Package filestore keeps encoded command files for later download.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrNotFound is returned by Get for an unknown key.
var ErrNotFound = errors.New("filestore: object not found")

// Driver is a binary object backend.
type Driver interface {
	// Save writes body under key.
	Save(ctx context.Context, key string, body io.Reader, contentType string) error

	// Get streams the object back with its content type.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Delete removes the object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns a link clients can download the object from.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// ValidateKey rejects keys that could escape the storage root.
func ValidateKey(key string) error {
	if key == "" || len(key) > 255 {
		return fmt.Errorf("filestore: invalid key length %d", len(key))
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") || strings.HasPrefix(key, ".") {
		return fmt.Errorf("filestore: invalid key %q", key)
	}
	return nil
}
