package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultContentType = "application/octet-stream"

// LocalDriver stores objects on disk under a two-level hashed directory
// tree, with the content type in a ".meta" sidecar.
type LocalDriver struct {
	baseDir   string
	publicURL string
}

// NewLocalDriver creates baseDir if needed. publicURL prefixes generated
// links, e.g. "/api/v1/files".
func NewLocalDriver(baseDir, publicURL string) (*LocalDriver, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	return &LocalDriver{baseDir: baseDir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (d *LocalDriver) path(key string) string {
	if len(key) < 4 {
		return filepath.Join(d.baseDir, key)
	}
	return filepath.Join(d.baseDir, key[0:2], key[2:4], key)
}

func (d *LocalDriver) Save(_ context.Context, key string, body io.Reader, contentType string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	full := d.path(key)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create hashed directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(full)
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return fmt.Errorf("close file: %w", err)
	}

	if err := os.WriteFile(full+".meta", []byte(contentType), 0o644); err != nil {
		os.Remove(full)
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func (d *LocalDriver) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	if err := ValidateKey(key); err != nil {
		return nil, "", err
	}
	full := d.path(key)

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("open file: %w", err)
	}

	contentType := defaultContentType
	if meta, err := os.ReadFile(full + ".meta"); err == nil && len(meta) > 0 {
		contentType = string(meta)
	}
	return f, contentType, nil
}

func (d *LocalDriver) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	full := d.path(key)

	_ = os.Remove(full + ".meta")
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// URL ignores expires; local links are served by the API itself.
func (d *LocalDriver) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	if d.publicURL == "" {
		return key, nil
	}
	return d.publicURL + "/" + key, nil
}
