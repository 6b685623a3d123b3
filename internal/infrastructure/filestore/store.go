package filestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"labelprint/internal/core/id"
)

// CompressedSuffix marks objects stored zstd-compressed.
const CompressedSuffix = ".zst"

// Object describes a stored file.
type Object struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Size        int    `json:"size"`
	StoredSize  int    `json:"storedSize"`
	Compressed  bool   `json:"compressed"`
	ContentType string `json:"contentType"`
	URL         string `json:"url"`
}

// Store adds naming, compression and link generation on top of a Driver.
type Store struct {
	driver    Driver
	threshold int
	expiry    time.Duration
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
}

// NewStore wraps driver. Payloads larger than threshold bytes are
// compressed; threshold <= 0 disables compression.
func NewStore(driver Driver, threshold int, expiry time.Duration) (*Store, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Store{
		driver:    driver,
		threshold: threshold,
		expiry:    expiry,
		encoder:   encoder,
		decoder:   decoder,
	}, nil
}

// Put stores data under a fresh key derived from name.
func (s *Store) Put(ctx context.Context, name string, data []byte, contentType string) (Object, error) {
	obj := Object{
		Key:         id.New().String() + "-" + sanitizeName(name),
		Name:        name,
		Size:        len(data),
		ContentType: contentType,
	}

	payload := data
	if s.threshold > 0 && len(data) > s.threshold {
		payload = s.encoder.EncodeAll(data, make([]byte, 0, len(data)/4))
		obj.Key += CompressedSuffix
		obj.Compressed = true
	}
	obj.StoredSize = len(payload)

	if err := s.driver.Save(ctx, obj.Key, bytes.NewReader(payload), contentType); err != nil {
		return Object{}, err
	}

	url, err := s.driver.URL(ctx, obj.Key, s.expiry)
	if err != nil {
		return Object{}, err
	}
	obj.URL = url
	return obj, nil
}

// Open returns the decompressed contents of key and its content type.
func (s *Store) Open(ctx context.Context, key string) ([]byte, string, error) {
	rc, contentType, err := s.driver.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("read object: %w", err)
	}

	if strings.HasSuffix(key, CompressedSuffix) {
		raw, err = s.decoder.DecodeAll(raw, nil)
		if err != nil {
			return nil, "", fmt.Errorf("decompress object: %w", err)
		}
	}
	return raw, contentType, nil
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.driver.Delete(ctx, key)
}

// DownloadName returns the file name a client should save key as.
func DownloadName(key string) string {
	name := strings.TrimSuffix(key, CompressedSuffix)
	// keys are "<uuid>-<name>"; a uuid is 36 characters
	if len(name) > 37 && name[36] == '-' {
		return name[37:]
	}
	return name
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == '.':
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		default:
			b.WriteRune('_')
		}
	}
	out := strings.ReplaceAll(b.String(), "..", "_")
	if out == "" {
		return "labels"
	}
	if len(out) > 128 {
		out = out[len(out)-128:]
	}
	return out
}
