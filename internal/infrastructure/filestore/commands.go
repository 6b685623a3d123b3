package filestore

import (
	"context"

	"labelprint/internal/domain/printing"
)

// SaveCommandFile stores an encoded batch for download.
func (s *Store) SaveCommandFile(ctx context.Context, name string, data []byte) (printing.File, error) {
	obj, err := s.Put(ctx, name, data, printing.CommandContentType)
	if err != nil {
		return printing.File{}, err
	}
	return printing.File{
		Key:        obj.Key,
		Name:       obj.Name,
		URL:        obj.URL,
		Size:       obj.Size,
		Compressed: obj.Compressed,
	}, nil
}

var _ printing.FileStore = (*Store)(nil)
