package page

import (
	"context"
	"io"

	"pageserver/internal/storage"
)

// ObjectSource reads the page from an object store key.
type ObjectSource struct {
	store storage.Storage
	key   string
}

// NewObjectSource returns a Source fetching key from store on every Open.
func NewObjectSource(store storage.Storage, key string) *ObjectSource {
	return &ObjectSource{store: store, key: key}
}

var _ Source = (*ObjectSource)(nil)

func (s *ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, _, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, &FileReadError{Path: s.key, Err: err}
	}
	return rc, nil
}
