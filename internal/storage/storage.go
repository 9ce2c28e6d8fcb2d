package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains read-only access to S3-compatible object stores.
// Objects are streamed; nothing is buffered on local disk.

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is a reusable, S3-compatible object storage client interface.
type Storage interface {
	// Get retrieves an object's content as a streaming reader alongside its info.
	// A missing object is reported as an error before any content is returned.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}
