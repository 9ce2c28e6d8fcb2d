// Package page provides the single document the server returns for every request.
//
// A Source is opened once per request and never cached, so changes to the
// underlying file or object are visible on the next request.
package page

import (
	"context"
	"fmt"
	"io"
)

// ContentType is sent with every successful page response.
const ContentType = "text/html"

// Source opens a fresh reader over the page content. Callers must close it.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileReadError reports that the page could not be opened for a request.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read page %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }
