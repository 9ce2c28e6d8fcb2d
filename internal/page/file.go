package page

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
)

var errIsDir = errors.New("is a directory")

// FileSource reads the page from a billy filesystem.
type FileSource struct {
	fs   billy.Filesystem
	name string
}

// NewFileSource returns a Source reading name from fs on every Open.
func NewFileSource(fs billy.Filesystem, name string) *FileSource {
	return &FileSource{fs: fs, name: name}
}

var _ Source = (*FileSource)(nil)

// Open opens the file. Directories are rejected up front; reading one would
// fail only after the response status was committed.
func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := s.fs.Open(s.name)
	if err != nil {
		return nil, &FileReadError{Path: s.name, Err: err}
	}
	fi, err := s.stat(f)
	if err != nil {
		f.Close()
		return nil, &FileReadError{Path: s.name, Err: err}
	}
	if fi.IsDir() {
		f.Close()
		return nil, &FileReadError{Path: s.name, Err: errIsDir}
	}
	return f, nil
}

// stat describes the opened handle, so a rename after Open cannot make the
// check apply to a different file than the one being streamed.
func (s *FileSource) stat(f billy.File) (os.FileInfo, error) {
	if sf, ok := f.(interface{ Stat() (os.FileInfo, error) }); ok {
		return sf.Stat()
	}
	return s.fs.Stat(s.name)
}
