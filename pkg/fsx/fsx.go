package fsx

import (
	"context"
	"errors"
	"io"
	"path"
)

// ErrNotExist is returned when a file is absent
var ErrNotExist = errors.New("fsx: file does not exist")

// FileSystem is the storage port for uploaded documents
type FileSystem interface {
	// ReadFile reads the whole file at name
	ReadFile(ctx context.Context, name string) ([]byte, error)

	// WriteFile stores data at name, replacing any existing file
	WriteFile(ctx context.Context, name string, data []byte) error

	// Open streams the file at name
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Remove deletes the file at name
	Remove(ctx context.Context, name string) error

	// Exists reports whether name is present
	Exists(ctx context.Context, name string) (bool, error)

	// Join builds a storage path from elements
	Join(elem ...string) string
}

// CleanName strips directory components from a client supplied file name
func CleanName(name string) string {
	base := path.Base(path.Clean("/" + name))
	if base == "/" || base == "." {
		return ""
	}
	return base
}
