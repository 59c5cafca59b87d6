package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("invalid file path")

type FileStorage interface {
	// Upload stores a file under the given relative path and returns the cleaned path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file; a missing file is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL for a stored path
	GetURL(ctx context.Context, path string) (string, error)
}
