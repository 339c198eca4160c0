package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidPath is returned for keys that would escape the storage root.
var ErrInvalidPath = errors.New("invalid file path")

// FileStorage stores opaque objects under slash-separated keys.
type FileStorage interface {
	// Upload stores a file and returns its cleaned key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL of a stored key
	GetURL(ctx context.Context, path string) (string, error)
}
