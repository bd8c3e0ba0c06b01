package core

import (
	"context"
	"io"
)

// FileStorage is any object store that can serve uploaded files through a public URL.
type FileStorage interface {
	// Upload writes r under key, replacing any existing object, and returns its public URL.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	// Delete removes the object stored under key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
	// KeyFromURL returns the key of an object from its public URL.
	KeyFromURL(url string) (string, bool)
}
