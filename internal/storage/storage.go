// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the requested object does not exist in the bucket.
var ErrNotFound = errors.New("object not found")

// ErrUnavailable is returned when the object store is unreachable or the
// call timed out. Callers map it to a 502-equivalent outcome; every other
// failure is an unclassified server error.
var ErrUnavailable = errors.New("object store unavailable")

// Storage is the interface for uploading and retrieving objects.
// All errors are classified: absent objects wrap ErrNotFound, connectivity
// failures wrap ErrUnavailable.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// PresignedURL returns a time-limited signed URL granting direct read
	// access to the object at key.
	PresignedURL(ctx context.Context, key string) (string, error)
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is present at key.
	Exists(ctx context.Context, key string) (bool, error)
}
