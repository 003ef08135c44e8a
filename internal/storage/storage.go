// Package storage abstracts the object store holding identity documents. The
// core only writes files and records their paths; retrieval happens through
// short-lived signed URLs generated for the admin dashboard.
package storage

import (
	"context"
	"io"
	"time"
)

// DocumentStore is the object-storage contract consumed by the verification
// pipeline
type DocumentStore interface {
	// Upload writes one object. The path is chosen by the caller and must be
	// collision-resistant; Upload never overwrites silently on stores that
	// support conditional writes.
	Upload(ctx context.Context, bucket, path string, data io.Reader, contentType string) error

	// SignedURL returns a time-limited retrieval URL for a stored object
	SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error)
}
