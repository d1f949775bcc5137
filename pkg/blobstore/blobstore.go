// Package blobstore provides put/get access to named binary blobs grouped
// into flat buckets. Originals land in one bucket, computed derivatives in
// another; both are addressed by blob name only.
package blobstore

import "context"

// Store is the object storage interface consumed by the media pipeline and
// the photo upload path.
type Store interface {
	// EnsureBucket creates the bucket if it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error
	// BucketExists reports whether the bucket exists.
	BucketExists(ctx context.Context, bucket string) (bool, error)
	// Put writes a blob, overwriting any previous content under the same name.
	Put(ctx context.Context, bucket, name string, data []byte, contentType string) error
	// Get reads a blob fully into memory.
	Get(ctx context.Context, bucket, name string) ([]byte, error)
	// URL returns the public address of a blob.
	URL(bucket, name string) string
}
