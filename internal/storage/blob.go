package storage

import (
	"context"
	"io"
)

// FileUpload is one incoming file, detached from the HTTP layer so services
// and tests do not depend on multipart.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// BlobStorage is the object store project images live in. Upload returns the
// public URL of the stored blob. Delete is idempotent: deleting an absent key
// is not an error. KeyFromURL recovers the object key from a URL previously
// returned by Upload.
type BlobStorage interface {
	Upload(ctx context.Context, file FileUpload) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(rawURL string) (string, error)
}
