package blob_storage

import (
	"context"
	"io"
	"time"
)

// Storage abstracts where attachment bytes live. Implementations cover local
// disk for single-node deployments and S3-compatible object stores.
type Storage interface {
	Write(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Read(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a URL for downloading the content. S3 returns a presigned
	// URL valid for the given duration, local storage returns an API path.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
