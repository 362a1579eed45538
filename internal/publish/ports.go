package publish

import (
	"context"
	"io"
)

// StorageClient is the low-level content store.
type StorageClient interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (publicURL string, err error)
}
