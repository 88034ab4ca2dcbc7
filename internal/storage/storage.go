package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// PutOptions describes a single object write.
type PutOptions struct {
	Key         string
	ContentType string
	Size        int64
}

// Service stores user uploaded blobs in remote object storage.
type Service interface {
	// PutObject writes body under opts.Key and returns its public URL.
	PutObject(ctx context.Context, body io.Reader, opts PutOptions) (string, error)
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DeleteObjects(ctx context.Context, keys ...string) error
	ObjectURL(key string) string
}
