package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo represents metadata for a stored document.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// DocumentStore captures the operations the shipment-document endpoints
// need: uploading scans (bill of lading, invoices) and fetching them back.
type DocumentStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
