package interfaces

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -source=attachment_storage_interface.go -destination=mocks/attachment_storage_mock.go -package=mock_interfaces

// IAttachmentStorage stores quote request images in an object store.
type IAttachmentStorage interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}
