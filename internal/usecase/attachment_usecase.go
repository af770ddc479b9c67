package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"instauto/internal/domain/entities"
	"instauto/internal/infrastructure/logger"
	"instauto/internal/usecase/interfaces"
)

const (
	MaxAttachmentSize   = 5 << 20
	attachmentURLTTL    = time.Hour
	attachmentKeyPrefix = "quote-requests"
)

var attachmentExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// IAttachmentUseCase handles the images a motorist attaches to a quote request.
// Upload happens before submit; the returned key goes into Submission.Images.
type IAttachmentUseCase interface {
	Upload(ctx context.Context, actor entities.Actor, contentType string, size int64, r io.Reader) (entities.Attachment, error)
	URL(ctx context.Context, key string) (string, error)
}

type AttachmentUseCase struct {
	storage interfaces.IAttachmentStorage
	log     *zap.Logger
}

var _ IAttachmentUseCase = (*AttachmentUseCase)(nil)

func NewAttachmentUseCase(storage interfaces.IAttachmentStorage, log *zap.Logger) *AttachmentUseCase {
	return &AttachmentUseCase{storage: storage, log: logger.OrNop(log)}
}

func (u *AttachmentUseCase) Upload(ctx context.Context, actor entities.Actor, contentType string, size int64, r io.Reader) (entities.Attachment, error) {
	if u.storage == nil {
		return entities.Attachment{}, ErrStorageDisabled
	}
	if strings.TrimSpace(actor.AccountID) == "" {
		return entities.Attachment{}, fmt.Errorf("%w: uploads require a session", ErrNotAuthorized)
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := attachmentExtensions[contentType]
	if !ok {
		return entities.Attachment{}, fmt.Errorf("%w: content type %q is not supported", ErrInvalidAttachment, contentType)
	}
	if size <= 0 || size > MaxAttachmentSize {
		return entities.Attachment{}, fmt.Errorf("%w: size must be between 1 and %d bytes, got %d", ErrInvalidAttachment, MaxAttachmentSize, size)
	}

	owner := strings.TrimSpace(actor.AccountID)
	key := path.Join(attachmentKeyPrefix, owner, uuid.NewString()+ext)

	if err := u.storage.Put(ctx, key, contentType, io.LimitReader(r, size), size); err != nil {
		return entities.Attachment{}, fmt.Errorf("attachment: upload %s: %w", key, err)
	}

	url, err := u.storage.PresignedURL(ctx, key, attachmentURLTTL)
	if err != nil {
		return entities.Attachment{}, fmt.Errorf("attachment: presign %s: %w", key, err)
	}

	u.log.Info("[quote][attachment] uploaded", zap.String("key", key), zap.Int64("size", size))
	return entities.Attachment{Key: key, URL: url, ContentType: contentType, Size: size}, nil
}

// URL returns a fresh presigned link for a stored attachment.
func (u *AttachmentUseCase) URL(ctx context.Context, key string) (string, error) {
	if u.storage == nil {
		return "", ErrStorageDisabled
	}
	key = strings.TrimSpace(key)
	if key == "" || !strings.HasPrefix(key, attachmentKeyPrefix+"/") {
		return "", fmt.Errorf("%w: unknown attachment key %q", ErrInvalidAttachment, key)
	}

	exists, err := u.storage.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("attachment: stat %s: %w", key, err)
	}
	if !exists {
		return "", fmt.Errorf("%w: attachment %q not found", ErrInvalidAttachment, key)
	}
	return u.storage.PresignedURL(ctx, key, attachmentURLTTL)
}
