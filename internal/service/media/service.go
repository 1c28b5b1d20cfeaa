package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/clock"
)

const presignExpiry = 15 * time.Minute

const attachmentPrefix = "attachments/"

var (
	ErrStorageUnavailable = errors.New("object storage is not configured")
	ErrKeyNotAllowed      = errors.New("object key is not an attachment")
)

// ObjectStore is the part of *minio.Client the service uses.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type Service interface {
	UploadAttachment(ctx context.Context, fileName, mimeType string, size int64, reader io.Reader) (*domain.Attachment, error)
	AttachmentURL(ctx context.Context, key string) (string, error)
	DeleteAttachment(ctx context.Context, key string) error
	UploadBackup(ctx context.Context, fileName string, data []byte) (string, error)
}

type service struct {
	store  ObjectStore
	bucket string
	clock  clock.Clock
}

// NewService accepts a nil store; every call then fails with ErrStorageUnavailable.
func NewService(store ObjectStore, bucket string, c clock.Clock) Service {
	return &service{
		store:  store,
		bucket: bucket,
		clock:  c,
	}
}

// UploadAttachment stores the payload under attachments/YYYY/MM/<uuid> and returns an attachment
// whose Data is the object key.
func (s *service) UploadAttachment(ctx context.Context, fileName, mimeType string, size int64, reader io.Reader) (*domain.Attachment, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	key := fmt.Sprintf(attachmentPrefix+"%s/%s", s.clock.Now().Format("2006/01"), uuid.NewString())

	_, err := s.store.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: mimeType,
		UserMetadata: map[string]string{
			"filename": path.Base(fileName),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return &domain.Attachment{
		Name: fileName,
		Type: domain.AttachmentTypeFor(mimeType),
		Data: key,
	}, nil
}

// AttachmentURL presigns a GET for an attachment. Keys outside attachments/ are refused.
func (s *service) AttachmentURL(ctx context.Context, key string) (string, error) {
	if !IsAttachmentKey(key) {
		return "", ErrKeyNotAllowed
	}
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	u, err := s.store.PresignedGetObject(ctx, s.bucket, key, presignExpiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *service) DeleteAttachment(ctx context.Context, key string) error {
	if s.store == nil {
		return ErrStorageUnavailable
	}
	return s.store.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// UploadBackup archives an export document under backups/ and returns its key.
func (s *service) UploadBackup(ctx context.Context, fileName string, data []byte) (string, error) {
	if s.store == nil {
		return "", ErrStorageUnavailable
	}

	key := "backups/" + path.Base(fileName)
	_, err := s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}
	return key, nil
}

// IsAttachmentKey reports whether key names an object under attachments/.
func IsAttachmentKey(key string) bool {
	return strings.HasPrefix(key, attachmentPrefix) && path.Clean(key) == key
}
