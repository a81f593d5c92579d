package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	maxImageSize      = 10 * 1024 * 1024
	presignedURLTTL   = time.Hour
	galleryPathPrefix = "gallery"
)

var (
	ErrFileTooBig      = errors.New("file size exceeds 10MB limit")
	ErrInvalidFileType = errors.New("invalid file type, only JPEG, PNG and WebP images are allowed")
	ErrStorageDisabled = errors.New("object storage is not configured")

	allowedImageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	}
)

type StorageService interface {
	// UploadImage stores a gallery image and returns its object key.
	UploadImage(ctx context.Context, file io.Reader, size int64, contentType string) (string, error)
	DeleteImage(ctx context.Context, objectKey string) error
	// ImageURL returns a presigned GET URL for public display.
	ImageURL(ctx context.Context, objectKey string) (string, error)
}

type MinIOStorageService struct {
	client *minio.Client
	bucket string
}

func NewMinIOStorageService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinIOStorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	svc := &MinIOStorageService{client: client, bucket: bucket}
	if err := svc.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *MinIOStorageService) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinIOStorageService) UploadImage(ctx context.Context, file io.Reader, size int64, contentType string) (string, error) {
	if size > maxImageSize {
		return "", ErrFileTooBig
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := allowedImageTypes[ct]
	if !ok {
		return "", ErrInvalidFileType
	}

	objectKey := fmt.Sprintf("%s/%s%s", galleryPathPrefix, uuid.New().String(), ext)
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, file, size, minio.PutObjectOptions{
		ContentType: ct,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return objectKey, nil
}

func (s *MinIOStorageService) DeleteImage(ctx context.Context, objectKey string) error {
	if strings.TrimSpace(objectKey) == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func (s *MinIOStorageService) ImageURL(ctx context.Context, objectKey string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, presignedURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign image url: %w", err)
	}
	return u.String(), nil
}

// disabledStorage keeps the gallery routes mounted when MinIO is not
// configured; every operation reports ErrStorageDisabled.
type disabledStorage struct{}

func NewDisabledStorage() StorageService { return disabledStorage{} }

func (disabledStorage) UploadImage(context.Context, io.Reader, int64, string) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledStorage) DeleteImage(context.Context, string) error { return ErrStorageDisabled }

func (disabledStorage) ImageURL(context.Context, string) (string, error) {
	return "", ErrStorageDisabled
}
