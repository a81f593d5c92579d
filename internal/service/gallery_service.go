package service

import (
	"context"
	"fmt"
	"io"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
	"github.com/Zecser/Catering-and-Tourism/internal/repository"
)

type GalleryItem struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

type GalleryService struct {
	images  repository.GalleryRepository
	storage StorageService
}

func NewGalleryService(images repository.GalleryRepository, storage StorageService) *GalleryService {
	return &GalleryService{images: images, storage: storage}
}

func (s *GalleryService) List(ctx context.Context) ([]GalleryItem, error) {
	images, err := s.images.List()
	if err != nil {
		return nil, err
	}
	items := make([]GalleryItem, 0, len(images))
	for _, img := range images {
		url, err := s.storage.ImageURL(ctx, img.ObjectKey)
		if err != nil {
			return nil, fmt.Errorf("presign gallery image %d: %w", img.ID, err)
		}
		items = append(items, GalleryItem{ID: img.ID, Title: img.Title, ImageURL: url})
	}
	return items, nil
}

func (s *GalleryService) Upload(ctx context.Context, title string, file io.Reader, size int64, contentType string) (*GalleryItem, error) {
	objectKey, err := s.storage.UploadImage(ctx, file, size, contentType)
	if err != nil {
		return nil, err
	}

	img := &domain.GalleryImage{Title: title, ObjectKey: objectKey}
	if err := s.images.Create(img); err != nil {
		// Best effort: don't leave an orphaned object behind.
		_ = s.storage.DeleteImage(ctx, objectKey)
		return nil, err
	}

	url, err := s.storage.ImageURL(ctx, objectKey)
	if err != nil {
		return nil, err
	}
	return &GalleryItem{ID: img.ID, Title: img.Title, ImageURL: url}, nil
}

func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	img, err := s.images.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.images.Delete(id); err != nil {
		return err
	}
	return s.storage.DeleteImage(ctx, img.ObjectKey)
}
