package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
)

var ErrGalleryImageNotFound = errors.New("gallery image not found")

type GalleryRepository interface {
	List() ([]domain.GalleryImage, error)
	FindByID(id uint) (*domain.GalleryImage, error)
	Create(img *domain.GalleryImage) error
	Delete(id uint) error
}

type GormGalleryRepository struct{ db *gorm.DB }

func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &GormGalleryRepository{db: db}
}

func (r *GormGalleryRepository) List() ([]domain.GalleryImage, error) {
	var images []domain.GalleryImage
	err := r.db.Order("created_at desc").Find(&images).Error
	return images, err
}

func (r *GormGalleryRepository) FindByID(id uint) (*domain.GalleryImage, error) {
	var img domain.GalleryImage
	if err := r.db.First(&img, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (r *GormGalleryRepository) Create(img *domain.GalleryImage) error {
	return r.db.Create(img).Error
}

func (r *GormGalleryRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.GalleryImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGalleryImageNotFound
	}
	return nil
}
