package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
)

var ErrBlogNotFound = errors.New("blog not found")

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 50
)

type PageRequest struct {
	Page     int
	PageSize int
}

type PageResult[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Total    int64
}

type BlogRepository interface {
	ListPaged(req PageRequest) (PageResult[domain.Blog], error)
	FindByID(id uint) (*domain.Blog, error)
	Create(blog *domain.Blog) error
	Update(blog *domain.Blog) error
	Delete(id uint) error
}

type GormBlogRepository struct{ db *gorm.DB }

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &GormBlogRepository{db: db}
}

func (r *GormBlogRepository) ListPaged(req PageRequest) (PageResult[domain.Blog], error) {
	req = normalizePage(req)
	out := PageResult[domain.Blog]{Page: req.Page, PageSize: req.PageSize}

	if err := r.db.Model(&domain.Blog{}).Count(&out.Total).Error; err != nil {
		return out, err
	}
	err := r.db.
		Order("created_at desc").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&out.Items).Error
	return out, err
}

func (r *GormBlogRepository) FindByID(id uint) (*domain.Blog, error) {
	var blog domain.Blog
	if err := r.db.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

func (r *GormBlogRepository) Create(blog *domain.Blog) error {
	return r.db.Create(blog).Error
}

func (r *GormBlogRepository) Update(blog *domain.Blog) error {
	res := r.db.Model(&domain.Blog{}).Where("id = ?", blog.ID).
		Updates(map[string]any{
			"title":     blog.Title,
			"content":   blog.Content,
			"image_url": blog.ImageURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (r *GormBlogRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Blog{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func normalizePage(in PageRequest) PageRequest {
	if in.Page < 1 {
		in.Page = defaultPage
	}
	if in.PageSize < 1 {
		in.PageSize = defaultPageSize
	}
	if in.PageSize > maxPageSize {
		in.PageSize = maxPageSize
	}
	return in
}
