package service

import (
	"context"

	"github.com/Zecser/Catering-and-Tourism/internal/domain"
	"github.com/Zecser/Catering-and-Tourism/internal/repository"
)

type BlogInput struct {
	Title    string
	Content  string
	ImageURL string
}

type BlogService struct {
	blogs repository.BlogRepository
}

func NewBlogService(blogs repository.BlogRepository) *BlogService {
	return &BlogService{blogs: blogs}
}

func (s *BlogService) List(_ context.Context, page, pageSize int) (repository.PageResult[domain.Blog], error) {
	return s.blogs.ListPaged(repository.PageRequest{Page: page, PageSize: pageSize})
}

func (s *BlogService) Get(_ context.Context, id uint) (*domain.Blog, error) {
	return s.blogs.FindByID(id)
}

func (s *BlogService) Create(_ context.Context, authorID uint, in BlogInput) (*domain.Blog, error) {
	blog := &domain.Blog{
		Title:    in.Title,
		Content:  in.Content,
		ImageURL: in.ImageURL,
		AuthorID: authorID,
	}
	if err := s.blogs.Create(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) Update(_ context.Context, id uint, in BlogInput) (*domain.Blog, error) {
	blog := &domain.Blog{ID: id, Title: in.Title, Content: in.Content, ImageURL: in.ImageURL}
	if err := s.blogs.Update(blog); err != nil {
		return nil, err
	}
	return s.blogs.FindByID(id)
}

func (s *BlogService) Delete(_ context.Context, id uint) error {
	return s.blogs.Delete(id)
}
