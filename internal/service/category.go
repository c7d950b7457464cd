package service

import (
	"context"
	"log/slog"

	"carcatalog/internal/model"
	"carcatalog/internal/repository"
)

// CategoryService exposes the read-only category list.
type CategoryService interface {
	GetCategoryList(ctx context.Context) model.ResponseData[[]model.Category]
}

type categoryService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(repo repository.CategoryRepository, logger *slog.Logger) CategoryService {
	return &categoryService{repo: repo, logger: logger.With("component", "category_service")}
}

func (s *categoryService) GetCategoryList(ctx context.Context) model.ResponseData[[]model.Category] {
	cats, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "category_list_failed", "error", err)
		return model.Fail[[]model.Category]("failed to load categories")
	}
	return model.OK(cats)
}
