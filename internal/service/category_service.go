package service

import (
	"context"
	"fmt"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"
	"bookstore-service/internal/util"

	"go.uber.org/zap"
)

// CategoryStore is the persistence surface the category service needs.
type CategoryStore interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	ActiveCategoryExists(ctx context.Context, name string) (bool, error)
	SoftDeleteCategory(ctx context.Context, id int64) error
	RestoreCategory(ctx context.Context, id int64) error
	ListActiveCategories(ctx context.Context) ([]models.Category, error)
	ListDeletedCategories(ctx context.Context) ([]models.Category, error)
}

// CategoryService applies the shared soft-delete lifecycle to categories.
// Name uniqueness is enforced among active categories only; a soft-deleted
// name may be reused.
type CategoryService struct {
	store  CategoryStore
	logger *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CreateCategory validates and persists a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	ctx, span := util.StartSpan(ctx, "CategoryService.CreateCategory")
	defer span.End()

	if name == "" {
		return nil, apperr.Invalid("name", "required")
	}

	exists, err := s.store.ActiveCategoryExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("category", name)
	}

	category := &models.Category{Name: name}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("Category created", zap.Int64("category_id", category.ID), zap.String("name", name))
	return category, nil
}

// SoftDeleteCategory moves a category to the recycle bin; idempotent.
func (s *CategoryService) SoftDeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.SoftDeleteCategory(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Category moved to recycle bin", zap.Int64("category_id", id))
	return nil
}

// RestoreCategory brings a category back from the recycle bin.
func (s *CategoryService) RestoreCategory(ctx context.Context, id int64) error {
	return s.store.RestoreCategory(ctx, id)
}

// ListActiveCategories retrieves active categories sorted by name.
func (s *CategoryService) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListActiveCategories(ctx)
}

// ListDeletedCategories retrieves the recycle-bin view.
func (s *CategoryService) ListDeletedCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListDeletedCategories(ctx)
}
