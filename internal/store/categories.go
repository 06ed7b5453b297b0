package store

import (
	"context"
	"database/sql"
	"strconv"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"
)

// CreateCategory inserts a category and fills in its generated fields. The
// partial unique index on active names backs up the service-level existence
// check against concurrent inserts.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at`

	err := s.db.GetContext(ctx, category, query, category.Name)
	if isUniqueViolation(err) {
		return apperr.Conflict("category", category.Name)
	}
	return err
}

// GetCategoryByID retrieves a category, soft-deleted rows included.
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := s.db.GetContext(ctx, &category, "SELECT * FROM categories WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("category", id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ActiveCategoryExists reports whether an active category already carries
// the given name. Recycle-bin rows do not count.
func (s *Store) ActiveCategoryExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND deleted_at IS NULL)", name)
	return exists, err
}

// SoftDeleteCategory moves a category to the recycle bin; idempotent.
func (s *Store) SoftDeleteCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET deleted_at = COALESCE(deleted_at, NOW()), updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "category", id)
}

// RestoreCategory brings a category back from the recycle bin. Restoring
// fails with a ConflictError when the name has since been reused by an
// active category.
func (s *Store) RestoreCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET deleted_at = NULL, updated_at = NOW() WHERE id = $1", id)
	if isUniqueViolation(err) {
		if category, getErr := s.GetCategoryByID(ctx, id); getErr == nil {
			return apperr.Conflict("category", category.Name)
		}
		return apperr.Conflict("category", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return err
	}
	return requireRow(res, "category", id)
}

// ListActiveCategories retrieves active categories sorted by name.
func (s *Store) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories WHERE deleted_at IS NULL ORDER BY name")
	return categories, err
}

// ListDeletedCategories retrieves the recycle-bin view, sorted by name.
func (s *Store) ListDeletedCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories WHERE deleted_at IS NOT NULL ORDER BY name")
	return categories, err
}
