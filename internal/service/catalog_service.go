package service

import (
	"context"
	"fmt"
	"time"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"
	"bookstore-service/internal/util"

	"go.uber.org/zap"
)

// Cache keys for hot catalog reads
const (
	cacheKeyActiveCatalog = "catalog:active"
	cacheKeyCategories    = "catalog:categories"
)

// CatalogStore is the persistence surface the catalog service needs.
type CatalogStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)
	SoftDeleteProduct(ctx context.Context, id int64) error
	RestoreProduct(ctx context.Context, id int64) error
	PurgeProduct(ctx context.Context, id int64) error
	ListActiveProducts(ctx context.Context, category string) ([]models.Product, error)
	ListDeletedProducts(ctx context.Context) ([]models.Product, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

// CatalogCache is an optional read-cache for hot catalog listings.
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// CatalogService owns product records and keeps each product's availability
// status consistent with its stock quantity across every write path.
type CatalogService struct {
	store    CatalogStore
	cache    CatalogCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service. cache may be nil, in
// which case every read goes to the store.
func NewCatalogService(store CatalogStore, cache CatalogCache, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   util.GetLogger(),
	}
}

// CreateProductRequest carries the fields of a new product.
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	SellingPrice  float64 `json:"selling_price"`
	ImageURL      string  `json:"image_url" binding:"required"`
	Category      string  `json:"category" binding:"required"`
}

// CreateProduct validates and persists a new product. Status is derived
// from quantity; original and selling price fall back to the list price.
func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if req.Name == "" {
		return nil, apperr.Invalid("name", "required")
	}
	if req.ImageURL == "" {
		return nil, apperr.Invalid("image_url", "required")
	}
	if req.Category == "" {
		return nil, apperr.Invalid("category", "required")
	}
	if req.Price < 0 {
		return nil, apperr.Invalid("price", "must not be negative")
	}
	if req.Quantity < 0 {
		return nil, apperr.Invalid("quantity", "must not be negative")
	}

	originalPrice := req.OriginalPrice
	if originalPrice == 0 {
		originalPrice = req.Price
	}
	sellingPrice := req.SellingPrice
	if sellingPrice == 0 {
		sellingPrice = req.Price
	}

	product := &models.Product{
		Name:          req.Name,
		Quantity:      req.Quantity,
		Price:         req.Price,
		OriginalPrice: originalPrice,
		SellingPrice:  sellingPrice,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Status:        models.ProductStatusFor(req.Quantity),
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	util.CatalogWritesTotal.WithLabelValues("create").Inc()
	if product.Status == models.ProductStatusOutOfStock {
		util.ProductsOutOfStockTotal.Inc()
	}
	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("status", product.Status))

	s.invalidateCache(ctx)
	return product, nil
}

// UpdateProduct applies a partial update. When the patch carries a quantity,
// status is re-derived from the patched value before anything is written, so
// full saves and partial patches cannot diverge.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateProduct")
	defer span.End()

	if patch.Name != nil && *patch.Name == "" {
		return nil, apperr.Invalid("name", "must not be empty")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, apperr.Invalid("price", "must not be negative")
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, apperr.Invalid("quantity", "must not be negative")
		}
		status := models.ProductStatusFor(*patch.Quantity)
		patch.Status = &status
	}

	product, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	util.CatalogWritesTotal.WithLabelValues("update").Inc()
	if patch.Status != nil && *patch.Status == models.ProductStatusOutOfStock {
		util.ProductsOutOfStockTotal.Inc()
	}

	s.invalidateCache(ctx)
	return product, nil
}

// SoftDeleteProduct moves a product to the recycle bin. Deleting an
// already-deleted product succeeds without changing anything.
func (s *CatalogService) SoftDeleteProduct(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.SoftDeleteProduct")
	defer span.End()

	if err := s.store.SoftDeleteProduct(ctx, id); err != nil {
		return err
	}

	util.CatalogWritesTotal.WithLabelValues("soft_delete").Inc()
	s.logger.Info("Product moved to recycle bin", zap.Int64("product_id", id))
	s.invalidateCache(ctx)
	return nil
}

// RestoreProduct brings a product back from the recycle bin.
func (s *CatalogService) RestoreProduct(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.RestoreProduct")
	defer span.End()

	if err := s.store.RestoreProduct(ctx, id); err != nil {
		return err
	}

	util.CatalogWritesTotal.WithLabelValues("restore").Inc()
	s.invalidateCache(ctx)
	return nil
}

// PurgeProduct permanently removes a soft-deleted product. Purging a record
// that is still active fails the recycle-bin precondition.
func (s *CatalogService) PurgeProduct(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.PurgeProduct")
	defer span.End()

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.Deleted() {
		return apperr.Precondition("only recycle-bin products can be purged")
	}

	if err := s.store.PurgeProduct(ctx, id); err != nil {
		return err
	}

	util.CatalogWritesTotal.WithLabelValues("purge").Inc()
	s.logger.Info("Product purged", zap.Int64("product_id", id))
	s.invalidateCache(ctx)
	return nil
}

// GetProduct retrieves a single product, soft-deleted rows included.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

// ListActiveProducts retrieves the active catalog, optionally filtered by
// category. The unfiltered listing is served from the cache when possible.
func (s *CatalogService) ListActiveProducts(ctx context.Context, category string) ([]models.Product, error) {
	if category == "" && s.cache != nil {
		var cached []models.Product
		hit, err := s.cache.GetJSON(ctx, cacheKeyActiveCatalog, &cached)
		if err != nil {
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		} else if hit {
			util.CatalogCacheHits.Inc()
			return cached, nil
		}
		util.CatalogCacheMisses.Inc()
	}

	products, err := s.store.ListActiveProducts(ctx, category)
	if err != nil {
		return nil, err
	}

	if category == "" && s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKeyActiveCatalog, products, s.cacheTTL); err != nil {
			s.logger.Warn("Catalog cache write failed", zap.Error(err))
		}
	}
	return products, nil
}

// ListDeletedProducts retrieves the recycle-bin view of the catalog.
func (s *CatalogService) ListDeletedProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.ListDeletedProducts(ctx)
}

// DistinctCategories retrieves category values observed across all products.
func (s *CatalogService) DistinctCategories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		var cached []string
		hit, err := s.cache.GetJSON(ctx, cacheKeyCategories, &cached)
		if err != nil {
			s.logger.Warn("Category cache read failed", zap.Error(err))
		} else if hit {
			util.CatalogCacheHits.Inc()
			return cached, nil
		}
		util.CatalogCacheMisses.Inc()
	}

	categories, err := s.store.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKeyCategories, categories, s.cacheTTL); err != nil {
			s.logger.Warn("Category cache write failed", zap.Error(err))
		}
	}
	return categories, nil
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cacheKeyActiveCatalog, cacheKeyCategories); err != nil {
		s.logger.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
}
