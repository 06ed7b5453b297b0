package service

import (
	"context"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"
	"bookstore-service/internal/util"

	"go.uber.org/zap"
)

// ShippingStore is the persistence surface for shipping rates.
type ShippingStore interface {
	CreateShippingRate(ctx context.Context, rate *models.ShippingRate) error
	GetShippingRateByID(ctx context.Context, id int64) (*models.ShippingRate, error)
	ListShippingRates(ctx context.Context) ([]models.ShippingRate, error)
	UpdateShippingRate(ctx context.Context, id int64, kind string, price float64) (*models.ShippingRate, error)
	DeleteShippingRate(ctx context.Context, id int64) error
}

// ShippingService manages the shipping options offered at checkout.
type ShippingService struct {
	store  ShippingStore
	logger *zap.Logger
}

// NewShippingService creates a new shipping service
func NewShippingService(store ShippingStore) *ShippingService {
	return &ShippingService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CreateRate validates and persists a shipping option.
func (s *ShippingService) CreateRate(ctx context.Context, kind string, price float64) (*models.ShippingRate, error) {
	if kind == "" {
		return nil, apperr.Invalid("kind", "required")
	}
	if price < 0 {
		return nil, apperr.Invalid("price", "must not be negative")
	}

	rate := &models.ShippingRate{Kind: kind, Price: price}
	if err := s.store.CreateShippingRate(ctx, rate); err != nil {
		return nil, err
	}

	s.logger.Info("Shipping rate created", zap.Int64("rate_id", rate.ID), zap.String("kind", kind))
	return rate, nil
}

// GetRate retrieves one shipping option.
func (s *ShippingService) GetRate(ctx context.Context, id int64) (*models.ShippingRate, error) {
	return s.store.GetShippingRateByID(ctx, id)
}

// ListRates retrieves all shipping options, cheapest first.
func (s *ShippingService) ListRates(ctx context.Context) ([]models.ShippingRate, error) {
	return s.store.ListShippingRates(ctx)
}

// UpdateRate replaces a shipping option's kind and price.
func (s *ShippingService) UpdateRate(ctx context.Context, id int64, kind string, price float64) (*models.ShippingRate, error) {
	if kind == "" {
		return nil, apperr.Invalid("kind", "required")
	}
	if price < 0 {
		return nil, apperr.Invalid("price", "must not be negative")
	}
	return s.store.UpdateShippingRate(ctx, id, kind, price)
}

// DeleteRate removes a shipping option.
func (s *ShippingService) DeleteRate(ctx context.Context, id int64) error {
	return s.store.DeleteShippingRate(ctx, id)
}
