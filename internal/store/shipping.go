package store

import (
	"context"
	"database/sql"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"
)

// CreateShippingRate inserts a shipping option.
func (s *Store) CreateShippingRate(ctx context.Context, rate *models.ShippingRate) error {
	query := `
		INSERT INTO shipping_rates (kind, price)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, rate, query, rate.Kind, rate.Price)
}

// GetShippingRateByID retrieves a shipping option.
func (s *Store) GetShippingRateByID(ctx context.Context, id int64) (*models.ShippingRate, error) {
	var rate models.ShippingRate
	err := s.db.GetContext(ctx, &rate, "SELECT * FROM shipping_rates WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("shipping rate", id)
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// ListShippingRates retrieves all shipping options.
func (s *Store) ListShippingRates(ctx context.Context) ([]models.ShippingRate, error) {
	var rates []models.ShippingRate
	err := s.db.SelectContext(ctx, &rates, "SELECT * FROM shipping_rates ORDER BY price")
	return rates, err
}

// UpdateShippingRate replaces a shipping option's kind and price.
func (s *Store) UpdateShippingRate(ctx context.Context, id int64, kind string, price float64) (*models.ShippingRate, error) {
	var rate models.ShippingRate
	err := s.db.GetContext(ctx, &rate, `
		UPDATE shipping_rates SET kind = $1, price = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING *`, kind, price, id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("shipping rate", id)
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// DeleteShippingRate removes a shipping option.
func (s *Store) DeleteShippingRate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM shipping_rates WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "shipping rate", id)
}
