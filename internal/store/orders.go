package store

import (
	"context"
	"database/sql"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateOrder persists an order snapshot with its line items in one
// transaction, so a failed create leaves no partial order behind.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (customer, email, phone, address, total_amount, status, payment_status, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	if err := tx.GetContext(ctx, order, query,
		order.Customer, order.Email, order.Phone, order.Address,
		order.TotalAmount, order.Status, order.PaymentStatus, order.PaymentMethod); err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, price, quantity, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.GetContext(ctx, &item.ID, itemQuery,
			item.OrderID, item.ProductID, item.Name, item.Price, item.Quantity, item.Total); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetOrderByID retrieves an order with its line items.
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, err
	}

	orders := []models.Order{order}
	if err := s.attachOrderItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListOrders retrieves all orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	if err := s.attachOrderItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersByEmail retrieves a customer's order history, newest first.
func (s *Store) ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE email = $1 ORDER BY created_at DESC", email)
	if err != nil {
		return nil, err
	}
	if err := s.attachOrderItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderPayment sets payment status, the coupled order status, and the
// payment method when one is reported.
func (s *Store) UpdateOrderPayment(ctx context.Context, id int64, paymentStatus, status, paymentMethod string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = $1,
		    status = $2,
		    payment_method = COALESCE(NULLIF($3, ''), payment_method),
		    updated_at = NOW()
		WHERE id = $4`,
		paymentStatus, status, paymentMethod, id)
	if err != nil {
		return err
	}
	return requireRow(res, "order", id)
}

// DeleteOrder removes an order permanently; line items cascade.
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "order", id)
}

// attachOrderItems loads line items for the given orders in one query.
func (s *Store) attachOrderItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}

	query, args, err := sqlx.In("SELECT * FROM order_items WHERE order_id IN (?) ORDER BY id", ids)
	if err != nil {
		return err
	}
	query = s.db.Rebind(query)

	var items []models.OrderItem
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return err
	}

	byOrder := make(map[int64][]models.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return nil
}
