package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"
	"bookstore-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderStore is the persistence surface the order ledger needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
	UpdateOrderPayment(ctx context.Context, id int64, paymentStatus, status, paymentMethod string) error
	DeleteOrder(ctx context.Context, id int64) error
}

// OrderEventPublisher publishes order lifecycle events. Publish failures are
// logged and never fail the underlying operation.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishOrderPaymentUpdated(ctx context.Context, event *models.OrderPaymentUpdatedEvent) error
}

// OrderService is the order ledger: it turns submitted carts into immutable
// purchase snapshots and drives the payment-status state machine over them.
type OrderService struct {
	store     OrderStore
	publisher OrderEventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service. publisher may be nil.
func NewOrderService(store OrderStore, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateOrderRequest represents a checkout submission. Line-item names and
// prices are the values the caller read from the catalog at submission time;
// the ledger snapshots them as-is and never re-checks stock or price.
type CreateOrderRequest struct {
	Customer    string             `json:"customer" binding:"required"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Address     string             `json:"address"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1"`
	TotalAmount float64            `json:"total_amount" binding:"required"`
}

// OrderItemRequest represents one line of a checkout submission.
type OrderItemRequest struct {
	ProductID int64   `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

// CreateOrder validates the submission and persists the snapshot with
// status Processing and payment status Unpaid.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if req.Customer == "" {
		util.OrdersFailedTotal.WithLabelValues("missing_customer").Inc()
		return nil, apperr.Invalid("customer", "required")
	}
	if len(req.Items) == 0 {
		util.OrdersFailedTotal.WithLabelValues("empty_items").Inc()
		return nil, apperr.Invalid("items", "must not be empty")
	}
	if req.TotalAmount <= 0 {
		util.OrdersFailedTotal.WithLabelValues("invalid_total").Inc()
		return nil, apperr.Invalid("total_amount", "must be positive")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			util.OrdersFailedTotal.WithLabelValues("invalid_quantity").Inc()
			return nil, apperr.Invalid("items", fmt.Sprintf("quantity for product %d must be positive", item.ProductID))
		}
		if item.Price < 0 {
			util.OrdersFailedTotal.WithLabelValues("invalid_price").Inc()
			return nil, apperr.Invalid("items", fmt.Sprintf("price for product %d must not be negative", item.ProductID))
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Total:     item.Price * float64(item.Quantity),
		})
	}

	order := &models.Order{
		Customer:      req.Customer,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TotalAmount:   req.TotalAmount,
		Status:        models.OrderStatusProcessing,
		PaymentStatus: models.PaymentStatusUnpaid,
		Items:         items,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Float64("total_amount", order.TotalAmount))

	if s.publisher != nil {
		eventItems := make([]models.OrderItemData, 0, len(order.Items))
		for _, item := range order.Items {
			eventItems = append(eventItems, models.OrderItemData{
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
			})
		}
		event := &models.OrderCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderCreated,
				Timestamp: time.Now(),
			},
			OrderID:     order.ID,
			Customer:    order.Customer,
			Email:       order.Email,
			TotalAmount: order.TotalAmount,
			Items:       eventItems,
		}
		if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
		}
	}

	return order, nil
}

// GetOrder retrieves an order with its line items.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.store.GetOrderByID(ctx, id)
}

// ListOrders retrieves all orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx)
}

// ListOrdersByCustomer retrieves a customer's order history, newest first.
func (s *OrderService) ListOrdersByCustomer(ctx context.Context, email string) ([]models.Order, error) {
	if email == "" {
		return nil, apperr.Invalid("email", "required")
	}
	return s.store.ListOrdersByEmail(ctx, email)
}

// UpdatePayment sets the reported payment status and derives order status
// from it: Paid orders complete, Unpaid orders go back to Processing. Any
// other payment status is rejected.
func (s *OrderService) UpdatePayment(ctx context.Context, id int64, paymentStatus, paymentMethod string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdatePayment")
	defer span.End()

	if paymentStatus != models.PaymentStatusUnpaid && paymentStatus != models.PaymentStatusPaid {
		util.OrdersFailedTotal.WithLabelValues("invalid_payment_status").Inc()
		return nil, apperr.Invalid("payment_status", fmt.Sprintf("must be %q or %q", models.PaymentStatusUnpaid, models.PaymentStatusPaid))
	}

	status := models.OrderStatusFor(paymentStatus)
	if err := s.store.UpdateOrderPayment(ctx, id, paymentStatus, status, paymentMethod); err != nil {
		return nil, err
	}

	if paymentStatus == models.PaymentStatusPaid {
		util.OrdersPaidTotal.Inc()
	}
	s.logger.Info("Order payment updated",
		zap.Int64("order_id", id),
		zap.String("payment_status", paymentStatus),
		zap.String("status", status))

	if s.publisher != nil {
		event := &models.OrderPaymentUpdatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderPaymentUpdated,
				Timestamp: time.Now(),
			},
			OrderID:       id,
			PaymentStatus: paymentStatus,
			Status:        status,
		}
		if err := s.publisher.PublishOrderPaymentUpdated(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderPaymentUpdated event", zap.Error(err))
		}
	}

	return s.store.GetOrderByID(ctx, id)
}

// DeleteOrder removes an order permanently. Orders have no recycle bin.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return err
	}
	util.OrdersDeletedTotal.Inc()
	s.logger.Info("Order deleted", zap.Int64("order_id", id))
	return nil
}

// TotalRevenue sums totalAmount across the whole ledger.
func (s *OrderService) TotalRevenue(ctx context.Context) (float64, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, order := range orders {
		total += order.TotalAmount
	}
	return total, nil
}

// TopCustomers ranks customers by summed order totals, ties broken by order
// count, then by first appearance in the ledger.
func (s *OrderService) TopCustomers(ctx context.Context, n int) ([]models.CustomerSpend, error) {
	if n <= 0 {
		return nil, apperr.Invalid("limit", "must be positive")
	}

	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var spends []models.CustomerSpend
	for _, order := range orders {
		key := order.Email
		if key == "" {
			key = order.Customer
		}
		i, ok := index[key]
		if !ok {
			i = len(spends)
			index[key] = i
			spends = append(spends, models.CustomerSpend{
				Customer: order.Customer,
				Email:    order.Email,
			})
		}
		spends[i].OrderCount++
		spends[i].TotalSpent += order.TotalAmount
	}

	sort.SliceStable(spends, func(i, j int) bool {
		if spends[i].TotalSpent != spends[j].TotalSpent {
			return spends[i].TotalSpent > spends[j].TotalSpent
		}
		return spends[i].OrderCount > spends[j].OrderCount
	})

	if len(spends) > n {
		spends = spends[:n]
	}
	return spends, nil
}
