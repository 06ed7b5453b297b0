package models

import "time"

// Event types
const (
	EventTypeOrderCreated        = "ORDER_CREATED"
	EventTypeOrderPaymentUpdated = "ORDER_PAYMENT_UPDATED"
	EventTypePaymentCallback     = "PAYMENT_CALLBACK"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when an order snapshot is persisted
type OrderCreatedEvent struct {
	BaseEvent
	OrderID     int64           `json:"order_id"`
	Customer    string          `json:"customer"`
	Email       string          `json:"email"`
	TotalAmount float64         `json:"total_amount"`
	Items       []OrderItemData `json:"items"`
}

// OrderPaymentUpdatedEvent published when an order's payment status changes
type OrderPaymentUpdatedEvent struct {
	BaseEvent
	OrderID       int64  `json:"order_id"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
}

// PaymentCallbackEvent is consumed from the payment-provider callback topic.
// The reported payment status is trusted as-is; there is no settlement
// verification in this service.
type PaymentCallbackEvent struct {
	BaseEvent
	OrderID       int64  `json:"order_id"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
