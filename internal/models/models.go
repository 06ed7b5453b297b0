package models

import "time"

// Product statuses, derived from stock quantity
const (
	ProductStatusAvailable  = "available"
	ProductStatusOutOfStock = "out_of_stock"
)

// ProductStatusFor derives a product's availability status from its stock
// quantity. Every write path that touches quantity must go through this
// function so the derivation cannot drift between full saves and patches.
func ProductStatusFor(quantity int) string {
	if quantity > 0 {
		return ProductStatusAvailable
	}
	return ProductStatusOutOfStock
}

// Product represents a book in the catalog
type Product struct {
	ID            int64      `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Quantity      int        `db:"quantity" json:"quantity"`
	Price         float64    `db:"price" json:"price"`
	OriginalPrice float64    `db:"original_price" json:"original_price"`
	SellingPrice  float64    `db:"selling_price" json:"selling_price"`
	ImageURL      string     `db:"image_url" json:"image_url"`
	Category      string     `db:"category" json:"category"`
	Status        string     `db:"status" json:"status"`
	DeletedAt     *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Deleted reports whether the product sits in the recycle bin.
func (p *Product) Deleted() bool {
	return p.DeletedAt != nil
}

// ProductPatch carries a partial product update. Nil fields are left
// untouched. Status is never client-supplied; the catalog service derives it
// whenever Quantity is present.
type ProductPatch struct {
	Name          *string  `json:"name"`
	Quantity      *int     `json:"quantity"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	SellingPrice  *float64 `json:"selling_price"`
	ImageURL      *string  `json:"image_url"`
	Category      *string  `json:"category"`
	Status        *string  `json:"-"`
}

// Category groups products in the catalog
type Category struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Deleted reports whether the category sits in the recycle bin.
func (c *Category) Deleted() bool {
	return c.DeletedAt != nil
}

// Order statuses, coupled to payment status
const (
	OrderStatusProcessing = "Processing"
	OrderStatusCompleted  = "Completed"
)

// Payment statuses
const (
	PaymentStatusUnpaid = "Unpaid"
	PaymentStatusPaid   = "Paid"
)

// OrderStatusFor derives an order's status from its payment status:
// Paid orders are Completed, Unpaid orders are Processing.
func OrderStatusFor(paymentStatus string) string {
	if paymentStatus == PaymentStatusPaid {
		return OrderStatusCompleted
	}
	return OrderStatusProcessing
}

// Order is an immutable purchase snapshot. Customer identity and line items
// are copied at creation time; later catalog edits never reach back into an
// order. Only status, payment status and payment method may change.
type Order struct {
	ID            int64       `db:"id" json:"id"`
	Customer      string      `db:"customer" json:"customer"`
	Email         string      `db:"email" json:"email"`
	Phone         string      `db:"phone" json:"phone"`
	Address       string      `db:"address" json:"address"`
	TotalAmount   float64     `db:"total_amount" json:"total_amount"`
	Status        string      `db:"status" json:"status"`
	PaymentStatus string      `db:"payment_status" json:"payment_status"`
	PaymentMethod string      `db:"payment_method" json:"payment_method,omitempty"`
	Items         []OrderItem `db:"-" json:"items"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// OrderItem is one line of an order, carrying the product name and unit
// price as they were at purchase time.
type OrderItem struct {
	ID        int64   `db:"id" json:"id"`
	OrderID   int64   `db:"order_id" json:"order_id"`
	ProductID int64   `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Total     float64 `db:"total" json:"total"`
}

// Contact message statuses
const (
	ContactStatusUnread = "unread"
	ContactStatusRead   = "read"
)

// ContactMessage is an inbound contact-form submission
type ContactMessage struct {
	ID        int64      `db:"id" json:"id"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	Email     string     `db:"email" json:"email"`
	Subject   string     `db:"subject" json:"subject"`
	Message   string     `db:"message" json:"message"`
	Status    string     `db:"status" json:"status"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Deleted reports whether the message sits in the recycle bin.
func (m *ContactMessage) Deleted() bool {
	return m.DeletedAt != nil
}

// ShippingRate is an admin-managed shipping option offered at checkout
type ShippingRate struct {
	ID        int64     `db:"id" json:"id"`
	Kind      string    `db:"kind" json:"kind"`
	Price     float64   `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CustomerSpend ranks a customer by their spend across the order ledger
type CustomerSpend struct {
	Customer   string  `json:"customer"`
	Email      string  `json:"email"`
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}
