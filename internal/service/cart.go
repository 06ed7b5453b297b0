package service

import (
	"sort"

	"bookstore-service/internal/models"
)

// CartItem is one tentative line in a client-held cart. Price is the value
// observed at add time; checkout snapshots it into the order.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// Cart is a client-held collection of tentative line items, keyed by
// product id. It exists only until checkout; it is passed in explicitly
// rather than read from ambient session state.
type Cart map[int64]CartItem

// CustomerIdentity is the resolved identity attached to a checkout.
type CustomerIdentity struct {
	Customer string `json:"customer"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// AddItem puts a product into the cart with quantity one. Re-adding a
// product already in the cart is rejected rather than merged, as is adding
// a product that is not currently available. Returns whether the cart
// changed.
func AddItem(cart Cart, product *models.Product) bool {
	if product.Status != models.ProductStatusAvailable {
		return false
	}
	if _, ok := cart[product.ID]; ok {
		return false
	}
	cart[product.ID] = CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
		ImageURL:  product.ImageURL,
	}
	return true
}

// MergeOnAuthentication folds the anonymous pending cart into the
// authenticated customer's active cart: absent entries are inserted,
// duplicate product ids sum their quantities. The pending cart is cleared
// unconditionally, whether or not anything matched.
func MergeOnAuthentication(active, pending Cart) Cart {
	for id, item := range pending {
		if existing, ok := active[id]; ok {
			existing.Quantity += item.Quantity
			active[id] = existing
		} else {
			active[id] = item
		}
	}
	for id := range pending {
		delete(pending, id)
	}
	return active
}

// ToOrderPayload maps a cart into an order submission: each line total is
// price times quantity, and the order total is their sum plus the chosen
// shipping charge. Items are ordered by product id so the payload is
// deterministic.
func ToOrderPayload(cart Cart, identity CustomerIdentity, shippingCharge float64) *CreateOrderRequest {
	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := make([]OrderItemRequest, 0, len(ids))
	var itemsTotal float64
	for _, id := range ids {
		item := cart[id]
		items = append(items, OrderItemRequest{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
		itemsTotal += item.Price * float64(item.Quantity)
	}

	return &CreateOrderRequest{
		Customer:    identity.Customer,
		Email:       identity.Email,
		Phone:       identity.Phone,
		Address:     identity.Address,
		Items:       items,
		TotalAmount: itemsTotal + shippingCharge,
	}
}
