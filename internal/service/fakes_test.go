package service

import (
	"context"
	"time"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"
)

// In-memory stores standing in for the Postgres store in unit tests.

type fakeCatalogStore struct {
	nextID   int64
	products map[int64]models.Product
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{products: make(map[int64]models.Product)}
}

func (f *fakeCatalogStore) CreateProduct(_ context.Context, product *models.Product) error {
	f.nextID++
	product.ID = f.nextID
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	f.products[product.ID] = *product
	return nil
}

func (f *fakeCatalogStore) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, apperr.NotFound("product", id)
	}
	return &product, nil
}

func (f *fakeCatalogStore) UpdateProduct(_ context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, apperr.NotFound("product", id)
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Quantity != nil {
		product.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		product.OriginalPrice = *patch.OriginalPrice
	}
	if patch.SellingPrice != nil {
		product.SellingPrice = *patch.SellingPrice
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Status != nil {
		product.Status = *patch.Status
	}
	product.UpdatedAt = time.Now()
	f.products[id] = product
	return &product, nil
}

func (f *fakeCatalogStore) SoftDeleteProduct(_ context.Context, id int64) error {
	product, ok := f.products[id]
	if !ok {
		return apperr.NotFound("product", id)
	}
	if product.DeletedAt == nil {
		now := time.Now()
		product.DeletedAt = &now
		f.products[id] = product
	}
	return nil
}

func (f *fakeCatalogStore) RestoreProduct(_ context.Context, id int64) error {
	product, ok := f.products[id]
	if !ok {
		return apperr.NotFound("product", id)
	}
	product.DeletedAt = nil
	f.products[id] = product
	return nil
}

func (f *fakeCatalogStore) PurgeProduct(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return apperr.NotFound("product", id)
	}
	delete(f.products, id)
	return nil
}

func (f *fakeCatalogStore) ListActiveProducts(_ context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	for _, product := range f.products {
		if product.DeletedAt != nil {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func (f *fakeCatalogStore) ListDeletedProducts(_ context.Context) ([]models.Product, error) {
	var products []models.Product
	for _, product := range f.products {
		if product.DeletedAt != nil {
			products = append(products, product)
		}
	}
	return products, nil
}

func (f *fakeCatalogStore) DistinctCategories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var categories []string
	for _, product := range f.products {
		if product.Category != "" && !seen[product.Category] {
			seen[product.Category] = true
			categories = append(categories, product.Category)
		}
	}
	return categories, nil
}

type fakeOrderStore struct {
	nextID int64
	orders []models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{}
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, order *models.Order) error {
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
		order.Items[i].OrderID = order.ID
	}

	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	f.orders = append(f.orders, stored)
	return nil
}

func (f *fakeOrderStore) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	for _, order := range f.orders {
		if order.ID == id {
			copied := order
			copied.Items = append([]models.OrderItem(nil), order.Items...)
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("order", id)
}

func (f *fakeOrderStore) ListOrders(_ context.Context) ([]models.Order, error) {
	// newest first
	orders := make([]models.Order, 0, len(f.orders))
	for i := len(f.orders) - 1; i >= 0; i-- {
		order := f.orders[i]
		order.Items = append([]models.OrderItem(nil), f.orders[i].Items...)
		orders = append(orders, order)
	}
	return orders, nil
}

func (f *fakeOrderStore) ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	all, _ := f.ListOrders(ctx)
	var orders []models.Order
	for _, order := range all {
		if order.Email == email {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderStore) UpdateOrderPayment(_ context.Context, id int64, paymentStatus, status, paymentMethod string) error {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].PaymentStatus = paymentStatus
			f.orders[i].Status = status
			if paymentMethod != "" {
				f.orders[i].PaymentMethod = paymentMethod
			}
			f.orders[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return apperr.NotFound("order", id)
}

func (f *fakeOrderStore) DeleteOrder(_ context.Context, id int64) error {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("order", id)
}

type fakeCategoryStore struct {
	nextID     int64
	categories map[int64]models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[int64]models.Category)}
}

func (f *fakeCategoryStore) CreateCategory(_ context.Context, category *models.Category) error {
	f.nextID++
	category.ID = f.nextID
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryStore) GetCategoryByID(_ context.Context, id int64) (*models.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, apperr.NotFound("category", id)
	}
	return &category, nil
}

func (f *fakeCategoryStore) ActiveCategoryExists(_ context.Context, name string) (bool, error) {
	for _, category := range f.categories {
		if category.Name == name && category.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryStore) SoftDeleteCategory(_ context.Context, id int64) error {
	category, ok := f.categories[id]
	if !ok {
		return apperr.NotFound("category", id)
	}
	if category.DeletedAt == nil {
		now := time.Now()
		category.DeletedAt = &now
		f.categories[id] = category
	}
	return nil
}

func (f *fakeCategoryStore) RestoreCategory(_ context.Context, id int64) error {
	category, ok := f.categories[id]
	if !ok {
		return apperr.NotFound("category", id)
	}
	// mirrors the partial unique index on active names
	for otherID, other := range f.categories {
		if otherID != id && other.Name == category.Name && other.DeletedAt == nil {
			return apperr.Conflict("category", category.Name)
		}
	}
	category.DeletedAt = nil
	f.categories[id] = category
	return nil
}

func (f *fakeCategoryStore) ListActiveCategories(_ context.Context) ([]models.Category, error) {
	var categories []models.Category
	for _, category := range f.categories {
		if category.DeletedAt == nil {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (f *fakeCategoryStore) ListDeletedCategories(_ context.Context) ([]models.Category, error) {
	var categories []models.Category
	for _, category := range f.categories {
		if category.DeletedAt != nil {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

type fakeContactStore struct {
	nextID   int64
	contacts map[int64]models.ContactMessage
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{contacts: make(map[int64]models.ContactMessage)}
}

func (f *fakeContactStore) CreateContact(_ context.Context, contact *models.ContactMessage) error {
	f.nextID++
	contact.ID = f.nextID
	contact.CreatedAt = time.Now()
	f.contacts[contact.ID] = *contact
	return nil
}

func (f *fakeContactStore) GetContactByID(_ context.Context, id int64) (*models.ContactMessage, error) {
	contact, ok := f.contacts[id]
	if !ok {
		return nil, apperr.NotFound("contact message", id)
	}
	return &contact, nil
}

func (f *fakeContactStore) ListActiveContacts(_ context.Context) ([]models.ContactMessage, error) {
	var contacts []models.ContactMessage
	for _, contact := range f.contacts {
		if contact.DeletedAt == nil {
			contacts = append(contacts, contact)
		}
	}
	return contacts, nil
}

func (f *fakeContactStore) ListDeletedContacts(_ context.Context) ([]models.ContactMessage, error) {
	var contacts []models.ContactMessage
	for _, contact := range f.contacts {
		if contact.DeletedAt != nil {
			contacts = append(contacts, contact)
		}
	}
	return contacts, nil
}

func (f *fakeContactStore) SoftDeleteContact(_ context.Context, id int64) error {
	contact, ok := f.contacts[id]
	if !ok {
		return apperr.NotFound("contact message", id)
	}
	if contact.DeletedAt == nil {
		now := time.Now()
		contact.DeletedAt = &now
		f.contacts[id] = contact
	}
	return nil
}

func (f *fakeContactStore) RestoreContact(_ context.Context, id int64) error {
	contact, ok := f.contacts[id]
	if !ok {
		return apperr.NotFound("contact message", id)
	}
	contact.DeletedAt = nil
	f.contacts[id] = contact
	return nil
}

func (f *fakeContactStore) UpdateContactStatus(_ context.Context, id int64, status string) error {
	contact, ok := f.contacts[id]
	if !ok {
		return apperr.NotFound("contact message", id)
	}
	contact.Status = status
	f.contacts[id] = contact
	return nil
}
