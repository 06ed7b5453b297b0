package service

import (
	"context"
	"errors"
	"testing"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(store *fakeCatalogStore) *CatalogService {
	return NewCatalogService(store, nil, 0)
}

func TestCreateProductDerivesStatus(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(newFakeCatalogStore())

	inStock, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Dune",
		Quantity: 3,
		Price:    12.50,
		ImageURL: "https://img.example/dune.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusAvailable, inStock.Status)

	empty, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Neuromancer",
		Quantity: 0,
		Price:    9.99,
		ImageURL: "https://img.example/neuromancer.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusOutOfStock, empty.Status)
}

func TestCreateProductDefaultsPrices(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(newFakeCatalogStore())

	product, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Dune",
		Quantity: 1,
		Price:    12.50,
		ImageURL: "https://img.example/dune.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)
	assert.Equal(t, 12.50, product.OriginalPrice)
	assert.Equal(t, 12.50, product.SellingPrice)
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(newFakeCatalogStore())

	cases := []struct {
		name string
		req  CreateProductRequest
	}{
		{"missing name", CreateProductRequest{ImageURL: "x", Category: "y"}},
		{"missing image", CreateProductRequest{Name: "x", Category: "y"}},
		{"missing category", CreateProductRequest{Name: "x", ImageURL: "y"}},
		{"negative price", CreateProductRequest{Name: "x", ImageURL: "y", Category: "z", Price: -1}},
		{"negative quantity", CreateProductRequest{Name: "x", ImageURL: "y", Category: "z", Quantity: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, &tc.req)
			var verr *apperr.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestUpdateProductRederivesStatusFromPatchedQuantity(t *testing.T) {
	ctx := context.Background()
	store := newFakeCatalogStore()
	svc := newCatalogService(store)

	product, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Dune",
		Quantity: 5,
		Price:    12.50,
		ImageURL: "https://img.example/dune.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)
	require.Equal(t, models.ProductStatusAvailable, product.Status)

	// a quantity-only patch must flip status the same way a full save would
	zero := 0
	updated, err := svc.UpdateProduct(ctx, product.ID, models.ProductPatch{Quantity: &zero})
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusOutOfStock, updated.Status)

	restocked := 7
	updated, err = svc.UpdateProduct(ctx, product.ID, models.ProductPatch{Quantity: &restocked})
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusAvailable, updated.Status)
}

func TestUpdateProductWithoutQuantityLeavesStatusAlone(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(newFakeCatalogStore())

	product, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Dune",
		Quantity: 0,
		Price:    12.50,
		ImageURL: "https://img.example/dune.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)

	price := 15.00
	updated, err := svc.UpdateProduct(ctx, product.ID, models.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusOutOfStock, updated.Status)
	assert.Equal(t, 15.00, updated.Price)
}

func TestSoftDeleteProductIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeCatalogStore()
	svc := newCatalogService(store)

	product, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Dune",
		Quantity: 1,
		Price:    12.50,
		ImageURL: "https://img.example/dune.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SoftDeleteProduct(ctx, product.ID))
	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.True(t, got.Deleted())
	firstDeletedAt := *got.DeletedAt

	// deleting again succeeds and keeps the original deletion time
	require.NoError(t, svc.SoftDeleteProduct(ctx, product.ID))
	got, err = svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, firstDeletedAt, *got.DeletedAt)
}

func TestSoftDeletedProductLeavesActiveListing(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(newFakeCatalogStore())

	product, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Dune",
		Quantity: 1,
		Price:    12.50,
		ImageURL: "https://img.example/dune.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)
	require.NoError(t, svc.SoftDeleteProduct(ctx, product.ID))

	active, err := svc.ListActiveProducts(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, active)

	deleted, err := svc.ListDeletedProducts(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, product.ID, deleted[0].ID)
}

func TestRestoreProductReturnsItToActiveListing(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(newFakeCatalogStore())

	product, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Dune",
		Quantity: 1,
		Price:    12.50,
		ImageURL: "https://img.example/dune.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)
	require.NoError(t, svc.SoftDeleteProduct(ctx, product.ID))
	require.NoError(t, svc.RestoreProduct(ctx, product.ID))

	active, err := svc.ListActiveProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Nil(t, active[0].DeletedAt)
}

func TestPurgeProductRequiresRecycleBin(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(newFakeCatalogStore())

	product, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Dune",
		Quantity: 1,
		Price:    12.50,
		ImageURL: "https://img.example/dune.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)

	err = svc.PurgeProduct(ctx, product.ID)
	var perr *apperr.PreconditionError
	require.True(t, errors.As(err, &perr))

	// still retrievable after the rejected purge
	_, err = svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)

	require.NoError(t, svc.SoftDeleteProduct(ctx, product.ID))
	require.NoError(t, svc.PurgeProduct(ctx, product.ID))

	_, err = svc.GetProduct(ctx, product.ID)
	var nerr *apperr.NotFoundError
	assert.True(t, errors.As(err, &nerr))
}

func TestDistinctCategoriesSpanDeletedProducts(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(newFakeCatalogStore())

	scifi, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "Dune",
		Quantity: 1,
		Price:    12.50,
		ImageURL: "https://img.example/dune.jpg",
		Category: "Sci-Fi",
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, &CreateProductRequest{
		Name:     "The Hobbit",
		Quantity: 1,
		Price:    10.00,
		ImageURL: "https://img.example/hobbit.jpg",
		Category: "Fantasy",
	})
	require.NoError(t, err)

	// categories are observed over all products, recycle bin included
	require.NoError(t, svc.SoftDeleteProduct(ctx, scifi.ID))

	categories, err := svc.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sci-Fi", "Fantasy"}, categories)
}
