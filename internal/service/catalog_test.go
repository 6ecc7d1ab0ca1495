package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mushroomery/shop/internal/models"
	"github.com/mushroomery/shop/internal/repo"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: &repo.GormRepo{DB: initTestDB(t)}}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	product := models.Product{
		Name:          "chanterelle",
		Description:   "fresh chanterelles",
		Price:         8.99,
		StockQuantity: 10,
		Image:         "chanterelle.jpg",
	}
	require.NoError(t, svc.CreateProduct(ctx, &product))
	assert.NotEmpty(t, product.ID)

	dup := models.Product{Name: "chanterelle", Description: "again", Price: 1}
	err := svc.CreateProduct(ctx, &dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		product models.Product
	}{
		{name: "empty name", product: models.Product{Price: 1, StockQuantity: 1}},
		{name: "negative price", product: models.Product{Name: "x", Price: -1}},
		{name: "negative stock", product: models.Product{Name: "y", Price: 1, StockQuantity: -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := svc.CreateProduct(ctx, &tt.product)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_ListProducts_Paginates(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		p := models.Product{
			Name:          fmt.Sprintf("product-%d", i),
			Description:   "d",
			Price:         float64(i),
			StockQuantity: i,
		}
		require.NoError(t, svc.CreateProduct(ctx, &p))
	}

	items, total, err := svc.ListProducts(ctx, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 3)
	assert.Equal(t, "product-0", items[0].Name)

	items, total, err = svc.ListProducts(ctx, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, items, 2)
}

func TestCatalogService_SearchWithoutIndex(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)

	_, _, err := svc.SearchProducts(context.Background(), "porcini", 0, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
