package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JonathanDVZ/CRMGraphQL/internal/search"
)

func TestProductCRUD(t *testing.T) {
	db := initTestDB(t)
	svc := ProductService{DB: db}

	product, err := svc.Create(context.Background(), ProductInput{Name: "Keyboard", Price: 49.9, Stock: 12})
	require.NoError(t, err)
	require.NotZero(t, product.ID)

	_, err = svc.Create(context.Background(), ProductInput{Price: 10})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), ProductInput{Name: "Bad", Price: -1})
	require.ErrorIs(t, err, ErrValidation)

	got, err := svc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, "Keyboard", got.Name)

	updated, err := svc.Update(context.Background(), product.ID, ProductInput{Name: "Keyboard", Price: 39.9, Stock: 6})
	require.NoError(t, err)
	require.Equal(t, 39.9, updated.Price)
	require.Equal(t, uint(6), updated.Stock)

	require.NoError(t, svc.Delete(context.Background(), product.ID))
	_, err = svc.Get(context.Background(), product.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(context.Background(), 999, ProductInput{Name: "Ghost"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSearchProductsFallback(t *testing.T) {
	db := initTestDB(t)
	svc := ProductService{
		DB:     db,
		Search: &search.ProductSearch{DB: db, Index: search.DefaultIndex},
	}

	createProduct(t, db, "Mechanical Keyboard", 120, 4)
	createProduct(t, db, "Keyboard Cover", 15, 9)
	createProduct(t, db, "Mouse", 25, 30)

	found, err := svc.SearchProducts(context.Background(), "Keyboard")
	require.NoError(t, err)
	require.Len(t, found, 2)

	none, err := svc.SearchProducts(context.Background(), "Monitor")
	require.NoError(t, err)
	require.Empty(t, none)

	_, err = svc.SearchProducts(context.Background(), "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestSearchProductsLimit(t *testing.T) {
	db := initTestDB(t)
	svc := ProductService{
		DB:     db,
		Search: &search.ProductSearch{DB: db, Index: search.DefaultIndex},
	}

	for i := 0; i < 15; i++ {
		createProduct(t, db, "Cable", 5, 100)
	}

	found, err := svc.SearchProducts(context.Background(), "Cable")
	require.NoError(t, err)
	require.Len(t, found, searchLimit)
}
