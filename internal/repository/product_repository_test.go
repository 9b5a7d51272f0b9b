package repository

import (
	"context"
	"sync"
	"testing"

	"catalog-service/internal/apperror"
	"catalog-service/internal/model"
	"catalog-service/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner    = "ana@example.com"
	intruder = "eve@example.com"
)

func seedProduct(t *testing.T, repo *ProductRepository, name string, price float64) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:        name,
		Price:       price,
		Description: "desc " + name,
		ImageURL:    "https://img.example.com/" + name,
		OwnerEmail:  owner,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestProductCreateAndGet(t *testing.T) {
	repo := NewProductRepository(testutil.NewDB(t), nil)

	created := seedProduct(t, repo, "Silla", 25)
	assert.NotZero(t, created.ID)

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Silla", got.Name)
	assert.Equal(t, owner, got.OwnerEmail)

	_, err = repo.Get(context.Background(), created.ID+100)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProductListPagination(t *testing.T) {
	repo := NewProductRepository(testutil.NewDB(t), nil)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		seedProduct(t, repo, name, 1)
	}

	all, err := repo.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 5)

	page, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Name)
	assert.Equal(t, "c", page[1].Name)

	again, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, page, again)

	empty, err := repo.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = repo.List(ctx, -1, 2)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestProductUpdatePartial(t *testing.T) {
	repo := NewProductRepository(testutil.NewDB(t), nil)
	ctx := context.Background()
	product := seedProduct(t, repo, "Silla", 25)

	price := 99.5
	updated, err := repo.Update(ctx, product.ID, owner, model.ProductPatch{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "Silla", updated.Name)
	assert.Equal(t, 99.5, updated.Price)
	assert.Equal(t, product.Description, updated.Description)

	name := "Silla plegable"
	updated, err = repo.Update(ctx, product.ID, owner, model.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Silla plegable", updated.Name)
	assert.Equal(t, 99.5, updated.Price)
}

func TestProductUpdateEmptyPatchReturnsCurrent(t *testing.T) {
	repo := NewProductRepository(testutil.NewDB(t), nil)
	product := seedProduct(t, repo, "Silla", 25)

	got, err := repo.Update(context.Background(), product.ID, owner, model.ProductPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Silla", got.Name)
	assert.Equal(t, 25.0, got.Price)
}

func TestProductUpdateNonOwner(t *testing.T) {
	repo := NewProductRepository(testutil.NewDB(t), nil)
	ctx := context.Background()
	product := seedProduct(t, repo, "Silla", 25)

	price := 1.0
	_, err := repo.Update(ctx, product.ID, intruder, model.ProductPatch{Price: &price})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	got, err := repo.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.Price)

	_, err = repo.Update(ctx, product.ID+100, owner, model.ProductPatch{Price: &price})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	repo := NewProductRepository(testutil.NewDB(t), nil)
	ctx := context.Background()
	product := seedProduct(t, repo, "Silla", 25)

	deleted, err := repo.Delete(ctx, product.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, product.ID, deleted.ID)
	assert.Equal(t, "Silla", deleted.Name)

	_, err = repo.Get(ctx, product.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = repo.Delete(ctx, product.ID, owner)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProductDeleteNonOwnerLeavesRow(t *testing.T) {
	repo := NewProductRepository(testutil.NewDB(t), nil)
	ctx := context.Background()
	product := seedProduct(t, repo, "Silla", 25)

	_, err := repo.Delete(ctx, product.ID, intruder)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	products, err := repo.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, product.ID, products[0].ID)
}

func TestProductDeleteConcurrent(t *testing.T) {
	repo := NewProductRepository(testutil.NewDB(t), nil)
	ctx := context.Background()
	product := seedProduct(t, repo, "Silla", 25)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Delete(ctx, product.ID, owner)
		}(i)
	}
	wg.Wait()

	var succeeded, notFound int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, apperror.ErrNotFound):
			notFound++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, notFound)
}
