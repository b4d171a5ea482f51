package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"presyohan/pricelist/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "catalog.yaml"), nil)
}

func TestFileStore_MissingFileReadsEmpty(t *testing.T) {
	store := newTestFileStore(t)

	products, err := store.FetchCatalog(context.Background(), "store-1")
	require.NoError(t, err)
	assert.Empty(t, products)

	categories, err := store.FetchCategories(context.Background(), "store-1")
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestFileStore_EnsureCategory(t *testing.T) {
	store := newTestFileStore(t)

	first, err := store.EnsureCategory(context.Background(), "store-1", " drinks ")
	require.NoError(t, err)
	assert.Equal(t, "DRINKS", first.NormalizedName)
	assert.NotEmpty(t, first.ID)

	// Idempotent: same normalized name returns the same id.
	second, err := store.EnsureCategory(context.Background(), "store-1", "Drinks")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	categories, err := store.FetchCategories(context.Background(), "store-1")
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestFileStore_EnsureCategoryEmptyName(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.EnsureCategory(context.Background(), "store-1", "  ")
	assert.Error(t, err)
}

func TestFileStore_CreateAndUpdateProduct(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	cat, err := store.EnsureCategory(ctx, "store-1", "DRINKS")
	require.NoError(t, err)

	err = store.CreateProduct(ctx, "store-1", cat.ID, models.CreatePreview{
		Name:        "Coke",
		Category:    "DRINKS",
		Unit:        "bottle",
		Price:       decimal.RequireFromString("85"),
		Description: "1.5L",
	})
	require.NoError(t, err)

	products, err := store.FetchCatalog(ctx, "store-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Coke", products[0].Name)
	assert.Equal(t, "DRINKS", products[0].Category)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("85")))

	err = store.UpdateProduct(ctx, "store-1", cat.ID, models.UpdatePreview{
		ProductID: products[0].ID,
		Name:      "Coke",
		NextUnit:  "bottle",
		NextPrice: decimal.RequireFromString("90"),
	})
	require.NoError(t, err)

	products, err = store.FetchCatalog(ctx, "store-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("90")))
}

func TestFileStore_UpdateUnknownProduct(t *testing.T) {
	store := newTestFileStore(t)

	err := store.UpdateProduct(context.Background(), "store-1", "cat-1", models.UpdatePreview{ProductID: "nope"})
	assert.Error(t, err)
}

func TestFileStore_StoresAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	cat, err := store.EnsureCategory(ctx, "store-1", "DRINKS")
	require.NoError(t, err)
	require.NoError(t, store.CreateProduct(ctx, "store-1", cat.ID, models.CreatePreview{Name: "Coke", Price: decimal.RequireFromString("85")}))

	products, err := store.FetchCatalog(ctx, "store-2")
	require.NoError(t, err)
	assert.Empty(t, products)
}
