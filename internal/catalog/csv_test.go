package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"presyohan/pricelist/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,name,description,price,unit,category
p1,Coke,1.5L,85.00,bottle,DRINKS
p2,Pepsi,,40,can,DRINKS
p3,Piattos,,35,pack,SNACKS
`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0600))
	return path
}

func TestCSVSnapshot_FetchCatalog(t *testing.T) {
	snap := NewCSVSnapshot(writeSampleCSV(t), nil)

	products, err := snap.FetchCatalog(context.Background(), "ignored")
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Coke", products[0].Name)
	assert.Equal(t, "1.5L", products[0].Description)
	assert.Equal(t, "bottle", products[0].Unit)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("85")))
}

func TestCSVSnapshot_FetchCategories(t *testing.T) {
	snap := NewCSVSnapshot(writeSampleCSV(t), nil)

	categories, err := snap.FetchCategories(context.Background(), "ignored")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "DRINKS", categories[0].Name)
	assert.Equal(t, "SNACKS", categories[1].Name)
}

func TestCSVSnapshot_MissingFile(t *testing.T) {
	snap := NewCSVSnapshot(filepath.Join(t.TempDir(), "nope.csv"), nil)

	_, err := snap.FetchCatalog(context.Background(), "ignored")
	assert.Error(t, err)
}

func TestReadOnlyProvider(t *testing.T) {
	provider := ReadOnly(NewCSVSnapshot(writeSampleCSV(t), nil))

	_, err := provider.EnsureCategory(context.Background(), "s", "DRINKS")
	assert.Error(t, err)
	assert.Error(t, provider.CreateProduct(context.Background(), "s", "c", models.CreatePreview{}))
	assert.Error(t, provider.UpdateProduct(context.Background(), "s", "c", models.UpdatePreview{}))

	products, err := provider.FetchCatalog(context.Background(), "s")
	require.NoError(t, err)
	assert.Len(t, products, 3)
}
