package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"presyohan/pricelist/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFlattenItems(t *testing.T) {
	categories := []models.ParsedCategory{
		{Name: "DRINKS", Items: []models.ParsedItem{
			{Name: "Coke", Description: "1.5L", Unit: "bottle", Price: price("85"), Status: models.StatusNew},
			{Name: "Pepsi", Unit: models.DefaultUnit, Status: models.StatusNoPrice},
		}},
	}

	rows := FlattenItems(categories)

	require.Len(t, rows, 2)
	assert.Equal(t, "DRINKS", rows[0].Category)
	assert.Equal(t, "85.00", rows[0].Price)
	assert.Equal(t, "NEW", rows[0].Status)
	assert.Equal(t, "", rows[1].Price, "error rows carry no price")
	assert.Equal(t, "ERROR_NO_PRICE", rows[1].Status)
}

func TestWriteItemsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "items.csv")
	categories := []models.ParsedCategory{
		{Name: "DRINKS", Items: []models.ParsedItem{
			{Name: "Coke", Unit: "bottle", Price: price("85"), Status: models.StatusNew},
		}},
	}

	require.NoError(t, WriteItemsCSV(categories, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "category,name,description,unit,price,status"))
	assert.Contains(t, content, "DRINKS,Coke,,bottle,85.00,NEW")
}

func TestWriteCreatesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creates.csv")
	creates := []models.CreatePreview{
		{Name: "Coke", Category: "DRINKS", Unit: "bottle", Price: decimal.RequireFromString("85")},
	}

	require.NoError(t, WriteCreatesCSV(creates, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Coke")
}

func TestWriteUpdatesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updates.csv")
	updates := []models.UpdatePreview{
		{ProductID: "p1", Name: "Coke", PrevPrice: decimal.RequireFromString("80"), NextPrice: decimal.RequireFromString("85")},
	}

	require.NoError(t, WriteUpdatesCSV(updates, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "p1")
}
