package session

import (
	"context"
	"errors"
	"testing"

	"presyohan/pricelist/internal/catalog"
	"presyohan/pricelist/internal/importerror"
	"presyohan/pricelist/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = "[DRINKS]\n- Coke (1.5L) — ₱85.00 | bottle\n- Pepsi — ₱40 | can"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSession_FullCycle(t *testing.T) {
	mock := &catalog.MockProvider{
		FetchCatalogFunc: func(ctx context.Context, storeID string) ([]models.CatalogProduct, error) {
			return []models.CatalogProduct{
				{ID: "p1", Name: "Coke", Description: "1.5L", Unit: "bottle", Price: dec("80"), Category: "DRINKS"},
			}, nil
		},
	}
	s := New("store-1", mock, nil)
	assert.Equal(t, PhaseCollecting, s.Phase())

	categories, err := s.Parse(context.Background(), sampleText)
	require.NoError(t, err)
	assert.Equal(t, PhaseParsed, s.Phase())
	require.Len(t, categories, 1)
	require.Len(t, categories[0].Items, 2)
	assert.Equal(t, models.StatusUpdate, categories[0].Items[0].Status)
	assert.Equal(t, models.StatusNew, categories[0].Items[1].Status)

	preview, err := s.DryRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseDryRun, s.Phase())
	assert.Len(t, preview.Creates, 1)
	assert.Len(t, preview.Updates, 1)

	result, err := s.Apply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseDone, s.Phase())
	assert.Equal(t, 2, result.SavedCount)
	assert.Empty(t, result.Failures)
	assert.Len(t, mock.CreatedProducts, 1)
	assert.Len(t, mock.UpdatedProducts, 1)
}

func TestSession_CategoryCountIncludesNoOpCategories(t *testing.T) {
	// Coke matches the snapshot exactly, so DRINKS contributes nothing to
	// the diff. The category still counts: it holds an eligible item.
	mock := &catalog.MockProvider{
		FetchCatalogFunc: func(ctx context.Context, storeID string) ([]models.CatalogProduct, error) {
			return []models.CatalogProduct{
				{ID: "p1", Name: "Coke", Description: "1.5L", Unit: "bottle", Price: dec("85"), Category: "DRINKS"},
			}, nil
		},
	}
	s := New("store-1", mock, nil)

	text := "[DRINKS]\n- Coke (1.5L) — ₱85.00 | bottle\n[SNACKS]\n- Piattos — ₱35 | pack"
	_, err := s.Parse(context.Background(), text)
	require.NoError(t, err)

	preview, err := s.DryRun(context.Background())
	require.NoError(t, err)
	require.Len(t, preview.Creates, 1)
	require.Empty(t, preview.Updates)

	result, err := s.Apply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.SavedCount)
	assert.Equal(t, 2, result.CategoryCount)
}

func TestSession_MissingStore(t *testing.T) {
	s := New("", &catalog.MockProvider{}, nil)

	_, err := s.Parse(context.Background(), sampleText)

	var missing *importerror.MissingStoreError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, PhaseCollecting, s.Phase())
}

func TestSession_SnapshotFailureFailsParse(t *testing.T) {
	mock := &catalog.MockProvider{
		FetchCatalogFunc: func(ctx context.Context, storeID string) ([]models.CatalogProduct, error) {
			return nil, errors.New("connection refused")
		},
	}
	s := New("store-1", mock, nil)

	_, err := s.Parse(context.Background(), sampleText)

	var snapErr *importerror.SnapshotError
	require.ErrorAs(t, err, &snapErr)
	assert.Equal(t, PhaseCollecting, s.Phase())
}

func TestSession_PhaseGuards(t *testing.T) {
	s := New("store-1", &catalog.MockProvider{}, nil)

	t.Run("dry-run before parse", func(t *testing.T) {
		_, err := s.DryRun(context.Background())
		var stateErr *importerror.SessionStateError
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("apply before dry-run", func(t *testing.T) {
		_, err := s.Apply(context.Background())
		var stateErr *importerror.SessionStateError
		require.ErrorAs(t, err, &stateErr)
	})
}

func TestSession_DryRunIsRepeatable(t *testing.T) {
	s := New("store-1", &catalog.MockProvider{}, nil)
	_, err := s.Parse(context.Background(), sampleText)
	require.NoError(t, err)

	first, err := s.DryRun(context.Background())
	require.NoError(t, err)
	second, err := s.DryRun(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSession_SnapshotFetchedOncePerParse(t *testing.T) {
	calls := 0
	mock := &catalog.MockProvider{
		FetchCatalogFunc: func(ctx context.Context, storeID string) ([]models.CatalogProduct, error) {
			calls++
			return nil, nil
		},
	}
	s := New("store-1", mock, nil)

	_, err := s.Parse(context.Background(), sampleText)
	require.NoError(t, err)
	_, err = s.DryRun(context.Background())
	require.NoError(t, err)
	_, err = s.Apply(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "dry-run and apply reuse the parse-time snapshot")
}

func TestSession_Reset(t *testing.T) {
	s := New("store-1", &catalog.MockProvider{}, nil)
	_, err := s.Parse(context.Background(), sampleText)
	require.NoError(t, err)

	s.Reset()

	assert.Equal(t, PhaseCollecting, s.Phase())
	assert.Empty(t, s.Categories())
	assert.Empty(t, s.Preview().Creates)
	assert.Zero(t, s.Result().SavedCount)
}
