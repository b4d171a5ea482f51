package postgrest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"presyohan/pricelist/internal/importerror"
	"presyohan/pricelist/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCatalog(t *testing.T) {
	var gotPath string
	var gotParams map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotParams))
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Coke","description":"1.5L","price":85.00,"units":"bottle","category":"DRINKS"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	products, err := client.FetchCatalog(context.Background(), "store-1")

	require.NoError(t, err)
	assert.Equal(t, "/rpc/get_store_products", gotPath)
	assert.Equal(t, "store-1", gotParams["p_store_id"])
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "bottle", products[0].Unit)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("85")))
}

func TestFetchCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc/get_user_categories", r.URL.Path)
		_, _ = w.Write([]byte(`[{"category_id":"c1","name":"DRINKS"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	categories, err := client.FetchCategories(context.Background(), "store-1")

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, models.Category{ID: "c1", Name: "DRINKS"}, categories[0])
}

func TestEnsureCategory(t *testing.T) {
	t.Run("returns server-normalized name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rpc/add_category", r.URL.Path)
			_, _ = w.Write([]byte(`[{"category_id":"c1","name":"DRINKS"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", nil)
		ensured, err := client.EnsureCategory(context.Background(), "store-1", "drinks")

		require.NoError(t, err)
		assert.Equal(t, "c1", ensured.ID)
		assert.Equal(t, "DRINKS", ensured.NormalizedName)
	})

	t.Run("empty result is a mutation error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", nil)
		_, err := client.EnsureCategory(context.Background(), "store-1", "drinks")

		var mut *importerror.MutationError
		require.ErrorAs(t, err, &mut)
	})
}

func TestCreateProduct(t *testing.T) {
	var gotParams map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc/add_product", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotParams))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	err := client.CreateProduct(context.Background(), "store-1", "c1", models.CreatePreview{
		Name:  "Coke",
		Unit:  "bottle",
		Price: decimal.RequireFromString("85"),
	})

	require.NoError(t, err)
	assert.Equal(t, "store-1", gotParams["p_store_id"])
	assert.Equal(t, "c1", gotParams["p_category_id"])
	assert.Equal(t, "Coke", gotParams["p_name"])
	assert.Nil(t, gotParams["p_description"], "empty description posts as null")
}

func TestUpdateProduct(t *testing.T) {
	var gotMethod, gotQuery string
	var gotParams map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/products", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotParams))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	err := client.UpdateProduct(context.Background(), "store-1", "c1", models.UpdatePreview{
		ProductID: "p1",
		Name:      "Coke",
		NextUnit:  "bottle",
		NextPrice: decimal.RequireFromString("90"),
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Contains(t, gotQuery, "id=eq.p1")
	assert.Contains(t, gotQuery, "store_id=eq.store-1")
	assert.Equal(t, "c1", gotParams["category_id"])
	assert.Equal(t, "bottle", gotParams["units"])
}

func TestAuthHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", nil)
	_, err := client.FetchCatalog(context.Background(), "store-1")
	require.NoError(t, err)
}

func TestServerErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	_, err := client.FetchCatalog(context.Background(), "store-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "permission denied")
}
