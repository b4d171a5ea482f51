// Package postgrest implements the catalog provider against a
// PostgREST-style API: catalog reads and category/product creation go
// through stored-procedure RPC endpoints, product updates through a
// filtered PATCH on the products table. The server owns deduplication and
// name normalization for categories; EnsureCategory is idempotent.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"presyohan/pricelist/internal/catalog"
	"presyohan/pricelist/internal/importerror"
	"presyohan/pricelist/internal/logging"
	"presyohan/pricelist/internal/models"

	"github.com/shopspring/decimal"
)

// Client talks to one PostgREST base URL with a static API key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Client for the given base URL (e.g.
// "https://xyz.supabase.co/rest/v1") and API key.
func NewClient(baseURL, apiKey string, logger logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger.WithField("component", "postgrest"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ catalog.Provider = (*Client)(nil)

type productRow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Units       string          `json:"units"`
	Category    string          `json:"category"`
}

type categoryRow struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

// FetchCatalog calls the get_store_products RPC.
func (c *Client) FetchCatalog(ctx context.Context, storeID string) ([]models.CatalogProduct, error) {
	var rows []productRow
	err := c.rpc(ctx, "get_store_products", map[string]any{"p_store_id": storeID}, &rows)
	if err != nil {
		return nil, err
	}
	out := make([]models.CatalogProduct, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.CatalogProduct{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Unit:        r.Units,
			Category:    r.Category,
		})
	}
	return out, nil
}

// FetchCategories calls the get_user_categories RPC.
func (c *Client) FetchCategories(ctx context.Context, storeID string) ([]models.Category, error) {
	var rows []categoryRow
	err := c.rpc(ctx, "get_user_categories", map[string]any{"p_store_id": storeID}, &rows)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Category{ID: r.CategoryID, Name: r.Name})
	}
	return out, nil
}

// EnsureCategory calls the add_category RPC, which returns the existing row
// when a category of that name is already present. The returned name is the
// server-normalized spelling.
func (c *Client) EnsureCategory(ctx context.Context, storeID, name string) (catalog.EnsuredCategory, error) {
	var rows []categoryRow
	err := c.rpc(ctx, "add_category", map[string]any{
		"p_store_id": storeID,
		"p_name":     name,
	}, &rows)
	if err != nil {
		return catalog.EnsuredCategory{}, &importerror.MutationError{Operation: "ensure category", Name: name, Err: err}
	}
	if len(rows) == 0 || rows[0].CategoryID == "" {
		return catalog.EnsuredCategory{}, &importerror.MutationError{
			Operation: "ensure category",
			Name:      name,
			Err:       fmt.Errorf("add_category returned no id"),
		}
	}
	normalized := rows[0].Name
	if normalized == "" {
		normalized = name
	}
	return catalog.EnsuredCategory{ID: rows[0].CategoryID, NormalizedName: normalized}, nil
}

// CreateProduct calls the add_product RPC.
func (c *Client) CreateProduct(ctx context.Context, storeID, categoryID string, create models.CreatePreview) error {
	payload := map[string]any{
		"p_store_id":    storeID,
		"p_category_id": categoryID,
		"p_name":        create.Name,
		"p_description": nullable(create.Description),
		"p_price":       create.Price,
		"p_unit":        create.Unit,
	}
	if err := c.rpc(ctx, "add_product", payload, nil); err != nil {
		return &importerror.MutationError{Operation: "create product", Name: create.Name, Err: err}
	}
	return nil
}

// UpdateProduct rewrites the full product row through a filtered PATCH.
func (c *Client) UpdateProduct(ctx context.Context, storeID, categoryID string, update models.UpdatePreview) error {
	payload := map[string]any{
		"name":        update.Name,
		"description": nullable(update.NextDescription),
		"price":       update.NextPrice,
		"units":       update.NextUnit,
		"category_id": categoryID,
	}
	q := url.Values{}
	q.Set("id", "eq."+update.ProductID)
	q.Set("store_id", "eq."+storeID)
	err := c.do(ctx, http.MethodPatch, c.baseURL+"/products?"+q.Encode(), payload, nil)
	if err != nil {
		return &importerror.MutationError{Operation: "update product", Name: update.Name, Err: err}
	}
	return nil
}

// rpc posts to a stored-procedure endpoint and optionally decodes the
// response into out.
func (c *Client) rpc(ctx context.Context, fn string, params map[string]any, out any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+"/rpc/"+fn, params, out)
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, snippet)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// nullable maps an empty string to JSON null, matching the backend's
// treatment of optional descriptions.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
