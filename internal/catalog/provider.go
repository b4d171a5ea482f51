// Package catalog defines the two collaborator interfaces the import
// pipeline depends on: fetching a snapshot of the store's current catalog,
// and mutating categories/products. Implementations are injected at
// construction so the engine never reaches for a global client.
package catalog

import (
	"context"
	"errors"

	"presyohan/pricelist/internal/models"
)

// SnapshotProvider returns a consistent read-only view of a store's
// catalog. Staleness is acceptable (the diff is advisory), but one session
// must reuse the same snapshot for both dry-run and apply.
type SnapshotProvider interface {
	// FetchCatalog returns one row per existing product in the store.
	FetchCatalog(ctx context.Context, storeID string) ([]models.CatalogProduct, error)

	// FetchCategories returns the store's existing categories, used to
	// pre-seed the executor's category cache.
	FetchCategories(ctx context.Context, storeID string) ([]models.Category, error)
}

// EnsuredCategory is the result of an idempotent ensure-category call. The
// server may normalize the submitted name; callers must cache under
// NormalizedName, not the input spelling.
type EnsuredCategory struct {
	ID             string
	NormalizedName string
}

// MutationProvider applies catalog writes. All operations are expected to
// be idempotent by id/name on the remote side and report only success or
// failure; retry and timeout policy belongs to the implementation.
type MutationProvider interface {
	// EnsureCategory returns the id of the named category, creating it if
	// it does not exist yet.
	EnsureCategory(ctx context.Context, storeID, name string) (EnsuredCategory, error)

	// CreateProduct inserts a new product row.
	CreateProduct(ctx context.Context, storeID, categoryID string, create models.CreatePreview) error

	// UpdateProduct rewrites an existing product row by id.
	UpdateProduct(ctx context.Context, storeID, categoryID string, update models.UpdatePreview) error
}

// Provider bundles both collaborator roles; most backends implement both.
type Provider interface {
	SnapshotProvider
	MutationProvider
}

// ReadOnly adapts a snapshot-only source into a Provider whose mutation
// operations always fail. Dry runs never reach the mutation side; an apply
// against a read-only source fails per item instead of writing anywhere.
func ReadOnly(snapshot SnapshotProvider) Provider {
	return &readOnlyProvider{SnapshotProvider: snapshot}
}

type readOnlyProvider struct {
	SnapshotProvider
}

func (p *readOnlyProvider) EnsureCategory(ctx context.Context, storeID, name string) (EnsuredCategory, error) {
	return EnsuredCategory{}, errReadOnly
}

func (p *readOnlyProvider) CreateProduct(ctx context.Context, storeID, categoryID string, create models.CreatePreview) error {
	return errReadOnly
}

func (p *readOnlyProvider) UpdateProduct(ctx context.Context, storeID, categoryID string, update models.UpdatePreview) error {
	return errReadOnly
}

var errReadOnly = errors.New("catalog source is read-only")
