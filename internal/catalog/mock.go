package catalog

import (
	"context"

	"presyohan/pricelist/internal/models"
)

// MockProvider is a Provider implementation for tests. Behavior is
// overridden per call through function fields; unset fields fall back to
// benign defaults.
type MockProvider struct {
	FetchCatalogFunc    func(ctx context.Context, storeID string) ([]models.CatalogProduct, error)
	FetchCategoriesFunc func(ctx context.Context, storeID string) ([]models.Category, error)
	EnsureCategoryFunc  func(ctx context.Context, storeID, name string) (EnsuredCategory, error)
	CreateProductFunc   func(ctx context.Context, storeID, categoryID string, create models.CreatePreview) error
	UpdateProductFunc   func(ctx context.Context, storeID, categoryID string, update models.UpdatePreview) error

	// Call records for verification.
	EnsuredCategories []string
	CreatedProducts   []models.CreatePreview
	UpdatedProducts   []models.UpdatePreview
}

// FetchCatalog returns an empty snapshot unless overridden.
func (m *MockProvider) FetchCatalog(ctx context.Context, storeID string) ([]models.CatalogProduct, error) {
	if m.FetchCatalogFunc != nil {
		return m.FetchCatalogFunc(ctx, storeID)
	}
	return nil, nil
}

// FetchCategories returns no categories unless overridden.
func (m *MockProvider) FetchCategories(ctx context.Context, storeID string) ([]models.Category, error) {
	if m.FetchCategoriesFunc != nil {
		return m.FetchCategoriesFunc(ctx, storeID)
	}
	return nil, nil
}

// EnsureCategory echoes the requested name with a deterministic id unless
// overridden.
func (m *MockProvider) EnsureCategory(ctx context.Context, storeID, name string) (EnsuredCategory, error) {
	m.EnsuredCategories = append(m.EnsuredCategories, name)
	if m.EnsureCategoryFunc != nil {
		return m.EnsureCategoryFunc(ctx, storeID, name)
	}
	return EnsuredCategory{ID: "cat-" + name, NormalizedName: name}, nil
}

// CreateProduct records the create and succeeds unless overridden.
func (m *MockProvider) CreateProduct(ctx context.Context, storeID, categoryID string, create models.CreatePreview) error {
	if m.CreateProductFunc != nil {
		if err := m.CreateProductFunc(ctx, storeID, categoryID, create); err != nil {
			return err
		}
	}
	m.CreatedProducts = append(m.CreatedProducts, create)
	return nil
}

// UpdateProduct records the update and succeeds unless overridden.
func (m *MockProvider) UpdateProduct(ctx context.Context, storeID, categoryID string, update models.UpdatePreview) error {
	if m.UpdateProductFunc != nil {
		if err := m.UpdateProductFunc(ctx, storeID, categoryID, update); err != nil {
			return err
		}
	}
	m.UpdatedProducts = append(m.UpdatedProducts, update)
	return nil
}
