package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"presyohan/pricelist/internal/logging"
	"presyohan/pricelist/internal/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML document a FileStore manages. Products
// and categories for every store live in one file keyed by store id.
type catalogFile struct {
	Stores map[string]*storeRecord `yaml:"stores"`
}

type storeRecord struct {
	Categories []models.Category       `yaml:"categories,omitempty"`
	Products   []models.CatalogProduct `yaml:"products,omitempty"`
}

// FileStore is a Provider backed by a local YAML file. It exists so the CLI
// can run the full parse/dry-run/apply pipeline offline; the file plays the
// role of the remote catalog.
type FileStore struct {
	path   string
	logger logging.Logger

	mu sync.Mutex
}

// NewFileStore creates a FileStore for the given YAML file path. The file
// does not have to exist yet; a missing file reads as an empty catalog and
// is created on first write.
func NewFileStore(path string, logger logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &FileStore{path: path, logger: logger.WithField("component", "filestore")}
}

// FetchCatalog implements SnapshotProvider.
func (s *FileStore) FetchCatalog(ctx context.Context, storeID string) ([]models.CatalogProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	rec := doc.Stores[storeID]
	if rec == nil {
		return nil, nil
	}
	return append([]models.CatalogProduct(nil), rec.Products...), nil
}

// FetchCategories implements SnapshotProvider.
func (s *FileStore) FetchCategories(ctx context.Context, storeID string) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	rec := doc.Stores[storeID]
	if rec == nil {
		return nil, nil
	}
	return append([]models.Category(nil), rec.Categories...), nil
}

// EnsureCategory implements MutationProvider. Names are normalized to
// upper case, mirroring what the remote backend does server-side.
func (s *FileStore) EnsureCategory(ctx context.Context, storeID, name string) (EnsuredCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "" {
		return EnsuredCategory{}, fmt.Errorf("category name cannot be empty")
	}

	doc, err := s.load()
	if err != nil {
		return EnsuredCategory{}, err
	}
	rec := doc.store(storeID)

	for _, c := range rec.Categories {
		if strings.EqualFold(c.Name, normalized) {
			return EnsuredCategory{ID: c.ID, NormalizedName: c.Name}, nil
		}
	}

	created := models.Category{ID: uuid.NewString(), Name: normalized}
	rec.Categories = append(rec.Categories, created)
	if err := s.save(doc); err != nil {
		return EnsuredCategory{}, err
	}
	s.logger.WithField(logging.FieldCategory, normalized).Debug("Created category")
	return EnsuredCategory{ID: created.ID, NormalizedName: created.Name}, nil
}

// CreateProduct implements MutationProvider.
func (s *FileStore) CreateProduct(ctx context.Context, storeID, categoryID string, create models.CreatePreview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	rec := doc.store(storeID)
	rec.Products = append(rec.Products, models.CatalogProduct{
		ID:          uuid.NewString(),
		Name:        create.Name,
		Description: create.Description,
		Price:       create.Price,
		Unit:        create.Unit,
		Category:    s.categoryName(rec, categoryID),
	})
	return s.save(doc)
}

// UpdateProduct implements MutationProvider.
func (s *FileStore) UpdateProduct(ctx context.Context, storeID, categoryID string, update models.UpdatePreview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	rec := doc.store(storeID)
	for i := range rec.Products {
		if rec.Products[i].ID == update.ProductID {
			rec.Products[i].Name = update.Name
			rec.Products[i].Description = update.NextDescription
			rec.Products[i].Price = update.NextPrice
			rec.Products[i].Unit = update.NextUnit
			rec.Products[i].Category = s.categoryName(rec, categoryID)
			return s.save(doc)
		}
	}
	return fmt.Errorf("product %s not found", update.ProductID)
}

func (s *FileStore) categoryName(rec *storeRecord, categoryID string) string {
	for _, c := range rec.Categories {
		if c.ID == categoryID {
			return c.Name
		}
	}
	return ""
}

// load reads the YAML document; a missing file is an empty catalog, not an
// error.
func (s *FileStore) load() (*catalogFile, error) {
	doc := &catalogFile{Stores: map[string]*storeRecord{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField(logging.FieldInputFile, s.path).Debug("Catalog file not found, starting empty")
			return doc, nil
		}
		return nil, fmt.Errorf("error reading catalog file: %w", err)
	}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("error parsing catalog file: %w", err)
	}
	if doc.Stores == nil {
		doc.Stores = map[string]*storeRecord{}
	}
	return doc, nil
}

func (s *FileStore) save(doc *catalogFile) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error serializing catalog: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating catalog directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("error writing catalog file: %w", err)
	}
	return nil
}

func (f *catalogFile) store(storeID string) *storeRecord {
	rec := f.Stores[storeID]
	if rec == nil {
		rec = &storeRecord{}
		f.Stores[storeID] = rec
	}
	return rec
}
