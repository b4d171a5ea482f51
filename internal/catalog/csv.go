package catalog

import (
	"context"
	"fmt"
	"os"

	"presyohan/pricelist/internal/logging"
	"presyohan/pricelist/internal/models"

	"github.com/gocarina/gocsv"
)

// CSVSnapshot is a read-only SnapshotProvider over a CSV catalog export
// (one product per row: id,name,description,price,unit,category). It backs
// the dry-run command when the operator has a spreadsheet export instead of
// a live backend. Categories are derived from the product rows.
type CSVSnapshot struct {
	path   string
	logger logging.Logger
}

// NewCSVSnapshot creates a snapshot provider for the given CSV file.
func NewCSVSnapshot(path string, logger logging.Logger) *CSVSnapshot {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CSVSnapshot{path: path, logger: logger.WithField("component", "csvsnapshot")}
}

// FetchCatalog reads all product rows from the CSV file. The store id is
// ignored; a CSV export belongs to exactly one store.
func (s *CSVSnapshot) FetchCatalog(ctx context.Context, storeID string) ([]models.CatalogProduct, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("error opening catalog CSV: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close catalog CSV")
		}
	}()

	var rows []models.CatalogProduct
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing catalog CSV: %w", err)
	}
	s.logger.WithField(logging.FieldCount, len(rows)).Debug("Read catalog snapshot from CSV")
	return rows, nil
}

// FetchCategories lists the distinct category names appearing in the CSV,
// in first-seen order. Ids are synthesized from the names since a CSV
// export carries none.
func (s *CSVSnapshot) FetchCategories(ctx context.Context, storeID string) ([]models.Category, error) {
	products, err := s.FetchCatalog(ctx, storeID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []models.Category
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, models.Category{ID: "csv:" + p.Category, Name: p.Category})
	}
	return out, nil
}
