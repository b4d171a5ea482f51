// Package report renders parse and dry-run results as CSV files so the
// operator can review a batch outside the terminal.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"presyohan/pricelist/internal/logging"
	"presyohan/pricelist/internal/models"

	"github.com/gocarina/gocsv"
)

var log logging.Logger = logging.NewLogrusAdapter("info", "text")

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// ItemRow is the flattened CSV projection of one classified item.
type ItemRow struct {
	Category    string `csv:"category"`
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Unit        string `csv:"unit"`
	Price       string `csv:"price"`
	Status      string `csv:"status"`
}

// FlattenItems turns the classified category buckets into CSV rows in
// batch order.
func FlattenItems(categories []models.ParsedCategory) []ItemRow {
	var rows []ItemRow
	for _, cat := range categories {
		for _, item := range cat.Items {
			row := ItemRow{
				Category:    cat.Name,
				Name:        item.Name,
				Description: item.Description,
				Unit:        item.Unit,
				Status:      string(item.Status),
			}
			if item.Price != nil {
				row.Price = item.Price.StringFixed(2)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteItemsCSV writes the classified parse result to a CSV file.
func WriteItemsCSV(categories []models.ParsedCategory, path string) error {
	return writeCSV(FlattenItems(categories), path)
}

// WriteCreatesCSV writes the create previews to a CSV file.
func WriteCreatesCSV(creates []models.CreatePreview, path string) error {
	return writeCSV(creates, path)
}

// WriteUpdatesCSV writes the update previews to a CSV file.
func WriteUpdatesCSV(updates []models.UpdatePreview, path string) error {
	return writeCSV(updates, path)
}

// writeCSV marshals rows with gocsv, creating the target directory when
// needed.
func writeCSV[T any](rows []T, path string) error {
	log.WithFields(
		logging.Field{Key: logging.FieldOutput, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
	).Info("Writing CSV report")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}
