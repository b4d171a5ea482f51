// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"os"

	"presyohan/pricelist/internal/models"
)

// ReadInput returns the pasted text from the given file, or from stdin when
// path is "-" or empty.
func ReadInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading input file: %w", err)
	}
	return string(data), nil
}

// StatusCounts tallies parsed items by status for the command summaries.
func StatusCounts(categories []models.ParsedCategory) map[models.ItemStatus]int {
	counts := make(map[models.ItemStatus]int)
	for _, cat := range categories {
		for _, item := range cat.Items {
			counts[item.Status]++
		}
	}
	return counts
}
