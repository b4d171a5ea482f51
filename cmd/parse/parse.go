// Package parse handles the parse-and-preview command
package parse

import (
	"presyohan/pricelist/cmd/common"
	"presyohan/pricelist/cmd/root"
	"presyohan/pricelist/internal/models"
	"presyohan/pricelist/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse pasted price-list text and preview the classification",
	Long: `Parse reads freeform price-list text, classifies every item
(NEW, UPDATE, DUPLICATE or an error status) against the store catalog and
prints a per-status summary. With --output the full classified item list is
written as CSV.`,
	Run: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
	text, err := common.ReadInput(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error reading input: %v", err)
	}

	c, err := root.BuildContainer()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}

	sess := c.NewSession("")
	categories, err := sess.Parse(cmd.Context(), text)
	if err != nil {
		root.Log.Fatalf("Error parsing text: %v", err)
	}

	counts := common.StatusCounts(categories)
	total := 0
	for _, n := range counts {
		total += n
	}
	root.Log.Infof("%d items parsed in %d categories", total, len(categories))
	for _, status := range []models.ItemStatus{
		models.StatusNew, models.StatusUpdate, models.StatusDuplicate,
		models.StatusNoPrice, models.StatusInvalidFormat, models.StatusNoCategory,
	} {
		if counts[status] > 0 {
			root.Log.Infof("  %s: %d", status, counts[status])
		}
	}

	if root.SharedFlags.Output != "" {
		report.SetLogger(c.Logger())
		if err := report.WriteItemsCSV(categories, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error writing preview CSV: %v", err)
		}
	}
}
