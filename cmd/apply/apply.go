// Package apply handles the apply command
package apply

import (
	"presyohan/pricelist/cmd/common"
	"presyohan/pricelist/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the apply command
var Cmd = &cobra.Command{
	Use:   "apply",
	Short: "Parse, diff and apply the import to the store catalog",
	Long: `Apply runs the full pipeline: parse the pasted text, compute the
create/update preview against the catalog, then execute the writes. Item
failures are isolated and reported; one bad row never aborts the batch.`,
	Run: applyFunc,
}

func applyFunc(cmd *cobra.Command, args []string) {
	text, err := common.ReadInput(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error reading input: %v", err)
	}

	c, err := root.BuildContainer()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}

	sess := c.NewSession("")
	if _, err := sess.Parse(cmd.Context(), text); err != nil {
		root.Log.Fatalf("Error parsing text: %v", err)
	}
	preview, err := sess.DryRun(cmd.Context())
	if err != nil {
		root.Log.Fatalf("Error computing dry-run: %v", err)
	}
	root.Log.Infof("Applying %d creates and %d updates", len(preview.Creates), len(preview.Updates))

	result, err := sess.Apply(cmd.Context())
	if err != nil {
		root.Log.Fatalf("Error applying import: %v", err)
	}

	root.Log.Infof("Saved %d of %d items across %d categories",
		result.SavedCount, result.AttemptedCount, result.CategoryCount)
	for _, f := range result.Failures {
		root.Log.Warnf("  failed: %s (%s)", f.Item.Name, f.Reason)
	}
}
