// Package dryrun handles the dry-run command
package dryrun

import (
	"presyohan/pricelist/cmd/common"
	"presyohan/pricelist/cmd/root"
	"presyohan/pricelist/internal/catalog"
	"presyohan/pricelist/internal/report"
	"presyohan/pricelist/internal/session"

	"github.com/spf13/cobra"
)

var (
	snapshotCSV string
	createsCSV  string
	updatesCSV  string
)

// Cmd represents the dryrun command
var Cmd = &cobra.Command{
	Use:   "dryrun",
	Short: "Compute the create/update preview without writing anything",
	Long: `Dryrun parses the pasted text and diffs it against the store
catalog. Nothing is written; the command reports how many products would be
created and updated, and can export both lists as CSV. With --snapshot the
diff runs against a CSV catalog export instead of the configured backend.`,
	Run: dryrunFunc,
}

func init() {
	Cmd.Flags().StringVar(&snapshotCSV, "snapshot", "", "Catalog CSV export to diff against")
	Cmd.Flags().StringVar(&createsCSV, "creates-csv", "", "Write create previews to this CSV file")
	Cmd.Flags().StringVar(&updatesCSV, "updates-csv", "", "Write update previews to this CSV file")
}

func dryrunFunc(cmd *cobra.Command, args []string) {
	text, err := common.ReadInput(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error reading input: %v", err)
	}

	c, err := root.BuildContainer()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}

	var sess *session.Session
	if snapshotCSV != "" {
		provider := catalog.ReadOnly(catalog.NewCSVSnapshot(snapshotCSV, c.Logger()))
		storeID := root.SharedFlags.Store
		if storeID == "" {
			storeID = c.Config().Store.ID
		}
		sess = session.New(storeID, provider, c.Logger())
	} else {
		sess = c.NewSession("")
	}

	if _, err := sess.Parse(cmd.Context(), text); err != nil {
		root.Log.Fatalf("Error parsing text: %v", err)
	}
	preview, err := sess.DryRun(cmd.Context())
	if err != nil {
		root.Log.Fatalf("Error computing dry-run: %v", err)
	}

	root.Log.Infof("%d new items, %d updates", len(preview.Creates), len(preview.Updates))

	report.SetLogger(c.Logger())
	if createsCSV != "" {
		if err := report.WriteCreatesCSV(preview.Creates, createsCSV); err != nil {
			root.Log.Fatalf("Error writing creates CSV: %v", err)
		}
	}
	if updatesCSV != "" {
		if err := report.WriteUpdatesCSV(preview.Updates, updatesCSV); err != nil {
			root.Log.Fatalf("Error writing updates CSV: %v", err)
		}
	}
}
