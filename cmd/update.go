package cmd

import (
	"github.com/spf13/cobra"

	"qbgen/internal/logger"
)

var updateDryRun bool

var updateCmd = &cobra.Command{
	Use:   "update-reference",
	Short: "Merge a customer-list upload into the master reference",
	Long: `Merge a customer-list upload from the input directory into the
master reference workbook. Rows whose suffix key is already stored are
ignored; stored rows whose account number has been reassigned to a new
row are dropped before the new rows are appended.

The drop side of that policy deletes silently, so --dry-run reports
exactly what a merge would add and drop without saving anything.`,
	Example: `  # Apply the merge
  qbgen update-reference

  # See what would change first
  qbgen update-reference --dry-run`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "Compute and report the merge without saving")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("update-reference")

	p, err := newPipeline()
	if err != nil {
		return err
	}

	if err := p.UpdateReference(updateDryRun); err != nil {
		log.Error().Err(err).Msg("Reference update failed")
		return err
	}
	return nil
}
