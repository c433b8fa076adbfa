package cmd

import (
	"github.com/spf13/cobra"

	"qbgen/internal/logger"
)

var skipUpdate bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the full monthly batch",
	Long: `Execute the full monthly batch: merge any customer-list upload into
the master reference, run the reference sanity checks, derive every
billing ledger from the raw invoice feed, write the output workbook and
archive the inputs.

The sanity checks are a hard gate: if any fail, no derivation happens
and the failures land in REFERENCE_ERROR.csv. Per-line resolution
failures do not stop the run; they are collected in ERROR_DETAILS.csv
and the workbook is still produced.`,
	Example: `  # Full batch over the current directory
  qbgen run

  # Full batch over a test fixture tree
  qbgen run --root ./testdata/july

  # Derive without touching the reference
  qbgen run --skip-update`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&skipUpdate, "skip-update", false, "Skip the customer-list merge step")
}

func runRun(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("run")

	p, err := newPipeline()
	if err != nil {
		return err
	}

	log.Info().Bool("skip_update", skipUpdate).Msg("Starting monthly batch")
	if err := p.Run(skipUpdate); err != nil {
		log.Error().Err(err).Msg("Monthly batch failed")
		return err
	}
	log.Info().Msg("Monthly batch completed")
	return nil
}
