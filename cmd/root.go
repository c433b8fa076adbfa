package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qbgen/internal/config"
	"qbgen/internal/logger"
	"qbgen/internal/pipeline"
	"qbgen/internal/report"
)

var version = "1.0.0"

// rootDir overrides the working root directory. Empty means QBGEN_ROOT
// or the current directory.
var rootDir string

var rootCmd = &cobra.Command{
	Use:   "qbgen",
	Short: "Generate the monthly QuickBooks billing import workbook",
	Long: `qbgen ingests the supplier's monthly raw invoice feed, reconciles
customer identity against the master reference workbook, recomputes
retail pricing, and emits the multi-sheet billing workbook for import
into QuickBooks.

Run without arguments it executes the full monthly batch: customer-list
merge, reference sanity checks, ledger derivation, workbook write and
input archiving.`,
	Version: version,
	// The operators run this as a zero-argument batch job; the bare
	// command is the full pipeline.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Working root directory (default: QBGEN_ROOT or the current directory)")
}

// newPipeline builds the pipeline for the configured root with the
// console reporter.
func newPipeline() (*pipeline.Pipeline, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	log := logger.WithComponent("cmd")
	log.Debug().Str("root", cfg.Root).Msg("Working root resolved")
	return pipeline.New(cfg, report.NewConsoleReporter()), nil
}
