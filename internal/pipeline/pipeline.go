// Package pipeline wires the run together: reference update, sanity
// gate, derivation, workbook write and input archiving, with the
// failure policy the operators rely on: validation failures stop
// everything, resolution failures never do.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog"

	"qbgen/internal/config"
	"qbgen/internal/feed"
	"qbgen/internal/ledger"
	"qbgen/internal/logger"
	"qbgen/internal/refio"
	"qbgen/internal/refstore"
	"qbgen/internal/report"
	"qbgen/internal/workbook"
)

// Pipeline executes the monthly batch for one working root.
type Pipeline struct {
	cfg      *config.Config
	reporter report.Reporter
	log      zerolog.Logger
}

// New creates a pipeline for the given configuration.
func New(cfg *config.Config, reporter report.Reporter) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		reporter: reporter,
		log:      logger.WithComponent("pipeline"),
	}
}

// Run executes the full monthly batch. Panics anywhere below are
// caught once here, written to the crash artifact, and surfaced as an
// error.
func (p *Pipeline) Run(skipUpdate bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			trace := fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())
			if writeErr := os.WriteFile(p.cfg.ArtifactPath(report.CrashTraceFile), []byte(trace), 0o644); writeErr != nil {
				p.log.Error().Err(writeErr).Msg("Failed to write crash trace")
			}
			p.reporter.Fatal(fmt.Sprintf("Run crashed. See %s for details.", report.CrashTraceFile))
			err = fmt.Errorf("run panicked: %v", r)
		}
	}()

	// Reference update runs first and persistently mutates the store.
	// A failed save must not block derivation as long as the reference
	// itself is still loadable.
	if !skipUpdate {
		if updateErr := p.UpdateReference(false); updateErr != nil {
			p.reporter.Fatal(fmt.Sprintf("Reference update failed: %v", updateErr))
		}
	}

	store, ok, gateErr := p.loadAndValidate()
	if gateErr != nil {
		return gateErr
	}
	if !ok {
		p.reporter.Fatal(fmt.Sprintf("Failed to run. One or more reference checks failed. See %s for details.", report.ReferenceErrorFile))
		return refstore.ErrValidationFailed
	}

	return p.derive(store)
}

// Check runs the sanity battery only, writing the reference error
// artifact when anything fails.
func (p *Pipeline) Check() (bool, error) {
	_, ok, err := p.loadAndValidate()
	return ok, err
}

// UpdateReference merges a customer-list upload into the stored
// reference. With no upload in the input directory this is a no-op.
// With dryRun set the merge is computed and logged but never saved.
func (p *Pipeline) UpdateReference(dryRun bool) error {
	const op = "UpdateReference"

	uploadPath, err := feed.FindCustomerUpload(p.cfg.InputDir)
	if errors.Is(err, feed.ErrNoUploadFound) {
		p.log.Info().Msg("No customer list upload found; reference unchanged")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	customers, prices, err := refio.LoadReference(p.cfg.ReferencePath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	candidates, err := refio.LoadCustomerUpload(uploadPath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	merged, result := refstore.Merge(customers, candidates)
	if dryRun {
		p.log.Info().
			Int("would_add", len(result.Added)).
			Int("would_drop", len(result.Dropped)).
			Msg("Dry run: reference not saved")
		return nil
	}
	if !result.Changed() {
		p.log.Info().Msg("Upload contained no new customers; reference unchanged")
		return nil
	}

	if err := refio.SaveReference(p.cfg.ReferencePath, merged, prices); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// loadAndValidate loads the reference workbook, builds the store and
// runs the sanity gate. The bool reports whether the gate passed; the
// artifact is written whenever it did not.
func (p *Pipeline) loadAndValidate() (*refstore.Store, bool, error) {
	customers, prices, err := refio.LoadReference(p.cfg.ReferencePath)
	if err != nil {
		p.reporter.Fatal(fmt.Sprintf("Master reference unreadable: %v", err))
		return nil, false, err
	}
	store := refstore.NewStore(customers, prices)

	artifact := report.NewArtifact()
	if refstore.NewValidator(store, artifact).Run() {
		return store, true, nil
	}
	if writeErr := artifact.Write(p.cfg.ArtifactPath(report.ReferenceErrorFile)); writeErr != nil {
		p.log.Error().Err(writeErr).Msg("Failed to write reference error artifact")
	}
	return store, false, nil
}

// derive runs the best-effort derivation over the discovered raw feed
// and writes the output workbook. Resolution failures degrade trust but
// a complete workbook is always produced.
func (p *Pipeline) derive(store *refstore.Store) error {
	invoicePath, err := feed.FindRawInvoice(p.cfg.InputDir)
	if err != nil {
		p.reporter.Fatal("Failed to run. No invoice found in input folder.")
		return err
	}
	month, err := feed.InvoiceMonth(invoicePath)
	if err != nil {
		p.reporter.Fatal(fmt.Sprintf("Cannot determine invoice month: %v", err))
		return err
	}
	lines, err := feed.ParseRawInvoice(invoicePath)
	if err != nil {
		p.reporter.Fatal(fmt.Sprintf("Raw invoice unreadable: %v", err))
		return err
	}

	artifact := report.NewArtifact()
	derived := ledger.NewDeriver(store, artifact, month).Run(lines)
	summary, overview := ledger.Aggregate(store, derived)

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	outPath := filepath.Join(p.cfg.OutputDir, workbook.OutputName(month))
	if err := workbook.Write(outPath, derived, summary, overview); err != nil {
		p.reporter.Fatal(fmt.Sprintf("Failed to write output workbook: %v", err))
		return err
	}

	if !artifact.Empty() {
		if err := artifact.Write(p.cfg.ArtifactPath(report.ErrorDetailsFile)); err != nil {
			p.log.Error().Err(err).Msg("Failed to write resolution error artifact")
		}
		p.reporter.Recoverable(
			fmt.Sprintf("%d lines failed resolution; output written with degraded trust. See %s.",
				len(artifact.Entries()), report.ErrorDetailsFile),
			report.ErrorDetailsFile)
	}

	if err := feed.ArchiveInputs(p.cfg.InputDir, p.cfg.ArchiveDir); err != nil {
		return fmt.Errorf("archive inputs: %w", err)
	}

	p.log.Info().Str("output", outPath).Msg("Run completed")
	return nil
}
