package refstore

import (
	"github.com/rs/zerolog"

	"qbgen/internal/logger"
	"qbgen/pkg/models"
)

// Merge folds a freshly uploaded customer list into the stored table.
//
// A candidate row is new iff its suffix key is absent from the stored
// set; rows whose key already exists are ignored, so re-uploading a
// list the reference already contains is a no-op. Before the new rows
// are appended, any stored row whose stock lens account number has been
// claimed by a new row under a different suffix is dropped. The
// supplier renumbers accounts over time: an account number is unique at
// any instant, suffix keys are not stable across uploads.
//
// Merge returns the merged table plus a MergeResult naming every added
// and dropped row so callers can surface what the overwrite policy did.
func Merge(existing, candidates []models.CustomerRecord) ([]models.CustomerRecord, models.MergeResult) {
	log := logger.WithComponent("reference-merge")

	known := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		known[keyOf(c)] = struct{}{}
	}

	var result models.MergeResult
	addedKeys := make(map[string]struct{})
	claimedAccounts := make(map[string]struct{})
	for _, cand := range candidates {
		cand.SuffixKey = keyOf(cand)
		if _, exists := known[cand.SuffixKey]; exists {
			continue
		}
		if _, dup := addedKeys[cand.SuffixKey]; dup {
			continue
		}
		addedKeys[cand.SuffixKey] = struct{}{}
		claimedAccounts[cand.StockLensAccount] = struct{}{}
		result.Added = append(result.Added, cand)
	}

	merged := make([]models.CustomerRecord, 0, len(existing)+len(result.Added))
	for _, c := range existing {
		if _, claimed := claimedAccounts[c.StockLensAccount]; claimed {
			result.Dropped = append(result.Dropped, c)
			logDropped(log, c)
			continue
		}
		merged = append(merged, c)
		result.Unchanged++
	}
	merged = append(merged, result.Added...)

	log.Info().
		Int("candidates", len(candidates)).
		Int("added", len(result.Added)).
		Int("dropped", len(result.Dropped)).
		Int("unchanged", result.Unchanged).
		Msg("Customer list merge computed")

	return merged, result
}

func keyOf(c models.CustomerRecord) string {
	if c.SuffixKey != "" {
		return c.SuffixKey
	}
	return SuffixKey(c.StockLensAccount)
}

func logDropped(log zerolog.Logger, c models.CustomerRecord) {
	// The overwrite-by-reassigned-account policy deletes silently from
	// the workbook's point of view, so every drop is called out here.
	log.Warn().
		Str("record_id", c.RecordID).
		Str("stock_lens_account", c.StockLensAccount).
		Str("billing_account", c.BillingAccount).
		Msg("Dropping stored customer: account number reassigned by upload")
}
