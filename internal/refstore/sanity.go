package refstore

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"qbgen/internal/logger"
	"qbgen/internal/report"
	"qbgen/pkg/models"
)

const customerListLocation = "CustomerList, MasterReference"

// Validator runs the fixed battery of integrity checks over a loaded
// store before any derivation proceeds. Every failing check appends a
// description of the problem and the offending values to the artifact;
// the pipeline treats a failed run as a hard gate, not a per-row skip.
type Validator struct {
	store    *Store
	artifact *report.Artifact
	log      zerolog.Logger
}

// NewValidator creates a validator writing failures into the given
// artifact.
func NewValidator(store *Store, artifact *report.Artifact) *Validator {
	return &Validator{
		store:    store,
		artifact: artifact,
		log:      logger.WithComponent("sanity"),
	}
}

// Run executes all checks independently and reports true only if every
// one of them passed.
func (v *Validator) Run() bool {
	checks := []bool{
		v.checkDuplicates("PLN Stock Lens Account Number", func(c models.CustomerRecord) string { return c.StockLensAccount }),
		v.checkDuplicates("Pivotal Account No.", func(c models.CustomerRecord) string { return c.BillingAccount }),
		v.checkMissing("PLN Stock Lens Account Number", func(c models.CustomerRecord) string { return c.StockLensAccount }),
		v.checkMissing("Pivotal Account No.", func(c models.CustomerRecord) string { return c.BillingAccount }),
		v.checkPricesPresent(),
	}

	for _, passed := range checks {
		if !passed {
			v.log.Error().Int("failures", len(v.artifact.Entries())).Msg("Master reference failed sanity checks")
			return false
		}
	}
	v.log.Info().
		Int("customers", len(v.store.Customers())).
		Int("prices", len(v.store.Prices())).
		Msg("Master reference passed sanity checks")
	return true
}

// checkDuplicates verifies a customer column holds unique values and
// records which values repeat when it does not.
func (v *Validator) checkDuplicates(column string, value func(models.CustomerRecord) string) bool {
	seen := make(map[string]int)
	for _, c := range v.store.Customers() {
		seen[value(c)]++
	}

	var duplicates []string
	for val, n := range seen {
		if n > 1 {
			duplicates = append(duplicates, val)
		}
	}
	if len(duplicates) == 0 {
		return true
	}
	sort.Strings(duplicates)

	v.artifact.Appendf(customerListLocation, "Duplicate Values in %s", column)
	v.artifact.Appendf(strings.Join(duplicates, " "), "--->%s duplicates are:", column)
	return false
}

// checkMissing verifies a customer column has no blank cells.
func (v *Validator) checkMissing(column string, value func(models.CustomerRecord) string) bool {
	for _, c := range v.store.Customers() {
		if strings.TrimSpace(value(c)) == "" {
			v.artifact.Appendf(customerListLocation, "Missing Values in %s", column)
			return false
		}
	}
	return true
}

// checkPricesPresent verifies the price table carries a retail price
// for every product code.
func (v *Validator) checkPricesPresent() bool {
	for _, p := range v.store.Prices() {
		if !p.Retail.Valid {
			v.artifact.Append("Missing Values", "PriceSheet, MasterReference")
			return false
		}
	}
	return true
}
