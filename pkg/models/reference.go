package models

import "github.com/shopspring/decimal"

// CustomerRecord is one row of the CustomerList sheet in the master
// reference workbook. SuffixKey is derived from the stock lens account
// number at load time and is never written back to the workbook.
type CustomerRecord struct {
	RecordID         string // Record ID - carried through from customer-list uploads
	StockLensAccount string // PLN Stock Lens Account Number (e.g. "H00241-00123")
	BillingAccount   string // Pivotal Account No. - external accounting system account
	DiscountEligible bool   // Stock Lens 5% Discount == "Yes"
	SuffixKey        string // normalized trailing digits, the supplier join key
}

// PriceEntry is one row of the PriceSheet sheet in the master reference
// workbook. Retail stays nullable so a blank price cell survives the
// load and gets caught by the sanity checks instead of silently
// becoming zero.
type PriceEntry struct {
	UPC      string              // product barcode
	Retail   decimal.NullDecimal // retail unit price
	Category string              // Lens column - product category label
}

// MergeResult describes the outcome of folding a customer-list upload
// into the stored customer table.
type MergeResult struct {
	// Added holds the candidate rows whose suffix key was not present
	// in the stored table.
	Added []CustomerRecord

	// Dropped holds previously stored rows removed because a new row
	// claimed their stock lens account number under a different suffix.
	Dropped []CustomerRecord

	// Unchanged is the number of stored rows carried over as-is.
	Unchanged int
}

// Changed reports whether the merge altered the stored table at all.
func (r MergeResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Dropped) > 0
}
