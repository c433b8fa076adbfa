package ledger

import (
	"github.com/shopspring/decimal"

	"qbgen/internal/logger"
	"qbgen/internal/refstore"
	"qbgen/pkg/models"
)

// Overview row labels, in sheet order. Empty strings are the blank
// separator rows.
var overviewLabels = []string{
	"Retail Lens Invoiced",
	"Shipping Costs",
	"Retail 5% Discount",
	"Total Invoiced",
	"", "", "",
	"Pivotal Invoiced",
	"SOMO Disc",
	"Shipping Costs",
	"Tax",
	"Total Pivotal Cost",
	"Total Return Credits",
	"", "", "",
	"Net Profit",
}

// Aggregate folds the derived ledgers into the per-customer summary and
// the global overview. The overview totals are computed from the
// summary rows themselves, so the two sheets reconcile by construction
// and a detail-sheet mismatch shows up as a summary mismatch.
func Aggregate(store *refstore.Store, derived *Derived) ([]models.SummaryRow, []models.OverviewRow) {
	log := logger.WithComponent("summary")

	summary := buildSummary(store, derived)
	overview := buildOverview(summary, derived)

	log.Info().
		Int("summary_rows", len(summary)).
		Int("overview_rows", len(overview)).
		Msg("Summary aggregation completed")

	return summary, overview
}

// buildSummary emits one row per purchasing customer in
// first-appearance order, then one roster row per known customer with
// no activity this period.
func buildSummary(store *refstore.Store, derived *Derived) []models.SummaryRow {
	freightByAccount := make(map[string]decimal.Decimal)
	for _, s := range derived.Shipping {
		freightByAccount[s.PivotalAccount] = freightByAccount[s.PivotalAccount].Add(s.Freight)
	}
	supplierByAccount := make(map[string]decimal.Decimal)
	retailByAccount := make(map[string]decimal.Decimal)
	for _, l := range derived.Lens {
		supplierByAccount[l.PivotalAccount] = supplierByAccount[l.PivotalAccount].Add(l.ShipAmount)
		retailByAccount[l.PivotalAccount] = retailByAccount[l.PivotalAccount].Add(l.NewShipAmount)
	}
	discountByAccount := make(map[string]decimal.Decimal)
	for _, d := range derived.Discount {
		discountByAccount[d.PivotalAccount] = discountByAccount[d.PivotalAccount].Add(d.Discount)
	}

	purchased := make(map[string]struct{})
	var rows []models.SummaryRow
	for _, l := range derived.Lens {
		key := refstore.SuffixKey(l.DropShipNo)
		if _, seen := purchased[key]; seen {
			continue
		}
		purchased[key] = struct{}{}

		freight := freightByAccount[l.PivotalAccount]
		retail := retailByAccount[l.PivotalAccount]
		discount := discountByAccount[l.PivotalAccount]
		rows = append(rows, models.SummaryRow{
			PivotalAccount: l.PivotalAccount,
			DropShipNo:     l.DropShipNo,
			Purchased:      true,
			Freight:        freight,
			ShipAmount:     supplierByAccount[l.PivotalAccount],
			NewShipAmount:  retail,
			Discount:       discount,
			TotalCharged:   freight.Add(retail).Sub(discount).Round(2),
		})
	}

	// The roster tail makes the sheet a complete customer list, not
	// just an activity report.
	for _, c := range store.Customers() {
		if _, seen := purchased[c.SuffixKey]; seen {
			continue
		}
		rows = append(rows, models.SummaryRow{
			PivotalAccount: c.BillingAccount,
			DropShipNo:     c.SuffixKey,
		})
	}
	return rows
}

// buildOverview computes the fixed seventeen-row financial overview.
func buildOverview(summary []models.SummaryRow, derived *Derived) []models.OverviewRow {
	var retail, freight, discount, supplier decimal.Decimal
	for _, s := range summary {
		retail = retail.Add(s.NewShipAmount)
		freight = freight.Add(s.Freight)
		discount = discount.Add(s.Discount)
		supplier = supplier.Add(s.ShipAmount)
	}
	var tax decimal.Decimal
	for _, t := range derived.Taxes {
		tax = tax.Add(t.NewShipAmount)
	}

	totalInvoiced := retail.Add(freight).Sub(discount)
	totalPivotalCost := supplier.Add(derived.HouseDiscountTotal).Add(freight).Add(tax)
	// Return credits contribute negatively: ReturnCreditTotal carries
	// the original negative retail amounts.
	netProfit := totalInvoiced.Sub(totalPivotalCost).Add(derived.ReturnCreditTotal)

	values := []decimal.Decimal{
		retail,
		freight,
		discount,
		totalInvoiced,
		{}, {}, {},
		supplier,
		derived.HouseDiscountTotal,
		freight,
		tax,
		totalPivotalCost,
		derived.ReturnCreditTotal.Neg(),
		{}, {}, {},
		netProfit,
	}

	rows := make([]models.OverviewRow, len(overviewLabels))
	for i, label := range overviewLabels {
		rows[i] = models.OverviewRow{
			Label: label,
			Value: values[i],
			Blank: label == "",
		}
	}
	return rows
}
