// Package ledger is the derivation core: it consumes the raw invoice
// feed plus the reference store and produces the lens-charge ledger,
// then layers the shipping, return-credit, discount and tax ledgers on
// top, and finally folds everything into the per-customer summary and
// the financial overview.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"qbgen/internal/logger"
	"qbgen/internal/refstore"
	"qbgen/internal/report"
	"qbgen/pkg/models"
)

// HouseSentinel is the reserved drop-ship id denoting a supplier-side
// adjustment line rather than a billable customer.
const HouseSentinel = "0"

var pctDiscount = decimal.NewFromFloat(0.05)

// Derived carries every ledger produced by one run.
type Derived struct {
	Lens     []models.LensRow
	Returns  []models.ReturnCreditRow
	Shipping []models.ShippingRow
	Discount []models.DiscountRow
	Taxes    []models.TaxRow

	// HouseDiscountTotal is the summed line total of the extracted
	// house sentinel rows.
	HouseDiscountTotal decimal.Decimal

	// ReturnCreditTotal is the summed (negative) retail amount of the
	// extracted return rows, kept signed for the overview math.
	ReturnCreditTotal decimal.Decimal

	// Month is the invoice month the ledgers cover.
	Month time.Time

	// Degraded reports whether any line failed resolution; the output
	// is still complete but flagged as reduced-trust in the side log.
	Degraded bool
}

// joinedLine is a lens row still carrying the feed fields the shipping
// and tax projections need.
type joinedLine struct {
	models.LensRow
	ShipVia string
	Freight decimal.Decimal
	Tax     decimal.Decimal
}

// Deriver runs the dependent derivation stages in order over one
// filtered invoice set.
type Deriver struct {
	store    *refstore.Store
	artifact *report.Artifact
	month    time.Time
	seq      int
	log      zerolog.Logger
}

// NewDeriver creates a deriver for the given invoice month. Resolution
// failures are appended to the artifact; they never abort the run.
func NewDeriver(store *refstore.Store, artifact *report.Artifact, month time.Time) *Deriver {
	return &Deriver{
		store:    store,
		artifact: artifact,
		month:    month,
		seq:      1,
		log:      logger.WithComponent("deriver"),
	}
}

// Run executes the full stage sequence and returns the derived ledgers.
func (d *Deriver) Run(lines []models.InvoiceLine) *Derived {
	out := &Derived{Month: d.month}

	working := d.extractHouseLines(lines, out)
	working = d.dropMissingDropShip(working)

	joined := d.buildLensLedger(working, out)

	out.Shipping = buildShippingLedger(joined)

	lens, returns := extractReturns(joined)
	out.Lens = lens
	out.Returns = returns
	for _, r := range returns {
		out.ReturnCreditTotal = out.ReturnCreditTotal.Add(r.NewShipAmount)
	}

	out.Discount = d.buildDiscountLedger(lens)
	out.Taxes = buildTaxLedger(joined)

	d.log.Info().
		Int("lens_rows", len(out.Lens)).
		Int("return_rows", len(out.Returns)).
		Int("shipping_rows", len(out.Shipping)).
		Int("discount_rows", len(out.Discount)).
		Int("tax_rows", len(out.Taxes)).
		Bool("degraded", out.Degraded).
		Msg("Derivation completed")

	return out
}

// extractHouseLines removes the supplier-side adjustment rows from the
// working set and records their total as the house discount.
func (d *Deriver) extractHouseLines(lines []models.InvoiceLine, out *Derived) []models.InvoiceLine {
	kept := make([]models.InvoiceLine, 0, len(lines))
	for _, line := range lines {
		if line.IsHouseLine() {
			out.HouseDiscountTotal = out.HouseDiscountTotal.Add(line.TotalAmount)
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// dropMissingDropShip excludes rows that arrived without a drop-ship
// id. They cannot be billed to anyone; the affected PO numbers are
// reported once.
func (d *Deriver) dropMissingDropShip(lines []models.InvoiceLine) []models.InvoiceLine {
	var missing []string
	kept := make([]models.InvoiceLine, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line.DropShipNo) == "" {
			missing = append(missing, line.PONo)
			continue
		}
		kept = append(kept, line)
	}
	if len(missing) > 0 {
		d.artifact.Appendf("Raw invoice feed", "Missing values PONo %s", strings.Join(missing, ", "))
		d.log.Warn().Strs("po_numbers", missing).Msg("Lines without DropShipNo excluded")
	}
	return kept
}

// buildLensLedger joins every remaining invoice line against the
// reference store. A line whose customer or barcode cannot be resolved
// is recorded and skipped; derivation is best-effort by design.
func (d *Deriver) buildLensLedger(lines []models.InvoiceLine, out *Derived) []joinedLine {
	joined := make([]joinedLine, 0, len(lines))
	for _, line := range lines {
		customer, err := d.store.LookupCustomer(line.DropShipNo)
		if err != nil {
			d.recordResolutionFailure(out,
				fmt.Sprintf("Customer number (DropShipNo) %s not found in Customer list", line.DropShipNo),
				"MasterReference, CustomerList")
			continue
		}
		retail, category, err := d.store.LookupPrice(line.Barcode)
		if err != nil {
			d.recordResolutionFailure(out,
				fmt.Sprintf("Barcode %s not found in Price Sheet", line.Barcode),
				"MasterReference, PriceSheet")
			continue
		}

		newUnit := retail.Round(2)
		row := models.LensRow{
			Dropship:       customer.StockLensAccount,
			PivotalAccount: customer.BillingAccount,
			DropShipNo:     line.DropShipNo,
			OrderID:        line.OrderID,
			ShipDate:       line.ShipDate,
			Item:           models.ItemLensStock,
			ItemName:       line.ItemName,
			ShipQty:        line.ShipQty,
			UnitPrice:      line.UnitPrice,
			ShipAmount:     line.ShipAmount,
			NewUnitPrice:   newUnit,
			NewShipAmount:  newUnit.Mul(decimal.NewFromInt(line.ShipQty)).Round(2),
			UPC:            padUPC(line.Barcode),
			Category:       category,
		}
		joined = append(joined, joinedLine{
			LensRow: row,
			ShipVia: line.ShipVia,
			Freight: line.Freight,
			Tax:     line.Tax,
		})
	}
	return joined
}

func (d *Deriver) recordResolutionFailure(out *Derived, description, location string) {
	out.Degraded = true
	d.artifact.Append(description, location)
	d.log.Warn().Str("location", location).Msg(description)
}

// buildShippingLedger projects the freight columns from the joined
// rows. Lines with zero freight carry no shipping charge and do not
// appear.
func buildShippingLedger(joined []joinedLine) []models.ShippingRow {
	var rows []models.ShippingRow
	for _, j := range joined {
		if j.Freight.IsZero() {
			continue
		}
		rows = append(rows, models.ShippingRow{
			PivotalAccount: j.PivotalAccount,
			Dropship:       j.Dropship,
			OrderID:        j.OrderID,
			ShipDate:       j.ShipDate,
			ShipVia:        j.ShipVia,
			Freight:        j.Freight.Round(2),
		})
	}
	return rows
}

// extractReturns partitions the lens ledger on quantity sign. Negative
// rows move to the return-credit ledger relabeled and sign-inverted;
// everything downstream of this point sees only the return-free lens
// ledger.
func extractReturns(joined []joinedLine) ([]models.LensRow, []models.ReturnCreditRow) {
	lens := make([]models.LensRow, 0, len(joined))
	var returns []models.ReturnCreditRow
	for _, j := range joined {
		if j.ShipQty < 0 {
			row := j.LensRow
			row.Item = models.ItemReturnCredit
			returns = append(returns, models.ReturnCreditRow{
				LensRow:               row,
				PositiveShipQty:       -row.ShipQty,
				PositiveNewShipAmount: row.NewShipAmount.Neg(),
			})
			continue
		}
		lens = append(lens, j.LensRow)
	}
	return lens, returns
}

// buildDiscountLedger emits one row per discount-eligible customer with
// lens activity this period, in first-appearance order.
func (d *Deriver) buildDiscountLedger(lens []models.LensRow) []models.DiscountRow {
	type totals struct {
		supplier decimal.Decimal
		retail   decimal.Decimal
	}
	order := make([]string, 0)
	byCustomer := make(map[string]*totals)
	accountFor := make(map[string]string)
	for _, row := range lens {
		key := refstore.SuffixKey(row.DropShipNo)
		t, seen := byCustomer[key]
		if !seen {
			t = &totals{}
			byCustomer[key] = t
			accountFor[key] = row.PivotalAccount
			order = append(order, key)
		}
		t.supplier = t.supplier.Add(row.ShipAmount)
		t.retail = t.retail.Add(row.NewShipAmount)
	}

	invoiceDate := lastOfMonth(d.month)
	var rows []models.DiscountRow
	for _, key := range order {
		customer, err := d.store.LookupCustomer(key)
		if err != nil || !customer.DiscountEligible {
			continue
		}
		t := byCustomer[key]
		discount := t.retail.Mul(pctDiscount).Round(2)
		rows = append(rows, models.DiscountRow{
			PivotalAccount: accountFor[key],
			InvoiceNumber:  d.nextInvoiceNumber(),
			InvoiceDate:    invoiceDate,
			ShipAmount:     t.supplier,
			NewShipAmount:  t.retail,
			Discount:       discount,
			TotalOwed:      t.retail.Sub(discount).Round(2),
		})
	}
	return rows
}

// buildTaxLedger projects every joined row carrying tax, returns
// included, with the tax amount as the reported value.
func buildTaxLedger(joined []joinedLine) []models.TaxRow {
	var rows []models.TaxRow
	for _, j := range joined {
		if j.Tax.IsZero() {
			continue
		}
		rows = append(rows, models.TaxRow{
			Dropship:       j.Dropship,
			PivotalAccount: j.PivotalAccount,
			DropShipNo:     j.DropShipNo,
			OrderID:        j.OrderID,
			ShipDate:       j.ShipDate,
			NewShipAmount:  j.Tax.Round(2),
		})
	}
	return rows
}

// nextInvoiceNumber generates a run-unique discount invoice number:
// "D" + 2-digit month + 2-digit year + last day of the month + 4-digit
// sequence. The day field is written as-is, so number width varies
// across months; the accounting side depends on that format.
func (d *Deriver) nextInvoiceNumber() string {
	n := fmt.Sprintf("D%02d%02d%d%04d",
		int(d.month.Month()),
		d.month.Year()%100,
		lastOfMonth(d.month).Day(),
		d.seq)
	d.seq++
	return n
}

func lastOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// padUPC zero-pads a barcode to 10 characters for display.
func padUPC(upc string) string {
	if len(upc) >= 10 {
		return upc
	}
	return strings.Repeat("0", 10-len(upc)) + upc
}
