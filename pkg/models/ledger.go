package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fixed cell values QuickBooks expects on every import row.
const (
	DueDateNet15 = "Net 15"

	ItemLensStock     = "SOMO Stock"
	ItemShipping      = "Shipping"
	ItemStockDiscount = "Stock Discount"
	ItemReturnCredit  = "Rtn Credit"

	DiscountDescription = "5% Legacy Discount"
)

// InvoiceLine is one row of the raw supplier feed. Lines are immutable
// input for a single run; derivation filters and copies them, never
// mutates them.
type InvoiceLine struct {
	DropShipNo  string          // supplier-issued per-shipment customer id ("0" = house line)
	PONo        string          // purchase order number
	OrderID     string          // supplier order id (e.g. "S123456")
	ShipDate    string          // passed through to the workbook as supplied
	ItemName    string
	ShipQty     int64           // signed - negative denotes a return
	UnitPrice   decimal.Decimal // supplier unit price
	ShipAmount  decimal.Decimal // supplier line amount
	Barcode     string          // UPC, joins to the price sheet
	ShipVia     string          // carrier
	Freight     decimal.Decimal
	Tax         decimal.Decimal
	TotalAmount decimal.Decimal
}

// IsHouseLine reports whether the line is the supplier-side adjustment
// sentinel rather than a billable customer.
func (l InvoiceLine) IsHouseLine() bool {
	return l.DropShipNo == "0"
}

// LensRow is one resolved, repriced row of the Lens Import ledger.
type LensRow struct {
	Dropship       string // resolved stock lens account number
	PivotalAccount string // resolved billing account
	DropShipNo     string
	OrderID        string
	ShipDate       string
	Item           string // ItemLensStock, relabeled ItemReturnCredit on extraction
	ItemName       string
	ShipQty        int64
	UnitPrice      decimal.Decimal
	ShipAmount     decimal.Decimal
	NewUnitPrice   decimal.Decimal // recomputed retail unit price, 2dp
	NewShipAmount  decimal.Decimal // ShipQty x NewUnitPrice, 2dp
	UPC            string          // zero-padded to 10 for display
	Category       string
}

// ReturnCreditRow is a lens row extracted for negative quantity, with
// the sign-inverted columns the credits sheet reports.
type ReturnCreditRow struct {
	LensRow
	PositiveShipQty       int64
	PositiveNewShipAmount decimal.Decimal
}

// ShippingRow is one row of the Shipping Import ledger. Only lines with
// nonzero freight appear.
type ShippingRow struct {
	PivotalAccount string
	Dropship       string
	OrderID        string
	ShipDate       string
	ShipVia        string
	Freight        decimal.Decimal
}

// DiscountRow is one per-customer row of the Discount Import ledger.
type DiscountRow struct {
	PivotalAccount string
	InvoiceNumber  string    // D + MMYY + last day of month + 4-digit sequence
	InvoiceDate    time.Time // last day of the invoice month
	ShipAmount     decimal.Decimal
	NewShipAmount  decimal.Decimal
	Discount       decimal.Decimal // 5% of NewShipAmount, 2dp
	TotalOwed      decimal.Decimal // NewShipAmount - Discount
}

// TaxRow mirrors the lens ledger identity columns with the tax amount
// as the reported value.
type TaxRow struct {
	Dropship       string
	PivotalAccount string
	DropShipNo     string
	OrderID        string
	ShipDate       string
	NewShipAmount  decimal.Decimal // the line's tax, 2dp
}

// SummaryRow is one customer of the Summary Details sheet. Known
// customers with no activity this period appear with Purchased false
// and only the account columns populated.
type SummaryRow struct {
	PivotalAccount string
	DropShipNo     string
	Purchased      bool
	Freight        decimal.Decimal
	ShipAmount     decimal.Decimal
	NewShipAmount  decimal.Decimal
	Discount       decimal.Decimal
	TotalCharged   decimal.Decimal // Freight + NewShipAmount - Discount, 2dp
}

// OverviewRow is one labeled line of the Summary Overview sheet. Blank
// rows are visual separators carrying neither label nor value.
type OverviewRow struct {
	Label string
	Value decimal.Decimal
	Blank bool
}
