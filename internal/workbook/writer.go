// Package workbook assembles the final multi-sheet billing workbook
// for import into the accounting system.
package workbook

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"qbgen/internal/ledger"
	"qbgen/internal/logger"
	"qbgen/pkg/models"
)

// Sheet names of the single-sheet ledgers, in emission order after the
// lens chunks.
const (
	TaxSheet      = "Taxes"
	ShippingSheet = "Shipping Import"
	DiscountSheet = "Discount Import"
	ReturnsSheet  = "Lens Returns Credits"
	SummarySheet  = "Summary Details"
	OverviewSheet = "Summary Overview"
)

// OutputName builds the workbook filename for an invoice month, in the
// format "Invoice Import 1 (Mon YYYY).xlsx".
func OutputName(month time.Time) string {
	return fmt.Sprintf("Invoice Import 1 (%s).xlsx", month.Format("Jan 2006"))
}

// Write emits the complete sheet set to the given path: the partitioned
// lens ledger first, then taxes, shipping, discounts, return credits,
// summary details and the overview.
func Write(path string, derived *ledger.Derived, summary []models.SummaryRow, overview []models.OverviewRow) error {
	const op = "Write"
	log := logger.WithComponent("workbook")

	f := excelize.NewFile()
	defer f.Close()

	chunks := ledger.PartitionLens(derived.Lens)
	for i, chunk := range chunks {
		if i == 0 {
			f.SetSheetName("Sheet1", chunk.Name)
		} else if _, err := f.NewSheet(chunk.Name); err != nil {
			return fmt.Errorf("%s: create sheet %q: %w", op, chunk.Name, err)
		}
		if err := writeLensSheet(f, chunk.Name, chunk.Rows); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	for _, sheet := range []struct {
		name  string
		write func(*excelize.File, string) error
	}{
		{TaxSheet, func(f *excelize.File, name string) error { return writeTaxSheet(f, name, derived.Taxes) }},
		{ShippingSheet, func(f *excelize.File, name string) error { return writeShippingSheet(f, name, derived.Shipping) }},
		{DiscountSheet, func(f *excelize.File, name string) error { return writeDiscountSheet(f, name, derived.Discount) }},
		{ReturnsSheet, func(f *excelize.File, name string) error { return writeReturnsSheet(f, name, derived.Returns) }},
		{SummarySheet, func(f *excelize.File, name string) error { return writeSummarySheet(f, name, summary) }},
		{OverviewSheet, func(f *excelize.File, name string) error { return writeOverviewSheet(f, name, overview) }},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("%s: create sheet %q: %w", op, sheet.name, err)
		}
		if err := sheet.write(f, sheet.name); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s: save %s: %w", op, path, err)
	}

	log.Info().
		Str("path", path).
		Int("lens_sheets", len(chunks)).
		Msg("Output workbook written")

	return nil
}

func writeLensSheet(f *excelize.File, sheet string, rows []models.LensRow) error {
	header := []interface{}{
		"Due Date", "To Be emailed", "Print Later", "Dropship", "Pivotal Account",
		"DropShipNo", "OrderID", "ShipDate", "Item", "ItemName", "ShipQty",
		"UnitPrice", "ShipAmount", "NewUnit$", "NewShipAmount", "UPC", "Category",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, lensCells(r)); err != nil {
			return err
		}
	}
	return nil
}

func writeReturnsSheet(f *excelize.File, sheet string, rows []models.ReturnCreditRow) error {
	header := []interface{}{
		"Due Date", "To Be emailed", "Print Later", "Dropship", "Pivotal Account",
		"DropShipNo", "OrderID", "ShipDate", "Item", "ItemName", "ShipQty",
		"UnitPrice", "ShipAmount", "NewUnit$", "NewShipAmount", "UPC", "Category",
		"Positive ShipQ", "Positive New Ship Amount",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		cells := append(lensCells(r.LensRow), r.PositiveShipQty, money(r.PositiveNewShipAmount))
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func lensCells(r models.LensRow) []interface{} {
	return []interface{}{
		models.DueDateNet15, false, false, r.Dropship, r.PivotalAccount,
		r.DropShipNo, r.OrderID, r.ShipDate, r.Item, r.ItemName, r.ShipQty,
		money(r.UnitPrice), money(r.ShipAmount), money(r.NewUnitPrice),
		money(r.NewShipAmount), r.UPC, r.Category,
	}
}

func writeShippingSheet(f *excelize.File, sheet string, rows []models.ShippingRow) error {
	header := []interface{}{
		"Pivotal Account", "Due Date", "To Be emailed", "Print Later", "Dropship",
		"OrderID", "ShipDate", "Item", "ShipVia", "Freight",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		cells := []interface{}{
			r.PivotalAccount, models.DueDateNet15, false, false, r.Dropship,
			r.OrderID, r.ShipDate, models.ItemShipping, r.ShipVia, money(r.Freight),
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeDiscountSheet(f *excelize.File, sheet string, rows []models.DiscountRow) error {
	header := []interface{}{
		"Pivotal Account No.", "Due Date", "To Be emailed", "Print Later", "Item",
		"Invoice #", "Description", "Invoice Date", "ShipAmount", "NewShipAmount",
		"Discount", "Total Amount Owed",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		cells := []interface{}{
			r.PivotalAccount, models.DueDateNet15, false, false, models.ItemStockDiscount,
			r.InvoiceNumber, models.DiscountDescription, r.InvoiceDate.Format("2006-01-02"),
			money(r.ShipAmount), money(r.NewShipAmount), money(r.Discount), money(r.TotalOwed),
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeTaxSheet(f *excelize.File, sheet string, rows []models.TaxRow) error {
	header := []interface{}{
		"Due Date", "To Be emailed", "Print Later", "Dropship", "Pivotal Account",
		"DropShipNo", "OrderID", "ShipDate", "Item", "ItemName", "NewShipAmount",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		cells := []interface{}{
			models.DueDateNet15, false, false, r.Dropship, r.PivotalAccount,
			r.DropShipNo, r.OrderID, r.ShipDate, models.ItemLensStock, "Tax",
			money(r.NewShipAmount),
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, rows []models.SummaryRow) error {
	header := []interface{}{
		"Pivotal #", "DropShipNo", "Freight", "ShipAmount", "NewShipAmount",
		"Discount", "Total Charged",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		cells := []interface{}{r.PivotalAccount, r.DropShipNo, nil, nil, nil, nil, nil}
		if r.Purchased {
			cells[2] = money(r.Freight)
			cells[3] = money(r.ShipAmount)
			cells[4] = money(r.NewShipAmount)
			cells[5] = money(r.Discount)
			cells[6] = money(r.TotalCharged)
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeOverviewSheet(f *excelize.File, sheet string, rows []models.OverviewRow) error {
	if err := setRow(f, sheet, 1, []interface{}{"Description", "Value"}); err != nil {
		return err
	}
	for i, r := range rows {
		cells := []interface{}{r.Label, nil}
		if !r.Blank {
			cells[1] = money(r.Value)
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
