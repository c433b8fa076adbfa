// Package refio reads and writes the master reference workbook and the
// periodic customer-list uploads that update it.
package refio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"qbgen/internal/logger"
	"qbgen/pkg/models"
)

// Sheet and column names of the master reference workbook.
const (
	CustomerSheet = "CustomerList"
	PriceSheet    = "PriceSheet"

	colRecordID  = "Record ID"
	colStockLens = "PLN Stock Lens Account Number"
	colBilling   = "Pivotal Account No."
	colDiscount  = "Stock Lens 5% Discount"

	colUPC      = "UPC"
	colRetail   = "Retail"
	colCategory = "Lens"
)

// LoadReference reads both tables of the master reference workbook.
func LoadReference(path string) ([]models.CustomerRecord, []models.PriceEntry, error) {
	const op = "LoadReference"
	log := logger.WithComponent("refio")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %w", op, ErrReferenceUnreadable, err)
	}
	defer f.Close()

	customerRows, err := f.GetRows(CustomerSheet)
	if err != nil {
		return nil, nil, &SheetError{Path: path, Sheet: CustomerSheet, Err: ErrReferenceUnreadable}
	}
	priceRows, err := f.GetRows(PriceSheet)
	if err != nil {
		return nil, nil, &SheetError{Path: path, Sheet: PriceSheet, Err: ErrReferenceUnreadable}
	}

	customers, err := parseCustomerRows(customerRows)
	if err != nil {
		return nil, nil, &SheetError{Path: path, Sheet: CustomerSheet, Err: err}
	}
	prices, err := parsePriceRows(priceRows)
	if err != nil {
		return nil, nil, &SheetError{Path: path, Sheet: PriceSheet, Err: err}
	}

	log.Info().
		Str("path", path).
		Int("customers", len(customers)).
		Int("prices", len(prices)).
		Msg("Master reference loaded")

	return customers, prices, nil
}

// SaveReference rewrites the master reference workbook with the given
// tables. Saving an empty table is refused: a partial load must never
// truncate the stored reference.
func SaveReference(path string, customers []models.CustomerRecord, prices []models.PriceEntry) error {
	const op = "SaveReference"
	log := logger.WithComponent("refio")

	if len(customers) == 0 || len(prices) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyReferenceSave)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", CustomerSheet)
	if _, err := f.NewSheet(PriceSheet); err != nil {
		return fmt.Errorf("%s: create price sheet: %w", op, err)
	}

	header := []interface{}{colRecordID, colStockLens, colBilling, colDiscount}
	if err := f.SetSheetRow(CustomerSheet, "A1", &header); err != nil {
		return fmt.Errorf("%s: write customer header: %w", op, err)
	}
	for i, c := range customers {
		discount := "No"
		if c.DiscountEligible {
			discount = "Yes"
		}
		row := []interface{}{c.RecordID, c.StockLensAccount, c.BillingAccount, discount}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(CustomerSheet, cell, &row); err != nil {
			return fmt.Errorf("%s: write customer row %d: %w", op, i+2, err)
		}
	}

	priceHeader := []interface{}{colUPC, colRetail, colCategory}
	if err := f.SetSheetRow(PriceSheet, "A1", &priceHeader); err != nil {
		return fmt.Errorf("%s: write price header: %w", op, err)
	}
	for i, p := range prices {
		row := []interface{}{p.UPC, nil, p.Category}
		if p.Retail.Valid {
			row[1], _ = p.Retail.Decimal.Float64()
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(PriceSheet, cell, &row); err != nil {
			return fmt.Errorf("%s: write price row %d: %w", op, i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s: save %s: %w", op, path, err)
	}

	log.Info().
		Str("path", path).
		Int("customers", len(customers)).
		Int("prices", len(prices)).
		Msg("Master reference saved")

	return nil
}

// parseCustomerRows maps a header row plus data rows onto customer
// records. Column order in the workbook is not assumed.
func parseCustomerRows(rows [][]string) ([]models.CustomerRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}
	cols := mapHeader(rows[0])
	for _, required := range []string{colStockLens, colBilling} {
		if _, ok := cols[normalizeHeader(required)]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	customers := make([]models.CustomerRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		customers = append(customers, models.CustomerRecord{
			RecordID:         cellAt(row, cols, colRecordID),
			StockLensAccount: cellAt(row, cols, colStockLens),
			BillingAccount:   cellAt(row, cols, colBilling),
			DiscountEligible: strings.EqualFold(cellAt(row, cols, colDiscount), "Yes"),
		})
	}
	return customers, nil
}

// parsePriceRows maps the price sheet onto price entries. A blank
// retail cell loads as a null price so the sanity checks can flag it.
func parsePriceRows(rows [][]string) ([]models.PriceEntry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}
	cols := mapHeader(rows[0])
	for _, required := range []string{colUPC, colRetail} {
		if _, ok := cols[normalizeHeader(required)]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	prices := make([]models.PriceEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		entry := models.PriceEntry{
			UPC:      cellAt(row, cols, colUPC),
			Category: cellAt(row, cols, colCategory),
		}
		if raw := cellAt(row, cols, colRetail); raw != "" {
			retail, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid retail price %q", i+2, raw)
			}
			entry.Retail = decimal.NewNullDecimal(retail)
		}
		prices = append(prices, entry)
	}
	return prices, nil
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for idx, name := range header {
		key := normalizeHeader(name)
		if key == "" {
			continue
		}
		if _, exists := cols[key]; !exists {
			cols[key] = idx
		}
	}
	return cols
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func cellAt(row []string, cols map[string]int, column string) string {
	idx, ok := cols[normalizeHeader(column)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
