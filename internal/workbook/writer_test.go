package workbook_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"qbgen/internal/ledger"
	"qbgen/internal/workbook"
	"qbgen/pkg/models"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleDerived() *ledger.Derived {
	lens := models.LensRow{
		Dropship:       "H00241-00123",
		PivotalAccount: "00123A",
		DropShipNo:     "00123",
		OrderID:        "S100001",
		ShipDate:       "07/15/2025",
		Item:           models.ItemLensStock,
		ItemName:       "CR39 SV",
		ShipQty:        3,
		UnitPrice:      money("5.00"),
		ShipAmount:     money("15.00"),
		NewUnitPrice:   money("9.99"),
		NewShipAmount:  money("29.97"),
		UPC:            "1234567890",
		Category:       "Single Vision",
	}
	returned := lens
	returned.Item = models.ItemReturnCredit
	returned.ShipQty = -1
	returned.NewShipAmount = money("-9.99")

	return &ledger.Derived{
		Lens: []models.LensRow{lens},
		Returns: []models.ReturnCreditRow{{
			LensRow:               returned,
			PositiveShipQty:       1,
			PositiveNewShipAmount: money("9.99"),
		}},
		Shipping: []models.ShippingRow{{
			PivotalAccount: "00123A",
			Dropship:       "H00241-00123",
			OrderID:        "S100001",
			ShipDate:       "07/15/2025",
			ShipVia:        "UPS Ground",
			Freight:        money("4.50"),
		}},
		Discount: []models.DiscountRow{{
			PivotalAccount: "00123A",
			InvoiceNumber:  "D0725310001",
			InvoiceDate:    time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC),
			ShipAmount:     money("15.00"),
			NewShipAmount:  money("29.97"),
			Discount:       money("1.50"),
			TotalOwed:      money("28.47"),
		}},
		Taxes: []models.TaxRow{{
			Dropship:       "H00241-00123",
			PivotalAccount: "00123A",
			DropShipNo:     "00123",
			OrderID:        "S100001",
			ShipDate:       "07/15/2025",
			NewShipAmount:  money("1.23"),
		}},
		Month: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "Invoice Import 1 (Jul 2025).xlsx",
		workbook.OutputName(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Invoice Import 1 (Feb 2024).xlsx",
		workbook.OutputName(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)))
}

func TestWriteEmitsAllSheets(t *testing.T) {
	derived := sampleDerived()
	summary := []models.SummaryRow{
		{PivotalAccount: "00123A", DropShipNo: "00123", Purchased: true,
			Freight: money("4.50"), ShipAmount: money("15.00"),
			NewShipAmount: money("29.97"), Discount: money("1.50"), TotalCharged: money("32.97")},
		{PivotalAccount: "00456A", DropShipNo: "456"},
	}
	overview := []models.OverviewRow{
		{Label: "Retail Lens Invoiced", Value: money("29.97")},
		{Blank: true},
		{Label: "Net Profit", Value: money("10.00")},
	}

	path := filepath.Join(t.TempDir(), workbook.OutputName(derived.Month))
	require.NoError(t, workbook.Write(path, derived, summary, overview))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Lens Import",
		workbook.TaxSheet,
		workbook.ShippingSheet,
		workbook.DiscountSheet,
		workbook.ReturnsSheet,
		workbook.SummarySheet,
		workbook.OverviewSheet,
	}, f.GetSheetList())

	rows, err := f.GetRows("Lens Import")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Due Date", rows[0][0])
	assert.Equal(t, models.DueDateNet15, rows[1][0])
	assert.Equal(t, "H00241-00123", rows[1][3])
	assert.Equal(t, "29.97", rows[1][14])

	discount, err := f.GetRows(workbook.DiscountSheet)
	require.NoError(t, err)
	require.Len(t, discount, 2)
	assert.Equal(t, "D0725310001", discount[1][5])
	assert.Equal(t, models.DiscountDescription, discount[1][6])
	assert.Equal(t, "2025-07-31", discount[1][7])

	returns, err := f.GetRows(workbook.ReturnsSheet)
	require.NoError(t, err)
	require.Len(t, returns, 2)
	assert.Equal(t, models.ItemReturnCredit, returns[1][8])
	assert.Equal(t, "9.99", returns[1][18])
}

func TestWriteSummaryLeavesRosterRowsBlank(t *testing.T) {
	derived := sampleDerived()
	summary := []models.SummaryRow{
		{PivotalAccount: "00123A", DropShipNo: "00123", Purchased: true, TotalCharged: money("29.97")},
		{PivotalAccount: "00456A", DropShipNo: "456"},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, workbook.Write(path, derived, summary, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Roster rows carry only the two account columns.
	cell, err := f.GetCellValue(workbook.SummarySheet, "C3")
	require.NoError(t, err)
	assert.Empty(t, cell)
	cell, err = f.GetCellValue(workbook.SummarySheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "00456A", cell)
}

func TestWritePartitionsLargeLensLedger(t *testing.T) {
	derived := sampleDerived()
	derived.Lens = make([]models.LensRow, ledger.MaxLensRowsPerSheet+1)
	for i := range derived.Lens {
		derived.Lens[i].Item = models.ItemLensStock
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, workbook.Write(path, derived, nil, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Lens Import 1")
	assert.Contains(t, sheets, "Lens Import 2")
	assert.NotContains(t, sheets, "Lens Import")
}
