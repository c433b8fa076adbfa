package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbgen/internal/ledger"
	"qbgen/internal/report"
	"qbgen/pkg/models"
)

func aggregate(t *testing.T, lines []models.InvoiceLine) ([]models.SummaryRow, []models.OverviewRow, *ledger.Derived) {
	t.Helper()
	store := testStore()
	d := ledger.NewDeriver(store, report.NewArtifact(), july)
	derived := d.Run(lines)
	summary, overview := ledger.Aggregate(store, derived)
	return summary, overview, derived
}

func overviewValue(t *testing.T, overview []models.OverviewRow, index int, label string) decimal.Decimal {
	t.Helper()
	require.Greater(t, len(overview), index)
	require.Equal(t, label, overview[index].Label)
	return overview[index].Value
}

func TestSummaryPerCustomerTotals(t *testing.T) {
	withFreight := lensLine("00123", "2234567890", 2) // 100.00 retail
	withFreight.Freight = money("4.50")
	summary, _, _ := aggregate(t, []models.InvoiceLine{
		withFreight,
		lensLine("00123", "3234567890", 1), // 50.50 retail
		lensLine("00456", "1234567890", 1), // 9.99 retail, not discount eligible
	})

	require.GreaterOrEqual(t, len(summary), 2)

	first := summary[0]
	assert.Equal(t, "00123A", first.PivotalAccount)
	assert.True(t, first.Purchased)
	assert.Equal(t, "4.50", first.Freight.StringFixed(2))
	assert.Equal(t, "15.00", first.ShipAmount.StringFixed(2))
	assert.Equal(t, "150.50", first.NewShipAmount.StringFixed(2))
	assert.Equal(t, "7.53", first.Discount.StringFixed(2))
	// Freight + retail - discount.
	assert.Equal(t, "147.47", first.TotalCharged.StringFixed(2))

	second := summary[1]
	assert.Equal(t, "00456A", second.PivotalAccount)
	assert.Equal(t, "0.00", second.Discount.StringFixed(2))
	assert.Equal(t, "9.99", second.TotalCharged.StringFixed(2))
}

func TestSummaryRosterTail(t *testing.T) {
	summary, _, _ := aggregate(t, []models.InvoiceLine{
		lensLine("00123", "1234567890", 1),
	})

	// One purchaser plus the two known customers with no activity.
	require.Len(t, summary, 3)
	assert.True(t, summary[0].Purchased)

	var tailAccounts []string
	for _, row := range summary[1:] {
		assert.False(t, row.Purchased)
		assert.True(t, row.TotalCharged.IsZero())
		tailAccounts = append(tailAccounts, row.PivotalAccount)
	}
	assert.Equal(t, []string{"00456A", "00789A"}, tailAccounts)
}

func TestOverviewReconcilesWithSummary(t *testing.T) {
	withFreight := lensLine("00123", "2234567890", 2)
	withFreight.Freight = money("4.50")
	taxed := lensLine("00456", "1234567890", 3)
	taxed.Tax = money("1.23")
	summary, overview, _ := aggregate(t, []models.InvoiceLine{
		withFreight,
		taxed,
		lensLine("00789", "3234567890", 1),
	})

	var retail, freight, discount decimal.Decimal
	for _, row := range summary {
		retail = retail.Add(row.NewShipAmount)
		freight = freight.Add(row.Freight)
		discount = discount.Add(row.Discount)
	}

	require.Len(t, overview, 17)
	assert.True(t, overviewValue(t, overview, 0, "Retail Lens Invoiced").Equal(retail))
	assert.True(t, overviewValue(t, overview, 1, "Shipping Costs").Equal(freight))
	assert.True(t, overviewValue(t, overview, 2, "Retail 5% Discount").Equal(discount))

	expected := retail.Add(freight).Sub(discount)
	assert.True(t, overviewValue(t, overview, 3, "Total Invoiced").Equal(expected))
}

func TestOverviewBlankSeparators(t *testing.T) {
	_, overview, _ := aggregate(t, []models.InvoiceLine{
		lensLine("00123", "1234567890", 1),
	})

	require.Len(t, overview, 17)
	for _, i := range []int{4, 5, 6, 13, 14, 15} {
		assert.True(t, overview[i].Blank, "row %d should be blank", i)
		assert.Empty(t, overview[i].Label)
	}
	assert.Equal(t, "Net Profit", overview[16].Label)
}

func TestOverviewNetProfit(t *testing.T) {
	house := models.InvoiceLine{DropShipNo: "0", TotalAmount: money("-10.00")}
	withFreight := lensLine("00123", "2234567890", 2) // 100.00 retail, 10.00 supplier
	withFreight.Freight = money("4.50")
	withFreight.Tax = money("1.23")
	returned := lensLine("00456", "1234567890", -1) // -9.99 retail credit
	_, overview, derived := aggregate(t, []models.InvoiceLine{house, withFreight, returned})

	totalInvoiced := overviewValue(t, overview, 3, "Total Invoiced")
	totalPivotal := overviewValue(t, overview, 11, "Total Pivotal Cost")
	netProfit := overviewValue(t, overview, 16, "Net Profit")

	// Supplier cost + house adjustment + freight + tax.
	assert.Equal(t, "5.73", totalPivotal.StringFixed(2))
	assert.Equal(t, "-10.00", overviewValue(t, overview, 8, "SOMO Disc").StringFixed(2))
	// Displayed as a positive credit figure.
	assert.Equal(t, "9.99", overviewValue(t, overview, 12, "Total Return Credits").StringFixed(2))

	expected := totalInvoiced.Sub(totalPivotal).Add(derived.ReturnCreditTotal)
	assert.True(t, netProfit.Equal(expected))
	assert.Equal(t, "83.78", netProfit.StringFixed(2))
}
