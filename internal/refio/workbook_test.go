package refio_test

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbgen/internal/refio"
	"qbgen/pkg/models"
)

func referenceTables() ([]models.CustomerRecord, []models.PriceEntry) {
	customers := []models.CustomerRecord{
		{RecordID: "1", StockLensAccount: "H00241-00123", BillingAccount: "00123A", DiscountEligible: true},
		{RecordID: "2", StockLensAccount: "H00241-00456", BillingAccount: "00456A"},
	}
	prices := []models.PriceEntry{
		{UPC: "1234567890", Retail: decimal.NewNullDecimal(decimal.RequireFromString("9.99")), Category: "Single Vision"},
		{UPC: "2234567890", Category: "Progressive"}, // retail price missing
	}
	return customers, prices
}

func TestSaveLoadReferenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MasterReference.xlsx")
	customers, prices := referenceTables()

	require.NoError(t, refio.SaveReference(path, customers, prices))

	gotCustomers, gotPrices, err := refio.LoadReference(path)
	require.NoError(t, err)

	require.Len(t, gotCustomers, 2)
	assert.Equal(t, customers[0].StockLensAccount, gotCustomers[0].StockLensAccount)
	assert.Equal(t, customers[0].BillingAccount, gotCustomers[0].BillingAccount)
	assert.True(t, gotCustomers[0].DiscountEligible)
	assert.False(t, gotCustomers[1].DiscountEligible)

	require.Len(t, gotPrices, 2)
	assert.Equal(t, "1234567890", gotPrices[0].UPC)
	require.True(t, gotPrices[0].Retail.Valid)
	assert.Equal(t, "9.99", gotPrices[0].Retail.Decimal.StringFixed(2))
	assert.Equal(t, "Single Vision", gotPrices[0].Category)

	// A blank retail cell must survive the round trip as null, not zero.
	assert.False(t, gotPrices[1].Retail.Valid)
}

func TestSaveReferenceRefusesEmptyTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MasterReference.xlsx")
	customers, prices := referenceTables()

	err := refio.SaveReference(path, nil, prices)
	assert.ErrorIs(t, err, refio.ErrEmptyReferenceSave)

	err = refio.SaveReference(path, customers, nil)
	assert.ErrorIs(t, err, refio.ErrEmptyReferenceSave)

	// Nothing may touch the disk on refusal.
	assert.NoFileExists(t, path)
}

func TestLoadReferenceMissingFile(t *testing.T) {
	_, _, err := refio.LoadReference(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.ErrorIs(t, err, refio.ErrReferenceUnreadable)
}
