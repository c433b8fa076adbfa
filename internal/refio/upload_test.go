package refio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbgen/internal/refio"
)

func writeUpload(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCustomerUploadCSV(t *testing.T) {
	content := "Record ID,PLN Stock Lens Account Number,Pivotal Account No.,Stock Lens 5% Discount\n" +
		"1,H00241-00123,00123A,Yes\n" +
		"2,H00241-00456,00456A,No\n" +
		",,,\n" // trailing blank row, must be skipped
	path := writeUpload(t, "customer list.csv", content)

	customers, err := refio.LoadCustomerUpload(path)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "H00241-00123", customers[0].StockLensAccount)
	assert.True(t, customers[0].DiscountEligible)
	assert.False(t, customers[1].DiscountEligible)
}

func TestLoadCustomerUploadColumnOrder(t *testing.T) {
	// Uploads do not guarantee column order; the header decides.
	content := "Pivotal Account No.,Record ID,PLN Stock Lens Account Number\n" +
		"00123A,1,H00241-00123\n"
	path := writeUpload(t, "customer.txt", content)

	customers, err := refio.LoadCustomerUpload(path)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "00123A", customers[0].BillingAccount)
	assert.Equal(t, "H00241-00123", customers[0].StockLensAccount)
}

func TestLoadCustomerUploadMissingColumn(t *testing.T) {
	path := writeUpload(t, "customer.csv", "Record ID,Pivotal Account No.\n1,00123A\n")

	_, err := refio.LoadCustomerUpload(path)
	assert.ErrorIs(t, err, refio.ErrUploadUnreadable)
}

func TestLoadCustomerUploadUnreadable(t *testing.T) {
	_, err := refio.LoadCustomerUpload(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, refio.ErrUploadUnreadable)
}
