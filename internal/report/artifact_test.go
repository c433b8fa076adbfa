package report_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbgen/internal/report"
)

func TestArtifactAccumulates(t *testing.T) {
	a := report.NewArtifact()
	assert.True(t, a.Empty())

	a.Append("Missing Values", "PriceSheet, MasterReference")
	a.Appendf("CustomerList, MasterReference", "Duplicate Values in %s", "Pivotal Account No.")

	require.Len(t, a.Entries(), 2)
	assert.False(t, a.Empty())
	assert.Equal(t, "Duplicate Values in Pivotal Account No.", a.Entries()[1].Description)
	assert.Equal(t, "CustomerList, MasterReference", a.Entries()[1].Location)
}

func TestArtifactWrite(t *testing.T) {
	a := report.NewArtifact()
	a.Append("Barcode 42 not found in Price Sheet", "MasterReference, PriceSheet")
	a.Append("Missing values PONo PO-7, PO-9", "Raw invoice feed")

	path := filepath.Join(t.TempDir(), report.ErrorDetailsFile)
	require.NoError(t, a.Write(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Description", "Location"}, rows[0])
	assert.Equal(t, []string{"Barcode 42 not found in Price Sheet", "MasterReference, PriceSheet"}, rows[1])
	assert.Equal(t, []string{"Missing values PONo PO-7, PO-9", "Raw invoice feed"}, rows[2])
}
