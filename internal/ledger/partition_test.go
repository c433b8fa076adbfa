package ledger_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbgen/internal/ledger"
	"qbgen/pkg/models"
)

func numberedRows(n int) []models.LensRow {
	rows := make([]models.LensRow, n)
	for i := range rows {
		rows[i].OrderID = fmt.Sprintf("S%06d", i)
	}
	return rows
}

func TestPartitionLensSingleChunk(t *testing.T) {
	chunks := ledger.PartitionLens(numberedRows(ledger.MaxLensRowsPerSheet))

	require.Len(t, chunks, 1)
	assert.Equal(t, "Lens Import", chunks[0].Name)
	assert.Len(t, chunks[0].Rows, ledger.MaxLensRowsPerSheet)
}

func TestPartitionLensEmpty(t *testing.T) {
	chunks := ledger.PartitionLens(nil)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Lens Import", chunks[0].Name)
	assert.Empty(t, chunks[0].Rows)
}

func TestPartitionLensExactMultiple(t *testing.T) {
	chunks := ledger.PartitionLens(numberedRows(2 * ledger.MaxLensRowsPerSheet))

	require.Len(t, chunks, 2)
	assert.Equal(t, "Lens Import 1", chunks[0].Name)
	assert.Equal(t, "Lens Import 2", chunks[1].Name)
	assert.Len(t, chunks[0].Rows, ledger.MaxLensRowsPerSheet)
	assert.Len(t, chunks[1].Rows, ledger.MaxLensRowsPerSheet)
}

func TestPartitionLensPreservesOrder(t *testing.T) {
	rows := numberedRows(ledger.MaxLensRowsPerSheet + 3)
	chunks := ledger.PartitionLens(rows)

	require.Len(t, chunks, 2)
	assert.Len(t, chunks[1].Rows, 3)

	var total int
	for _, chunk := range chunks {
		for _, row := range chunk.Rows {
			assert.Equal(t, rows[total].OrderID, row.OrderID)
			total++
		}
	}
	assert.Equal(t, len(rows), total)
}
