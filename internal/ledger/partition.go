package ledger

import (
	"fmt"

	"qbgen/pkg/models"
)

// MaxLensRowsPerSheet is the row ceiling QuickBooks tolerates on a
// single import sheet.
const MaxLensRowsPerSheet = 5000

// LensChunk is one bounded slice of the lens ledger with the sheet name
// it will be emitted under.
type LensChunk struct {
	Name string
	Rows []models.LensRow
}

// PartitionLens splits the lens ledger into consecutively numbered
// chunks of at most MaxLensRowsPerSheet rows. A ledger within the
// ceiling comes back as a single chunk named "Lens Import"; larger
// ledgers as "Lens Import 1", "Lens Import 2", and so on. Sizes that
// are exact multiples of the ceiling produce no trailing empty chunk.
func PartitionLens(rows []models.LensRow) []LensChunk {
	if len(rows) <= MaxLensRowsPerSheet {
		return []LensChunk{{Name: "Lens Import", Rows: rows}}
	}

	count := (len(rows) + MaxLensRowsPerSheet - 1) / MaxLensRowsPerSheet
	chunks := make([]LensChunk, 0, count)
	for i := 0; i < count; i++ {
		start := i * MaxLensRowsPerSheet
		end := start + MaxLensRowsPerSheet
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, LensChunk{
			Name: fmt.Sprintf("Lens Import %d", i+1),
			Rows: rows[start:end],
		})
	}
	return chunks
}
