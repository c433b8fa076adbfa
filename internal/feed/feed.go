// Package feed discovers and parses the supplier's monthly raw invoice
// file and handles input archiving at the run boundary.
package feed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"qbgen/internal/logger"
	"qbgen/pkg/models"
)

// SupplierCode is the fixed token every raw invoice filename carries.
const SupplierCode = "H00241"

// Raw feed column names, as the supplier emits them.
const (
	colDropShipNo  = "DropShipNo"
	colPONo        = "PONo"
	colOrderID     = "OrderID"
	colShipDate    = "ShipDate"
	colItemName    = "ItemName"
	colShipQty     = "ShipQty"
	colUnitPrice   = "UnitPrice"
	colShipAmount  = "ShipAmount"
	colBarcode     = "Barcode"
	colShipVia     = "ShipVia"
	colFreight     = "Freight"
	colTax         = "Tax"
	colTotalAmount = "TotalAmount"
)

var yearPattern = regexp.MustCompile(`2\d{3}`)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FindRawInvoice scans the input directory for the supplier's raw
// invoice feed.
func FindRawInvoice(inputDir string) (string, error) {
	return findByPattern(inputDir, SupplierCode, ErrNoInvoiceFound)
}

// FindCustomerUpload scans the input directory for a customer-list
// upload.
func FindCustomerUpload(inputDir string) (string, error) {
	return findByPattern(inputDir, "customer", ErrNoUploadFound)
}

func findByPattern(inputDir, pattern string, notFound error) (string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return "", fmt.Errorf("scan input directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.Contains(entry.Name(), pattern) {
			return filepath.Join(inputDir, entry.Name()), nil
		}
	}
	return "", notFound
}

// InvoiceMonth parses which month the invoice covers from its
// filename: a month-name token plus a 4-digit year beginning "2".
func InvoiceMonth(path string) (time.Time, error) {
	name := filepath.Base(path)

	month := 0
	for i, m := range monthNames {
		if strings.Contains(name, m) {
			month = i + 1
			break
		}
	}
	year := yearPattern.FindString(name)
	if month == 0 || year == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMonthNotFound, name)
	}

	t, err := time.Parse("2006-1", fmt.Sprintf("%s-%d", year, month))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMonthNotFound, name)
	}
	return t, nil
}

// ParseRawInvoice reads the supplier feed into invoice lines. Column
// order is taken from the header row, not assumed.
func ParseRawInvoice(path string) ([]models.InvoiceLine, error) {
	const op = "ParseRawInvoice"
	log := logger.WithComponent("feed")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", op, path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s: %s is empty", op, path)
	}

	cols := make(map[string]int, len(rows[0]))
	for idx, name := range rows[0] {
		cols[strings.TrimSpace(name)] = idx
	}
	for _, required := range []string{colDropShipNo, colShipQty, colShipAmount, colBarcode} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%s: %s missing column %q", op, path, required)
		}
	}

	cell := func(row []string, column string) string {
		idx, ok := cols[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	lines := make([]models.InvoiceLine, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if len(row) == 0 {
			continue
		}

		line := models.InvoiceLine{
			DropShipNo: cell(row, colDropShipNo),
			PONo:       cell(row, colPONo),
			OrderID:    cell(row, colOrderID),
			ShipDate:   cell(row, colShipDate),
			ItemName:   cell(row, colItemName),
			Barcode:    cell(row, colBarcode),
			ShipVia:    cell(row, colShipVia),
		}

		qty, err := parseQuantity(cell(row, colShipQty))
		if err != nil {
			return nil, &ParseError{Path: path, Row: rowNum, Field: colShipQty, Err: err}
		}
		line.ShipQty = qty

		for _, m := range []struct {
			field string
			dst   *decimal.Decimal
		}{
			{colUnitPrice, &line.UnitPrice},
			{colShipAmount, &line.ShipAmount},
			{colFreight, &line.Freight},
			{colTax, &line.Tax},
			{colTotalAmount, &line.TotalAmount},
		} {
			value, err := parseMoney(cell(row, m.field))
			if err != nil {
				return nil, &ParseError{Path: path, Row: rowNum, Field: m.field, Err: err}
			}
			*m.dst = value
		}

		lines = append(lines, line)
	}

	log.Info().
		Str("path", path).
		Int("lines", len(lines)).
		Msg("Raw invoice feed parsed")

	return lines, nil
}

// ArchiveInputs moves every file in the input directory to the archive
// directory. It runs only after the output workbook has been written,
// so a crash before this point leaves the inputs available for a
// re-run.
func ArchiveInputs(inputDir, archiveDir string) error {
	log := logger.WithComponent("feed")

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("scan input directory: %w", err)
	}

	moved := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(inputDir, entry.Name())
		dst := filepath.Join(archiveDir, entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("archive %s: %w", entry.Name(), err)
		}
		moved++
	}

	log.Info().Int("files", moved).Str("archive", archiveDir).Msg("Inputs archived")
	return nil
}

func parseQuantity(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	// Quantities occasionally arrive formatted as "3.0"; go through
	// decimal so those still parse as whole numbers.
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", raw)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("non-integral quantity %q", raw)
	}
	return d.IntPart(), nil
}

func parseMoney(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return d, nil
}
