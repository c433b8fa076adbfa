package refio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"qbgen/internal/logger"
	"qbgen/pkg/models"
)

// LoadCustomerUpload reads a customer-list upload. Uploads arrive as
// either delimited text or a spreadsheet; the extension decides which
// parser runs. Both carry the same columns as the CustomerList sheet.
func LoadCustomerUpload(path string) ([]models.CustomerRecord, error) {
	const op = "LoadCustomerUpload"
	log := logger.WithComponent("refio")

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		rows, err = readCSVRows(path)
	default:
		rows, err = readWorkbookRows(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUploadUnreadable, err)
	}

	customers, err := parseCustomerRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUploadUnreadable, err)
	}

	log.Info().
		Str("path", path).
		Int("rows", len(customers)).
		Msg("Customer list upload loaded")

	return customers, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	return rows, nil
}

func readWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook is empty")
	}
	return rows, nil
}
