package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/models"
)

// parseExcel reads demand rows from the first sheet of an Excel workbook.
func parseExcel(r io.Reader) ([]models.DemandRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrEmptyFile)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", apperrors.ErrEmptyFile)
	}

	idx := indexHeader(records[0])

	var rows []models.DemandRow
	for _, record := range records[1:] {
		rows = append(rows, rowFromRecord(record, idx))
	}

	return rows, nil
}
