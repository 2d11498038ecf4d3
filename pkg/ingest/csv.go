package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/models"
)

// parseCSV reads demand rows from CSV data. The first record is the header;
// subsequent records may be ragged (short rows are padded with empty
// fields).
func parseCSV(r io.Reader) ([]models.DemandRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", apperrors.ErrEmptyFile)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx := indexHeader(header)

	var rows []models.DemandRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		rows = append(rows, rowFromRecord(record, idx))
	}

	return rows, nil
}
