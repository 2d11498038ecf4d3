// Package ingest parses uploaded demand files into demand rows. It accepts
// CSV and Excel files with a header row; columns are recognized by name in
// any order and unknown columns are ignored.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/models"
)

// Recognized header names, compared after trimming and case-folding.
const (
	colProductID = "product_id"
	colCategory  = "category"
	colName      = "product_name"
	colDemand    = "demand"
	colStoreID   = "store_id"
)

// ParseDemandFile parses an uploaded demand file, dispatching on the file
// extension. Returns apperrors.ErrUnsupportedFormat for anything that is
// not CSV or Excel. Row-level defects never fail the parse: a missing or
// non-numeric demand value contributes zero demand.
func ParseDemandFile(filename string, r io.Reader) ([]models.DemandRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(r)
	case ".xlsx", ".xls":
		return parseExcel(r)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, filename)
	}
}

// columnIndex maps recognized columns to their position in the header row.
// A value of -1 means the column is absent.
type columnIndex struct {
	productID int
	category  int
	name      int
	demand    int
	storeID   int
}

func indexHeader(header []string) columnIndex {
	idx := columnIndex{productID: -1, category: -1, name: -1, demand: -1, storeID: -1}
	for i, h := range header {
		switch models.Normalize(h) {
		case colProductID:
			idx.productID = i
		case colCategory:
			idx.category = i
		case colName:
			idx.name = i
		case colDemand:
			idx.demand = i
		case colStoreID:
			idx.storeID = i
		}
	}
	return idx
}

// cell returns the value at position i, or "" when the row is too short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseDemand converts a raw demand value to an integer, defaulting to zero
// for anything unparseable so one malformed row never blocks the file.
// Spreadsheet exports often render integers as "12.0", so a float fallback
// is accepted when it carries no fractional part.
func parseDemand(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f)
	}
	return 0
}

func rowFromRecord(record []string, idx columnIndex) models.DemandRow {
	return models.DemandRow{
		ProductID: strings.TrimSpace(cell(record, idx.productID)),
		Name:      cell(record, idx.name),
		Category:  cell(record, idx.category),
		StoreID:   strings.TrimSpace(cell(record, idx.storeID)),
		Demand:    parseDemand(cell(record, idx.demand)),
	}
}
