package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restockhq/reorder-engine/pkg/apperrors"
	"github.com/restockhq/reorder-engine/pkg/models"
)

func TestParseDemandFileCSV(t *testing.T) {
	data := `store_id,product_id,Category,product_name,demand
S1,P1,Tools,Widget,5
S2,,TOOLS, widget ,3
S1,P2,Misc,Gadget,10
`
	rows, err := ParseDemandFile("demand.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, models.DemandRow{
		ProductID: "P1", Name: "Widget", Category: "Tools", StoreID: "S1", Demand: 5,
	}, rows[0])
	assert.Equal(t, " widget ", rows[1].Name)
	assert.Equal(t, "TOOLS", rows[1].Category)
	assert.Equal(t, 3, rows[1].Demand)
	assert.Empty(t, rows[1].ProductID)
}

func TestParseDemandFileColumnOrderIrrelevant(t *testing.T) {
	data := `demand,product_name,Category,extra_col
7,Widget,Tools,ignored
`
	rows, err := ParseDemandFile("demand.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].Name)
	assert.Equal(t, "Tools", rows[0].Category)
	assert.Equal(t, 7, rows[0].Demand)
}

func TestParseDemandFileMalformedDemand(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		expect int
	}{
		{name: "empty", raw: "", expect: 0},
		{name: "non-numeric", raw: "lots", expect: 0},
		{name: "integer", raw: "12", expect: 12},
		{name: "spreadsheet float", raw: "12.0", expect: 12},
		{name: "fractional float rejected", raw: "12.5", expect: 0},
		{name: "surrounding whitespace", raw: " 8 ", expect: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, parseDemand(tt.raw))
		})
	}
}

func TestParseDemandFileMalformedRowDoesNotAbort(t *testing.T) {
	data := `product_name,Category,demand
Widget,Tools,notanumber
Gadget,Misc,4
`
	rows, err := ParseDemandFile("demand.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Demand)
	assert.Equal(t, 4, rows[1].Demand)
}

func TestParseDemandFileShortRows(t *testing.T) {
	data := `product_name,Category,demand
Widget
`
	rows, err := ParseDemandFile("demand.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].Name)
	assert.Empty(t, rows[0].Category)
	assert.Equal(t, 0, rows[0].Demand)
}

func TestParseDemandFileUnsupportedFormat(t *testing.T) {
	_, err := ParseDemandFile("demand.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
}

func TestParseDemandFileEmptyCSV(t *testing.T) {
	_, err := ParseDemandFile("demand.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrEmptyFile)
}

func TestParseDemandFileHeaderOnly(t *testing.T) {
	rows, err := ParseDemandFile("demand.csv", strings.NewReader("product_name,Category,demand\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
