package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Title:   "Grade Summary",
		Headers: []string{"Subject", "Quarter", "Final Grade"},
		Rows: [][]string{
			{"Algebra", "midterm", "1.50"},
			{"Biology", "midterm", "No Grade"},
		},
	}
}

func TestCSVExporter(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Subject", "Quarter", "Final Grade"}, records[0])
	assert.Equal(t, "No Grade", records[2][2])
}

func TestPDFExporter(t *testing.T) {
	table := sampleTable()
	for i := 0; i < 60; i++ {
		table.Rows = append(table.Rows, []string{"Chemistry", "final", "2.00"})
	}

	payload, err := NewPDFExporter().Render(table)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestXLSXExporter(t *testing.T) {
	payload, err := NewXLSXExporter().Render(sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Final Grade", rows[0][2])
	assert.Equal(t, "1.5", rows[1][2])
	assert.Equal(t, "No Grade", rows[2][2])
}

func TestRenderRejectsMalformedTables(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatPDF, FormatXLSX} {
		exporter, err := ForFormat(format)
		require.NoError(t, err)

		_, err = exporter.Render(Table{})
		assert.Error(t, err, format)

		_, err = exporter.Render(Table{Headers: []string{"a", "b"}, Rows: [][]string{{"only one"}}})
		assert.Error(t, err, format)
	}

	_, err := ForFormat("docx")
	assert.Error(t, err)
}
