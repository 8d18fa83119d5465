package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders tables as RFC 4180 CSV with a header line.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) ContentType() string { return "text/csv" }

func (e *CSVExporter) Extension() string { return "csv" }

func (e *CSVExporter) Render(table Table) ([]byte, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
