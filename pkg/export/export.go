package export

import "fmt"

// Format identifies a downloadable rendition of a table.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Table is the tabular content handed to exporters. Every row must have one cell per header.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Exporter renders a Table into a file payload.
type Exporter interface {
	Render(table Table) ([]byte, error)
	ContentType() string
	Extension() string
}

// ForFormat returns the exporter registered for format.
func ForFormat(format Format) (Exporter, error) {
	switch format {
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	case FormatXLSX:
		return NewXLSXExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func (t Table) validate() error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("table requires at least one header")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Headers))
		}
	}
	return nil
}
