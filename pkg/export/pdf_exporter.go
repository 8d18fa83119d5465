package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth = 277.0
	pdfRowHeight = 7.0
)

// PDFExporter renders tables on landscape A4 pages, repeating the header row after page breaks.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Extension() string { return "pdf" }

func (e *PDFExporter) Render(table Table) ([]byte, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)

	colWidth := pdfPageWidth / float64(len(table.Headers))
	header := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range table.Headers {
			pdf.CellFormat(colWidth, pdfRowHeight+1, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}

	pdf.AddPage()
	if table.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, table.Title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range table.Rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for _, cell := range row {
			pdf.CellFormat(colWidth, pdfRowHeight, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
