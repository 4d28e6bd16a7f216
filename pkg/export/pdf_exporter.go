package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth  = 190.0
	qrImageKey = "verification-qr"
)

// Dataset defines tabular content rendered inside a document section.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Field is a labelled value printed in the identity block of a document.
type Field struct {
	Label string
	Value string
}

// Section is a titled table.
type Section struct {
	Heading string
	Data    Dataset
	// Empty is printed instead of the table when Data has no rows.
	Empty string
}

// Document describes a printable page: header, identity fields, tables and closing lines.
type Document struct {
	Issuer   string
	Title    string
	Subtitle string
	Fields   []Field
	Sections []Section
	Summary  []Field
	Footer   []string
	// QRCode holds a PNG image drawn in the top right corner when present.
	QRCode []byte
}

// PDFExporter renders documents with gofpdf.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderDocument lays out the document on A4 portrait pages.
func (e *PDFExporter) RenderDocument(doc Document) ([]byte, error) {
	if doc.Title == "" {
		return nil, fmt.Errorf("pdf document requires a title")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if len(doc.QRCode) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(qrImageKey, opts, bytes.NewReader(doc.QRCode))
		pdf.ImageOptions(qrImageKey, 170, 10, 30, 30, false, opts, 0, "")
	}

	if doc.Issuer != "" {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 6, tr(doc.Issuer), "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(strings.ToUpper(doc.Title)), "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	writeFields(pdf, tr, doc.Fields)

	for _, section := range doc.Sections {
		if section.Heading != "" {
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 8, tr(section.Heading), "", 1, "L", false, 0, "")
		}
		if len(section.Data.Rows) == 0 && section.Empty != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.CellFormat(0, 7, tr(section.Empty), "", 1, "L", false, 0, "")
			pdf.Ln(3)
			continue
		}
		writeTable(pdf, tr, section.Data)
		pdf.Ln(3)
	}

	writeFields(pdf, tr, doc.Summary)

	if len(doc.Footer) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 9)
		for _, line := range doc.Footer {
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFields(pdf *gofpdf.Fpdf, tr func(string) string, fields []Field) {
	if len(fields) == 0 {
		return
	}
	for _, field := range fields {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(55, 6, tr(field.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(field.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, data Dataset) {
	if len(data.Headers) == 0 {
		return
	}
	colWidth := pageWidth / float64(len(data.Headers))

	pdf.SetFont("Arial", "B", 10)
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, tr(row[header]), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
