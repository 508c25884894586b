package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptLine is one charged class on a receipt.
type ReceiptLine struct {
	ClassID string
	Subject string
	Fee     float64
}

// ReceiptDocument carries everything rendered onto a payment receipt.
type ReceiptDocument struct {
	ReceiptID   string
	PaymentID   string
	StudentID   string
	StudentName string
	Lines       []ReceiptLine
	Amount      float64
	Method      string
	Date        string
}

// RenderPDF renders the receipt as an A4 PDF document.
func (e *Renderer) RenderPDF(doc ReceiptDocument) ([]byte, error) {
	if doc.ReceiptID == "" {
		return nil, fmt.Errorf("receipt requires an id")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	for _, pair := range [][2]string{
		{"Receipt No", doc.ReceiptID},
		{"Payment No", doc.PaymentID},
		{"Student", fmt.Sprintf("%s (%s)", doc.StudentName, doc.StudentID)},
		{"Date", doc.Date},
		{"Method", doc.Method},
	} {
		pdf.CellFormat(40, 6, pair[0], "", 0, "", false, 0, "")
		pdf.CellFormat(0, 6, pair[1], "", 1, "", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 8, "Class", "1", 0, "C", false, 0, "")
	pdf.CellFormat(110, 8, "Subject", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Fee", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, line := range doc.Lines {
		pdf.CellFormat(40, 7, line.ClassID, "1", 0, "", false, 0, "")
		pdf.CellFormat(110, 7, line.Subject, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", line.Fee), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 8, "Total Paid", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", doc.Amount), "1", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
