package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	r := NewRenderer()
	data := Dataset{
		Headers: []string{"month", "amount"},
		Rows: []map[string]string{
			{"month": "2026-08", "amount": "180.00"},
		},
	}
	out, err := r.RenderCSV(data)
	require.NoError(t, err)
	assert.Equal(t, "month,amount\n2026-08,180.00\n", string(out))
}

func TestRenderCSVRequiresHeaders(t *testing.T) {
	r := NewRenderer()
	_, err := r.RenderCSV(Dataset{})
	require.Error(t, err)
}

func TestRenderPDFReceipt(t *testing.T) {
	r := NewRenderer()
	doc := ReceiptDocument{
		ReceiptID:   "RCP001",
		PaymentID:   "PAY001",
		StudentID:   "STU002",
		StudentName: "Daniel Ooi",
		Lines: []ReceiptLine{
			{ClassID: "CL007", Subject: "English", Fee: 60.00},
			{ClassID: "CL008", Subject: "Mathematics", Fee: 60.00},
		},
		Amount: 120.00,
		Method: "Online Banking",
		Date:   "2026-08-29",
	}
	out, err := r.RenderPDF(doc)
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderPDFRequiresReceiptID(t *testing.T) {
	r := NewRenderer()
	_, err := r.RenderPDF(ReceiptDocument{})
	require.Error(t, err)
}
