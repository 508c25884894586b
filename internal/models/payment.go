package models

// Identifier prefixes for payment records.
const (
	PaymentIDPrefix = "PAY"
	ReceiptIDPrefix = "RCP"
)

// PaymentStatusPaid is the default status stamped on new payments.
const PaymentStatusPaid = "PAID"

// Payment is one settled fee payment covering up to three classes.
type Payment struct {
	PaymentID   string   `json:"payment_id"`
	ReceiptID   string   `json:"receipt_id"`
	StudentID   string   `json:"student_id"`
	StudentName string   `json:"student_name"` // snapshot at payment time
	ClassIDs    []string `json:"class_ids"`
	Amount      float64  `json:"amount"`
	PaymentDate string   `json:"payment_date"`
	Method      string   `json:"method"`
	Status      string   `json:"status"`
}

// PaymentHistoryEntry is the denormalized month-keyed log row used to detect
// duplicate payments within a calendar month.
type PaymentHistoryEntry struct {
	StudentID string  `json:"student_id"`
	Month     string  `json:"month"` // YYYY-MM
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
}
