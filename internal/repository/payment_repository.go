package repository

import (
	"strings"

	"github.com/noah-isme/tcc-admin-api/internal/codec"
	"github.com/noah-isme/tcc-admin-api/internal/models"
)

// PaymentRepository manages the payment file.
type PaymentRepository struct {
	store *Filestore
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(store *Filestore) *PaymentRepository {
	return &PaymentRepository{store: store}
}

// LoadAll decodes every payment. Malformed lines are logged and skipped.
func (r *PaymentRepository) LoadAll() ([]models.Payment, error) {
	lines, err := r.store.ReadLines()
	if err != nil {
		return nil, err
	}
	payments := make([]models.Payment, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		p, err := codec.DecodePayment(line)
		if err != nil {
			r.store.warnSkipped(err)
			skipped++
			continue
		}
		payments = append(payments, p)
	}
	r.store.observeLoad(len(payments), skipped)
	return payments, nil
}

// ListByStudent returns the student's payments in file order.
func (r *PaymentRepository) ListByStudent(studentID string) ([]models.Payment, error) {
	payments, err := r.LoadAll()
	if err != nil {
		return nil, err
	}
	var out []models.Payment
	for _, p := range payments {
		if strings.EqualFold(p.StudentID, studentID) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create assigns the next PAY and RCP identifiers and appends the payment.
// Both sequences are derived from the same file under one lock: PAY from the
// leading field, RCP from the second.
func (r *PaymentRepository) Create(p *models.Payment) error {
	_, err := r.store.Update(func(lines []string) ([]string, bool, error) {
		p.PaymentID = NextID(models.PaymentIDPrefix, leadingFields(lines))
		p.ReceiptID = NextID(models.ReceiptIDPrefix, fieldAt(lines, 1))
		if p.Status == "" {
			p.Status = models.PaymentStatusPaid
		}
		return append(lines, codec.EncodePayment(*p)), true, nil
	})
	return err
}

// InitEmpty creates the backing file with no records.
func (r *PaymentRepository) InitEmpty() error {
	return r.store.WriteLines(nil)
}

// fieldAt extracts the n-th comma field of every line.
func fieldAt(lines []string, n int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, ",")
		if n < len(fields) {
			out = append(out, strings.TrimSpace(fields[n]))
		}
	}
	return out
}
