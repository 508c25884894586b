package repository

import (
	"strings"

	"github.com/noah-isme/tcc-admin-api/internal/codec"
	"github.com/noah-isme/tcc-admin-api/internal/models"
)

// PaymentHistoryRepository manages the month-keyed payment log used for
// duplicate detection.
type PaymentHistoryRepository struct {
	store *Filestore
}

// NewPaymentHistoryRepository constructs a PaymentHistoryRepository.
func NewPaymentHistoryRepository(store *Filestore) *PaymentHistoryRepository {
	return &PaymentHistoryRepository{store: store}
}

// LoadAll decodes every history entry. Malformed lines are logged and skipped.
func (r *PaymentHistoryRepository) LoadAll() ([]models.PaymentHistoryEntry, error) {
	lines, err := r.store.ReadLines()
	if err != nil {
		return nil, err
	}
	entries := make([]models.PaymentHistoryEntry, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		h, err := codec.DecodeHistory(line)
		if err != nil {
			r.store.warnSkipped(err)
			skipped++
			continue
		}
		entries = append(entries, h)
	}
	r.store.observeLoad(len(entries), skipped)
	return entries, nil
}

// Append adds one history entry.
func (r *PaymentHistoryRepository) Append(h models.PaymentHistoryEntry) error {
	return r.store.AppendLine(codec.EncodeHistory(h))
}

// InitEmpty creates the backing file with no records.
func (r *PaymentHistoryRepository) InitEmpty() error {
	return r.store.WriteLines(nil)
}

// HasMonth reports whether the student already has a history entry for the
// calendar month. Detection is plain month-string equality, not a date range.
func (r *PaymentHistoryRepository) HasMonth(studentID, month string) (bool, error) {
	entries, err := r.LoadAll()
	if err != nil {
		return false, err
	}
	for _, h := range entries {
		if strings.EqualFold(h.StudentID, studentID) && h.Month == month {
			return true, nil
		}
	}
	return false, nil
}

// ListByStudent returns the student's history entries in file order.
func (r *PaymentHistoryRepository) ListByStudent(studentID string) ([]models.PaymentHistoryEntry, error) {
	entries, err := r.LoadAll()
	if err != nil {
		return nil, err
	}
	var out []models.PaymentHistoryEntry
	for _, h := range entries {
		if strings.EqualFold(h.StudentID, studentID) {
			out = append(out, h)
		}
	}
	return out, nil
}

// LoginHistoryRepository manages the login audit log.
type LoginHistoryRepository struct {
	store *Filestore
}

// NewLoginHistoryRepository constructs a LoginHistoryRepository.
func NewLoginHistoryRepository(store *Filestore) *LoginHistoryRepository {
	return &LoginHistoryRepository{store: store}
}

// InitEmpty creates the backing file with no records.
func (r *LoginHistoryRepository) InitEmpty() error {
	return r.store.WriteLines(nil)
}

// Append adds one audit line.
func (r *LoginHistoryRepository) Append(rec models.LoginRecord) error {
	return r.store.AppendLine(codec.EncodeLogin(rec))
}

// LoadAll decodes every audit line. Malformed lines are logged and skipped.
func (r *LoginHistoryRepository) LoadAll() ([]models.LoginRecord, error) {
	lines, err := r.store.ReadLines()
	if err != nil {
		return nil, err
	}
	records := make([]models.LoginRecord, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		rec, err := codec.DecodeLogin(line)
		if err != nil {
			r.store.warnSkipped(err)
			skipped++
			continue
		}
		records = append(records, rec)
	}
	r.store.observeLoad(len(records), skipped)
	return records, nil
}
