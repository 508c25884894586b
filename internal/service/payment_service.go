package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
	"github.com/noah-isme/tcc-admin-api/pkg/export"
)

// detailsUnavailable is rendered for class references that no longer resolve.
const detailsUnavailable = "(Details not available)"

type paymentRepository interface {
	Create(p *models.Payment) error
	ListByStudent(studentID string) ([]models.Payment, error)
}

type paymentHistoryRepository interface {
	Append(h models.PaymentHistoryEntry) error
	HasMonth(studentID, month string) (bool, error)
	ListByStudent(studentID string) ([]models.PaymentHistoryEntry, error)
}

type paymentStudentReader interface {
	FindByID(id string) (*models.User, error)
}

type receiptRenderer interface {
	RenderPDF(doc export.ReceiptDocument) ([]byte, error)
	RenderCSV(data export.Dataset) ([]byte, error)
}

type receiptStorage interface {
	Save(filename string, data []byte) (string, error)
}

// ProcessPaymentRequest holds the raw field values for one payment.
type ProcessPaymentRequest struct {
	StudentID string   `json:"student_id" validate:"required"`
	ClassIDs  []string `json:"class_ids" validate:"required,min=1"`
	Amount    float64  `json:"amount" validate:"required,gt=0"`
	Method    string   `json:"method" validate:"required"`
}

// PaymentResult reports the stored payment and, when receipt archiving is
// enabled, the rendered receipt's relative path. HistoryRecorded is false
// when the month-keyed history row could not be appended, which leaves the
// duplicate check blind for that student until the row is restored.
type PaymentResult struct {
	Payment         models.Payment
	ReceiptPath     string
	HistoryRecorded bool
}

// PaymentService records payments and renders receipts.
type PaymentService struct {
	repo      paymentRepository
	history   paymentHistoryRepository
	students  paymentStudentReader
	classes   classReader
	renderer  receiptRenderer
	storage   receiptStorage
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs the payment service. renderer and storage may
// be nil when receipt archiving is disabled.
func NewPaymentService(repo paymentRepository, history paymentHistoryRepository, students paymentStudentReader, classes classReader, renderer receiptRenderer, storage receiptStorage, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		repo:      repo,
		history:   history,
		students:  students,
		classes:   classes,
		renderer:  renderer,
		storage:   storage,
		validator: validate,
		logger:    logger,
	}
}

// Process validates and appends one payment, then appends the denormalized
// month-keyed history row. A second payment by the same student within the
// same calendar month is rejected as a duplicate.
func (s *PaymentService) Process(ctx context.Context, req ProcessPaymentRequest) (*PaymentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Kind, "invalid payment payload")
	}
	student, err := s.students.FindByID(req.StudentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	month := now.Format("2006-01")
	paid, err := s.history.HasMonth(student.ID, month)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, appErrors.Clone(appErrors.ErrConflict, "payment already recorded for "+month)
	}

	payment := models.Payment{
		StudentID:   student.ID,
		StudentName: student.DisplayName,
		ClassIDs:    dedupeClassIDs(req.ClassIDs),
		Amount:      req.Amount,
		PaymentDate: now.Format("2006-01-02"),
		Method:      req.Method,
		Status:      models.PaymentStatusPaid,
	}
	if err := s.repo.Create(&payment); err != nil {
		return nil, err
	}
	historyRecorded := true
	if err := s.history.Append(models.PaymentHistoryEntry{
		StudentID: student.ID,
		Month:     month,
		PaymentID: payment.PaymentID,
		Amount:    payment.Amount,
	}); err != nil {
		historyRecorded = false
		s.logger.Warn("failed to append payment history", zap.String("payment_id", payment.PaymentID), zap.Error(err))
	}

	result := &PaymentResult{Payment: payment, HistoryRecorded: historyRecorded}
	if s.renderer != nil && s.storage != nil {
		path, err := s.archiveReceipt(payment)
		if err != nil {
			s.logger.Warn("failed to archive receipt", zap.String("receipt_id", payment.ReceiptID), zap.Error(err))
		} else {
			result.ReceiptPath = path
		}
	}

	s.logger.Info("payment processed",
		zap.String("payment_id", payment.PaymentID),
		zap.String("receipt_id", payment.ReceiptID),
		zap.String("student_id", payment.StudentID),
		zap.Float64("amount", payment.Amount),
	)
	return result, nil
}

// archiveReceipt renders the receipt PDF and saves it under a unique name.
func (s *PaymentService) archiveReceipt(payment models.Payment) (string, error) {
	doc := export.ReceiptDocument{
		ReceiptID:   payment.ReceiptID,
		PaymentID:   payment.PaymentID,
		StudentID:   payment.StudentID,
		StudentName: payment.StudentName,
		Amount:      payment.Amount,
		Method:      payment.Method,
		Date:        payment.PaymentDate,
	}
	for _, classID := range payment.ClassIDs {
		line := export.ReceiptLine{ClassID: classID, Subject: detailsUnavailable}
		if class, err := s.classes.FindByID(classID); err == nil {
			line.Subject = class.Subject
			line.Fee = class.FeePerClass
		}
		doc.Lines = append(doc.Lines, line)
	}
	data, err := s.renderer.RenderPDF(doc)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.pdf", payment.ReceiptID, uuid.NewString())
	return s.storage.Save(name, data)
}

// ExportHistory renders a student's payment history as CSV for the dashboard
// collaborator.
func (s *PaymentService) ExportHistory(ctx context.Context, studentID string) ([]byte, error) {
	if s.renderer == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "receipt rendering is disabled")
	}
	student, err := s.students.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	entries, err := s.history.ListByStudent(student.ID)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{Headers: []string{"month", "payment_id", "amount"}}
	for _, h := range entries {
		data.Rows = append(data.Rows, map[string]string{
			"month":      h.Month,
			"payment_id": h.PaymentID,
			"amount":     fmt.Sprintf("%.2f", h.Amount),
		})
	}
	return s.renderer.RenderCSV(data)
}
