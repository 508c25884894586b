package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

type requestRepository interface {
	FindByID(requestID string) (*models.SubjectChangeRequest, error)
	FindPending(studentID, currentClassID string) (*models.SubjectChangeRequest, error)
	Create(req *models.SubjectChangeRequest) error
	UpdateStatus(requestID string, status models.RequestStatus) error
	Delete(requestID string) (bool, error)
}

type enrollmentUpdater interface {
	Update(ctx context.Context, studentID string, newClassIDs []string) (*models.User, error)
}

type requestStudentReader interface {
	FindByID(id string) (*models.User, error)
}

// SubmitRequestRequest holds the raw field values for a new change request.
type SubmitRequestRequest struct {
	StudentID      string `json:"student_id" validate:"required"`
	CurrentClassID string `json:"current_class_id" validate:"required"`
	NewClassID     string `json:"new_class_id" validate:"required"`
}

// RequestService drives the subject change request lifecycle:
// Pending -> Approved (enrollment mutated), Pending -> Rejected, or deletion
// while still Pending.
type RequestService struct {
	repo       requestRepository
	students   requestStudentReader
	classes    classReader
	enrollment enrollmentUpdater
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewRequestService constructs the request service.
func NewRequestService(repo requestRepository, students requestStudentReader, classes classReader, enrollment enrollmentUpdater, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		repo:       repo,
		students:   students,
		classes:    classes,
		enrollment: enrollment,
		validator:  validate,
		logger:     logger,
	}
}

// Submit files a new pending request. The student must currently be enrolled
// in the class being changed, the replacement class must exist, and at most
// one pending request per (student, current class) pair is allowed.
func (s *RequestService) Submit(ctx context.Context, req SubmitRequestRequest) (*models.SubjectChangeRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Kind, "invalid request payload")
	}
	student, err := s.students.FindByID(req.StudentID)
	if err != nil {
		return nil, err
	}
	if !containsFold(student.EnrolledClassIDs, req.CurrentClassID) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student is not enrolled in "+req.CurrentClassID)
	}
	if containsFold(student.EnrolledClassIDs, req.NewClassID) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student is already enrolled in "+req.NewClassID)
	}
	if _, err := s.classes.FindByID(req.NewClassID); err != nil {
		if appErrors.IsKind(err, appErrors.KindNotFound) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "class "+req.NewClassID+" does not exist")
		}
		return nil, err
	}
	pending, err := s.repo.FindPending(student.ID, req.CurrentClassID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			"a pending request for "+req.CurrentClassID+" already exists")
	}
	request := models.SubjectChangeRequest{
		StudentID:      student.ID,
		CurrentClassID: req.CurrentClassID,
		NewClassID:     req.NewClassID,
		Status:         models.RequestStatusPending,
	}
	if err := s.repo.Create(&request); err != nil {
		return nil, err
	}
	s.logger.Info("change request submitted",
		zap.String("request_id", request.RequestID),
		zap.String("student_id", request.StudentID),
	)
	return &request, nil
}

// Approve marks a pending request approved and swaps the enrolled class. The
// enrollment mutation is validated before the status is rewritten, so a
// rejected swap leaves the request pending. Approving an already-terminal
// request is a no-op, not a second enrollment mutation.
func (s *RequestService) Approve(ctx context.Context, requestID string) (*models.SubjectChangeRequest, error) {
	request, err := s.repo.FindByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.Terminal() {
		return request, nil
	}

	student, err := s.students.FindByID(request.StudentID)
	if err != nil {
		return nil, err
	}
	newSet := swapClass(student.EnrolledClassIDs, request.CurrentClassID, request.NewClassID)
	if len(newSet) < minEnrolledClasses || len(newSet) > maxEnrolledClasses {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			"approval would leave the enrollment outside the allowed class count")
	}

	if err := s.repo.UpdateStatus(request.RequestID, models.RequestStatusApproved); err != nil {
		return nil, err
	}
	request.Status = models.RequestStatusApproved
	if _, err := s.enrollment.Update(ctx, student.ID, newSet); err != nil {
		// The status write has already landed; the enrollment update is
		// idempotent, so retrying the same approval is safe.
		s.logger.Error("approved request but enrollment update failed",
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Info("change request approved",
		zap.String("request_id", request.RequestID),
		zap.String("student_id", request.StudentID),
	)
	return request, nil
}

// Reject marks a pending request rejected with no side effect. Rejecting an
// already-terminal request is a no-op.
func (s *RequestService) Reject(ctx context.Context, requestID string) (*models.SubjectChangeRequest, error) {
	request, err := s.repo.FindByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.Terminal() {
		return request, nil
	}
	if err := s.repo.UpdateStatus(request.RequestID, models.RequestStatusRejected); err != nil {
		return nil, err
	}
	request.Status = models.RequestStatusRejected
	s.logger.Info("change request rejected", zap.String("request_id", request.RequestID))
	return request, nil
}

// Withdraw deletes a request that is still pending.
func (s *RequestService) Withdraw(ctx context.Context, requestID string) error {
	request, err := s.repo.FindByID(requestID)
	if err != nil {
		return err
	}
	if request.Status.Terminal() {
		return appErrors.Clone(appErrors.ErrConflict, "request "+requestID+" has already been decided")
	}
	deleted, err := s.repo.Delete(request.RequestID)
	if err != nil {
		return err
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "request "+requestID+" not found")
	}
	return nil
}

// swapClass removes current and appends replacement, preserving order and
// dropping duplicates. Applying it to an already-swapped set returns the set
// unchanged.
func swapClass(classIDs []string, current, replacement string) []string {
	out := make([]string, 0, len(classIDs)+1)
	for _, id := range classIDs {
		if strings.EqualFold(id, current) || strings.EqualFold(id, replacement) {
			continue
		}
		out = append(out, id)
	}
	return append(out, replacement)
}

func containsFold(ids []string, id string) bool {
	for _, v := range ids {
		if strings.EqualFold(v, id) {
			return true
		}
	}
	return false
}
