package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

type enrollmentRepository interface {
	FindByID(id string) (*models.User, error)
	UpdateEnrolledClasses(studentID string, classIDs []string) error
}

// EnrollmentService rewrites a student's enrolled class set in place.
type EnrollmentService struct {
	repo   enrollmentRepository
	logger *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, logger: logger}
}

// Update replaces the student's enrolled classes with newClassIDs. The
// resulting set must hold between one and three classes; a rejected update
// leaves the stored record untouched. Applying the same target set twice is
// a no-op the second time, so retries are safe.
func (s *EnrollmentService) Update(ctx context.Context, studentID string, newClassIDs []string) (*models.User, error) {
	classIDs := dedupeClassIDs(newClassIDs)
	if len(classIDs) < minEnrolledClasses || len(classIDs) > maxEnrolledClasses {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("enrollment must hold between %d and %d classes, got %d", minEnrolledClasses, maxEnrolledClasses, len(classIDs)))
	}
	student, err := s.repo.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEnrolledClasses(student.ID, classIDs); err != nil {
		return nil, err
	}
	student.EnrolledClassIDs = classIDs
	s.logger.Info("enrollment updated",
		zap.String("student_id", student.ID),
		zap.Strings("class_ids", classIDs),
	)
	return student, nil
}
