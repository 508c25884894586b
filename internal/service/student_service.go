package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

// Enrollment bounds: a student always carries between one and three classes.
const (
	minEnrolledClasses = 1
	maxEnrolledClasses = 3
)

type studentRepository interface {
	LoadAll() ([]models.User, error)
	FindByID(id string) (*models.User, error)
	Create(u *models.User) error
	Update(u models.User) error
}

type classReader interface {
	FindByID(classID string) (*models.ClassOffering, error)
}

// RegisterStudentRequest holds the raw field values entered for registration.
type RegisterStudentRequest struct {
	ICNumber        string           `json:"ic_number" validate:"required"`
	Password        string           `json:"password" validate:"required,min=6"`
	FullName        string           `json:"full_name" validate:"required"`
	Email           string           `json:"email" validate:"required,email"`
	Phone           string           `json:"phone" validate:"required"`
	Address         string           `json:"address" validate:"required"`
	Level           models.LevelBand `json:"level" validate:"required"`
	EnrollmentMonth string           `json:"enrollment_month" validate:"required"`
	ClassIDs        []string         `json:"class_ids" validate:"required"`
}

// UpdateStudentProfileRequest holds mutable profile fields.
type UpdateStudentProfileRequest struct {
	Password string `json:"password" validate:"omitempty,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

// RegistrationResult reports the stored record and the computed total fee.
type RegistrationResult struct {
	Student  models.User
	TotalFee float64
}

// StudentService handles student registration and profile updates.
type StudentService struct {
	repo      studentRepository
	classes   classReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, classes classReader, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// Register validates the profile and selected classes, computes the total fee
// as the exact sum of the referenced class fees, assigns a new student id and
// appends the record.
func (s *StudentService) Register(ctx context.Context, req RegisterStudentRequest) (*RegistrationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Kind, "invalid registration payload")
	}
	if !models.ValidLevel(req.Level) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown grade level "+string(req.Level))
	}
	classIDs := dedupeClassIDs(req.ClassIDs)
	if len(classIDs) < minEnrolledClasses || len(classIDs) > maxEnrolledClasses {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("select between %d and %d classes, got %d", minEnrolledClasses, maxEnrolledClasses, len(classIDs)))
	}

	totalFee := 0.0
	for _, classID := range classIDs {
		class, err := s.classes.FindByID(classID)
		if err != nil {
			if appErrors.IsKind(err, appErrors.KindNotFound) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "class "+classID+" does not exist")
			}
			return nil, err
		}
		totalFee += class.FeePerClass
	}

	existing, err := s.repo.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, u := range existing {
		if strings.EqualFold(u.SecondaryKey, req.ICNumber) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "IC number already registered")
		}
	}

	student := models.User{
		Kind:             models.KindStudent,
		SecondaryKey:     req.ICNumber,
		Password:         req.Password,
		DisplayName:      req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		Level:            req.Level,
		EnrollmentMonth:  req.EnrollmentMonth,
		EnrolledClassIDs: classIDs,
	}
	if err := s.repo.Create(&student); err != nil {
		return nil, err
	}
	s.logger.Info("student registered",
		zap.String("student_id", student.ID),
		zap.Strings("class_ids", classIDs),
		zap.Float64("total_fee", totalFee),
	)
	return &RegistrationResult{Student: student, TotalFee: totalFee}, nil
}

// UpdateProfile rewrites a student's mutable profile fields, leaving id,
// level and enrollment untouched.
func (s *StudentService) UpdateProfile(ctx context.Context, studentID string, req UpdateStudentProfileRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Kind, "invalid profile payload")
	}
	student, err := s.repo.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	student.DisplayName = req.FullName
	student.Email = req.Email
	student.Phone = req.Phone
	student.Address = req.Address
	if req.Password != "" {
		student.Password = req.Password
	}
	if err := s.repo.Update(*student); err != nil {
		return nil, err
	}
	return student, nil
}

// dedupeClassIDs preserves first-seen order while dropping duplicates and
// blank entries.
func dedupeClassIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		key := strings.ToUpper(id)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, id)
	}
	return out
}
