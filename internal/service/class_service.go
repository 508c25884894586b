package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tcc-admin-api/internal/models"
	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
)

type classRepository interface {
	LoadAll() ([]models.ClassOffering, error)
	FindByID(classID string) (*models.ClassOffering, error)
	Create(c *models.ClassOffering) error
	UpdateTutor(classID, tutorID string) error
	Delete(classID string) (bool, error)
}

type tutorReader interface {
	FindByID(id string) (*models.User, error)
}

// CreateClassRequest holds the raw field values for a new class offering.
type CreateClassRequest struct {
	TutorID     string           `json:"tutor_id" validate:"required"`
	Level       models.LevelBand `json:"level" validate:"required"`
	Subject     string           `json:"subject" validate:"required"`
	Description string           `json:"description"`
	Schedule    string           `json:"schedule" validate:"required"`
	FeePerClass float64          `json:"fee_per_class" validate:"required,gt=0"`
}

// ClassService manages class offerings and tutor assignment.
type ClassService struct {
	repo      classRepository
	tutors    tutorReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo classRepository, tutors tutorReader, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, tutors: tutors, validator: validate, logger: logger}
}

// List returns every class offering.
func (s *ClassService) List(ctx context.Context) ([]models.ClassOffering, error) {
	return s.repo.LoadAll()
}

// AssignTutor rewrites only the tutor field of an existing class. The tutor
// must resolve to a live record before the assignment is written.
func (s *ClassService) AssignTutor(ctx context.Context, classID, tutorID string) (*models.ClassOffering, error) {
	class, err := s.repo.FindByID(classID)
	if err != nil {
		return nil, err
	}
	tutor, err := s.tutors.FindByID(tutorID)
	if err != nil {
		if appErrors.IsKind(err, appErrors.KindNotFound) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "tutor "+tutorID+" does not exist")
		}
		return nil, err
	}
	if err := s.repo.UpdateTutor(class.ClassID, tutor.ID); err != nil {
		return nil, err
	}
	class.TutorID = tutor.ID
	s.logger.Info("tutor assigned",
		zap.String("class_id", class.ClassID),
		zap.String("tutor_id", tutor.ID),
	)
	return class, nil
}

// Create validates the level and subject against the static catalog, assigns
// a new class id and appends the offering.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.ClassOffering, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Kind, "invalid class payload")
	}
	if !models.ValidLevel(req.Level) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown grade level "+string(req.Level))
	}
	if !models.SubjectOffered(req.Level, req.Subject) {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			req.Subject+" is not offered for level "+string(req.Level))
	}
	tutor, err := s.tutors.FindByID(req.TutorID)
	if err != nil {
		if appErrors.IsKind(err, appErrors.KindNotFound) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "tutor "+req.TutorID+" does not exist")
		}
		return nil, err
	}
	class := models.ClassOffering{
		TutorID:     tutor.ID,
		Subject:     req.Subject,
		Description: req.Description,
		Schedule:    req.Schedule,
		FeePerClass: req.FeePerClass,
	}
	if err := s.repo.Create(&class); err != nil {
		return nil, err
	}
	s.logger.Info("class created",
		zap.String("class_id", class.ClassID),
		zap.String("subject", class.Subject),
		zap.String("tutor_id", class.TutorID),
	)
	return &class, nil
}

// Delete removes one class offering. Existing student, payment and request
// references to the id are tolerated as dangling.
func (s *ClassService) Delete(ctx context.Context, classID string) error {
	deleted, err := s.repo.Delete(classID)
	if err != nil {
		return err
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "class "+classID+" not found")
	}
	return nil
}
