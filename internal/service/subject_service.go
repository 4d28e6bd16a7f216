package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	ExistsByName(ctx context.Context, classID, name, excludeID string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

type classResultInvalidator interface {
	InvalidateClass(ctx context.Context, classID string)
}

type classReader interface {
	FindByID(ctx context.Context, id string) (*models.ClassDetail, error)
}

// SubjectRequest captures subject create/update payloads. Coefficient defaults to 1.
type SubjectRequest struct {
	ClassID      string `json:"class_id" validate:"required"`
	Name         string `json:"name" validate:"required,max=120"`
	Abbreviation string `json:"abbreviation" validate:"max=20"`
	Coefficient  *int   `json:"coefficient" validate:"omitempty,min=1,max=20"`
}

// SubjectService handles subject use cases.
type SubjectService struct {
	repo      subjectRepository
	classes   classReader
	results   classResultInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, classes classReader, results classResultInvalidator, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, classes: classes, results: results, validator: validate, logger: logger}
}

// List returns subjects filtered by class or search term.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list subjects")
	}
	return subjects, nil
}

// ListByClass enumerates the subjects of a class.
func (s *SubjectService) ListByClass(ctx context.Context, classID string) ([]models.Subject, error) {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		return nil, lookupError(err, "class not found", "failed to load class")
	}
	return s.List(ctx, models.SubjectFilter{ClassID: classID})
}

// Get returns a subject.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "subject not found", "failed to load subject")
	}
	return subject, nil
}

// Create adds a subject to a class.
func (s *SubjectService) Create(ctx context.Context, req SubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{}
	if err := s.apply(ctx, subject, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "subject already exists in class")
		}
		return nil, internalError(err, "failed to create subject")
	}
	s.invalidate(ctx, subject.ClassID)
	return subject, nil
}

// Update modifies a subject.
func (s *SubjectService) Update(ctx context.Context, id string, req SubjectRequest) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "subject not found", "failed to load subject")
	}
	previousClass := subject.ClassID
	if err := s.apply(ctx, subject, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, subject); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "subject already exists in class")
		}
		return nil, internalError(err, "failed to update subject")
	}
	s.invalidate(ctx, previousClass)
	if subject.ClassID != previousClass {
		s.invalidate(ctx, subject.ClassID)
	}
	return subject, nil
}

// Delete removes a subject with its evaluations.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "subject not found", "failed to load subject")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "subject not found", "failed to delete subject")
	}
	s.invalidate(ctx, subject.ClassID)
	return nil
}

func (s *SubjectService) invalidate(ctx context.Context, classID string) {
	if s.results != nil {
		s.results.InvalidateClass(ctx, classID)
	}
}

func (s *SubjectService) apply(ctx context.Context, subject *models.Subject, req SubjectRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Abbreviation = strings.ToUpper(strings.TrimSpace(req.Abbreviation))
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid subject payload")
	}
	if _, err := s.classes.FindByID(ctx, req.ClassID); err != nil {
		return lookupError(err, "class not found", "failed to load class")
	}
	exists, err := s.repo.ExistsByName(ctx, req.ClassID, req.Name, subject.ID)
	if err != nil {
		return internalError(err, "failed to check subject name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "subject already exists in class")
	}

	subject.ClassID = req.ClassID
	subject.Name = req.Name
	subject.Abbreviation = req.Abbreviation
	switch {
	case req.Coefficient != nil:
		subject.Coefficient = *req.Coefficient
	case subject.Coefficient == 0:
		subject.Coefficient = 1
	}
	return nil
}
