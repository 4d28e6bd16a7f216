package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	FindByMatricule(ctx context.Context, matricule string) (*models.StudentDetail, error)
	ExistsByMatricule(ctx context.Context, matricule string) (bool, error)
	ExistsByNameInClass(ctx context.Context, fullName, classID, excludeID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type studentResultInvalidator interface {
	InvalidateStudent(ctx context.Context, studentID string)
}

// CreateStudentRequest holds payload for creating students. The matricule is always generated.
type CreateStudentRequest struct {
	FullName   string     `json:"full_name" validate:"required,max=150"`
	ClassID    string     `json:"class_id" validate:"required"`
	BirthDate  *time.Time `json:"birth_date"`
	BirthPlace string     `json:"birth_place" validate:"max=120"`
	SchoolYear string     `json:"school_year" validate:"required,school_year"`
	Active     *bool      `json:"active"`
}

// UpdateStudentRequest holds payload for updating students. A matricule in the body is ignored.
type UpdateStudentRequest struct {
	FullName   string     `json:"full_name" validate:"required,max=150"`
	ClassID    string     `json:"class_id" validate:"required"`
	BirthDate  *time.Time `json:"birth_date"`
	BirthPlace string     `json:"birth_place" validate:"max=120"`
	SchoolYear string     `json:"school_year" validate:"required,school_year"`
	Active     *bool      `json:"active"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	classes   classReader
	results   studentResultInvalidator
	rnd       randomSource
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service. results may be nil.
func NewStudentService(repo studentRepository, classes classReader, results studentResultInvalidator, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, classes: classes, results: results, rnd: newLockedRand(), validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list students")
	}
	return students, newPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a student detail.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	return student, nil
}

// GetByMatricule resolves a student by matricule.
func (s *StudentService) GetByMatricule(ctx context.Context, matricule string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByMatricule(ctx, strings.TrimSpace(matricule))
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	return student, nil
}

// Create registers a new student with a freshly generated matricule.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	if err := s.checkPlacement(ctx, req.FullName, req.ClassID, ""); err != nil {
		return nil, err
	}

	matricule, err := generateMatricule(ctx, s.rnd, s.repo.ExistsByMatricule)
	if err != nil {
		return nil, s.matriculeError(err)
	}

	student := &models.Student{
		Matricule:  matricule,
		FullName:   req.FullName,
		ClassID:    req.ClassID,
		BirthDate:  req.BirthDate,
		BirthPlace: req.BirthPlace,
		Active:     req.Active == nil || *req.Active,
		SchoolYear: req.SchoolYear,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student already exists")
		}
		return nil, internalError(err, "failed to create student")
	}
	s.logger.Info("student created", zap.String("student_id", student.ID), zap.String("matricule", student.Matricule))
	return student, nil
}

// Update modifies student data. The matricule is preserved.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	if err := s.checkPlacement(ctx, req.FullName, req.ClassID, id); err != nil {
		return nil, err
	}

	student := current.Student
	classChanged := student.ClassID != req.ClassID
	student.FullName = req.FullName
	student.ClassID = req.ClassID
	student.BirthDate = req.BirthDate
	student.BirthPlace = req.BirthPlace
	student.SchoolYear = req.SchoolYear
	if req.Active != nil {
		student.Active = *req.Active
	}
	if err := s.repo.Update(ctx, &student); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student already exists")
		}
		return nil, internalError(err, "failed to update student")
	}
	if classChanged && s.results != nil {
		s.results.InvalidateStudent(ctx, id)
	}
	return &student, nil
}

// SetActive toggles enrollment status.
func (s *StudentService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return lookupError(err, "student not found", "failed to update student status")
	}
	return nil
}

// Delete removes a student with their scores, fees and snapshot.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "student not found", "failed to delete student")
	}
	if s.results != nil {
		s.results.InvalidateStudent(ctx, id)
	}
	return nil
}

func (s *StudentService) checkPlacement(ctx context.Context, fullName, classID, excludeID string) error {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		return lookupError(err, "class not found", "failed to load class")
	}
	exists, err := s.repo.ExistsByNameInClass(ctx, fullName, classID, excludeID)
	if err != nil {
		return internalError(err, "failed to check student name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "a student with this name already exists in the class")
	}
	return nil
}

func (s *StudentService) matriculeError(err error) error {
	if errors.Is(err, errUniqueExhausted) {
		return appErrors.Clone(appErrors.ErrConflict, "could not allocate a free matricule")
	}
	return internalError(err, "failed to generate matricule")
}
