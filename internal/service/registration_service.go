package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type registrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error)
	Validate(ctx context.Context, registrationID string, student *models.Student) error
	Reject(ctx context.Context, id string) error
}

type registrationClassResolver interface {
	FindByProgramLevel(ctx context.Context, programID string, level models.ClassLevel) (*models.Class, error)
}

type registrationStudentStore interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	ExistsByMatricule(ctx context.Context, matricule string) (bool, error)
}

// CreateRegistrationRequest captures an enrollment application.
type CreateRegistrationRequest struct {
	LastName   string     `json:"last_name" validate:"required,max=100"`
	FirstName  string     `json:"first_name" validate:"required,max=100"`
	BirthDate  *time.Time `json:"birth_date"`
	BirthPlace string     `json:"birth_place" validate:"max=120"`
	ProgramID  string     `json:"program_id" validate:"required"`
	Level      int        `json:"level" validate:"class_level"`
	SchoolYear string     `json:"school_year" validate:"omitempty,school_year"`
}

// RegistrationService turns applications into enrolled students.
type RegistrationService struct {
	repo      registrationRepository
	programs  programReader
	classes   registrationClassResolver
	students  registrationStudentStore
	rnd       randomSource
	now       func() time.Time
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(repo registrationRepository, programs programReader, classes registrationClassResolver, students registrationStudentStore, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		repo:      repo,
		programs:  programs,
		classes:   classes,
		students:  students,
		rnd:       newLockedRand(),
		now:       time.Now,
		validator: validate,
		logger:    logger,
	}
}

// CurrentSchoolYear returns the "YYYY-YYYY" school year starting in the calendar year of t.
func CurrentSchoolYear(t time.Time) string {
	year := t.Year()
	return fmt.Sprintf("%d-%d", year, year+1)
}

// Create records a pending registration.
func (s *RegistrationService) Create(ctx context.Context, req CreateRegistrationRequest) (*models.Registration, error) {
	req.LastName = strings.TrimSpace(req.LastName)
	req.FirstName = strings.TrimSpace(req.FirstName)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid registration payload")
	}
	if _, err := s.programs.FindByID(ctx, req.ProgramID); err != nil {
		return nil, lookupError(err, "program not found", "failed to load program")
	}
	if req.SchoolYear == "" {
		req.SchoolYear = CurrentSchoolYear(s.now())
	}

	reg := &models.Registration{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		BirthDate:  req.BirthDate,
		BirthPlace: req.BirthPlace,
		ProgramID:  req.ProgramID,
		Level:      models.ClassLevel(req.Level),
		SchoolYear: req.SchoolYear,
		Status:     models.RegistrationPending,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, internalError(err, "failed to create registration")
	}
	return reg, nil
}

// List returns registrations with pagination metadata.
func (s *RegistrationService) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, *models.Pagination, error) {
	regs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list registrations")
	}
	return regs, newPagination(filter.Page, filter.PageSize, total), nil
}

// Validate enrolls the applicant in the class of the requested program and level. Validating an
// already validated registration returns the linked student.
func (s *RegistrationService) Validate(ctx context.Context, id string) (*models.StudentDetail, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "registration not found", "failed to load registration")
	}
	switch reg.Status {
	case models.RegistrationValidated:
		if reg.StudentID == nil {
			return nil, appErrors.Clone(appErrors.ErrConflict, "registration validated without a student")
		}
		return s.loadStudent(ctx, *reg.StudentID)
	case models.RegistrationRejected:
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration was rejected")
	}

	class, err := s.classes.FindByProgramLevel(ctx, reg.ProgramID, reg.Level)
	if err != nil {
		return nil, lookupError(err, "no class for the requested program and level", "failed to resolve class")
	}

	matricule, err := generateMatricule(ctx, s.rnd, s.students.ExistsByMatricule)
	if err != nil {
		if errors.Is(err, errUniqueExhausted) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "could not allocate a free matricule")
		}
		return nil, internalError(err, "failed to generate matricule")
	}

	student := &models.Student{
		Matricule:  matricule,
		FullName:   RegistrationFullName(reg.LastName, reg.FirstName),
		ClassID:    class.ID,
		BirthDate:  reg.BirthDate,
		BirthPlace: reg.BirthPlace,
		Active:     true,
		SchoolYear: reg.SchoolYear,
	}
	if err := s.repo.Validate(ctx, reg.ID, student); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a student with this name already exists in the class")
		}
		return nil, lookupError(err, "registration is no longer pending", "failed to validate registration")
	}
	s.logger.Info("registration validated",
		zap.String("registration_id", reg.ID),
		zap.String("student_id", student.ID),
		zap.String("class_id", class.ID),
	)
	return s.loadStudent(ctx, student.ID)
}

// Reject closes a pending registration.
func (s *RegistrationService) Reject(ctx context.Context, id string) error {
	if err := s.repo.Reject(ctx, id); err != nil {
		return lookupError(err, "pending registration not found", "failed to reject registration")
	}
	return nil
}

// RegistrationFullName formats the student name as "LASTNAME Firstname".
func RegistrationFullName(lastName, firstName string) string {
	return strings.ToUpper(strings.TrimSpace(lastName)) + " " + strings.TrimSpace(firstName)
}

func (s *RegistrationService) loadStudent(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	return student, nil
}
