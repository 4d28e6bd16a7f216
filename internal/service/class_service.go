package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.ClassDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.ClassDetail, error)
	ExistsByProgramLevel(ctx context.Context, programID string, level models.ClassLevel, excludeID string) (bool, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}

type programReader interface {
	FindByID(ctx context.Context, id string) (*models.Program, error)
}

// ClassRequest carries the writable fields of a class. The name is always derived.
type ClassRequest struct {
	ProgramID string `json:"program_id" validate:"required"`
	Level     int    `json:"level" validate:"class_level"`
}

// DeriveClassName builds the class name from the initials of the program words and the level,
// e.g. "Génie Informatique" at level 2 gives "GI-2".
func DeriveClassName(programName string, level models.ClassLevel) string {
	var initials strings.Builder
	for _, word := range strings.Fields(programName) {
		for _, r := range word {
			initials.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return fmt.Sprintf("%s-%d", initials.String(), int(level))
}

// ClassService coordinates class operations.
type ClassService struct {
	repo      classRepository
	programs  programReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, programs programReader, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, programs: programs, validator: validate, logger: logger}
}

// List returns classes with pagination metadata.
func (s *ClassService) List(ctx context.Context, filter models.ClassFilter) ([]models.ClassDetail, *models.Pagination, error) {
	classes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list classes")
	}
	return classes, newPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns detailed class information.
func (s *ClassService) Get(ctx context.Context, id string) (*models.ClassDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "class not found", "failed to load class")
	}
	return detail, nil
}

// Create adds a class, deriving its name from the program.
func (s *ClassService) Create(ctx context.Context, req ClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	program, err := s.programs.FindByID(ctx, req.ProgramID)
	if err != nil {
		return nil, lookupError(err, "program not found", "failed to load program")
	}
	level := models.ClassLevel(req.Level)
	if err := s.ensureLevelFree(ctx, program.ID, level, ""); err != nil {
		return nil, err
	}

	class := &models.Class{ProgramID: program.ID, Level: level, Name: DeriveClassName(program.Name, level)}
	if err := s.repo.Create(ctx, class); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "class already exists for this level")
		}
		return nil, internalError(err, "failed to create class")
	}
	return class, nil
}

// Update moves a class to another program or level and re-derives its name.
func (s *ClassService) Update(ctx context.Context, id string, req ClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "class not found", "failed to load class")
	}
	program, err := s.programs.FindByID(ctx, req.ProgramID)
	if err != nil {
		return nil, lookupError(err, "program not found", "failed to load program")
	}
	level := models.ClassLevel(req.Level)
	if err := s.ensureLevelFree(ctx, program.ID, level, id); err != nil {
		return nil, err
	}

	class := current.Class
	class.ProgramID = program.ID
	class.Level = level
	class.Name = DeriveClassName(program.Name, level)
	if err := s.repo.Update(ctx, &class); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "class already exists for this level")
		}
		return nil, internalError(err, "failed to update class")
	}
	return &class, nil
}

// Delete removes a class.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "class still has students or subjects")
		}
		return lookupError(err, "class not found", "failed to delete class")
	}
	return nil
}

func (s *ClassService) ensureLevelFree(ctx context.Context, programID string, level models.ClassLevel, excludeID string) error {
	exists, err := s.repo.ExistsByProgramLevel(ctx, programID, level, excludeID)
	if err != nil {
		return internalError(err, "failed to check class level")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "class already exists for this level")
	}
	return nil
}
