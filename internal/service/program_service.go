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

type programRepository interface {
	List(ctx context.Context) ([]models.Program, error)
	FindByID(ctx context.Context, id string) (*models.Program, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	CreateWithClasses(ctx context.Context, program *models.Program, classes []models.Class) error
	Delete(ctx context.Context, id string) error
}

type programClassLister interface {
	ListByProgram(ctx context.Context, programID string) ([]models.Class, error)
}

// CreateProgramRequest captures a new program. AutoCreateClasses defaults to true.
type CreateProgramRequest struct {
	Name              string `json:"name" validate:"required,max=120"`
	AutoCreateClasses *bool  `json:"auto_create_classes"`
}

// ProgramService manages programs and their level classes.
type ProgramService struct {
	repo      programRepository
	classes   programClassLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProgramService constructs ProgramService.
func NewProgramService(repo programRepository, classes programClassLister, validate *validator.Validate, logger *zap.Logger) *ProgramService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// List returns every program.
func (s *ProgramService) List(ctx context.Context) ([]models.Program, error) {
	programs, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list programs")
	}
	return programs, nil
}

// Get returns a program with its classes.
func (s *ProgramService) Get(ctx context.Context, id string) (*models.ProgramDetail, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "program not found", "failed to load program")
	}
	classes, err := s.classes.ListByProgram(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to load program classes")
	}
	return &models.ProgramDetail{Program: *program, Classes: classes}, nil
}

// Create registers a program and, unless disabled, its three level classes in one transaction.
func (s *ProgramService) Create(ctx context.Context, req CreateProgramRequest) (*models.ProgramDetail, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid program payload")
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, internalError(err, "failed to check program name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "program already exists")
	}

	program := &models.Program{Name: req.Name}
	var classes []models.Class
	if req.AutoCreateClasses == nil || *req.AutoCreateClasses {
		for _, level := range models.ClassLevels {
			classes = append(classes, models.Class{Level: level, Name: DeriveClassName(program.Name, level)})
		}
	}

	if err := s.repo.CreateWithClasses(ctx, program, classes); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "program already exists")
		}
		return nil, internalError(err, "failed to create program")
	}
	s.logger.Info("program created", zap.String("program_id", program.ID), zap.Int("classes", len(classes)))
	if classes == nil {
		classes = []models.Class{}
	}
	return &models.ProgramDetail{Program: *program, Classes: classes}, nil
}

// Delete removes a program and its classes.
func (s *ProgramService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "program still has enrolled students")
		}
		return lookupError(err, "program not found", "failed to delete program")
	}
	return nil
}
