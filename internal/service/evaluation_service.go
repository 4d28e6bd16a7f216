package service

import (
	"context"
	"database/sql"
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

type evaluationRepository interface {
	List(ctx context.Context, filter models.EvaluationFilter) ([]models.EvaluationDetail, error)
	FindByID(ctx context.Context, id string) (*models.EvaluationDetail, error)
	FindByKey(ctx context.Context, kind models.EvaluationKind, sessionID, subjectID string) (*models.EvaluationDetail, error)
	Create(ctx context.Context, evaluation *models.Evaluation) error
	Delete(ctx context.Context, id string) error
}

type subjectReader interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

type sessionReader interface {
	FindByID(ctx context.Context, id string) (*models.ExamSession, error)
}

// CreateEvaluationRequest captures a coursework or exam. WithExam on a coursework also creates the
// matching exam when it does not exist yet.
type CreateEvaluationRequest struct {
	Kind      string     `json:"kind" validate:"required,evaluation_kind"`
	SessionID string     `json:"session_id" validate:"required"`
	SubjectID string     `json:"subject_id" validate:"required"`
	Title     string     `json:"title" validate:"max=150"`
	HeldOn    *time.Time `json:"held_on"`
	WithExam  bool       `json:"with_exam"`
}

// EnsureEvaluationRequest identifies an evaluation by its natural key.
type EnsureEvaluationRequest struct {
	Kind      string `json:"kind" validate:"required,evaluation_kind"`
	SessionID string `json:"session_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
}

// CreateEvaluationResult reports the created evaluation and, when requested, the paired exam.
type CreateEvaluationResult struct {
	Evaluation *models.EvaluationDetail `json:"evaluation"`
	Exam       *models.EvaluationDetail `json:"exam,omitempty"`
}

// EvaluationService manages courseworks and exams.
type EvaluationService struct {
	repo      evaluationRepository
	subjects  subjectReader
	sessions  sessionReader
	results   classResultInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEvaluationService constructs an EvaluationService.
func NewEvaluationService(repo evaluationRepository, subjects subjectReader, sessions sessionReader, results classResultInvalidator, validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{repo: repo, subjects: subjects, sessions: sessions, results: results, validator: validate, logger: logger}
}

// List returns evaluations matching the filter.
func (s *EvaluationService) List(ctx context.Context, filter models.EvaluationFilter) ([]models.EvaluationDetail, error) {
	evaluations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list evaluations")
	}
	return evaluations, nil
}

// Get returns an evaluation.
func (s *EvaluationService) Get(ctx context.Context, id string) (*models.EvaluationDetail, error) {
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "evaluation not found", "failed to load evaluation")
	}
	return evaluation, nil
}

// Create adds an evaluation, rejecting a second one of the same kind for (session, subject).
func (s *EvaluationService) Create(ctx context.Context, req CreateEvaluationRequest) (*CreateEvaluationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid evaluation payload")
	}
	kind := models.EvaluationKind(req.Kind)
	subject, session, err := s.resolve(ctx, req.SubjectID, req.SessionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByKey(ctx, kind, session.ID, subject.ID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s already exists for this subject and session", kind))
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, internalError(err, "failed to check evaluation")
	}

	created, err := s.create(ctx, kind, subject, session, req.Title, req.HeldOn)
	if err != nil {
		return nil, err
	}
	result := &CreateEvaluationResult{Evaluation: created}

	if kind == models.EvaluationCoursework && req.WithExam {
		exam, _, err := s.ensure(ctx, models.EvaluationExam, subject, session)
		if err != nil {
			return nil, err
		}
		result.Exam = exam
	}
	return result, nil
}

// Ensure returns the evaluation of the natural key, creating it when absent.
func (s *EvaluationService) Ensure(ctx context.Context, req EnsureEvaluationRequest) (*models.EvaluationDetail, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, validationError(err, "invalid evaluation payload")
	}
	subject, session, err := s.resolve(ctx, req.SubjectID, req.SessionID)
	if err != nil {
		return nil, false, err
	}
	return s.ensure(ctx, models.EvaluationKind(req.Kind), subject, session)
}

// Delete removes an evaluation and its scores.
func (s *EvaluationService) Delete(ctx context.Context, id string) error {
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "evaluation not found", "failed to load evaluation")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "evaluation not found", "failed to delete evaluation")
	}
	if s.results != nil {
		s.results.InvalidateClass(ctx, evaluation.ClassID)
	}
	s.logger.Info("evaluation deleted", zap.String("evaluation_id", id), zap.String("class_id", evaluation.ClassID))
	return nil
}

func (s *EvaluationService) ensure(ctx context.Context, kind models.EvaluationKind, subject *models.Subject, session *models.ExamSession) (*models.EvaluationDetail, bool, error) {
	existing, err := s.repo.FindByKey(ctx, kind, session.ID, subject.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, internalError(err, "failed to load evaluation")
	}
	created, err := s.create(ctx, kind, subject, session, "", nil)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrConflict) {
			// Lost a concurrent get-or-create; the winner's row is authoritative.
			existing, lookupErr := s.repo.FindByKey(ctx, kind, session.ID, subject.ID)
			if lookupErr != nil {
				return nil, false, internalError(lookupErr, "failed to load evaluation")
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return created, true, nil
}

func (s *EvaluationService) create(ctx context.Context, kind models.EvaluationKind, subject *models.Subject, session *models.ExamSession, title string, heldOn *time.Time) (*models.EvaluationDetail, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultEvaluationTitle(kind, subject.Name)
	}
	evaluation := &models.Evaluation{Kind: kind, SessionID: session.ID, SubjectID: subject.ID, Title: title, HeldOn: heldOn}
	if err := s.repo.Create(ctx, evaluation); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s already exists for this subject and session", kind))
		}
		return nil, internalError(err, "failed to create evaluation")
	}
	s.logger.Info("evaluation created",
		zap.String("evaluation_id", evaluation.ID),
		zap.String("kind", string(kind)),
		zap.String("subject_id", subject.ID),
		zap.String("session_id", session.ID),
	)
	return &models.EvaluationDetail{
		Evaluation:   *evaluation,
		SubjectName:  subject.Name,
		ClassID:      subject.ClassID,
		SessionTitle: session.Title,
		SchoolYear:   session.SchoolYear,
	}, nil
}

func (s *EvaluationService) resolve(ctx context.Context, subjectID, sessionID string) (*models.Subject, *models.ExamSession, error) {
	subject, err := s.subjects.FindByID(ctx, subjectID)
	if err != nil {
		return nil, nil, lookupError(err, "subject not found", "failed to load subject")
	}
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, lookupError(err, "session not found", "failed to load session")
	}
	return subject, session, nil
}

// DefaultEvaluationTitle names an evaluation after its kind and subject.
func DefaultEvaluationTitle(kind models.EvaluationKind, subjectName string) string {
	if kind == models.EvaluationExam {
		return "Examen " + subjectName
	}
	return "Devoir " + subjectName
}
