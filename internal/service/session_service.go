package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

const sessionCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type sessionRepository interface {
	List(ctx context.Context, filter models.SessionFilter) ([]models.ExamSession, error)
	FindByID(ctx context.Context, id string) (*models.ExamSession, error)
	ExistsByTitleYear(ctx context.Context, title models.SessionTitle, schoolYear string) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, session *models.ExamSession) error
	Delete(ctx context.Context, id string) error
}

// CreateSessionRequest captures a new exam session.
type CreateSessionRequest struct {
	Title      string `json:"title" validate:"required,session_title"`
	SchoolYear string `json:"school_year" validate:"required,school_year"`
}

// SessionService manages exam sessions.
type SessionService struct {
	repo      sessionRepository
	rnd       randomSource
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, rnd: newLockedRand(), validator: validate, logger: logger}
}

// SessionCodePrefix returns the code of a session without its random suffix,
// e.g. "Semestre 1" in "2024-2025" gives "SEM-20242025".
func SessionCodePrefix(title models.SessionTitle, schoolYear string) string {
	compact := []rune(strings.ToUpper(strings.ReplaceAll(string(title), " ", "")))
	if len(compact) > 3 {
		compact = compact[:3]
	}
	return string(compact) + "-" + strings.ReplaceAll(schoolYear, "-", "")
}

// List returns sessions.
func (s *SessionService) List(ctx context.Context, filter models.SessionFilter) ([]models.ExamSession, error) {
	sessions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list sessions")
	}
	return sessions, nil
}

// Get returns a session.
func (s *SessionService) Get(ctx context.Context, id string) (*models.ExamSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "session not found", "failed to load session")
	}
	return session, nil
}

// Create registers a session with a generated unique code.
func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (*models.ExamSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid session payload")
	}
	title := models.SessionTitle(req.Title)

	exists, err := s.repo.ExistsByTitleYear(ctx, title, req.SchoolYear)
	if err != nil {
		return nil, internalError(err, "failed to check session")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "session already exists for this school year")
	}

	code, err := s.generateCode(ctx, SessionCodePrefix(title, req.SchoolYear))
	if err != nil {
		if errors.Is(err, errUniqueExhausted) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "could not allocate a free session code")
		}
		return nil, internalError(err, "failed to generate session code")
	}

	session := &models.ExamSession{Title: title, SchoolYear: req.SchoolYear, Code: code}
	if err := s.repo.Create(ctx, session); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "session already exists for this school year")
		}
		return nil, internalError(err, "failed to create session")
	}
	s.logger.Info("session created", zap.String("session_id", session.ID), zap.String("code", session.Code))
	return session, nil
}

// Delete removes a session with its evaluations and scores.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "session is the active result session")
		}
		return lookupError(err, "session not found", "failed to delete session")
	}
	return nil
}

func (s *SessionService) generateCode(ctx context.Context, prefix string) (string, error) {
	suffix := make([]byte, 4)
	for attempt := 0; attempt < maxUniqueAttempts; attempt++ {
		for i := range suffix {
			suffix[i] = sessionCodeAlphabet[s.rnd.Intn(len(sessionCodeAlphabet))]
		}
		code := prefix + "-" + string(suffix)
		exists, err := s.repo.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errUniqueExhausted
}
