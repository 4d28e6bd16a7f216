package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type resultSettingRepository interface {
	Get(ctx context.Context) (*models.ResultSetting, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, setting *models.ResultSetting) error
	UpdateSession(ctx context.Context, id, sessionID string) error
}

// ResultSettingRequest selects the active session.
type ResultSettingRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// ResultSettingService manages the single system-wide active-session setting.
type ResultSettingService struct {
	repo      resultSettingRepository
	sessions  sessionReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResultSettingService constructs a ResultSettingService.
func NewResultSettingService(repo resultSettingRepository, sessions sessionReader, validate *validator.Validate, logger *zap.Logger) *ResultSettingService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultSettingService{repo: repo, sessions: sessions, validator: validate, logger: logger}
}

// Get returns the setting, or NotFound when none was created.
func (s *ResultSettingService) Get(ctx context.Context) (*models.ResultSetting, error) {
	setting, err := s.repo.Get(ctx)
	if err != nil {
		return nil, lookupError(err, "no active session configured", "failed to load result setting")
	}
	return setting, nil
}

// Create stores the setting. A second setting is rejected before anything is written.
func (s *ResultSettingService) Create(ctx context.Context, req ResultSettingRequest) (*models.ResultSetting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid result setting payload")
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, internalError(err, "failed to count result settings")
	}
	if count > 0 {
		return nil, appErrors.Clone(appErrors.ErrSingleton, "an active session setting already exists")
	}
	if _, err := s.sessions.FindByID(ctx, req.SessionID); err != nil {
		return nil, lookupError(err, "session not found", "failed to load session")
	}

	setting := &models.ResultSetting{SessionID: req.SessionID}
	if err := s.repo.Create(ctx, setting); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrSingleton, "an active session setting already exists")
		}
		return nil, internalError(err, "failed to create result setting")
	}
	s.logger.Info("active session configured", zap.String("session_id", setting.SessionID))
	return setting, nil
}

// Update points the existing setting at another session.
func (s *ResultSettingService) Update(ctx context.Context, req ResultSettingRequest) (*models.ResultSetting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid result setting payload")
	}
	setting, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.FindByID(ctx, req.SessionID); err != nil {
		return nil, lookupError(err, "session not found", "failed to load session")
	}
	if err := s.repo.UpdateSession(ctx, setting.ID, req.SessionID); err != nil {
		return nil, lookupError(err, "no active session configured", "failed to update result setting")
	}
	setting.SessionID = req.SessionID
	s.logger.Info("active session changed", zap.String("session_id", setting.SessionID))
	return setting, nil
}
